package services

import (
	"context"
	"fmt"

	"smc/internal/logger"
	"smc/internal/models"

	"golang.org/x/sync/errgroup"
)

/**
 * ServiceManager 对一组服务执行批量状态查询、启动和停止
 * @property {[]*ServiceInformation} services - Services in the order results are reported
 * @property {int} jobs - Services handled at once, 1 runs them one after another
 * @description
 * - One service failing never stops the others
 * - Results always follow the input order, whatever the concurrency
 */
type ServiceManager struct {
	services []*ServiceInformation
	jobs     int
}

type ManagerOption func(*ServiceManager)

// WithJobs bounds how many services are processed concurrently.
func WithJobs(n int) ManagerOption {
	return func(sm *ServiceManager) {
		if n > 0 {
			sm.jobs = n
		}
	}
}

func NewServiceManager(services []*ServiceInformation, opts ...ManagerOption) *ServiceManager {
	sm := &ServiceManager{
		services: services,
		jobs:     1,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func (sm *ServiceManager) Services() []*ServiceInformation {
	return sm.services
}

// GetService returns the service with the given name, or nil.
func (sm *ServiceManager) GetService(name string) *ServiceInformation {
	for _, svc := range sm.services {
		if svc.Name == name {
			return svc
		}
	}
	return nil
}

func (sm *ServiceManager) forEach(fn func(i int, svc *ServiceInformation)) {
	if sm.jobs <= 1 || len(sm.services) <= 1 {
		for i, svc := range sm.services {
			fn(i, svc)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(sm.jobs)
	for i, svc := range sm.services {
		g.Go(func() error {
			fn(i, svc)
			return nil
		})
	}
	_ = g.Wait()
}

/**
 * RefreshAll 查询所有服务状态
 * @param {context.Context} ctx - Cancels running health checks
 * @returns {[]models.StatusReport} One report per service, failures carry a detail
 */
func (sm *ServiceManager) RefreshAll(ctx context.Context) []models.StatusReport {
	reports := make([]models.StatusReport, len(sm.services))
	sm.forEach(func(i int, svc *ServiceInformation) {
		status, err := svc.RefreshStatus(ctx)
		reports[i] = models.StatusReport{Name: svc.Name, Status: status}
		if err != nil {
			logger.Warnf("Service '%s' status check failed: %v", svc.Name, err)
			reports[i].Detail = err.Error()
		}
	})
	return reports
}

/**
 * StartAll 启动所有未运行的服务
 * @param {context.Context} ctx - Cancels running scripts
 * @returns {[]models.OperationResult} One row per service
 * @description
 * - Refreshes each service first
 * - Running and disabled services are skipped
 */
func (sm *ServiceManager) StartAll(ctx context.Context) []models.OperationResult {
	results := make([]models.OperationResult, len(sm.services))
	sm.forEach(func(i int, svc *ServiceInformation) {
		results[i] = startOne(ctx, svc)
	})
	return results
}

/**
 * StopAll 停止所有正在运行的服务
 * @param {context.Context} ctx - Cancels running scripts
 * @returns {[]models.OperationResult} One row per service
 * @description
 * - Refreshes each service first
 * - Only running services are stopped, the rest are skipped
 */
func (sm *ServiceManager) StopAll(ctx context.Context) []models.OperationResult {
	results := make([]models.OperationResult, len(sm.services))
	sm.forEach(func(i int, svc *ServiceInformation) {
		results[i] = stopOne(ctx, svc)
	})
	return results
}

func startOne(ctx context.Context, svc *ServiceInformation) models.OperationResult {
	status, err := svc.RefreshStatus(ctx)
	row := models.OperationResult{Name: svc.Name, Status: status}
	if err != nil {
		return failed(row, fmt.Errorf("status check: %w", err))
	}

	switch status {
	case models.StatusRunning:
		return skipped(row, "already running")
	case models.StatusDisabled:
		return skipped(row, "disabled")
	}

	res, err := svc.Start(ctx)
	if err != nil {
		return failed(row, err)
	}
	row.Outcome = res.Kind
	if !res.Success() {
		code := res.Code
		row.ExitCode = &code
		logger.Warnf("Service '%s' start failed: %s", svc.Name, res)
	} else {
		logger.Infof("Service '%s' started", svc.Name)
	}
	return row
}

func stopOne(ctx context.Context, svc *ServiceInformation) models.OperationResult {
	status, err := svc.RefreshStatus(ctx)
	row := models.OperationResult{Name: svc.Name, Status: status}
	if err != nil {
		return failed(row, fmt.Errorf("status check: %w", err))
	}

	switch status {
	case models.StatusDisabled:
		return skipped(row, "disabled")
	case models.StatusStopped:
		return skipped(row, "not running")
	}

	res, err := svc.Stop(ctx)
	if err != nil {
		return failed(row, err)
	}
	row.Outcome = res.Kind
	if !res.Success() {
		code := res.Code
		row.ExitCode = &code
		logger.Warnf("Service '%s' stop failed: %s", svc.Name, res)
	} else {
		logger.Infof("Service '%s' stopped", svc.Name)
	}
	return row
}

func skipped(row models.OperationResult, reason string) models.OperationResult {
	row.Outcome = models.OutcomeSkipped
	row.Detail = reason
	return row
}

func failed(row models.OperationResult, err error) models.OperationResult {
	logger.Errorf("Service '%s': %v", row.Name, err)
	row.Outcome = models.OutcomeError
	row.Detail = err.Error()
	row.Err = err
	return row
}
