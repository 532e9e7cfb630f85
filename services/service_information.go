package services

import (
	"context"
	"os"
	"time"

	"smc/internal/env"
	"smc/internal/logger"
	"smc/internal/manifest"
	"smc/internal/models"
	"smc/internal/proc"

	"github.com/looplab/fsm"
)

// ScriptPhase names one of the five manifest scripts.
type ScriptPhase string

const (
	PhaseHealthCheck ScriptPhase = "health_check"
	PhasePreStart    ScriptPhase = "pre_start"
	PhaseStart       ScriptPhase = "start"
	PhaseStop        ScriptPhase = "stop"
	PhasePostStop    ScriptPhase = "post_stop"
)

// Observer is told about every script run and every status change.
type Observer interface {
	ObserveScript(service string, phase ScriptPhase, status proc.ExitStatus, elapsed time.Duration, err error)
	ObserveStatus(service string, status models.ServiceStatus)
}

const (
	eventHealthy   = "healthy"
	eventUnhealthy = "unhealthy"
	eventDisable   = "disable"
)

/**
 * ServiceInformation 服务信息，持有清单、最近一次观察到的状态和脚本执行器
 * @property {string} Name - Service name from the manifest
 * @property {string} Dir - Directory holding manifest.toml, scripts run here
 * @property {string} DataDir - Per-service data directory exported as SMC_DATA_DIR
 * @property {*manifest.Manifest} Manifest - Parsed manifest
 * @description
 * - Status starts as unknown and only changes through RefreshStatus
 * - Start and Stop report typed results, a non-zero exit is never an error
 */
type ServiceInformation struct {
	Name     string
	Dir      string
	DataDir  string
	Manifest *manifest.Manifest

	executor proc.Executor
	observer Observer
	machine  *fsm.FSM
}

type ServiceOption func(*ServiceInformation)

// WithObserver reports script runs and status changes to o.
func WithObserver(o Observer) ServiceOption {
	return func(s *ServiceInformation) { s.observer = o }
}

func NewServiceInformation(m *manifest.Manifest, dir, dataDir string, executor proc.Executor, opts ...ServiceOption) *ServiceInformation {
	s := &ServiceInformation{
		Name:     m.Name,
		Dir:      dir,
		DataDir:  dataDir,
		Manifest: m,
		executor: executor,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.machine = newStatusMachine(s.Name)
	return s
}

func newStatusMachine(name string) *fsm.FSM {
	all := make([]string, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		all = append(all, string(st))
	}
	return fsm.NewFSM(
		string(models.StatusUnknown),
		fsm.Events{
			{Name: eventHealthy, Src: all, Dst: string(models.StatusRunning)},
			{Name: eventUnhealthy, Src: all, Dst: string(models.StatusStopped)},
			{Name: eventDisable, Src: all, Dst: string(models.StatusDisabled)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debugf("Service '%s' status: %s -> %s", name, e.Src, e.Dst)
			},
		},
	)
}

// Status returns the last observed status without running anything.
func (s *ServiceInformation) Status() models.ServiceStatus {
	return models.ServiceStatus(s.machine.Current())
}

// setStatus sends the event unless the machine already sits in its
// destination, looplab/fsm rejects self-transitions.
func (s *ServiceInformation) setStatus(event string, dst models.ServiceStatus) {
	if s.Status() != dst {
		if err := s.machine.Event(context.Background(), event); err != nil {
			logger.Warnf("Service '%s' status event %s rejected: %v", s.Name, event, err)
		}
	}
	if s.observer != nil {
		s.observer.ObserveStatus(s.Name, s.Status())
	}
}

/**
 * RefreshStatus 执行健康检查并更新服务状态
 * @param {context.Context} ctx - Cancels the health check
 * @returns {models.ServiceStatus} New status, or the unchanged one on error
 * @returns {error} Spawn or wait error of the health check
 * @description
 * - A service that is not enabled becomes disabled without running anything
 * - Exit 0 means running, any other exit means stopped
 */
func (s *ServiceInformation) RefreshStatus(ctx context.Context) (models.ServiceStatus, error) {
	if !s.Manifest.Enabled() {
		s.setStatus(eventDisable, models.StatusDisabled)
		return s.Status(), nil
	}

	status, err := s.run(ctx, PhaseHealthCheck, s.Manifest.Scripts.HealthCheck)
	if err != nil {
		return s.Status(), err
	}
	if status.Success() {
		s.setStatus(eventHealthy, models.StatusRunning)
	} else {
		s.setStatus(eventUnhealthy, models.StatusStopped)
	}
	return s.Status(), nil
}

/**
 * Start 启动服务
 * @param {context.Context} ctx - Cancels the running script
 * @returns {models.StartResult} Success, PreStartFailed(code) or StartFailed(code)
 * @returns {error} Engine error, no further script runs after it
 * @description
 * - Creates the data directory when missing
 * - Runs pre_start when present, a failing pre_start skips start
 * - Does not refresh the status
 */
func (s *ServiceInformation) Start(ctx context.Context) (models.StartResult, error) {
	if err := s.ensureDataDir(); err != nil {
		return models.StartResult{}, &ServiceError{Op: OpStart, Service: s.Name, Err: err}
	}

	if pre := s.Manifest.Scripts.PreStart; pre != nil {
		status, err := s.run(ctx, PhasePreStart, *pre)
		if err != nil {
			return models.StartResult{}, err
		}
		if !status.Success() {
			return models.PreStartFailed(status.Code), nil
		}
	}

	status, err := s.run(ctx, PhaseStart, s.Manifest.Scripts.Start)
	if err != nil {
		return models.StartResult{}, err
	}
	if !status.Success() {
		return models.StartFailed(status.Code), nil
	}
	return models.StartSuccess(), nil
}

/**
 * Stop 停止服务
 * @param {context.Context} ctx - Cancels the running script
 * @returns {models.StopResult} Success, StopFailed(code) or PostStopFailed(code)
 * @returns {error} Engine error, no further script runs after it
 * @description
 * - Missing stop and post_stop scripts are skipped, so Stop may run nothing
 * - A failing stop skips post_stop
 */
func (s *ServiceInformation) Stop(ctx context.Context) (models.StopResult, error) {
	if stop := s.Manifest.Scripts.Stop; stop != nil {
		status, err := s.run(ctx, PhaseStop, *stop)
		if err != nil {
			return models.StopResult{}, err
		}
		if !status.Success() {
			return models.StopFailed(status.Code), nil
		}
	}

	if post := s.Manifest.Scripts.PostStop; post != nil {
		status, err := s.run(ctx, PhasePostStop, *post)
		if err != nil {
			return models.StopResult{}, err
		}
		if !status.Success() {
			return models.PostStopFailed(status.Code), nil
		}
	}
	return models.StopSuccess(), nil
}

func (s *ServiceInformation) run(ctx context.Context, phase ScriptPhase, script string) (proc.ExitStatus, error) {
	log := logger.Named("lifecycle").With("service", s.Name, "phase", string(phase))

	begin := time.Now()
	status, err := proc.Run(ctx, s.executor, proc.Command{
		Title:  s.Name + "/" + string(phase),
		Script: script,
		Dir:    s.Dir,
		Env:    s.scriptEnv(),
	})
	elapsed := time.Since(begin)

	if s.observer != nil {
		s.observer.ObserveScript(s.Name, phase, status, elapsed, err)
	}
	if err != nil {
		log.Errorw("script did not complete", "error", err)
		return status, &ServiceError{Op: phaseOperation(phase), Service: s.Name, Err: err}
	}
	log.Debugw("script finished", "code", status.Code, "elapsed", elapsed)
	return status, nil
}

func (s *ServiceInformation) scriptEnv() []string {
	return []string{
		env.ServiceNameEnv + "=" + s.Name,
		env.ServiceDirEnv + "=" + s.Dir,
		env.DataDirEnv + "=" + s.DataDir,
	}
}

func (s *ServiceInformation) ensureDataDir() error {
	if s.DataDir == "" {
		return nil
	}
	return os.MkdirAll(s.DataDir, 0o755)
}

func phaseOperation(phase ScriptPhase) Operation {
	switch phase {
	case PhaseHealthCheck:
		return OpStatus
	case PhasePreStart, PhaseStart:
		return OpStart
	default:
		return OpStop
	}
}
