package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"smc/internal/config"
	"smc/internal/logger"
	"smc/internal/proc"
	"smc/internal/utils"
	"smc/services"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/afero"
)

/**
 * App 命令共享的运行环境
 * @property {*config.AppConfig} Config - Loaded configuration
 * @property {*services.WorkDirectory} Work - Working directory on disk
 * @property {*proc.ShellExecutor} Executor - Runs every script
 * @property {*services.Metrics} Metrics - Filled by lifecycle commands, pushed when configured
 */
type App struct {
	Config   *config.AppConfig
	Work     *services.WorkDirectory
	Executor *proc.ShellExecutor
	Metrics  *services.Metrics
}

var app *App

func newApp(cfg *config.AppConfig) *App {
	return &App{
		Config: cfg,
		Work:   services.NewWorkDirectory(afero.NewOsFs(), cfg.WorkingDir),
		Executor: proc.NewShellExecutor(
			proc.WithShell(cfg.Exec.Shell),
			proc.WithTimeout(cfg.Exec.Timeout),
		),
		Metrics: services.NewMetrics(),
	}
}

// GetApp returns the environment prepared by the root command.
func GetApp() *App {
	return app
}

/**
 * Discover services and keep only the requested ones
 * @param {[]string} names - Service names, empty keeps every service
 * @returns {[]*services.ServiceInformation} Selected services
 * @returns {error} ErrServiceNotFound when none of the names is known
 * @description
 * - Invalid manifests are logged and skipped
 * - Unknown names are logged and dropped, the known ones are still returned
 */
func (a *App) Discover(names []string) ([]*services.ServiceInformation, error) {
	all, err := a.Work.Services(a.Executor, services.WithObserver(a.Metrics))
	if err != nil {
		var merr *services.MultiError
		if !errors.As(err, &merr) {
			return nil, err
		}
		for _, e := range merr.Errors {
			logger.Warnf("Skipping manifest: %v", e)
		}
	}
	if len(names) == 0 {
		return all, nil
	}
	selected, err := services.SelectServices(all, names)
	if err != nil && len(selected) == 0 {
		return nil, err
	}
	if err != nil {
		logger.Warnf("Ignoring unknown services: %v", err)
	}
	return selected, nil
}

// Manager wraps services in a batch manager honouring exec.jobs.
func (a *App) Manager(svcs []*services.ServiceInformation) *services.ServiceManager {
	return services.NewServiceManager(svcs, services.WithJobs(a.Config.Exec.Jobs))
}

// PushMetrics pushes to the configured pushgateway, if any.
func (a *App) PushMetrics(ctx context.Context) {
	addr := a.Config.Metrics.Pushgateway
	if addr == "" {
		return
	}
	if err := a.Metrics.Push(ctx, addr, a.Config.Metrics.Job); err != nil {
		logger.Warnf("Push metrics to %s failed: %v", addr, err)
	}
}

// Quiet reports whether -q was given.
func Quiet() bool {
	return quiet
}

/**
 * Print rows as a table or JSON according to the global flags
 * @param {[]T} rows - Structs with json tags
 * @param {string} empty - Message printed instead of an empty table
 * @returns {error} Encoding error
 */
func PrintRows[T any](rows []T, empty string) error {
	if quiet {
		return nil
	}
	if len(rows) == 0 && !jsonMode {
		fmt.Println(empty)
		return nil
	}
	dataList := make([]*orderedmap.OrderedMap, 0, len(rows))
	for _, row := range rows {
		recordMap, err := utils.StructToOrderedMap(row)
		if err != nil {
			return err
		}
		dataList = append(dataList, recordMap)
	}
	return utils.PrintFormat(os.Stdout, dataList, jsonMode)
}

// JSONMode reports whether -j was given.
func JSONMode() bool {
	return jsonMode
}
