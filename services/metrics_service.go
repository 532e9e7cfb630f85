package services

import (
	"context"
	"time"

	"smc/internal/models"
	"smc/internal/proc"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

/**
 * Metrics 脚本执行与服务状态指标
 * @description
 * - Uses its own registry so repeated construction in tests never collides
 * - Implements Observer, pass it to services through WithObserver
 */
type Metrics struct {
	registry       *prometheus.Registry
	scriptRuns     *prometheus.CounterVec
	scriptDuration *prometheus.HistogramVec
	serviceStatus  *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scriptRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smc_script_runs_total",
				Help: "Lifecycle scripts run, by phase and result",
			},
			[]string{"phase", "result"},
		),
		scriptDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smc_script_duration_seconds",
				Help:    "Duration of lifecycle scripts",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		serviceStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smc_service_status",
				Help: "1 for the current status of each service, 0 for the others",
			},
			[]string{"service", "status"},
		),
	}
	m.registry.MustRegister(m.scriptRuns, m.scriptDuration, m.serviceStatus)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveScript(service string, phase ScriptPhase, status proc.ExitStatus, elapsed time.Duration, err error) {
	result := "success"
	switch {
	case err != nil:
		result = "error"
	case !status.Success():
		result = "failure"
	}
	m.scriptRuns.WithLabelValues(string(phase), result).Inc()
	m.scriptDuration.WithLabelValues(string(phase)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveStatus(service string, status models.ServiceStatus) {
	for _, st := range models.AllStatuses {
		v := 0.0
		if st == status {
			v = 1
		}
		m.serviceStatus.WithLabelValues(service, string(st)).Set(v)
	}
}

/**
 * Push 推送指标到Pushgateway
 * @param {context.Context} ctx - Cancels the HTTP request
 * @param {string} addr - Pushgateway URL
 * @param {string} job - Job label
 * @returns {error} Push error
 */
func (m *Metrics) Push(ctx context.Context, addr, job string) error {
	return push.New(addr, job).Gatherer(m.registry).PushContext(ctx)
}
