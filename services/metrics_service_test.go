package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smc/internal/models"
	"smc/internal/proc"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserveScript(t *testing.T) {
	m := NewMetrics()
	m.ObserveScript("a", PhaseStart, proc.ExitStatus{Code: 0}, time.Second, nil)
	m.ObserveScript("a", PhaseStart, proc.ExitStatus{Code: 2}, time.Second, nil)
	m.ObserveScript("a", PhaseStop, proc.ExitStatus{Code: proc.UnknownExitCode}, time.Second, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.scriptRuns.WithLabelValues("start", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scriptRuns.WithLabelValues("start", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scriptRuns.WithLabelValues("stop", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.scriptDuration))
}

func TestMetricsObserveStatus(t *testing.T) {
	m := NewMetrics()
	m.ObserveStatus("a", models.StatusRunning)
	m.ObserveStatus("a", models.StatusStopped)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.serviceStatus.WithLabelValues("a", "running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.serviceStatus.WithLabelValues("a", "stopped")))
	assert.Equal(t, len(models.AllStatuses), testutil.CollectAndCount(m.serviceStatus))
}

func TestMetricsPush(t *testing.T) {
	var (
		method string
		path   string
		body   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMetrics()
	m.ObserveStatus("redis", models.StatusRunning)
	require.NoError(t, m.Push(context.Background(), srv.URL, "smc"))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/smc", path)
	assert.NotEmpty(t, body)
}
