package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"smc/internal/models"
	"smc/internal/proc"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshStatusDisabledRunsNothing(t *testing.T) {
	for _, enable := range []*bool{nil, boolPtr(false)} {
		stub := newStub()
		m := testManifest("svc", false)
		m.Enable = enable
		svc := NewServiceInformation(m, "/srv/svc", "", stub)

		status, err := svc.RefreshStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.StatusDisabled, status)
		assert.Equal(t, models.StatusDisabled, svc.Status())
		assert.Equal(t, 0, stub.count())
	}
}

func TestRefreshStatusFollowsHealthCheck(t *testing.T) {
	stub := newStub()
	svc := NewServiceInformation(testManifest("svc", true), "/srv/svc", "", stub)
	assert.Equal(t, models.StatusUnknown, svc.Status())

	status, err := svc.RefreshStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, status)

	stub.codes["svc-health_check"] = 3
	status, err = svc.RefreshStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusStopped, status)

	status, err = svc.RefreshStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusStopped, status)

	assert.Equal(t, 3, stub.count())
}

func TestRefreshStatusErrorKeepsStatus(t *testing.T) {
	stub := newStub()
	svc := NewServiceInformation(testManifest("svc", true), "/srv/svc", "", stub)

	stub.spawnErr["svc-health_check"] = errors.New("no shell")
	status, err := svc.RefreshStatus(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, proc.ErrSpawn))
	assert.Equal(t, models.StatusUnknown, status)

	delete(stub.spawnErr, "svc-health_check")
	_, err = svc.RefreshStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.StatusRunning, svc.Status())

	stub.waitErr["svc-health_check"] = context.DeadlineExceeded
	status, err = svc.RefreshStatus(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, proc.ErrWait))
	assert.Equal(t, models.StatusRunning, status)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, OpStatus, se.Op)
	assert.Equal(t, "svc", se.Service)
}

func TestStartOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		phases  []ScriptPhase
		codes   map[string]int
		want    models.StartResult
		scripts []string
	}{
		{
			name:    "success without pre_start",
			want:    models.StartSuccess(),
			scripts: []string{"svc-start"},
		},
		{
			name:    "success with pre_start",
			phases:  []ScriptPhase{PhasePreStart},
			want:    models.StartSuccess(),
			scripts: []string{"svc-pre_start", "svc-start"},
		},
		{
			name:    "pre_start failure skips start",
			phases:  []ScriptPhase{PhasePreStart},
			codes:   map[string]int{"svc-pre_start": 2},
			want:    models.PreStartFailed(2),
			scripts: []string{"svc-pre_start"},
		},
		{
			name:    "start failure",
			codes:   map[string]int{"svc-start": 5},
			want:    models.StartFailed(5),
			scripts: []string{"svc-start"},
		},
		{
			name:    "start failure after pre_start",
			phases:  []ScriptPhase{PhasePreStart},
			codes:   map[string]int{"svc-start": 1},
			want:    models.StartFailed(1),
			scripts: []string{"svc-pre_start", "svc-start"},
		},
		{
			name:    "signal sentinel",
			codes:   map[string]int{"svc-start": proc.UnknownExitCode},
			want:    models.StartFailed(proc.UnknownExitCode),
			scripts: []string{"svc-start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			for k, v := range tt.codes {
				stub.codes[k] = v
			}
			svc := NewServiceInformation(testManifest("svc", true, tt.phases...), "/srv/svc", "", stub)

			res, err := svc.Start(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
			assert.Equal(t, tt.scripts, stub.scripts())
			assert.Equal(t, models.StatusUnknown, svc.Status())
		})
	}
}

func TestStartEngineErrorStopsSequence(t *testing.T) {
	stub := newStub()
	stub.spawnErr["svc-pre_start"] = errors.New("fork failed")
	svc := NewServiceInformation(testManifest("svc", true, PhasePreStart), "/srv/svc", "", stub)

	_, err := svc.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, proc.ErrSpawn))
	assert.Equal(t, []string{"svc-pre_start"}, stub.scripts())
}

func TestStopOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		phases  []ScriptPhase
		codes   map[string]int
		want    models.StopResult
		scripts []string
	}{
		{
			name:    "nothing to run",
			want:    models.StopSuccess(),
			scripts: []string{},
		},
		{
			name:    "stop only",
			phases:  []ScriptPhase{PhaseStop},
			want:    models.StopSuccess(),
			scripts: []string{"svc-stop"},
		},
		{
			name:    "post_stop only",
			phases:  []ScriptPhase{PhasePostStop},
			want:    models.StopSuccess(),
			scripts: []string{"svc-post_stop"},
		},
		{
			name:    "both succeed",
			phases:  []ScriptPhase{PhaseStop, PhasePostStop},
			want:    models.StopSuccess(),
			scripts: []string{"svc-stop", "svc-post_stop"},
		},
		{
			name:    "stop failure skips post_stop",
			phases:  []ScriptPhase{PhaseStop, PhasePostStop},
			codes:   map[string]int{"svc-stop": 4},
			want:    models.StopFailed(4),
			scripts: []string{"svc-stop"},
		},
		{
			name:    "post_stop failure",
			phases:  []ScriptPhase{PhaseStop, PhasePostStop},
			codes:   map[string]int{"svc-post_stop": 6},
			want:    models.PostStopFailed(6),
			scripts: []string{"svc-stop", "svc-post_stop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			for k, v := range tt.codes {
				stub.codes[k] = v
			}
			svc := NewServiceInformation(testManifest("svc", true, tt.phases...), "/srv/svc", "", stub)

			res, err := svc.Stop(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
			assert.Equal(t, tt.scripts, stub.scripts())
		})
	}
}

func TestScriptsRunInServiceDirWithEnv(t *testing.T) {
	stub := newStub()
	dataDir := filepath.Join(t.TempDir(), "data", "svc")
	svc := NewServiceInformation(testManifest("svc", true), "/srv/svc", dataDir, stub)

	_, err := svc.Start(context.Background())
	require.NoError(t, err)

	require.Len(t, stub.calls, 1)
	c := stub.calls[0]
	assert.Equal(t, "/srv/svc", c.Dir)
	assert.Equal(t, "svc/start", c.Title)
	assert.Contains(t, c.Env, "SMC_DATA_DIR="+dataDir)
	assert.Contains(t, c.Env, "SMC_SERVICE_NAME=svc")
	assert.Contains(t, c.Env, "SMC_SERVICE_DIR=/srv/svc")

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestObserverSeesScriptsAndStatus(t *testing.T) {
	stub := newStub()
	stub.codes["svc-start"] = 1
	metrics := NewMetrics()
	svc := NewServiceInformation(testManifest("svc", true), "/srv/svc", "", stub, WithObserver(metrics))

	_, err := svc.RefreshStatus(context.Background())
	require.NoError(t, err)
	_, err = svc.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.scriptRuns.WithLabelValues("health_check", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.scriptRuns.WithLabelValues("start", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.serviceStatus.WithLabelValues("svc", "running")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.serviceStatus.WithLabelValues("svc", "stopped")))
}
