package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"smc/internal/manifest"
	"smc/internal/proc"
)

// stubExecutor counts spawns and answers each script with a canned result.
type stubExecutor struct {
	mu       sync.Mutex
	codes    map[string]int
	spawnErr map[string]error
	waitErr  map[string]error
	calls    []proc.Command
}

func newStub() *stubExecutor {
	return &stubExecutor{
		codes:    map[string]int{},
		spawnErr: map[string]error{},
		waitErr:  map[string]error{},
	}
}

func (s *stubExecutor) Spawn(_ context.Context, c proc.Command) (proc.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
	if err := s.spawnErr[c.Script]; err != nil {
		return nil, &proc.SpawnError{Command: c.Script, Dir: c.Dir, Err: err}
	}
	return &stubProcess{code: s.codes[c.Script], waitErr: s.waitErr[c.Script], script: c.Script}, nil
}

func (s *stubExecutor) scripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.Script)
	}
	return out
}

func (s *stubExecutor) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubProcess struct {
	code    int
	waitErr error
	script  string
}

func (p *stubProcess) Pid() int          { return 1 }
func (p *stubProcess) Stdout() io.Reader { return strings.NewReader("") }

func (p *stubProcess) Wait() (proc.ExitStatus, error) {
	if p.waitErr != nil {
		return proc.ExitStatus{Code: proc.UnknownExitCode}, &proc.WaitError{Command: p.script, Pid: 1, Err: p.waitErr}
	}
	return proc.ExitStatus{Code: p.code}, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// testManifest builds a manifest whose scripts are "<name>-<phase>".
func testManifest(name string, enabled bool, phases ...ScriptPhase) *manifest.Manifest {
	m := &manifest.Manifest{
		Name:   name,
		Enable: boolPtr(enabled),
		Scripts: manifest.Scripts{
			HealthCheck: name + "-health_check",
			Start:       name + "-start",
		},
	}
	for _, p := range phases {
		script := strPtr(name + "-" + string(p))
		switch p {
		case PhasePreStart:
			m.Scripts.PreStart = script
		case PhaseStop:
			m.Scripts.Stop = script
		case PhasePostStop:
			m.Scripts.PostStop = script
		}
	}
	return m
}
