package proc

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"smc/internal/env"
	"smc/internal/logger"
	"smc/internal/utils"
)

/**
 * Command describes one script invocation
 * @property {string} Title - Display name used in logs, e.g. "redis/start"
 * @property {string} Script - Shell command line, passed to the shell unchanged
 * @property {[]string} Args - Extra words appended to Script, space separated
 * @property {string} Dir - Working directory, empty keeps the current one
 * @property {[]string} Env - KEY=VALUE pairs added to the inherited environment
 */
type Command struct {
	Title  string
	Script string
	Args   []string
	Dir    string
	Env    []string
}

// CommandLine is the exact string handed to `<shell> -c`.
func (c Command) CommandLine() string {
	if len(c.Args) == 0 {
		return c.Script
	}
	return c.Script + " " + strings.Join(c.Args, " ")
}

// Process is a running script.
type Process interface {
	Pid() int
	// Stdout returns the script's standard output. Read it to EOF before
	// calling Wait; when nobody claims it, Wait discards the output.
	Stdout() io.Reader
	// Wait blocks until the script exits. It releases every resource held by
	// the process and may be called more than once.
	Wait() (ExitStatus, error)
}

// Executor starts scripts.
type Executor interface {
	Spawn(ctx context.Context, c Command) (Process, error)
}

// ShellExecutor runs every script as `<shell> -c <command line>`.
type ShellExecutor struct {
	Shell   string
	Timeout time.Duration
	Stderr  io.Writer
}

type ExecutorOption func(*ShellExecutor)

func WithShell(shell string) ExecutorOption {
	return func(e *ShellExecutor) {
		if shell != "" {
			e.Shell = shell
		}
	}
}

// WithTimeout bounds every script; 0 means no deadline.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *ShellExecutor) { e.Timeout = d }
}

// WithStderr redirects script stderr, nil discards it.
func WithStderr(w io.Writer) ExecutorOption {
	return func(e *ShellExecutor) { e.Stderr = w }
}

func NewShellExecutor(opts ...ExecutorOption) *ShellExecutor {
	e := &ShellExecutor{
		Shell:  env.DefaultShell,
		Stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

/**
 * Spawn starts a script
 * @param {context.Context} ctx - Cancelling it kills the whole process group
 * @param {Command} c - Script to run
 * @returns {Process} Handle to wait on
 * @returns {error} *SpawnError when the shell could not be started
 * @description
 * - The command line is handed to the shell as one argument, never split here
 * - Stdin is empty, stdout is piped, stderr goes to the executor's writer
 * - The script runs in its own process group
 */
func (e *ShellExecutor) Spawn(ctx context.Context, c Command) (Process, error) {
	line := c.CommandLine()
	logger.Debugf("Executing command: %s -c %q (dir: %s)", e.Shell, line, c.Dir)

	var cancel context.CancelFunc
	if e.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	cmd := exec.CommandContext(ctx, e.Shell, "-c", line)
	cmd.Dir = c.Dir
	cmd.Stderr = e.Stderr
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	utils.SetNewPG(cmd)
	cmd.Cancel = func() error {
		return utils.KillProcessGroup(cmd.Process)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, &SpawnError{Command: line, Dir: c.Dir, Err: err}
	}
	if err := cmd.Start(); err != nil {
		cancel()
		logger.Errorf("Failed to start process '%s', error: %v", c.Title, err)
		return nil, &SpawnError{Command: line, Dir: c.Dir, Err: err}
	}

	pi := &ProcessInstance{
		Title:     c.Title,
		Command:   line,
		WorkDir:   c.Dir,
		StartTime: time.Now(),
		cmd:       cmd,
		stdout:    stdout,
		ctx:       ctx,
		cancel:    cancel,
	}
	logger.Debugf("Process '%s' started (PID: %d)", pi.Title, pi.Pid())
	return pi, nil
}

/**
 * ProcessInstance is a script started by ShellExecutor
 * @property {string} Title - Display name
 * @property {string} Command - Full command line
 * @property {string} WorkDir - Working directory
 * @property {time.Time} StartTime - When the script was started
 * @property {time.Time} LastExitTime - When Wait observed the exit
 * @property {string} LastExitReason - Exit status or wait error text
 */
type ProcessInstance struct {
	Title          string
	Command        string
	WorkDir        string
	StartTime      time.Time
	LastExitTime   time.Time
	LastExitReason string

	cmd     *exec.Cmd
	stdout  io.ReadCloser
	ctx     context.Context
	cancel  context.CancelFunc
	claimed bool
	once    sync.Once
	status  ExitStatus
	err     error
	mutex   sync.Mutex
}

func (pi *ProcessInstance) Pid() int {
	if pi.cmd == nil || pi.cmd.Process == nil {
		return 0
	}
	return pi.cmd.Process.Pid
}

func (pi *ProcessInstance) Stdout() io.Reader {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	pi.claimed = true
	return pi.stdout
}

func (pi *ProcessInstance) Wait() (ExitStatus, error) {
	pi.once.Do(pi.wait)
	return pi.status, pi.err
}

func (pi *ProcessInstance) wait() {
	defer pi.cancel()

	pi.mutex.Lock()
	claimed := pi.claimed
	pi.mutex.Unlock()
	if !claimed {
		// keeps a chatty script from blocking on a full pipe
		go io.Copy(io.Discard, pi.stdout) //nolint:errcheck
	}

	err := pi.cmd.Wait()
	pi.LastExitTime = time.Now()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		pi.status = ExitStatus{Code: 0}
	case pi.ctx.Err() != nil:
		pi.status = ExitStatus{Code: UnknownExitCode, Signaled: true}
		pi.err = &WaitError{Command: pi.Command, Pid: pi.Pid(), Err: pi.ctx.Err()}
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		pi.status = ExitStatus{Code: code, Signaled: code == UnknownExitCode}
	default:
		pi.status = ExitStatus{Code: UnknownExitCode}
		pi.err = &WaitError{Command: pi.Command, Pid: pi.Pid(), Err: err}
	}

	if pi.err != nil {
		pi.LastExitReason = pi.err.Error()
		logger.Warnf("Process '%s' (PID: %d) wait failed: %v", pi.Title, pi.Pid(), pi.err)
		return
	}
	pi.LastExitReason = pi.status.String()
	logger.Debugf("Process '%s' (PID: %d) exited: %s", pi.Title, pi.Pid(), pi.LastExitReason)
}

// Run spawns a script and waits for it.
func Run(ctx context.Context, e Executor, c Command) (ExitStatus, error) {
	p, err := e.Spawn(ctx, c)
	if err != nil {
		return ExitStatus{Code: UnknownExitCode}, err
	}
	return p.Wait()
}
