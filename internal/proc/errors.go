package proc

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawn is matched when a script process could not be created.
	ErrSpawn = errors.New("proc: spawn failed")
	// ErrWait is matched when the exit status of a script could not be collected.
	ErrWait = errors.New("proc: wait failed")
)

// SpawnError reports a script that never started.
type SpawnError struct {
	Command string
	Dir     string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q in %q: %v", e.Command, e.Dir, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

// WaitError reports a started script whose outcome is unknown,
// including a script killed because its context expired.
type WaitError struct {
	Command string
	Pid     int
	Err     error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait %q (PID: %d): %v", e.Command, e.Pid, e.Err)
}

func (e *WaitError) Unwrap() error { return e.Err }

func (e *WaitError) Is(target error) bool { return target == ErrWait }
