package proc

import "fmt"

// UnknownExitCode is reported when a script ended without an exit code,
// typically because a signal killed it.
const UnknownExitCode = -1

// ExitStatus is how a script ended.
type ExitStatus struct {
	Code     int
	Signaled bool
}

// Success reports exit code 0.
func (s ExitStatus) Success() bool {
	return s.Code == 0 && !s.Signaled
}

func (s ExitStatus) String() string {
	if s.Signaled {
		return "killed by signal"
	}
	return fmt.Sprintf("exit status %d", s.Code)
}
