package models

import "fmt"

// OutcomeKind names the result of a start or stop transition.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomePreStartFailed OutcomeKind = "pre_start_failed"
	OutcomeStartFailed    OutcomeKind = "start_failed"
	OutcomeStopFailed     OutcomeKind = "stop_failed"
	OutcomePostStopFailed OutcomeKind = "post_stop_failed"
	// batch only: the service was filtered out before any script ran
	OutcomeSkipped OutcomeKind = "skipped"
	// batch only: an engine error, see Detail
	OutcomeError OutcomeKind = "error"
)

/**
 * StartResult is Success, PreStartFailed(code) or StartFailed(code)
 * @property {OutcomeKind} Kind - Which step decided the result
 * @property {int} Code - Exit code of the failing script, 0 on success
 */
type StartResult struct {
	Kind OutcomeKind
	Code int
}

func StartSuccess() StartResult { return StartResult{Kind: OutcomeSuccess} }

func PreStartFailed(code int) StartResult {
	return StartResult{Kind: OutcomePreStartFailed, Code: code}
}

func StartFailed(code int) StartResult {
	return StartResult{Kind: OutcomeStartFailed, Code: code}
}

func (r StartResult) Success() bool { return r.Kind == OutcomeSuccess }

func (r StartResult) String() string {
	switch r.Kind {
	case OutcomePreStartFailed:
		return fmt.Sprintf("PreStartFailed(%d)", r.Code)
	case OutcomeStartFailed:
		return fmt.Sprintf("StartFailed(%d)", r.Code)
	default:
		return "Success"
	}
}

// StopResult is Success, StopFailed(code) or PostStopFailed(code).
type StopResult struct {
	Kind OutcomeKind
	Code int
}

func StopSuccess() StopResult { return StopResult{Kind: OutcomeSuccess} }

func StopFailed(code int) StopResult {
	return StopResult{Kind: OutcomeStopFailed, Code: code}
}

func PostStopFailed(code int) StopResult {
	return StopResult{Kind: OutcomePostStopFailed, Code: code}
}

func (r StopResult) Success() bool { return r.Kind == OutcomeSuccess }

func (r StopResult) String() string {
	switch r.Kind {
	case OutcomeStopFailed:
		return fmt.Sprintf("StopFailed(%d)", r.Code)
	case OutcomePostStopFailed:
		return fmt.Sprintf("PostStopFailed(%d)", r.Code)
	default:
		return "Success"
	}
}
