package models

// StatusReport is one row of `smc status`.
type StatusReport struct {
	Name   string        `json:"service_name"`
	Status ServiceStatus `json:"status"`
	Detail string        `json:"detail"`
}

/**
 * OperationResult is one row of `smc start` and `smc stop`
 * @property {string} Name - Service name
 * @property {OutcomeKind} Outcome - Transition result, skipped or error
 * @property {*int} ExitCode - Exit code of the failing script, nil otherwise
 * @property {ServiceStatus} Status - Status observed before the transition
 * @property {string} Detail - Why a service was skipped or failed
 */
type OperationResult struct {
	Name     string        `json:"service_name"`
	Outcome  OutcomeKind   `json:"result"`
	ExitCode *int          `json:"exit_code"`
	Status   ServiceStatus `json:"status"`
	Detail   string        `json:"detail"`
	Err      error         `json:"-"`
}

// Failed reports whether the row is a script failure or an engine error.
func (r OperationResult) Failed() bool {
	return r.Outcome != OutcomeSuccess && r.Outcome != OutcomeSkipped
}

// ServiceRow is one row of `smc list`.
type ServiceRow struct {
	Name      string   `json:"service_name"`
	Enabled   bool     `json:"enabled"`
	Path      string   `json:"path"`
	Variables []string `json:"variables"`
}

// TemplateRow is one row of `smc template list`.
type TemplateRow struct {
	Name string `json:"template_name"`
	Path string `json:"template_path"`
}

// ScaffoldRow is one row of `smc template create` and `smc create`.
type ScaffoldRow struct {
	Path   string `json:"manifest_path"`
	Ok     bool   `json:"is_ok"`
	Detail string `json:"detail"`
}
