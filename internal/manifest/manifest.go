package manifest

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest file looked up in every service and template directory.
const FileName = "manifest.toml"

/**
 * Scripts holds the shell command lines of one service
 * @property {string} HealthCheck - Exit 0 means the service is running
 * @property {*string} PreStart - Optional, runs before Start
 * @property {string} Start - Starts the service
 * @property {*string} Stop - Optional, stops the service
 * @property {*string} PostStop - Optional, runs after Stop
 */
type Scripts struct {
	HealthCheck string  `toml:"health_check" json:"health_check"`
	PreStart    *string `toml:"pre_start,omitempty" json:"pre_start,omitempty"`
	Start       string  `toml:"start" json:"start"`
	Stop        *string `toml:"stop,omitempty" json:"stop,omitempty"`
	PostStop    *string `toml:"post_stop,omitempty" json:"post_stop,omitempty"`
}

// Manifest describes one service. Placeholder variables found in the raw
// text are kept in memory only and never written back.
type Manifest struct {
	Name    string  `toml:"name" json:"name"`
	Enable  *bool   `toml:"enable,omitempty" json:"enable,omitempty"`
	Scripts Scripts `toml:"scripts" json:"scripts"`

	vars []string
}

/**
 * Parse decodes manifest text and extracts its placeholder variables
 * @param {string} raw - Manifest text in TOML
 * @returns {*Manifest} Parsed manifest
 * @returns {error} *FormatError, *FieldError or *SyntaxError
 * @description
 * - Unknown keys are ignored
 * - name, scripts.health_check and scripts.start must be non-empty
 * - When only placeholder extraction fails, the structurally valid manifest
 *   is returned together with the *SyntaxError and has no variables
 */
func Parse(raw string) (*Manifest, error) {
	m := &Manifest{}
	if err := toml.Unmarshal([]byte(raw), m); err != nil {
		fe := &FormatError{Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			fe.Line, fe.Column = de.Position()
		}
		return nil, fe
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	vars, err := ExtractVariables(raw)
	if err != nil {
		return m, err
	}
	m.vars = vars
	return m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func (m *Manifest) validate() error {
	switch {
	case m.Name == "":
		return &FieldError{Field: "name"}
	case m.Scripts.HealthCheck == "":
		return &FieldError{Field: "scripts.health_check"}
	case m.Scripts.Start == "":
		return &FieldError{Field: "scripts.start"}
	}
	return nil
}

// Marshal encodes the manifest back to TOML. Variables are not included.
func (m *Manifest) Marshal() ([]byte, error) {
	return toml.Marshal(m)
}

// Variables returns the placeholder names found when the manifest was parsed.
func (m *Manifest) Variables() []string {
	return m.vars
}

// Enabled reports whether lifecycle scripts may run. An absent flag means disabled.
func (m *Manifest) Enabled() bool {
	return m.Enable != nil && *m.Enable
}

// Clone returns a deep copy so callers can edit a template without touching the original.
func (m *Manifest) Clone() *Manifest {
	c := &Manifest{
		Name:    m.Name,
		Enable:  cloneBool(m.Enable),
		Scripts: m.Scripts,
		vars:    append([]string(nil), m.vars...),
	}
	c.Scripts.PreStart = cloneString(m.Scripts.PreStart)
	c.Scripts.Stop = cloneString(m.Scripts.Stop)
	c.Scripts.PostStop = cloneString(m.Scripts.PostStop)
	return c
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
