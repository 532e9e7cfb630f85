package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrServiceNotFound is returned when a requested service name was not discovered.
	ErrServiceNotFound = errors.New("service not found")
	// ErrTemplateNotFound is returned when a requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrServiceRunning is returned when an operation needs a service that is not running.
	ErrServiceRunning = errors.New("service is running")
	// ErrAlreadyExists is returned when scaffolding would overwrite a directory.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDuplicateService is returned when two manifests declare the same name.
	ErrDuplicateService = errors.New("duplicate service name")
	// ErrInvalidName is returned for a service or template name that is not a single path element.
	ErrInvalidName = errors.New("invalid name")
)

// Operation names what ServiceError was doing.
type Operation string

const (
	OpDiscover       Operation = "discover"
	OpStatus         Operation = "status"
	OpStart          Operation = "start"
	OpStop           Operation = "stop"
	OpCreate         Operation = "create"
	OpDelete         Operation = "delete"
	OpCreateTemplate Operation = "create-template"
	OpDeleteTemplate Operation = "delete-template"
	OpInit           Operation = "init"
)

func (o Operation) String() string { return string(o) }

// ServiceError records the operation and the service or path involved.
type ServiceError struct {
	Op      Operation
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op.String(), e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// MultiError aggregates errors from bulk operations
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	msgs := make([]string, 0, len(m.Errors))
	for _, err := range m.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d errors occurred: %s", len(m.Errors), strings.Join(msgs, "; "))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// Unwrap lets errors.Is and errors.As look at every collected error.
func (m *MultiError) Unwrap() []error {
	return m.Errors
}
