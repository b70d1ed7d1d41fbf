package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("version conflict")
)

// SchemaError reports a malformed field or an operation the target field
// does not allow. It is meant for developers, not for respondents.
type SchemaError struct {
	Op      string
	FieldID string
	Msg     string
}

func (e *SchemaError) Error() string {
	if e.FieldID != "" {
		return fmt.Sprintf("schema.%s: %s (field %s)", e.Op, e.Msg, e.FieldID)
	}
	return fmt.Sprintf("schema.%s: %s", e.Op, e.Msg)
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
