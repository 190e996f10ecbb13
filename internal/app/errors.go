package app

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("app: validation failed")

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindRead       ErrorKind = "read"
	KindWrite      ErrorKind = "write"
	KindRemove     ErrorKind = "remove"
	KindDecode     ErrorKind = "decode"
)

// StorageError is returned by every failing StorageService operation.
type StorageError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failed", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError describes caller input that violates a record invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsKind reports whether err carries a StorageError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == kind
}
