package animals

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("animal not found")
	ErrValidation    = errors.New("validation failed")
	ErrDataIntegrity = errors.New("data integrity error")
	ErrPersistence   = errors.New("persistence error")
)

// ValidationError indica que una referencia (owner o procedure) no existe.
// Se detecta antes de intentar la escritura.
type ValidationError struct {
	Field string // "owner_id" | "procedure_id"
	ID    int64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Field, e.ID)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistenceError envuelve cualquier falla durante insert/commit.
// Cuando se devuelve, la transacción ya fue revertida.
type PersistenceError struct {
	Op                  string
	ForeignKeyViolation bool
	Err                 error
}

func (e *PersistenceError) Error() string {
	if e.ForeignKeyViolation {
		return fmt.Sprintf("%s: foreign key violation: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
