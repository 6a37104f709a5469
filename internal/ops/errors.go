package ops

import (
	"errors"
	"fmt"
)

// ErrNothingToChange is returned by edits that carry no field.
var ErrNothingToChange = errors.New("nothing to change")

// NotFoundError indicates a record is not on the loaded screen.
type NotFoundError struct {
	Kind string // "product", "category", "order item", ...
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// StatusError indicates a record's status does not allow the operation.
type StatusError struct {
	Operation string
	Kind      string
	ID        int
	Status    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot %s %s %d: already %s", e.Operation, e.Kind, e.ID, e.Status)
}
