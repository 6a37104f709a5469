package resource

import (
	"context"
	"errors"
)

// ErrDeclined is returned when the user declines a confirmation prompt.
var ErrDeclined = errors.New("cancelled")

// Prompt is what a Confirmer shows before a destructive action.
type Prompt struct {
	Title       string
	Body        string
	Affirmative string
	Negative    string
}

// DeletePrompt returns the prompt used for every delete.
func DeletePrompt(kind, label string) Prompt {
	return Prompt{
		Title:       "Delete " + kind + "?",
		Body:        "Are you sure you want to delete " + label + "? This cannot be undone.",
		Affirmative: "Delete",
		Negative:    "Cancel",
	}
}

// Confirmer asks the user to affirm a prompt.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// AlwaysConfirm affirms every prompt (--yes).
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, Prompt) (bool, error) {
	return true, nil
})

// DeclineAll declines every prompt.
var DeclineAll Confirmer = ConfirmFunc(func(context.Context, Prompt) (bool, error) {
	return false, nil
})
