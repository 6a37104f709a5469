package cli

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/jacksmith/vendorctl/internal/resource"
)

// ErrNoTTY is returned when a confirmation is needed but nobody can answer.
var ErrNoTTY = errors.New("confirmation required but stdin is not a terminal (pass --yes to skip)")

// NewConfirmer picks the Confirmer for a command run. yes affirms every
// prompt. Otherwise prompts are shown when interactive, and refused when
// not.
func NewConfirmer(yes, interactive bool) resource.Confirmer {
	switch {
	case yes:
		return resource.AlwaysConfirm
	case !interactive:
		return resource.ConfirmFunc(func(context.Context, resource.Prompt) (bool, error) {
			return false, ErrNoTTY
		})
	default:
		return resource.ConfirmFunc(promptConfirm)
	}
}

// StdinInteractive reports whether prompts can be answered.
func StdinInteractive() bool {
	return IsTerminal(os.Stdin)
}

// promptConfirm shows p as a yes/no form. Aborting (ctrl+c, esc) declines.
func promptConfirm(ctx context.Context, p resource.Prompt) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(p.Title).
		Description(p.Body).
		Affirmative(orDefault(p.Affirmative, "Yes")).
		Negative(orDefault(p.Negative, "No")).
		Value(&ok)

	err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
