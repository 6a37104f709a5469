package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jacksmith/vendorctl/internal/model"
)

// ErrUnchanged is returned by EditYAML when the file was saved untouched.
var ErrUnchanged = errors.New("no changes made")

// EditInEditor opens content in $VISUAL or $EDITOR and returns what was
// saved. suffix names the temp file type (e.g. ".yaml").
func EditInEditor(ctx context.Context, content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or pass the fields as flags")
	}

	tmp, err := os.CreateTemp("", "vendorctl-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(ctx, editor, path); err != nil {
		return nil, err
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return out, nil
}

// EditYAML round-trips v through the editor as YAML and decodes the result
// into out. Unknown keys are rejected.
func EditYAML(ctx context.Context, v any, out any) error {
	before, err := model.EncodeYAML(v)
	if err != nil {
		return err
	}
	after, err := EditInEditor(ctx, before, ".yaml")
	if err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(before), bytes.TrimSpace(after)) {
		return ErrUnchanged
	}
	if err := model.DecodeYAML(after, out); err != nil {
		return fmt.Errorf("edited record: %w", err)
	}
	return nil
}

// getEditor prefers VISUAL over EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor executes the editor, which may carry arguments ("code --wait").
func runEditor(ctx context.Context, editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
