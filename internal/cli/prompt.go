package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ReadSecret returns a secret for a command. It reads the first line of
// stdin when fromStdin is set, prompts with a hidden input when
// interactive, and otherwise returns "" so validation reports the
// missing field.
func ReadSecret(ctx context.Context, title string, fromStdin, interactive bool, stdin io.Reader) (string, error) {
	if fromStdin {
		return ReadLine(stdin)
	}
	if !interactive {
		return "", nil
	}
	var secret string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&secret)
	if err := huh.NewForm(huh.NewGroup(input)).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", fmt.Errorf("aborted")
		}
		return "", err
	}
	return secret, nil
}

// ReadLine returns the first line of r without its line ending.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
