package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/vendorctl/internal/resource"
)

func TestNewConfirmer(t *testing.T) {
	prompt := resource.DeletePrompt("vendor", "Gadget Hub")

	ok, err := NewConfirmer(true, false).Confirm(context.Background(), prompt)
	require.NoError(t, err)
	assert.True(t, ok, "--yes affirms without a terminal")

	ok, err = NewConfirmer(false, false).Confirm(context.Background(), prompt)
	assert.ErrorIs(t, err, ErrNoTTY)
	assert.False(t, ok)
}

func TestSpinnerDisabledIsNoop(t *testing.T) {
	s := NewSpinner("Loading", false)
	s.OnChange(true)
	s.OnChange(false)
	s.Stop()
	assert.Nil(t, s.cancel)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := charmlog.NewWithOptions(&buf, charmlog.Options{Level: charmlog.DebugLevel})
	n := LogNotifier{Logger: logger}

	n.Success("vendor 9 deleted")
	n.Failure("delete vendor 9", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "vendor 9 deleted")
	assert.Contains(t, out, "delete vendor 9 failed")
	assert.Contains(t, out, "boom")
}
