package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "warn", Output: &buf})
	l.Info("hidden")
	l.Warn("shown", "id", 7)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "id=7")
}

func TestNewUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "chatty", Output: &buf})
	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "debug", JSON: true, Output: &buf})
	l.Debug("request", "method", "GET")
	assert.Contains(t, buf.String(), `"msg":"request"`)
	assert.Contains(t, buf.String(), `"method":"GET"`)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "info", Output: &buf})
	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info("from ctx")
	assert.Contains(t, buf.String(), "from ctx")

	// No logger attached: must not panic.
	FromContext(context.Background()).Error("dropped")
}
