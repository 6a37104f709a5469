package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoContent is returned when a record was expected but the body was empty.
var ErrNoContent = errors.New("empty response")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
	// Fields holds per-field validation messages, keyed by field name.
	Fields map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// FieldNames returns the names in Fields, sorted.
func (e *APIError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// messageKeys are checked in order for a server-supplied message.
var messageKeys = []string{"detail", "message", "error", "non_field_errors"}

func newAPIError(method, path string, status int, body []byte) *APIError {
	e := &APIError{Status: status, Method: method, Path: path}

	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		for _, key := range messageKeys {
			if v := root.Get(key); v.Exists() {
				e.Message = firstString(v)
				break
			}
		}
		if root.IsObject() {
			root.ForEach(func(k, v gjson.Result) bool {
				if isMessageKey(k.String()) {
					return true
				}
				if msg := firstString(v); msg != "" {
					if e.Fields == nil {
						e.Fields = make(map[string]string)
					}
					e.Fields[k.String()] = msg
				}
				return true
			})
		}
	}

	if e.Message == "" && len(e.Fields) > 0 {
		name := e.FieldNames()[0]
		e.Message = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	if e.Message == "" {
		e.Message = statusMessage(status)
	}
	return e
}

func isMessageKey(k string) bool {
	for _, m := range messageKeys {
		if k == m {
			return true
		}
	}
	return false
}

// firstString flattens a string or a list of strings to its first entry.
func firstString(v gjson.Result) string {
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if s := firstString(item); s != "" {
				return s
			}
		}
		return ""
	case v.Type == gjson.String:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "not authorized (try `vendorctl login`)"
	case http.StatusForbidden:
		return "permission denied"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "too many requests"
	}
	if status >= 500 {
		return "server error"
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToLower(text)
	}
	return "request failed"
}

// transportError classifies a failure that produced no response.
func transportError(method, path string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s %s: request cancelled: %w", method, path, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s %s: request timed out: %w", method, path, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%s %s: request timed out: %w", method, path, err)
	default:
		return fmt.Errorf("%s %s: network error: %w", method, path, err)
	}
}
