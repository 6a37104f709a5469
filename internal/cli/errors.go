package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksmith/vendorctl/internal/api"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// NotFoundError indicates an argument named something that does not exist.
type NotFoundError struct {
	Type string // "product", "order", "bank", ...
	ID   string // the reference that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// ValidationError indicates a bad flag or argument.
type ValidationError struct {
	Field   string // the flag or argument
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output. Field
// errors from local validation or from the server are listed one per line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var verr *resource.ValidationError
	if errors.As(err, &verr) {
		var b strings.Builder
		b.WriteString("error: invalid input")
		for _, f := range verr.Fields {
			fmt.Fprintf(&b, "\n  %s: %s", f.Field, f.Message)
		}
		return b.String()
	}

	msg := "error: " + err.Error()
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Fields) > 1 {
			for _, name := range apiErr.FieldNames() {
				msg += fmt.Sprintf("\n  %s: %s", name, apiErr.Fields[name])
			}
		}
		if api.IsUnauthorized(err) && !strings.Contains(msg, "login") {
			msg += "\nhint: your session may have expired, run `vendorctl login`"
		}
	}
	return msg
}
