package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/vendorctl/internal/model"
)

// Format is an output format for listing commands.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// ParseFormat resolves an --output value, accepting unique prefixes.
func ParseFormat(s string) (Format, error) {
	f, err := MatchChoice("output", s, Formats)
	if err != nil {
		return "", err
	}
	return Format(f), nil
}

// Write renders v in format f. Table output calls table, which may be nil
// for values without a tabular form; those fall back to YAML.
func Write(w io.Writer, f Format, v any, table func() *Table) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	}
	if table == nil {
		return WriteYAML(w, v)
	}
	table().Render(w)
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	data, err := model.EncodeYAML(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Plural returns "1 product" or "3 products".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	switch {
	case strings.HasSuffix(noun, "y") && !strings.HasSuffix(noun, "ey"):
		noun = strings.TrimSuffix(noun, "y") + "ies"
	case strings.HasSuffix(noun, "s"):
		noun += "es"
	default:
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}
