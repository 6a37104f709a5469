package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jacksmith/vendorctl/internal/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// colorEnabled is on when stdout is a terminal, unless overridden.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
}

// SetColorEnabled overrides terminal detection (--no-color).
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w any) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled || s == "" {
		return s
	}
	return code + s + colorReset
}

func Green(s string) string  { return paint(colorGreen, s) }
func Red(s string) string    { return paint(colorRed, s) }
func Yellow(s string) string { return paint(colorYellow, s) }
func Blue(s string) string   { return paint(colorBlue, s) }
func Gray(s string) string   { return paint(colorGray, s) }
func Bold(s string) string   { return paint(colorBold, s) }

// OrderStatus colors an order or order item status.
func OrderStatus(s model.OrderStatus) string {
	switch s {
	case model.OrderStatusPending:
		return Yellow(string(s))
	case model.OrderStatusProcessing, model.OrderStatusShipped:
		return Blue(string(s))
	case model.OrderStatusDelivered:
		return Green(string(s))
	case model.OrderStatusCancelled:
		return Gray(string(s))
	}
	return string(s)
}

// VendorStatus colors a vendor account status.
func VendorStatus(s model.VendorStatus) string {
	switch s {
	case model.VendorStatusApproved:
		return Green(string(s))
	case model.VendorStatusPending:
		return Yellow(string(s))
	case model.VendorStatusSuspended:
		return Red(string(s))
	}
	return string(s)
}

// Stock renders a quantity, red when sold out and yellow when low.
func Stock(p model.Product) string {
	q := fmt.Sprintf("%d", p.Quantity)
	switch {
	case !p.InStock():
		return Red(q + " (out)")
	case p.LowStock():
		return Yellow(q + " (low)")
	}
	return q
}

// YesNo renders a boolean flag column.
func YesNo(b bool) string {
	if b {
		return Green("yes")
	}
	return Gray("no")
}

// DefaultMaxNameWidth is the default maximum visible width for name columns.
const DefaultMaxNameWidth = 40

// Table formats columnar output with automatic column width calculation.
type Table struct {
	header    []string
	rows      [][]string
	colWidths []int
	maxWidths map[int]int
}

// NewTable creates a new empty table, optionally with a header row.
func NewTable(header ...string) *Table {
	t := &Table{}
	if len(header) > 0 {
		t.header = header
		t.track(header)
	}
	return t
}

// SetMaxWidth caps the visible width of a column; longer cells are
// truncated with "...".
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
	if col < len(t.colWidths) && t.colWidths[col] > maxWidth {
		t.colWidths[col] = maxWidth
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	t.track(cols)
	t.rows = append(t.rows, cols)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) track(cols []string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		w := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && w > maxW {
			w = maxW
		}
		if w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
}

// Render writes the table to w with columns separated by two spaces. The
// header, if any, is printed gray.
func (t *Table) Render(w io.Writer) {
	if t.header != nil {
		t.renderRow(w, t.header, true)
	}
	for _, row := range t.rows {
		t.renderRow(w, row, false)
	}
}

func (t *Table) renderRow(w io.Writer, row []string, header bool) {
	parts := make([]string, 0, len(row))
	for i, col := range row {
		if maxW, ok := t.maxWidths[i]; ok {
			col = Truncate(col, maxW)
		}
		pad := 0
		if i < len(row)-1 {
			pad = t.colWidths[i] - visibleWidth(col)
		}
		if header {
			col = Gray(col)
		}
		parts = append(parts, col+strings.Repeat(" ", pad))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// Truncate returns s cut to maxWidth visible characters, ending in "..."
// when there is room for it. ANSI codes are kept and closed with a reset.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	ellipsis := "..."
	limit := maxWidth - len(ellipsis)
	if limit < 0 {
		limit, ellipsis = maxWidth, ""
	}

	var b strings.Builder
	visible := 0
	inEscape, hasANSI := false, false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasANSI = true, true
			b.WriteRune(r)
		case inEscape:
			b.WriteRune(r)
			inEscape = r != 'm'
		case visible < limit:
			b.WriteRune(r)
			visible++
		}
	}
	b.WriteString(ellipsis)
	if hasANSI {
		b.WriteString(colorReset)
	}
	return b.String()
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			inEscape = r != 'm'
		default:
			width++
		}
	}
	return width
}
