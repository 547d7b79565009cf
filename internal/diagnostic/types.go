package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is the rule ID (e.g. "UG001").
	Code string
	// Message is the rendered message template.
	Message string
	// Args are the values the message template was rendered with.
	Args []any
	// Pos is the source location the diagnostic points at.
	Pos token.Position
	// Union is the name of the union root this relates to.
	Union string
	// Case is the case name this relates to (if any).
	Case string
	// Gating marks diagnostics that prevent code generation.
	Gating bool
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// String returns a formatted diagnostic string in the familiar
// "file:line:col: severity: [code] message" shape.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}

	fmt.Fprintf(&b, "%s: [%s] %s", d.Severity, d.Code, d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}

// Diagnostics is an ordered list of diagnostics. Order is the order in
// which rules were reported, which the validator keeps aligned with
// declaration order.
type Diagnostics struct {
	Items []Diagnostic
}

// Report renders rule with args and appends it.
func (d *Diagnostics) Report(rule Rule, pos token.Position, union, caseName string, args ...any) *Diagnostic {
	d.Items = append(d.Items, Diagnostic{
		Severity: rule.Severity,
		Code:     rule.ID,
		Message:  fmt.Sprintf(rule.Template, args...),
		Args:     args,
		Pos:      pos,
		Union:    union,
		Case:     caseName,
		Gating:   rule.Gating,
	})

	return &d.Items[len(d.Items)-1]
}

// Merge appends all diagnostics of other, keeping their order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Items)
}

// Errors returns the error diagnostics.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(func(x Diagnostic) bool { return x.Severity == SeverityError })
}

// Warnings returns the warning diagnostics.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(func(x Diagnostic) bool { return x.Severity == SeverityWarning })
}

// Infos returns the info diagnostics.
func (d *Diagnostics) Infos() []Diagnostic {
	return d.filter(func(x Diagnostic) bool { return x.Severity == SeverityInfo })
}

// Blocking returns the diagnostics that prevent code generation.
func (d *Diagnostics) Blocking() []Diagnostic {
	return d.filter(func(x Diagnostic) bool { return x.Gating })
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, x := range d.Items {
		if x.Severity == SeverityError {
			return true
		}
	}

	return false
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Codes returns the rule IDs in report order.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Items))
	for _, x := range d.Items {
		codes = append(codes, x.Code)
	}

	return codes
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors() {
		parts = append(parts, e.String())
	}

	return errors.Newf("%d error diagnostic(s): %s", len(parts), strings.Join(parts, "; "))
}

func (d *Diagnostics) filter(keep func(Diagnostic) bool) []Diagnostic {
	var out []Diagnostic

	for _, x := range d.Items {
		if keep(x) {
			out = append(out, x)
		}
	}

	return out
}
