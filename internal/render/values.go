// Package render builds canonical SDL text from in-memory schema entities.
//
// Every entity follows the same lifecycle: construct, mutate through
// slot-specific setters, then render once with String. Rendering is pure and
// deterministic; the raw output is syntactically correct but not
// column-aligned, alignment is the job of a downstream formatter.
package render

import (
	"fmt"
	"strings"
)

// Constant is a bare identifier or literal rendered as-is, without quoting.
// Names sourced from a live database were valid identifiers there, so no
// validation happens at this level; quoting is a rendering concern and
// belongs to Text.
type Constant struct {
	value string
}

// NewConstant wraps a raw value.
func NewConstant(value string) Constant {
	return Constant{value: value}
}

func (c Constant) String() string {
	return c.value
}

// Text is a string literal rendered inside double quotes. Embedded double
// quotes and backslashes are escaped.
type Text struct {
	value string
}

// NewText wraps a string literal.
func NewText(value string) Text {
	return Text{value: value}
}

func (t Text) String() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range t.value {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

// Documentation is an append-only sequence of comment lines. A later Push
// appends to the existing documentation instead of replacing it.
type Documentation struct {
	entries []string
}

// Push appends one documentation entry. Entries containing newlines are
// split into individual lines at render time.
func (d *Documentation) Push(text string) {
	d.entries = append(d.entries, text)
}

func (d *Documentation) empty() bool {
	return len(d.entries) == 0
}

// write emits each line as `/// <text>` followed by a newline.
func (d *Documentation) write(sb *strings.Builder) {
	for _, entry := range d.entries {
		for _, line := range strings.Split(entry, "\n") {
			sb.WriteString("/// ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
}

// Function is a call form such as now(), dbgenerated("uuid()") or
// unique(sort: Desc). In value position it always renders its parentheses,
// even with no arguments.
type Function struct {
	name   string
	params []functionParam
}

type functionParam struct {
	name  string // empty for positional parameters
	value fmt.Stringer
}

// NewFunction creates an argument-less call form.
func NewFunction(name string) *Function {
	return &Function{name: name}
}

// PushParam appends a positional argument.
func (f *Function) PushParam(value fmt.Stringer) {
	f.params = append(f.params, functionParam{value: value})
}

// PushNamedParam appends a `name: value` argument.
func (f *Function) PushNamedParam(name string, value fmt.Stringer) {
	f.params = append(f.params, functionParam{name: name, value: value})
}

func (f *Function) renderParams() string {
	parts := make([]string, 0, len(f.params))
	for _, p := range f.params {
		if p.name != "" {
			parts = append(parts, p.name+": "+p.value.String())
		} else {
			parts = append(parts, p.value.String())
		}
	}
	return strings.Join(parts, ", ")
}

func (f *Function) String() string {
	return f.name + "(" + f.renderParams() + ")"
}

// ConstantList renders a bracketed list of bare identifiers, e.g.
// [userId, orgId].
type ConstantList []string

func (l ConstantList) String() string {
	return "[" + strings.Join(l, ", ") + "]"
}
