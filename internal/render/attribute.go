package render

import (
	"fmt"
	"strings"
)

// FieldAttribute is a single field decoration such as @unique, @updatedAt or
// @db.VarChar(255). An attribute without arguments renders bare, without
// parentheses.
type FieldAttribute struct {
	prefix   string
	function *Function
}

// NewFieldAttribute wraps a call form into a field attribute.
func NewFieldAttribute(function *Function) *FieldAttribute {
	return &FieldAttribute{function: function}
}

// Prefix sets the attribute namespace, rendered as @prefix.name(...).
// Used for native type attributes where the prefix is the datasource name.
func (a *FieldAttribute) Prefix(prefix string) {
	a.prefix = prefix
}

// PushParam appends a positional argument.
func (a *FieldAttribute) PushParam(value fmt.Stringer) {
	a.function.PushParam(value)
}

// PushNamedParam appends a `name: value` argument.
func (a *FieldAttribute) PushNamedParam(name string, value fmt.Stringer) {
	a.function.PushNamedParam(name, value)
}

func (a *FieldAttribute) render(sigil string) string {
	var sb strings.Builder
	sb.WriteString(sigil)
	if a.prefix != "" {
		sb.WriteString(a.prefix)
		sb.WriteByte('.')
	}
	sb.WriteString(a.function.name)
	if len(a.function.params) > 0 {
		sb.WriteByte('(')
		sb.WriteString(a.function.renderParams())
		sb.WriteByte(')')
	}
	return sb.String()
}

func (a *FieldAttribute) String() string {
	return a.render("@")
}

// BlockAttribute is a block-level decoration such as @@map("users") or
// @@id([a, b]). It renders like a field attribute with a doubled sigil.
type BlockAttribute struct {
	FieldAttribute
}

// NewBlockAttribute wraps a call form into a block attribute.
func NewBlockAttribute(function *Function) *BlockAttribute {
	return &BlockAttribute{FieldAttribute{function: function}}
}

func (a *BlockAttribute) String() string {
	return a.render("@@")
}
