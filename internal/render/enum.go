package render

import "strings"

// EnumVariant is one value inside an enum block, optionally renamed with
// @map and optionally commented out.
type EnumVariant struct {
	name         Constant
	mapped       *FieldAttribute
	commentedOut bool
}

// Map sets the @map("...") rename attribute on the variant.
func (v *EnumVariant) Map(value string) {
	fn := NewFunction("map")
	fn.PushParam(NewText(value))
	v.mapped = NewFieldAttribute(fn)
}

// CommentedOut prefixes the variant line with `// `.
func (v *EnumVariant) CommentedOut() {
	v.commentedOut = true
}

func (v *EnumVariant) String() string {
	var sb strings.Builder
	if v.commentedOut {
		sb.WriteString("// ")
	}
	sb.WriteString(v.name.String())
	if v.mapped != nil {
		sb.WriteByte(' ')
		sb.WriteString(v.mapped.String())
	}
	return sb.String()
}

// Enum is an `enum` block: documentation, a name, ordered variants and
// block attributes.
type Enum struct {
	name          Constant
	documentation Documentation
	variants      []*EnumVariant
	attributes    []*BlockAttribute
}

// NewEnum creates an empty enum block.
func NewEnum(name string) *Enum {
	return &Enum{name: NewConstant(name)}
}

// Documentation appends a `/// ...` line above the block.
func (e *Enum) Documentation(text string) {
	e.documentation.Push(text)
}

// Variant appends a value and returns it for further decoration.
func (e *Enum) Variant(name string) *EnumVariant {
	variant := &EnumVariant{name: NewConstant(name)}
	e.variants = append(e.variants, variant)
	return variant
}

// Map adds an @@map("...") attribute carrying the database enum name.
func (e *Enum) Map(name string) {
	fn := NewFunction("map")
	fn.PushParam(NewText(name))
	e.attributes = append(e.attributes, NewBlockAttribute(fn))
}

func (e *Enum) String() string {
	var sb strings.Builder
	e.documentation.write(&sb)
	sb.WriteString("enum ")
	sb.WriteString(e.name.String())
	sb.WriteString(" {\n")
	for _, variant := range e.variants {
		sb.WriteString(variant.String())
		sb.WriteByte('\n')
	}
	for _, attribute := range e.attributes {
		sb.WriteString(attribute.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	return sb.String()
}
