package render

import "strings"

// CompositeTypeField is one field declaration in a type block. Composite
// types carry no relation, id, unique or updatedAt semantics, so those slots
// do not exist here; the remaining slots behave exactly like their model
// field counterparts.
type CompositeTypeField struct {
	name          Constant
	fieldType     FieldType
	documentation Documentation
	commentedOut  bool

	defaultValue *DefaultValue
	mapped       *FieldAttribute
	nativeType   *FieldAttribute
	ignore       *FieldAttribute
}

// NewCompositeTypeField creates a required field declaration `name typeName`.
func NewCompositeTypeField(name, typeName string) *CompositeTypeField {
	return &CompositeTypeField{
		name:      NewConstant(name),
		fieldType: NewFieldType(typeName),
	}
}

// Required marks the field type as required.
func (f *CompositeTypeField) Required() {
	f.fieldType.Required()
}

// Optional marks the field type as optional.
func (f *CompositeTypeField) Optional() {
	f.fieldType.Optional()
}

// Array marks the field type as a list.
func (f *CompositeTypeField) Array() {
	f.fieldType.Array()
}

// Unsupported renders the type as Unsupported("...").
func (f *CompositeTypeField) Unsupported() {
	f.fieldType.Unsupported()
}

// Documentation appends a `/// ...` line above the declaration.
func (f *CompositeTypeField) Documentation(text string) {
	f.documentation.Push(text)
}

// Map sets the @map("...") rename attribute.
func (f *CompositeTypeField) Map(value string) {
	fn := NewFunction("map")
	fn.PushParam(NewText(value))
	f.mapped = NewFieldAttribute(fn)
}

// Default sets the @default(...) attribute.
func (f *CompositeTypeField) Default(value DefaultValue) {
	f.defaultValue = &value
}

// NativeType sets the @prefix.Type(params) attribute.
func (f *CompositeTypeField) NativeType(prefix, typeName string, params []string) {
	fn := NewFunction(typeName)
	for _, param := range params {
		fn.PushParam(NewConstant(param))
	}
	attr := NewFieldAttribute(fn)
	attr.Prefix(prefix)
	f.nativeType = attr
}

// Ignore marks the field with the @ignore tag.
func (f *CompositeTypeField) Ignore() {
	f.ignore = NewFieldAttribute(NewFunction("ignore"))
}

// CommentedOut prefixes the declaration line with `// `.
func (f *CompositeTypeField) CommentedOut() {
	f.commentedOut = true
}

// Attribute order is fixed: default, map, native type, ignore.
func (f *CompositeTypeField) String() string {
	var sb strings.Builder
	f.documentation.write(&sb)
	if f.commentedOut {
		sb.WriteString("// ")
	}
	sb.WriteString(f.name.String())
	sb.WriteByte(' ')
	sb.WriteString(f.fieldType.String())
	if f.defaultValue != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.defaultValue.String())
	}
	if f.mapped != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.mapped.String())
	}
	if f.nativeType != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.nativeType.String())
	}
	if f.ignore != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.ignore.String())
	}
	return sb.String()
}

// CompositeType is a `type` block: documentation, a name and an ordered
// field list. Fields render in strict insertion order and are never
// reordered.
type CompositeType struct {
	name          Constant
	documentation Documentation
	fields        []*CompositeTypeField
}

// NewCompositeType creates an empty type block. The block is not valid SDL
// until at least one field is pushed.
func NewCompositeType(name string) *CompositeType {
	return &CompositeType{name: NewConstant(name)}
}

// Documentation appends a `/// ...` line above the block.
func (t *CompositeType) Documentation(text string) {
	t.documentation.Push(text)
}

// PushField appends a field to the block.
func (t *CompositeType) PushField(field *CompositeTypeField) {
	t.fields = append(t.fields, field)
}

func (t *CompositeType) String() string {
	var sb strings.Builder
	t.documentation.write(&sb)
	sb.WriteString("type ")
	sb.WriteString(t.name.String())
	sb.WriteString(" {\n")
	for _, field := range t.fields {
		sb.WriteString(field.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	return sb.String()
}
