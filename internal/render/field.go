package render

import "strings"

// ModelField is one field declaration in a model block. It aggregates the
// field's type with up to eight independent optional attribute slots.
//
// Setters overwrite their slot; calling one twice keeps the second value.
// Documentation is the one exception and appends. The populated slots render
// in a fixed order no matter when they were set: the target grammar imposes
// no attribute order, so a hardcoded emission sequence keeps the output
// stable across runs and across differing caller call-order.
type ModelField struct {
	name          Constant
	fieldType     FieldType
	documentation Documentation
	commentedOut  bool

	updatedAt    *FieldAttribute
	unique       *FieldAttribute
	id           *FieldAttribute
	defaultValue *DefaultValue
	mapped       *FieldAttribute
	relation     *Relation
	nativeType   *FieldAttribute
	ignore       *FieldAttribute
}

// NewModelField creates a required field declaration `name typeName`.
func NewModelField(name, typeName string) *ModelField {
	return &ModelField{
		name:      NewConstant(name),
		fieldType: NewFieldType(typeName),
	}
}

// Required marks the field type as required.
func (f *ModelField) Required() {
	f.fieldType.Required()
}

// Optional marks the field type as optional.
func (f *ModelField) Optional() {
	f.fieldType.Optional()
}

// Array marks the field type as a list.
func (f *ModelField) Array() {
	f.fieldType.Array()
}

// Unsupported renders the type as Unsupported("...").
func (f *ModelField) Unsupported() {
	f.fieldType.Unsupported()
}

// Documentation appends a `/// ...` line above the declaration.
func (f *ModelField) Documentation(text string) {
	f.documentation.Push(text)
}

// Map sets the @map("...") rename attribute.
func (f *ModelField) Map(value string) {
	fn := NewFunction("map")
	fn.PushParam(NewText(value))
	f.mapped = NewFieldAttribute(fn)
}

// Default sets the @default(...) attribute.
func (f *ModelField) Default(value DefaultValue) {
	f.defaultValue = &value
}

// NativeType sets the @prefix.Type(params) attribute.
func (f *ModelField) NativeType(prefix, typeName string, params []string) {
	fn := NewFunction(typeName)
	for _, param := range params {
		fn.PushParam(NewConstant(param))
	}
	attr := NewFieldAttribute(fn)
	attr.Prefix(prefix)
	f.nativeType = attr
}

// UpdatedAt marks the field with the @updatedAt tag.
func (f *ModelField) UpdatedAt() {
	f.updatedAt = NewFieldAttribute(NewFunction("updatedAt"))
}

// Unique sets the @unique(...) attribute with the given options.
func (f *ModelField) Unique(options IndexFieldOptions) {
	f.unique = options.attribute()
}

// ID sets the @id(...) attribute.
func (f *ModelField) ID(definition IdFieldDefinition) {
	f.id = definition.attribute()
}

// Relation sets the @relation(...) attribute.
func (f *ModelField) Relation(relation *Relation) {
	f.relation = relation
}

// Ignore marks the field with the @ignore tag.
func (f *ModelField) Ignore() {
	f.ignore = NewFieldAttribute(NewFunction("ignore"))
}

// CommentedOut prefixes the declaration line with `// `. All populated parts
// still render; the line stays fully informative, merely inert.
func (f *ModelField) CommentedOut() {
	f.commentedOut = true
}

func (f *ModelField) String() string {
	var sb strings.Builder
	f.documentation.write(&sb)
	if f.commentedOut {
		sb.WriteString("// ")
	}
	sb.WriteString(f.name.String())
	sb.WriteByte(' ')
	sb.WriteString(f.fieldType.String())
	if f.updatedAt != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.updatedAt.String())
	}
	if f.unique != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.unique.String())
	}
	if f.id != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.id.String())
	}
	if f.defaultValue != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.defaultValue.String())
	}
	if f.mapped != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.mapped.String())
	}
	if f.relation != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.relation.String())
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
