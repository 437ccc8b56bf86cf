package render

import "strings"

// Model is a `model` block: documentation, a name, an ordered field list and
// an ordered list of block attributes (@@id, @@unique, @@index, @@map,
// @@schema, @@ignore). Fields and block attributes render in strict
// insertion order.
type Model struct {
	name          Constant
	documentation Documentation
	fields        []*ModelField
	attributes    []*BlockAttribute
}

// NewModel creates an empty model block.
func NewModel(name string) *Model {
	return &Model{name: NewConstant(name)}
}

// Documentation appends a `/// ...` line above the block.
func (m *Model) Documentation(text string) {
	m.documentation.Push(text)
}

// PushField appends a field to the block.
func (m *Model) PushField(field *ModelField) {
	m.fields = append(m.fields, field)
}

// PushBlockAttribute appends a raw block attribute.
func (m *Model) PushBlockAttribute(attribute *BlockAttribute) {
	m.attributes = append(m.attributes, attribute)
}

// CompositeID adds an @@id([...]) attribute, optionally with a mapped
// constraint name.
func (m *Model) CompositeID(fields []string, mapName string) {
	fn := NewFunction("id")
	fn.PushParam(ConstantList(fields))
	if mapName != "" {
		fn.PushNamedParam("map", NewText(mapName))
	}
	m.PushBlockAttribute(NewBlockAttribute(fn))
}

// CompositeUnique adds an @@unique([...]) attribute, optionally with a
// mapped constraint name.
func (m *Model) CompositeUnique(fields []string, mapName string) {
	fn := NewFunction("unique")
	fn.PushParam(ConstantList(fields))
	if mapName != "" {
		fn.PushNamedParam("map", NewText(mapName))
	}
	m.PushBlockAttribute(NewBlockAttribute(fn))
}

// Index adds an @@index([...]) attribute, optionally with a mapped index
// name.
func (m *Model) Index(fields []string, mapName string) {
	fn := NewFunction("index")
	fn.PushParam(ConstantList(fields))
	if mapName != "" {
		fn.PushNamedParam("map", NewText(mapName))
	}
	m.PushBlockAttribute(NewBlockAttribute(fn))
}

// Map adds an @@map("...") attribute carrying the database table name.
func (m *Model) Map(name string) {
	fn := NewFunction("map")
	fn.PushParam(NewText(name))
	m.PushBlockAttribute(NewBlockAttribute(fn))
}

// Schema adds an @@schema("...") attribute.
func (m *Model) Schema(name string) {
	fn := NewFunction("schema")
	fn.PushParam(NewText(name))
	m.PushBlockAttribute(NewBlockAttribute(fn))
}

// Ignore adds the bare @@ignore attribute.
func (m *Model) Ignore() {
	m.PushBlockAttribute(NewBlockAttribute(NewFunction("ignore")))
}

func (m *Model) String() string {
	var sb strings.Builder
	m.documentation.write(&sb)
	sb.WriteString("model ")
	sb.WriteString(m.name.String())
	sb.WriteString(" {\n")
	for _, field := range m.fields {
		sb.WriteString(field.String())
		sb.WriteByte('\n')
	}
	for _, attribute := range m.attributes {
		sb.WriteString(attribute.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	return sb.String()
}
