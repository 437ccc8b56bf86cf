// Package dml holds the legacy, enumerated schema model produced by database
// introspection. It is the input side of the rendering pipeline: immutable
// once built, consumed by the adapters in internal/render, and carrying no
// behavior beyond field access.
package dml

// FieldArity is the required/optional/list modifier on a field's type.
type FieldArity int

const (
	Required FieldArity = iota
	Optional
	List
)

// Datasource describes the active datasource. Name doubles as the namespace
// prefix of native type attributes (`@db.VarChar(255)`).
type Datasource struct {
	Name     string
	Provider string
}

// NativeType is a database-specific type annotation: a type name plus
// ordered string arguments, e.g. VarChar with ["255"]. The namespace comes
// from the datasource, not from here.
type NativeType struct {
	Name string
	Args []string
}

// DefaultKind discriminates the legacy default-value expression forms.
type DefaultKind int

const (
	// DefaultText is a quoted string literal.
	DefaultText DefaultKind = iota
	// DefaultConstant is an unquoted literal: number, boolean or enum
	// variant.
	DefaultConstant
	// DefaultFunction is a generated value such as now(), autoincrement()
	// or dbgenerated("...").
	DefaultFunction
)

// DefaultValue is a legacy default-value expression. Value is the literal
// text or the function name; Args are function arguments, rendered as
// string literals. ConstraintName carries a named default constraint.
type DefaultValue struct {
	Kind           DefaultKind
	Value          string
	Args           []string
	ConstraintName string
}

// Field is the legacy tagged union over the three field kinds. The union is
// closed: the marker method is unexported, so no kind can be added outside
// this package, and the adapters type-switch over exactly the three concrete
// types and panic on anything else. A new kind therefore forces an update at
// construction time instead of being dropped silently.
type Field interface {
	// FieldName returns the field's schema-facing name.
	FieldName() string

	isField()
}

// ScalarField is a column-backed field: a scalar, enum, composite or
// unsupported type.
type ScalarField struct {
	Name           string
	Type           string
	Arity          FieldArity
	IsEnum         bool
	IsUnsupported  bool
	NativeType     *NativeType
	Default        *DefaultValue
	Documentation  string
	DatabaseName   string
	IsUpdatedAt    bool
	IsIgnored      bool
	IsCommentedOut bool
}

func (f *ScalarField) FieldName() string { return f.Name }
func (f *ScalarField) isField()          {}

// RelationField is a foreign-key-backed field pointing at another model.
type RelationField struct {
	Name            string
	ReferencedModel string
	Arity           FieldArity
	Documentation   string
	IsIgnored       bool

	RelationName   string
	Fields         []string
	References     []string
	OnDelete       string
	OnUpdate       string
	ForeignKeyName string
}

func (f *RelationField) FieldName() string { return f.Name }
func (f *RelationField) isField()          {}

// CompositeField is a field typed by a composite type.
type CompositeField struct {
	Name           string
	CompositeType  string
	Arity          FieldArity
	Documentation  string
	DatabaseName   string
	Default        *DefaultValue
	IsIgnored      bool
	IsCommentedOut bool
}

func (f *CompositeField) FieldName() string { return f.Name }
func (f *CompositeField) isField()          {}

// PrimaryKeyDefinition describes a model's primary key.
type PrimaryKeyDefinition struct {
	Fields         []string
	ConstraintName string
	Clustered      *bool
}

// IndexDefinition describes a secondary index or unique constraint.
// SortOrder, Length and Clustered only apply to single-field definitions.
type IndexDefinition struct {
	Fields    []string
	IsUnique  bool
	Name      string
	SortOrder string
	Length    *int
	Clustered *bool
}

// Model is one introspected table.
type Model struct {
	Name          string
	DatabaseName  string
	Schema        string
	Documentation string
	IsIgnored     bool
	Fields        []Field
	PrimaryKey    *PrimaryKeyDefinition
	Indexes       []IndexDefinition
}

// EnumValue is one variant of an introspected enum type.
type EnumValue struct {
	Name         string
	DatabaseName string
}

// Enum is one introspected enum type.
type Enum struct {
	Name          string
	DatabaseName  string
	Documentation string
	Values        []EnumValue
}

// CompositeType is a nested, non-relational structured type usable as a
// field's type. Its fields are scalar or composite, never relations.
type CompositeType struct {
	Name          string
	Documentation string
	Fields        []Field
}

// Datamodel is the complete legacy model of one introspected database.
type Datamodel struct {
	Models         []Model
	Enums          []Enum
	CompositeTypes []CompositeType
}
