package render

type fieldArity int

const (
	arityRequired fieldArity = iota
	arityOptional
	arityList
)

// FieldType is a field's type expression: the base type name, an arity
// modifier and the unsupported marker. Arity calls overwrite each other, the
// last call wins. Legacy input never requests two arities for one field, but
// a conflicting sequence must not break rendering.
type FieldType struct {
	name        string
	arity       fieldArity
	unsupported bool
}

// NewFieldType creates a required field type.
func NewFieldType(name string) FieldType {
	return FieldType{name: name}
}

// Required marks the type as required, dropping any arity suffix.
func (t *FieldType) Required() {
	t.arity = arityRequired
}

// Optional marks the type as optional, rendered with a `?` suffix.
func (t *FieldType) Optional() {
	t.arity = arityOptional
}

// Array marks the type as a list, rendered with a `[]` suffix.
func (t *FieldType) Array() {
	t.arity = arityList
}

// Unsupported wraps the base name in the Unsupported("...") literal form,
// overriding plain rendering of the name.
func (t *FieldType) Unsupported() {
	t.unsupported = true
}

func (t FieldType) String() string {
	base := t.name
	if t.unsupported {
		base = "Unsupported(" + NewText(t.name).String() + ")"
	}
	// The arity suffix always follows the wrap, never sits inside it.
	switch t.arity {
	case arityOptional:
		return base + "?"
	case arityList:
		return base + "[]"
	default:
		return base
	}
}
