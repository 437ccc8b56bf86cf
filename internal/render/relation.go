package render

// Relation is the payload of a @relation(...) attribute: an optional name,
// the local field list, the referenced field list, optional referential
// actions and an optional foreign key constraint name.
type Relation struct {
	name       string
	fields     []string
	references []string
	onDelete   string
	onUpdate   string
	mapName    string
	hasMap     bool
}

// NewRelation creates an empty relation descriptor.
func NewRelation() *Relation {
	return &Relation{}
}

// Name sets the relation name, rendered as the leading quoted argument.
func (r *Relation) Name(name string) {
	r.name = name
}

// Fields sets the local field list, rendered as `fields: [...]`.
func (r *Relation) Fields(fields ...string) {
	r.fields = fields
}

// References sets the referenced field list, rendered as `references: [...]`.
func (r *Relation) References(references ...string) {
	r.references = references
}

// OnDelete sets the delete action, e.g. Cascade or SetNull.
func (r *Relation) OnDelete(action string) {
	r.onDelete = action
}

// OnUpdate sets the update action.
func (r *Relation) OnUpdate(action string) {
	r.onUpdate = action
}

// Map sets the foreign key constraint name.
func (r *Relation) Map(name string) {
	r.mapName = name
	r.hasMap = true
}

// Argument order is fixed: name, fields, references, onDelete, onUpdate,
// map. Empty slots are skipped.
func (r *Relation) String() string {
	fn := NewFunction("relation")
	if r.name != "" {
		fn.PushParam(NewText(r.name))
	}
	if len(r.fields) > 0 {
		fn.PushNamedParam("fields", ConstantList(r.fields))
	}
	if len(r.references) > 0 {
		fn.PushNamedParam("references", ConstantList(r.references))
	}
	if r.onDelete != "" {
		fn.PushNamedParam("onDelete", NewConstant(r.onDelete))
	}
	if r.onUpdate != "" {
		fn.PushNamedParam("onUpdate", NewConstant(r.onUpdate))
	}
	if r.hasMap {
		fn.PushNamedParam("map", NewText(r.mapName))
	}
	return NewFieldAttribute(fn).String()
}
