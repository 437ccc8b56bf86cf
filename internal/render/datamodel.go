package render

import "strings"

// Datamodel assembles rendered blocks into one schema document: composite
// types first, then models, then enums, with a blank line between blocks.
type Datamodel struct {
	compositeTypes []*CompositeType
	models         []*Model
	enums          []*Enum
}

// NewDatamodel creates an empty document.
func NewDatamodel() *Datamodel {
	return &Datamodel{}
}

// PushCompositeType appends a type block.
func (d *Datamodel) PushCompositeType(compositeType *CompositeType) {
	d.compositeTypes = append(d.compositeTypes, compositeType)
}

// PushModel appends a model block.
func (d *Datamodel) PushModel(model *Model) {
	d.models = append(d.models, model)
}

// PushEnum appends an enum block.
func (d *Datamodel) PushEnum(enum *Enum) {
	d.enums = append(d.enums, enum)
}

// IsEmpty reports whether no blocks were pushed.
func (d *Datamodel) IsEmpty() bool {
	return len(d.compositeTypes) == 0 && len(d.models) == 0 && len(d.enums) == 0
}

func (d *Datamodel) String() string {
	blocks := make([]string, 0, len(d.compositeTypes)+len(d.models)+len(d.enums))
	for _, compositeType := range d.compositeTypes {
		blocks = append(blocks, compositeType.String())
	}
	for _, model := range d.models {
		blocks = append(blocks, model.String())
	}
	for _, enum := range d.enums {
		blocks = append(blocks, enum.String())
	}
	// Every block already ends with "}\n"; joining on "\n" leaves exactly
	// one blank line between blocks.
	return strings.Join(blocks, "\n")
}
