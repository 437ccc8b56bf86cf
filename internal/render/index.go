package render

import "strconv"

// IndexFieldOptions are the precomputed options of a single-field unique
// constraint, looked up by field name when adapting a legacy model.
type IndexFieldOptions struct {
	MapName   string
	SortOrder string
	Length    *int
	Clustered *bool
}

// attribute builds the @unique(...) attribute. Option order is fixed:
// map, sort, length, clustered.
func (o IndexFieldOptions) attribute() *FieldAttribute {
	fn := NewFunction("unique")
	pushIndexOptions(fn, o.MapName, o.SortOrder, o.Length, o.Clustered)
	return NewFieldAttribute(fn)
}

// IdFieldDefinition is the payload of a field-level @id attribute.
type IdFieldDefinition struct {
	MapName   string
	SortOrder string
	Length    *int
	Clustered *bool
}

// attribute builds the @id(...) attribute with the same option order as
// @unique.
func (d IdFieldDefinition) attribute() *FieldAttribute {
	fn := NewFunction("id")
	pushIndexOptions(fn, d.MapName, d.SortOrder, d.Length, d.Clustered)
	return NewFieldAttribute(fn)
}

func pushIndexOptions(fn *Function, mapName, sortOrder string, length *int, clustered *bool) {
	if mapName != "" {
		fn.PushNamedParam("map", NewText(mapName))
	}
	if sortOrder != "" {
		fn.PushNamedParam("sort", NewConstant(sortOrder))
	}
	if length != nil {
		fn.PushNamedParam("length", NewConstant(strconv.Itoa(*length)))
	}
	if clustered != nil {
		fn.PushNamedParam("clustered", NewConstant(strconv.FormatBool(*clustered)))
	}
}
