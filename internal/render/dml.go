package render

import (
	"fmt"

	"sdlgen/internal/dml"
)

// ModelFieldFromDML translates one legacy field record into a canonical
// model field. uniques maps field names to the precomputed options of
// single-field unique constraints; id is the precomputed id definition when
// this field is the model's id, nil otherwise. Both side-tables are supplied
// by the caller and looked up as-is; no cross-field validation happens here.
func ModelFieldFromDML(datasource *dml.Datasource, field dml.Field, uniques map[string]IndexFieldOptions, id *IdFieldDefinition) *ModelField {
	switch f := field.(type) {
	case *dml.ScalarField:
		mf := NewModelField(f.Name, f.Type)
		applyArity(&mf.fieldType, f.Arity)
		if f.IsUnsupported {
			mf.Unsupported()
		}
		if f.Documentation != "" {
			mf.Documentation(f.Documentation)
		}
		if f.Default != nil {
			mf.Default(defaultFromDML(f.Default))
		}
		if f.NativeType != nil {
			mf.NativeType(datasource.Name, f.NativeType.Name, f.NativeType.Args)
		}
		if f.IsUpdatedAt {
			mf.UpdatedAt()
		}
		if options, ok := uniques[f.Name]; ok {
			mf.Unique(options)
		}
		if f.IsIgnored {
			mf.Ignore()
		}
		if f.IsCommentedOut {
			mf.CommentedOut()
		}
		if f.DatabaseName != "" {
			mf.Map(f.DatabaseName)
		}
		if id != nil {
			mf.ID(*id)
		}
		return mf

	case *dml.RelationField:
		mf := NewModelField(f.Name, f.ReferencedModel)
		applyArity(&mf.fieldType, f.Arity)
		if f.Documentation != "" {
			mf.Documentation(f.Documentation)
		}
		if f.IsIgnored {
			mf.Ignore()
		}
		// An anonymous, columnless relation gets no attribute at all; a bare
		// @relation() would only add noise.
		if f.RelationName != "" || len(f.Fields) > 0 || len(f.References) > 0 {
			relation := NewRelation()
			if f.RelationName != "" {
				relation.Name(f.RelationName)
			}
			relation.Fields(f.Fields...)
			relation.References(f.References...)
			if f.OnDelete != "" {
				relation.OnDelete(f.OnDelete)
			}
			if f.OnUpdate != "" {
				relation.OnUpdate(f.OnUpdate)
			}
			if f.ForeignKeyName != "" {
				relation.Map(f.ForeignKeyName)
			}
			mf.Relation(relation)
		}
		return mf

	case *dml.CompositeField:
		mf := NewModelField(f.Name, f.CompositeType)
		applyArity(&mf.fieldType, f.Arity)
		if f.Documentation != "" {
			mf.Documentation(f.Documentation)
		}
		if f.DatabaseName != "" {
			mf.Map(f.DatabaseName)
		}
		if f.IsCommentedOut {
			mf.CommentedOut()
		}
		if f.IsIgnored {
			mf.Ignore()
		}
		if f.Default != nil {
			mf.Default(defaultFromDML(f.Default))
		}
		return mf

	default:
		panic(fmt.Sprintf("unhandled legacy field kind %T", field))
	}
}

// CompositeTypeFieldFromDML translates one legacy field of a composite type.
// Relation fields cannot appear inside composite types.
func CompositeTypeFieldFromDML(datasource *dml.Datasource, field dml.Field) *CompositeTypeField {
	switch f := field.(type) {
	case *dml.ScalarField:
		cf := NewCompositeTypeField(f.Name, f.Type)
		applyArity(&cf.fieldType, f.Arity)
		if f.IsUnsupported {
			cf.Unsupported()
		}
		if f.Documentation != "" {
			cf.Documentation(f.Documentation)
		}
		if f.Default != nil {
			cf.Default(defaultFromDML(f.Default))
		}
		if f.NativeType != nil {
			cf.NativeType(datasource.Name, f.NativeType.Name, f.NativeType.Args)
		}
		if f.IsIgnored {
			cf.Ignore()
		}
		if f.IsCommentedOut {
			cf.CommentedOut()
		}
		if f.DatabaseName != "" {
			cf.Map(f.DatabaseName)
		}
		return cf

	case *dml.CompositeField:
		cf := NewCompositeTypeField(f.Name, f.CompositeType)
		applyArity(&cf.fieldType, f.Arity)
		if f.Documentation != "" {
			cf.Documentation(f.Documentation)
		}
		if f.DatabaseName != "" {
			cf.Map(f.DatabaseName)
		}
		if f.IsCommentedOut {
			cf.CommentedOut()
		}
		if f.IsIgnored {
			cf.Ignore()
		}
		if f.Default != nil {
			cf.Default(defaultFromDML(f.Default))
		}
		return cf

	case *dml.RelationField:
		panic(fmt.Sprintf("relation field %q inside a composite type", f.Name))

	default:
		panic(fmt.Sprintf("unhandled legacy field kind %T", field))
	}
}

// ModelFromDML translates one legacy model into a model block. Single-field
// unique constraints and a single-field primary key become field-level
// attributes through the side-tables; multi-field definitions become block
// attributes.
func ModelFromDML(datasource *dml.Datasource, model *dml.Model) *Model {
	m := NewModel(model.Name)
	if model.Documentation != "" {
		m.Documentation(model.Documentation)
	}

	uniques := make(map[string]IndexFieldOptions)
	for _, index := range model.Indexes {
		if index.IsUnique && len(index.Fields) == 1 {
			uniques[index.Fields[0]] = IndexFieldOptions{
				MapName:   index.Name,
				SortOrder: index.SortOrder,
				Length:    index.Length,
				Clustered: index.Clustered,
			}
		}
	}

	var idField string
	var idDefinition *IdFieldDefinition
	if pk := model.PrimaryKey; pk != nil && len(pk.Fields) == 1 {
		idField = pk.Fields[0]
		idDefinition = &IdFieldDefinition{
			MapName:   pk.ConstraintName,
			Clustered: pk.Clustered,
		}
	}

	for _, field := range model.Fields {
		var id *IdFieldDefinition
		if field.FieldName() == idField {
			id = idDefinition
		}
		m.PushField(ModelFieldFromDML(datasource, field, uniques, id))
	}

	if pk := model.PrimaryKey; pk != nil && len(pk.Fields) > 1 {
		m.CompositeID(pk.Fields, pk.ConstraintName)
	}
	for _, index := range model.Indexes {
		switch {
		case index.IsUnique && len(index.Fields) == 1:
			// Already rendered on the field itself.
		case index.IsUnique:
			m.CompositeUnique(index.Fields, index.Name)
		default:
			m.Index(index.Fields, index.Name)
		}
	}
	if model.DatabaseName != "" {
		m.Map(model.DatabaseName)
	}
	if model.Schema != "" {
		m.Schema(model.Schema)
	}
	if model.IsIgnored {
		m.Ignore()
	}

	return m
}

// CompositeTypeFromDML translates one legacy composite type into a type
// block.
func CompositeTypeFromDML(datasource *dml.Datasource, compositeType *dml.CompositeType) *CompositeType {
	t := NewCompositeType(compositeType.Name)
	if compositeType.Documentation != "" {
		t.Documentation(compositeType.Documentation)
	}
	for _, field := range compositeType.Fields {
		t.PushField(CompositeTypeFieldFromDML(datasource, field))
	}
	return t
}

// EnumFromDML translates one legacy enum into an enum block.
func EnumFromDML(enum *dml.Enum) *Enum {
	e := NewEnum(enum.Name)
	if enum.Documentation != "" {
		e.Documentation(enum.Documentation)
	}
	for _, value := range enum.Values {
		variant := e.Variant(value.Name)
		if value.DatabaseName != "" {
			variant.Map(value.DatabaseName)
		}
	}
	if enum.DatabaseName != "" {
		e.Map(enum.DatabaseName)
	}
	return e
}

// DatamodelFromDML translates a complete legacy datamodel into a renderable
// document.
func DatamodelFromDML(datasource *dml.Datasource, datamodel *dml.Datamodel) *Datamodel {
	d := NewDatamodel()
	for i := range datamodel.CompositeTypes {
		d.PushCompositeType(CompositeTypeFromDML(datasource, &datamodel.CompositeTypes[i]))
	}
	for i := range datamodel.Models {
		d.PushModel(ModelFromDML(datasource, &datamodel.Models[i]))
	}
	for i := range datamodel.Enums {
		d.PushEnum(EnumFromDML(&datamodel.Enums[i]))
	}
	return d
}

func applyArity(fieldType *FieldType, arity dml.FieldArity) {
	switch arity {
	case dml.Optional:
		fieldType.Optional()
	case dml.List:
		fieldType.Array()
	case dml.Required:
		// Fields start out required.
	default:
		panic(fmt.Sprintf("unhandled legacy field arity %d", arity))
	}
}

func defaultFromDML(value *dml.DefaultValue) DefaultValue {
	var d DefaultValue
	switch value.Kind {
	case dml.DefaultText:
		d = TextDefault(value.Value)
	case dml.DefaultConstant:
		d = ConstantDefault(value.Value)
	case dml.DefaultFunction:
		fn := NewFunction(value.Value)
		for _, arg := range value.Args {
			fn.PushParam(NewText(arg))
		}
		d = FunctionDefault(fn)
	default:
		panic(fmt.Sprintf("unhandled legacy default kind %d", value.Kind))
	}
	if value.ConstraintName != "" {
		d.Map(value.ConstraintName)
	}
	return d
}
