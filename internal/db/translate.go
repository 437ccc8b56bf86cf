// Package db connects to live databases and introspects their catalogs into
// the legacy datamodel consumed by the renderer. Each engine gets a
// client+introspector pair; connections live for one introspection call and
// never escape it.
package db

import (
	"strings"

	"sdlgen/internal/dml"
)

// validIdentifier reports whether a name can stand bare in the rendered
// schema: a letter followed by letters, digits or underscores.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// sanitizeIdentifier rewrites a name into a valid identifier, replacing
// offending characters with underscores. Used for block names (models,
// enums, variants), which keep the original as a mapped database name.
func sanitizeIdentifier(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// markInvalidColumnName comments out a field whose column name is not a
// valid identifier, keeping the original name as the mapped database name.
// The commented line still carries every attribute, so nothing is lost.
func markInvalidColumnName(field *dml.ScalarField) {
	if validIdentifier(field.Name) {
		return
	}
	field.DatabaseName = field.Name
	field.IsCommentedOut = true
}

// mapReferentialAction translates an information_schema referential rule
// into the SDL action constant. The engine default NO ACTION is dropped so
// the relation attribute stays minimal.
func mapReferentialAction(rule string) string {
	switch strings.ToUpper(strings.TrimSpace(rule)) {
	case "CASCADE":
		return "Cascade"
	case "SET NULL":
		return "SetNull"
	case "SET DEFAULT":
		return "SetDefault"
	case "RESTRICT":
		return "Restrict"
	default:
		return ""
	}
}

// foreignKey is one foreign-key constraint collected during introspection,
// with its columns in ordinal position order.
type foreignKey struct {
	name       string
	target     string
	columns    []string
	references []string
	onDelete   string
	onUpdate   string
}

// appendForeignKeyColumn merges a per-column row into the constraint list.
// Rows arrive ordered by constraint name, so a composite key only ever
// extends the last entry.
func appendForeignKeyColumn(keys []foreignKey, key foreignKey) []foreignKey {
	if n := len(keys); n > 0 && keys[n-1].name == key.name {
		keys[n-1].columns = append(keys[n-1].columns, key.columns...)
		keys[n-1].references = append(keys[n-1].references, key.references...)
		return keys
	}
	return append(keys, key)
}

// attachForeignKeys turns collected constraints into relation fields on the
// model. The field is optional when every underlying column is nullable.
func attachForeignKeys(model *dml.Model, keys []foreignKey) {
	for _, key := range keys {
		field := &dml.RelationField{
			Name:            relationFieldName(key.target, model),
			ReferencedModel: key.target,
			Fields:          key.columns,
			References:      key.references,
			OnDelete:        key.onDelete,
			OnUpdate:        key.onUpdate,
		}
		if columnsNullable(model, key.columns) {
			field.Arity = dml.Optional
		}
		model.Fields = append(model.Fields, field)
	}
}

// relationFieldName names a relation field after the referenced table,
// suffixing until the name is free on the model.
func relationFieldName(referenced string, model *dml.Model) string {
	name := referenced
	if !validIdentifier(name) {
		name = sanitizeIdentifier(name)
	}
	for hasField(model, name) {
		name += "Ref"
	}
	return name
}

func columnsNullable(model *dml.Model, columns []string) bool {
	for _, column := range columns {
		scalar := findScalarField(model, column)
		if scalar == nil || scalar.Arity != dml.Optional {
			return false
		}
	}
	return len(columns) > 0
}

func findScalarField(model *dml.Model, name string) *dml.ScalarField {
	for _, field := range model.Fields {
		if scalar, ok := field.(*dml.ScalarField); ok && scalar.Name == name {
			return scalar
		}
	}
	return nil
}

// addBackRelations appends a list-arity back-relation field to the target
// model of every foreign key, mirroring how the schema language expects both
// sides of a relation to be declared. Back relations are anonymous and
// columnless, so the renderer attaches no relation attribute to them.
func addBackRelations(datamodel *dml.Datamodel) {
	indexByName := make(map[string]int, len(datamodel.Models))
	for i := range datamodel.Models {
		indexByName[datamodel.Models[i].Name] = i
	}

	type backRelation struct {
		target string
		field  *dml.RelationField
	}
	var additions []backRelation

	for i := range datamodel.Models {
		model := &datamodel.Models[i]
		for _, field := range model.Fields {
			relation, ok := field.(*dml.RelationField)
			if !ok {
				continue
			}
			if _, ok := indexByName[relation.ReferencedModel]; !ok {
				continue
			}
			additions = append(additions, backRelation{
				target: relation.ReferencedModel,
				field: &dml.RelationField{
					Name:            model.Name,
					ReferencedModel: model.Name,
					Arity:           dml.List,
				},
			})
		}
	}

	for _, addition := range additions {
		model := &datamodel.Models[indexByName[addition.target]]
		if hasField(model, addition.field.Name) {
			continue
		}
		model.Fields = append(model.Fields, addition.field)
	}
}

func hasField(model *dml.Model, name string) bool {
	for _, field := range model.Fields {
		if field.FieldName() == name {
			return true
		}
	}
	return false
}
