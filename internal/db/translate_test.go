package db

import (
	"testing"

	"sdlgen/internal/dml"
)

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"users", true},
		{"User_2", true},
		{"_internal", true},
		{"1invalid", false},
		{"with space", false},
		{"dash-ed", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validIdentifier(tt.name); got != tt.want {
				t.Errorf("validIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"with space", "with_space"},
		{"1invalid", "_1invalid"},
		{"dash-ed", "dash_ed"},
		{"already_fine", "already_fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeIdentifier(tt.name); got != tt.want {
				t.Errorf("sanitizeIdentifier(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMarkInvalidColumnName(t *testing.T) {
	t.Run("valid name untouched", func(t *testing.T) {
		field := &dml.ScalarField{Name: "email"}
		markInvalidColumnName(field)
		if field.IsCommentedOut || field.DatabaseName != "" {
			t.Errorf("valid column was altered: %+v", field)
		}
	})

	t.Run("invalid name commented out", func(t *testing.T) {
		field := &dml.ScalarField{Name: "11111"}
		markInvalidColumnName(field)
		if !field.IsCommentedOut {
			t.Error("invalid column was not commented out")
		}
		if field.DatabaseName != "11111" {
			t.Errorf("DatabaseName = %q, want original name", field.DatabaseName)
		}
		if field.Name != "11111" {
			t.Errorf("Name = %q, the original spelling must survive", field.Name)
		}
	})
}

func TestMapReferentialAction(t *testing.T) {
	tests := []struct {
		rule string
		want string
	}{
		{"CASCADE", "Cascade"},
		{"cascade", "Cascade"},
		{"SET NULL", "SetNull"},
		{"SET DEFAULT", "SetDefault"},
		{"RESTRICT", "Restrict"},
		{"NO ACTION", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			if got := mapReferentialAction(tt.rule); got != tt.want {
				t.Errorf("mapReferentialAction(%q) = %q, want %q", tt.rule, got, tt.want)
			}
		})
	}
}

func TestAppendForeignKeyColumn(t *testing.T) {
	keys := appendForeignKeyColumn(nil, foreignKey{
		name: "fk_a", target: "users", columns: []string{"user_id"}, references: []string{"id"},
	})
	keys = appendForeignKeyColumn(keys, foreignKey{
		name: "fk_a", target: "users", columns: []string{"tenant_id"}, references: []string{"tenant_id"},
	})
	keys = appendForeignKeyColumn(keys, foreignKey{
		name: "fk_b", target: "orgs", columns: []string{"org_id"}, references: []string{"id"},
	})

	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}
	if len(keys[0].columns) != 2 || keys[0].columns[1] != "tenant_id" {
		t.Errorf("composite key columns = %v", keys[0].columns)
	}
	if keys[1].target != "orgs" {
		t.Errorf("second key target = %s", keys[1].target)
	}
}

func TestAttachForeignKeys(t *testing.T) {
	model := &dml.Model{
		Name: "posts",
		Fields: []dml.Field{
			&dml.ScalarField{Name: "author_id", Type: "Int", Arity: dml.Optional},
		},
	}

	attachForeignKeys(model, []foreignKey{{
		name:       "fk_posts_users",
		target:     "users",
		columns:    []string{"author_id"},
		references: []string{"id"},
		onDelete:   "Cascade",
	}})

	if len(model.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(model.Fields))
	}
	relation, ok := model.Fields[1].(*dml.RelationField)
	if !ok {
		t.Fatalf("appended field is %T, want *dml.RelationField", model.Fields[1])
	}
	if relation.Name != "users" || relation.ReferencedModel != "users" {
		t.Errorf("relation = %+v", relation)
	}
	if relation.Arity != dml.Optional {
		t.Error("relation over a nullable column must be optional")
	}
	if relation.OnDelete != "Cascade" {
		t.Errorf("OnDelete = %q", relation.OnDelete)
	}
}

func TestRelationFieldNameCollision(t *testing.T) {
	model := &dml.Model{
		Name: "posts",
		Fields: []dml.Field{
			&dml.ScalarField{Name: "users", Type: "String"},
		},
	}
	if got := relationFieldName("users", model); got != "usersRef" {
		t.Errorf("relationFieldName() = %q, want usersRef", got)
	}
}

func TestAddBackRelations(t *testing.T) {
	datamodel := &dml.Datamodel{
		Models: []dml.Model{
			{Name: "users", Fields: []dml.Field{
				&dml.ScalarField{Name: "id", Type: "Int"},
			}},
			{Name: "posts", Fields: []dml.Field{
				&dml.ScalarField{Name: "author_id", Type: "Int"},
				&dml.RelationField{
					Name:            "users",
					ReferencedModel: "users",
					Fields:          []string{"author_id"},
					References:      []string{"id"},
				},
			}},
		},
	}

	addBackRelations(datamodel)

	users := &datamodel.Models[0]
	if len(users.Fields) != 2 {
		t.Fatalf("users has %d fields, want 2", len(users.Fields))
	}
	back, ok := users.Fields[1].(*dml.RelationField)
	if !ok {
		t.Fatalf("back relation is %T", users.Fields[1])
	}
	if back.Name != "posts" || back.ReferencedModel != "posts" {
		t.Errorf("back relation = %+v", back)
	}
	if back.Arity != dml.List {
		t.Error("back relation must be a list")
	}
	if back.RelationName != "" || len(back.Fields) > 0 || len(back.References) > 0 {
		t.Errorf("back relation must be anonymous and columnless: %+v", back)
	}
}

func TestAddBackRelationsSkipsUnknownTargets(t *testing.T) {
	datamodel := &dml.Datamodel{
		Models: []dml.Model{
			{Name: "posts", Fields: []dml.Field{
				&dml.RelationField{Name: "users", ReferencedModel: "users"},
			}},
		},
	}

	addBackRelations(datamodel)

	if len(datamodel.Models[0].Fields) != 1 {
		t.Error("relation to an excluded table must not grow the model")
	}
}
