package db

import (
	"testing"

	"sdlgen/internal/dml"
)

func TestMapSQLiteType(t *testing.T) {
	tests := []struct {
		declType string
		want     string
	}{
		{"INTEGER", "Int"},
		{"int", "Int"},
		{"BIGINT", "Int"},
		{"VARCHAR(255)", "String"},
		{"TEXT", "String"},
		{"CLOB", "String"},
		{"BLOB", "Bytes"},
		{"", "Bytes"},
		{"REAL", "Float"},
		{"DOUBLE PRECISION", "Float"},
		{"FLOAT", "Float"},
		{"BOOLEAN", "Boolean"},
		{"NUMERIC", "Decimal"},
		{"DECIMAL(10,5)", "Decimal"},
		{"DATE", "DateTime"},
		{"DATETIME", "DateTime"},
		{"TIMESTAMP", "DateTime"},
	}

	for _, tt := range tests {
		t.Run(tt.declType, func(t *testing.T) {
			got := mapSQLiteType(tt.declType)
			if got.name != tt.want {
				t.Errorf("mapSQLiteType(%q) = %s, want %s", tt.declType, got.name, tt.want)
			}
			if got.unsupported {
				t.Errorf("mapSQLiteType(%q) flagged unsupported", tt.declType)
			}
		})
	}

	t.Run("unknown declaration is unsupported", func(t *testing.T) {
		got := mapSQLiteType("GEOMETRY")
		if !got.unsupported || got.name != "GEOMETRY" {
			t.Errorf("mapSQLiteType(GEOMETRY) = %+v", got)
		}
	})
}

func TestParseSQLiteDefault(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		scalarType string
		want       *dml.DefaultValue
	}{
		{
			name:       "current timestamp",
			raw:        "CURRENT_TIMESTAMP",
			scalarType: "DateTime",
			want:       &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"},
		},
		{
			name:       "quoted string",
			raw:        "'pending'",
			scalarType: "String",
			want:       &dml.DefaultValue{Kind: dml.DefaultText, Value: "pending"},
		},
		{
			name:       "integer",
			raw:        "0",
			scalarType: "Int",
			want:       &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "0"},
		},
		{
			name:       "boolean one",
			raw:        "1",
			scalarType: "Boolean",
			want:       &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "true"},
		},
		{
			name:       "expression",
			raw:        "(datetime('now'))",
			scalarType: "DateTime",
			want:       &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "dbgenerated", Args: []string{"(datetime('now'))"}},
		},
		{
			name:       "null",
			raw:        "NULL",
			scalarType: "String",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSQLiteDefault(tt.raw, tt.scalarType)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parseSQLiteDefault() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("parseSQLiteDefault() = nil")
			}
			if got.Kind != tt.want.Kind || got.Value != tt.want.Value {
				t.Errorf("parseSQLiteDefault() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
