package db

import (
	"reflect"
	"testing"

	"sdlgen/internal/dml"
)

func TestParseEnumLabels(t *testing.T) {
	tests := []struct {
		name       string
		columnType string
		want       []string
	}{
		{
			name:       "simple labels",
			columnType: "enum('small','medium','large')",
			want:       []string{"small", "medium", "large"},
		},
		{
			name:       "escaped quote",
			columnType: "enum('it''s','plain')",
			want:       []string{"it's", "plain"},
		},
		{
			name:       "single label",
			columnType: "enum('only')",
			want:       []string{"only"},
		},
		{
			name:       "malformed expression",
			columnType: "enum",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseEnumLabels(tt.columnType)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseEnumLabels(%q) = %v, want %v", tt.columnType, got, tt.want)
			}
		})
	}
}

func TestSynthesizeColumnEnum(t *testing.T) {
	enum := synthesizeColumnEnum("shirts", "size", "enum('small','x large')")
	if enum.Name != "shirts_size" {
		t.Errorf("Name = %s, want shirts_size", enum.Name)
	}
	if len(enum.Values) != 2 {
		t.Fatalf("got %d values, want 2", len(enum.Values))
	}
	if enum.Values[0].Name != "small" || enum.Values[0].DatabaseName != "" {
		t.Errorf("first value = %+v", enum.Values[0])
	}
	if enum.Values[1].Name != "x_large" || enum.Values[1].DatabaseName != "x large" {
		t.Errorf("second value = %+v, want sanitized name with mapped original", enum.Values[1])
	}
}

func TestMapMySQLType(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name       string
		dataType   string
		columnType string
		charMax    *int
		precision  *int
		scale      *int
		dtPrec     *int
		wantName   string
		wantNative string
	}{
		{name: "tinyint(1) is boolean", dataType: "tinyint", columnType: "tinyint(1)", wantName: "Boolean", wantNative: "TinyInt"},
		{name: "tinyint", dataType: "tinyint", columnType: "tinyint(4)", wantName: "Int", wantNative: "TinyInt"},
		{name: "unsigned int", dataType: "int", columnType: "int unsigned", wantName: "Int", wantNative: "UnsignedInt"},
		{name: "int", dataType: "int", columnType: "int", wantName: "Int"},
		{name: "bigint", dataType: "bigint", columnType: "bigint", wantName: "BigInt"},
		{name: "double", dataType: "double", columnType: "double", wantName: "Float"},
		{name: "decimal", dataType: "decimal", columnType: "decimal(10,2)", precision: intp(10), scale: intp(2), wantName: "Decimal", wantNative: "Decimal"},
		{name: "varchar", dataType: "varchar", columnType: "varchar(191)", charMax: intp(191), wantName: "String", wantNative: "VarChar"},
		{name: "text", dataType: "text", columnType: "text", wantName: "String", wantNative: "Text"},
		{name: "datetime", dataType: "datetime", columnType: "datetime(3)", dtPrec: intp(3), wantName: "DateTime", wantNative: "DateTime"},
		{name: "json", dataType: "json", columnType: "json", wantName: "Json"},
		{name: "blob", dataType: "blob", columnType: "blob", wantName: "Bytes", wantNative: "Blob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapMySQLType(tt.dataType, tt.columnType, tt.charMax, tt.precision, tt.scale, tt.dtPrec)
			if got.name != tt.wantName {
				t.Errorf("name = %s, want %s", got.name, tt.wantName)
			}
			if tt.wantNative == "" {
				if got.native != nil {
					t.Errorf("native = %+v, want none", got.native)
				}
			} else if got.native == nil || got.native.Name != tt.wantNative {
				t.Errorf("native = %+v, want %s", got.native, tt.wantNative)
			}
		})
	}

	t.Run("unknown type is unsupported", func(t *testing.T) {
		got := mapMySQLType("geometry", "geometry", nil, nil, nil, nil)
		if !got.unsupported || got.name != "geometry" {
			t.Errorf("unknown mapping = %+v", got)
		}
	})
}

func TestParseMySQLDefault(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		scalarType string
		isEnum     bool
		want       *dml.DefaultValue
	}{
		{
			name:       "current timestamp",
			raw:        "CURRENT_TIMESTAMP",
			scalarType: "DateTime",
			want:       &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"},
		},
		{
			name:       "integer constant",
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
			name:       "bare string",
			raw:        "pending",
			scalarType: "String",
			want:       &dml.DefaultValue{Kind: dml.DefaultText, Value: "pending"},
		},
		{
			name:       "enum variant",
			raw:        "small",
			scalarType: "shirts_size",
			isEnum:     true,
			want:       &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "small"},
		},
		{
			name:       "expression default",
			raw:        "(uuid())",
			scalarType: "String",
			want:       &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "dbgenerated", Args: []string{"(uuid())"}},
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
			got := parseMySQLDefault(tt.raw, tt.scalarType, tt.isEnum)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parseMySQLDefault() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("parseMySQLDefault() = nil")
			}
			if got.Kind != tt.want.Kind || got.Value != tt.want.Value {
				t.Errorf("parseMySQLDefault() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
