package db

import (
	"testing"

	"sdlgen/internal/dml"
)

func TestMapPostgresType(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name       string
		udtName    string
		charMax    *int
		precision  *int
		scale      *int
		dtPrec     *int
		wantName   string
		wantNative string
	}{
		{name: "int4", udtName: "int4", wantName: "Int"},
		{name: "int2", udtName: "int2", wantName: "Int", wantNative: "SmallInt"},
		{name: "int8", udtName: "int8", wantName: "BigInt"},
		{name: "float8", udtName: "float8", wantName: "Float"},
		{name: "float4", udtName: "float4", wantName: "Float", wantNative: "Real"},
		{name: "numeric with precision", udtName: "numeric", precision: intp(10), scale: intp(2), wantName: "Decimal", wantNative: "Decimal"},
		{name: "bool", udtName: "bool", wantName: "Boolean"},
		{name: "text", udtName: "text", wantName: "String"},
		{name: "varchar", udtName: "varchar", charMax: intp(255), wantName: "String", wantNative: "VarChar"},
		{name: "uuid", udtName: "uuid", wantName: "String", wantNative: "Uuid"},
		{name: "timestamptz", udtName: "timestamptz", dtPrec: intp(6), wantName: "DateTime", wantNative: "Timestamptz"},
		{name: "bytea", udtName: "bytea", wantName: "Bytes"},
		{name: "jsonb", udtName: "jsonb", wantName: "Json"},
		{name: "json", udtName: "json", wantName: "Json", wantNative: "Json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPostgresType(tt.udtName, tt.charMax, tt.precision, tt.scale, tt.dtPrec, nil)
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
			if got.unsupported {
				t.Error("mapped type flagged unsupported")
			}
		})
	}

	t.Run("enum lookup", func(t *testing.T) {
		got := mapPostgresType("mood", nil, nil, nil, nil, map[string]string{"mood": "mood"})
		if !got.isEnum || got.name != "mood" {
			t.Errorf("enum mapping = %+v", got)
		}
	})

	t.Run("unknown type is unsupported", func(t *testing.T) {
		got := mapPostgresType("macaddr", nil, nil, nil, nil, nil)
		if !got.unsupported || got.name != "macaddr" {
			t.Errorf("unknown mapping = %+v", got)
		}
	})
}

func TestParsePostgresDefault(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		isEnum   bool
		want     *dml.DefaultValue
	}{
		{
			name: "sequence",
			raw:  "nextval('users_id_seq'::regclass)",
			want: &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "autoincrement"},
		},
		{
			name: "now",
			raw:  "now()",
			want: &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"},
		},
		{
			name: "current timestamp",
			raw:  "CURRENT_TIMESTAMP",
			want: &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"},
		},
		{
			name: "quoted literal with cast",
			raw:  "'berlin'::text",
			want: &dml.DefaultValue{Kind: dml.DefaultText, Value: "berlin"},
		},
		{
			name: "quoted literal with doubled quote",
			raw:  "'it''s'::text",
			want: &dml.DefaultValue{Kind: dml.DefaultText, Value: "it's"},
		},
		{
			name:   "quoted enum variant",
			raw:    "'happy'::mood",
			isEnum: true,
			want:   &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "happy"},
		},
		{
			name: "numeric with cast",
			raw:  "4.1::numeric",
			want: &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "4.1"},
		},
		{
			name: "bare integer",
			raw:  "0",
			want: &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "0"},
		},
		{
			name: "boolean",
			raw:  "false",
			want: &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "false"},
		},
		{
			name: "expression falls back to dbgenerated",
			raw:  "gen_random_uuid()",
			want: &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "dbgenerated", Args: []string{"gen_random_uuid()"}},
		},
		{
			name: "null is no default",
			raw:  "NULL",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePostgresDefault(tt.raw, tt.isEnum)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parsePostgresDefault() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("parsePostgresDefault() = nil")
			}
			if got.Kind != tt.want.Kind || got.Value != tt.want.Value {
				t.Errorf("parsePostgresDefault() = %+v, want %+v", got, tt.want)
			}
			if len(got.Args) != len(tt.want.Args) {
				t.Errorf("Args = %v, want %v", got.Args, tt.want.Args)
			}
		})
	}
}

func TestUnquoteSQLLiteral(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "simple", raw: "'berlin'", want: "berlin", wantOK: true},
		{name: "with cast", raw: "'berlin'::text", want: "berlin", wantOK: true},
		{name: "doubled quote", raw: "'it''s'", want: "it's", wantOK: true},
		{name: "empty literal", raw: "''", want: "", wantOK: true},
		{name: "not quoted", raw: "42", wantOK: false},
		{name: "trailing junk", raw: "'a' || 'b'", wantOK: false},
		{name: "unterminated", raw: "'oops", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := unquoteSQLLiteral(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("unquoteSQLLiteral(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("unquoteSQLLiteral(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsNumericLiteral(t *testing.T) {
	valid := []string{"0", "42", "-1", "4.1", "-0.5"}
	invalid := []string{"", "-", ".", "1.2.3", "abc", "1e5"}

	for _, v := range valid {
		if !isNumericLiteral(v) {
			t.Errorf("isNumericLiteral(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if isNumericLiteral(v) {
			t.Errorf("isNumericLiteral(%q) = true, want false", v)
		}
	}
}
