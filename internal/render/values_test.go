package render

import (
	"strings"
	"testing"
)

func TestTextEscaping(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "plain value",
			value: "berlin",
			want:  `"berlin"`,
		},
		{
			name:  "embedded quote",
			value: `say "hi"`,
			want:  `"say \"hi\""`,
		},
		{
			name:  "embedded backslash",
			value: `C:\temp`,
			want:  `"C:\\temp"`,
		},
		{
			name:  "empty value",
			value: "",
			want:  `""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewText(tt.value).String(); got != tt.want {
				t.Errorf("Text.String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConstantRendersVerbatim(t *testing.T) {
	if got := NewConstant(`no "quoting" here`).String(); got != `no "quoting" here` {
		t.Errorf("Constant.String() = %s", got)
	}
}

func TestDocumentationAppends(t *testing.T) {
	var d Documentation
	d.Push("first line")
	d.Push("second line")

	var sb strings.Builder
	d.write(&sb)

	want := "/// first line\n/// second line\n"
	if sb.String() != want {
		t.Errorf("Documentation.write() = %q, want %q", sb.String(), want)
	}
}

func TestDocumentationSplitsEmbeddedNewlines(t *testing.T) {
	var d Documentation
	d.Push("first\nsecond")

	var sb strings.Builder
	d.write(&sb)

	want := "/// first\n/// second\n"
	if sb.String() != want {
		t.Errorf("Documentation.write() = %q, want %q", sb.String(), want)
	}
}

func TestFunctionRendering(t *testing.T) {
	t.Run("no params keeps parentheses", func(t *testing.T) {
		if got := NewFunction("now").String(); got != "now()" {
			t.Errorf("Function.String() = %s", got)
		}
	})

	t.Run("positional params", func(t *testing.T) {
		fn := NewFunction("dbgenerated")
		fn.PushParam(NewText("uuid_generate_v4()"))
		if got := fn.String(); got != `dbgenerated("uuid_generate_v4()")` {
			t.Errorf("Function.String() = %s", got)
		}
	})

	t.Run("mixed positional and named params", func(t *testing.T) {
		fn := NewFunction("relation")
		fn.PushParam(NewText("UserPosts"))
		fn.PushNamedParam("fields", ConstantList{"authorId"})
		if got := fn.String(); got != `relation("UserPosts", fields: [authorId])` {
			t.Errorf("Function.String() = %s", got)
		}
	})
}

func TestConstantList(t *testing.T) {
	if got := (ConstantList{"userId", "orgId"}).String(); got != "[userId, orgId]" {
		t.Errorf("ConstantList.String() = %s", got)
	}
	if got := (ConstantList{}).String(); got != "[]" {
		t.Errorf("ConstantList.String() = %s", got)
	}
}

func TestFieldAttributeParentheses(t *testing.T) {
	t.Run("argless renders bare", func(t *testing.T) {
		attr := NewFieldAttribute(NewFunction("updatedAt"))
		if got := attr.String(); got != "@updatedAt" {
			t.Errorf("FieldAttribute.String() = %s", got)
		}
	})

	t.Run("with args renders parenthesized", func(t *testing.T) {
		fn := NewFunction("map")
		fn.PushParam(NewText("user_id"))
		attr := NewFieldAttribute(fn)
		if got := attr.String(); got != `@map("user_id")` {
			t.Errorf("FieldAttribute.String() = %s", got)
		}
	})

	t.Run("prefix renders namespaced", func(t *testing.T) {
		fn := NewFunction("VarChar")
		fn.PushParam(NewConstant("255"))
		attr := NewFieldAttribute(fn)
		attr.Prefix("db")
		if got := attr.String(); got != "@db.VarChar(255)" {
			t.Errorf("FieldAttribute.String() = %s", got)
		}
	})
}

func TestBlockAttributeSigil(t *testing.T) {
	fn := NewFunction("map")
	fn.PushParam(NewText("users"))
	attr := NewBlockAttribute(fn)
	if got := attr.String(); got != `@@map("users")` {
		t.Errorf("BlockAttribute.String() = %s", got)
	}
}
