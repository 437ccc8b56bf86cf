package render

// DefaultValue is the payload of a @default(...) attribute.
type DefaultValue struct {
	attr *FieldAttribute
}

func newDefault(value interface{ String() string }) DefaultValue {
	fn := NewFunction("default")
	fn.PushParam(value)
	return DefaultValue{attr: NewFieldAttribute(fn)}
}

// TextDefault is a quoted string default, e.g. @default("berlin").
func TextDefault(value string) DefaultValue {
	return newDefault(NewText(value))
}

// ConstantDefault is an unquoted default: numbers, booleans and enum
// variants, e.g. @default(0) or @default(Blue).
func ConstantDefault(value string) DefaultValue {
	return newDefault(NewConstant(value))
}

// FunctionDefault is a generated default, e.g. @default(now()) or
// @default(dbgenerated("uuid_generate_v4()")).
func FunctionDefault(function *Function) DefaultValue {
	return newDefault(function)
}

// Map sets the default-constraint name, rendered as a trailing
// `map: "name"` argument.
func (d *DefaultValue) Map(name string) {
	d.attr.PushNamedParam("map", NewText(name))
}

func (d DefaultValue) String() string {
	return d.attr.String()
}
