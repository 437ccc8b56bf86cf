package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"sdlgen/internal/dml"
)

// PostgresIntrospector reads catalog metadata from a live PostgreSQL
// database and produces the legacy datamodel.
type PostgresIntrospector struct {
	conn   *pgx.Conn
	schema string
}

// NewPostgresIntrospector connects to PostgreSQL and verifies the
// connection.
func NewPostgresIntrospector(ctx context.Context, connString, schemaName string) (*PostgresIntrospector, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresIntrospector{conn: conn, schema: schemaName}, nil
}

// Close closes the database connection.
func (i *PostgresIntrospector) Close(ctx context.Context) error {
	return i.conn.Close(ctx)
}

// Datasource returns the descriptor shared by every block the introspection
// produces; its name is the native type namespace.
func (i *PostgresIntrospector) Datasource() *dml.Datasource {
	return &dml.Datasource{Name: "db", Provider: "postgresql"}
}

// Introspect builds the legacy datamodel for the requested tables. An empty
// list means every base table in the schema.
func (i *PostgresIntrospector) Introspect(ctx context.Context, tables []string) (*dml.Datamodel, error) {
	datamodel := &dml.Datamodel{}

	enums, enumNames, err := i.introspectEnums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect enums: %w", err)
	}
	datamodel.Enums = enums

	tableNames, err := i.tableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	for _, tableName := range tableNames {
		model, err := i.introspectTable(ctx, tableName, enumNames)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect table %s: %w", tableName, err)
		}
		datamodel.Models = append(datamodel.Models, *model)
	}

	addBackRelations(datamodel)
	return datamodel, nil
}

func (i *PostgresIntrospector) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := i.conn.Query(ctx, query, i.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// introspectEnums loads every enum type of the schema. The returned map goes
// from the database type name to the (possibly sanitized) model enum name.
func (i *PostgresIntrospector) introspectEnums(ctx context.Context) ([]dml.Enum, map[string]string, error) {
	query := `
		SELECT t.typname, e.enumlabel
		FROM pg_type t
		JOIN pg_enum e ON t.oid = e.enumtypid
		JOIN pg_namespace n ON t.typnamespace = n.oid
		WHERE n.nspname = $1
		ORDER BY t.typname, e.enumsortorder
	`

	rows, err := i.conn.Query(ctx, query, i.schema)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var enums []dml.Enum
	names := make(map[string]string)
	for rows.Next() {
		var typeName, label string
		if err := rows.Scan(&typeName, &label); err != nil {
			return nil, nil, err
		}

		if _, ok := names[typeName]; !ok {
			enum := dml.Enum{Name: typeName}
			if !validIdentifier(typeName) {
				enum.Name = sanitizeIdentifier(typeName)
				enum.DatabaseName = typeName
			}
			names[typeName] = enum.Name
			enums = append(enums, enum)
		}

		value := dml.EnumValue{Name: label}
		if !validIdentifier(label) {
			value.Name = sanitizeIdentifier(label)
			value.DatabaseName = label
		}
		enum := &enums[len(enums)-1]
		enum.Values = append(enum.Values, value)
	}

	return enums, names, rows.Err()
}

func (i *PostgresIntrospector) introspectTable(ctx context.Context, tableName string, enumNames map[string]string) (*dml.Model, error) {
	model := &dml.Model{Name: tableName}
	if !validIdentifier(tableName) {
		model.Name = sanitizeIdentifier(tableName)
		model.DatabaseName = tableName
	}

	if err := i.introspectColumns(ctx, tableName, model, enumNames); err != nil {
		return nil, fmt.Errorf("failed to introspect columns: %w", err)
	}

	pk, err := i.introspectPrimaryKey(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect primary key: %w", err)
	}
	model.PrimaryKey = pk

	if err := i.introspectForeignKeys(ctx, tableName, model); err != nil {
		return nil, fmt.Errorf("failed to introspect foreign keys: %w", err)
	}

	indexes, err := i.introspectIndexes(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect indexes: %w", err)
	}
	model.Indexes = indexes

	return model, nil
}

func (i *PostgresIntrospector) introspectColumns(ctx context.Context, tableName string, model *dml.Model, enumNames map[string]string) error {
	query := `
		SELECT
			column_name,
			data_type,
			udt_name,
			is_nullable,
			column_default,
			character_maximum_length,
			numeric_precision,
			numeric_scale,
			datetime_precision
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := i.conn.Query(ctx, query, i.schema, tableName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, dataType, udtName, nullable string
		var columnDefault *string
		var charMaxLength, numericPrecision, numericScale, datetimePrecision *int

		if err := rows.Scan(&name, &dataType, &udtName, &nullable, &columnDefault,
			&charMaxLength, &numericPrecision, &numericScale, &datetimePrecision); err != nil {
			return err
		}

		field := &dml.ScalarField{Name: name}
		if nullable == "YES" {
			field.Arity = dml.Optional
		}

		// Array columns carry an underscore-prefixed element type in
		// udt_name, e.g. "_int4" for integer[].
		elementUdt := udtName
		if dataType == "ARRAY" && strings.HasPrefix(udtName, "_") {
			field.Arity = dml.List
			elementUdt = udtName[1:]
		}

		mapped := mapPostgresType(elementUdt, charMaxLength, numericPrecision, numericScale, datetimePrecision, enumNames)
		field.Type = mapped.name
		field.NativeType = mapped.native
		field.IsEnum = mapped.isEnum
		field.IsUnsupported = mapped.unsupported

		if columnDefault != nil {
			field.Default = parsePostgresDefault(*columnDefault, mapped.isEnum)
		}

		markInvalidColumnName(field)
		model.Fields = append(model.Fields, field)
	}

	return rows.Err()
}

// mappedType is the outcome of translating an engine type into a schema
// scalar.
type mappedType struct {
	name        string
	native      *dml.NativeType
	isEnum      bool
	unsupported bool
}

func nativeType(name string, args ...string) *dml.NativeType {
	return &dml.NativeType{Name: name, Args: args}
}

func precisionArgs(precision *int) []string {
	if precision == nil {
		return nil
	}
	return []string{strconv.Itoa(*precision)}
}

// mapPostgresType translates a pg_catalog udt name into the schema scalar
// plus its native type annotation. Types without an SDL equivalent come back
// unsupported and render as Unsupported("...").
func mapPostgresType(udtName string, charMaxLength, numericPrecision, numericScale, datetimePrecision *int, enumNames map[string]string) mappedType {
	switch udtName {
	case "int2":
		return mappedType{name: "Int", native: nativeType("SmallInt")}
	case "int4":
		return mappedType{name: "Int"}
	case "int8":
		return mappedType{name: "BigInt"}
	case "oid":
		return mappedType{name: "Int", native: nativeType("Oid")}
	case "float4":
		return mappedType{name: "Float", native: nativeType("Real")}
	case "float8":
		return mappedType{name: "Float"}
	case "numeric":
		if numericPrecision != nil && numericScale != nil {
			return mappedType{name: "Decimal", native: nativeType("Decimal", strconv.Itoa(*numericPrecision), strconv.Itoa(*numericScale))}
		}
		return mappedType{name: "Decimal"}
	case "money":
		return mappedType{name: "Decimal", native: nativeType("Money")}
	case "bool":
		return mappedType{name: "Boolean"}
	case "text":
		return mappedType{name: "String"}
	case "varchar":
		if charMaxLength != nil {
			return mappedType{name: "String", native: nativeType("VarChar", strconv.Itoa(*charMaxLength))}
		}
		return mappedType{name: "String", native: nativeType("VarChar")}
	case "bpchar":
		if charMaxLength != nil {
			return mappedType{name: "String", native: nativeType("Char", strconv.Itoa(*charMaxLength))}
		}
		return mappedType{name: "String", native: nativeType("Char")}
	case "uuid":
		return mappedType{name: "String", native: nativeType("Uuid")}
	case "inet":
		return mappedType{name: "String", native: nativeType("Inet")}
	case "date":
		return mappedType{name: "DateTime", native: nativeType("Date")}
	case "timestamp":
		return mappedType{name: "DateTime", native: nativeType("Timestamp", precisionArgs(datetimePrecision)...)}
	case "timestamptz":
		return mappedType{name: "DateTime", native: nativeType("Timestamptz", precisionArgs(datetimePrecision)...)}
	case "time":
		return mappedType{name: "DateTime", native: nativeType("Time", precisionArgs(datetimePrecision)...)}
	case "timetz":
		return mappedType{name: "DateTime", native: nativeType("Timetz", precisionArgs(datetimePrecision)...)}
	case "bytea":
		return mappedType{name: "Bytes"}
	case "json":
		return mappedType{name: "Json", native: nativeType("Json")}
	case "jsonb":
		return mappedType{name: "Json"}
	default:
		if enumName, ok := enumNames[udtName]; ok {
			return mappedType{name: enumName, isEnum: true}
		}
		return mappedType{name: udtName, unsupported: true}
	}
}

// parsePostgresDefault translates a column_default expression. Sequence
// defaults become autoincrement(), clock defaults become now(), literals are
// unwrapped from their cast, and everything else is preserved verbatim
// inside dbgenerated(...).
func parsePostgresDefault(raw string, isEnum bool) *dml.DefaultValue {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "", strings.EqualFold(trimmed, "NULL"):
		return nil
	case strings.Contains(trimmed, "nextval("):
		return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "autoincrement"}
	case strings.EqualFold(trimmed, "now()"),
		strings.HasPrefix(strings.ToUpper(trimmed), "CURRENT_TIMESTAMP"):
		return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"}
	}

	if literal, ok := unquoteSQLLiteral(trimmed); ok {
		if isEnum {
			return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: literal}
		}
		return &dml.DefaultValue{Kind: dml.DefaultText, Value: literal}
	}

	// Casts on bare literals, e.g. 4.1::numeric or false::boolean.
	bare := trimmed
	if idx := strings.Index(bare, "::"); idx >= 0 {
		bare = bare[:idx]
	}
	if isNumericLiteral(bare) || bare == "true" || bare == "false" {
		return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: bare}
	}

	return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "dbgenerated", Args: []string{trimmed}}
}

// unquoteSQLLiteral unwraps a single-quoted SQL literal, tolerating a
// trailing cast ('berlin'::text) and doubled-quote escapes.
func unquoteSQLLiteral(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '\'' {
		return "", false
	}

	var sb strings.Builder
	for i := 1; i < len(raw); i++ {
		if raw[i] != '\'' {
			sb.WriteByte(raw[i])
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '\'' {
			sb.WriteByte('\'')
			i++
			continue
		}
		rest := raw[i+1:]
		if rest == "" || strings.HasPrefix(rest, "::") {
			return sb.String(), true
		}
		return "", false
	}
	return "", false
}

func isNumericLiteral(value string) bool {
	if value == "" || value == "-" || value == "." {
		return false
	}
	dot := false
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

func (i *PostgresIntrospector) introspectPrimaryKey(ctx context.Context, tableName string) (*dml.PrimaryKeyDefinition, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.table_constraints tc
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE kcu.table_schema = $1
			AND kcu.table_name = $2
			AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position
	`

	rows, err := i.conn.Query(ctx, query, i.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		fields = append(fields, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, nil
	}
	return &dml.PrimaryKeyDefinition{Fields: fields}, nil
}

func (i *PostgresIntrospector) introspectForeignKeys(ctx context.Context, tableName string, model *dml.Model) error {
	query := `
		SELECT
			tc.constraint_name,
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name,
			rc.delete_rule,
			rc.update_rule
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints AS rc
			ON rc.constraint_name = tc.constraint_name
			AND rc.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY tc.constraint_name, kcu.ordinal_position
	`

	rows, err := i.conn.Query(ctx, query, i.schema, tableName)
	if err != nil {
		return err
	}
	defer rows.Close()

	var keys []foreignKey
	for rows.Next() {
		var constraintName, column, foreignTable, foreignColumn, deleteRule, updateRule string
		if err := rows.Scan(&constraintName, &column, &foreignTable, &foreignColumn, &deleteRule, &updateRule); err != nil {
			return err
		}
		keys = appendForeignKeyColumn(keys, foreignKey{
			name:       constraintName,
			target:     foreignTable,
			columns:    []string{column},
			references: []string{foreignColumn},
			onDelete:   mapReferentialAction(deleteRule),
			onUpdate:   mapReferentialAction(updateRule),
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	attachForeignKeys(model, keys)
	return nil
}

func (i *PostgresIntrospector) introspectIndexes(ctx context.Context, tableName string) ([]dml.IndexDefinition, error) {
	query := `
		SELECT
			i.relname AS index_name,
			ix.indisunique AS is_unique,
			array_agg(a.attname ORDER BY array_position(ix.indkey, a.attnum)) AS column_names
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE t.relkind = 'r'
			AND n.nspname = $1
			AND t.relname = $2
			AND NOT ix.indisprimary
		GROUP BY i.relname, ix.indisunique
		ORDER BY i.relname
	`

	rows, err := i.conn.Query(ctx, query, i.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []dml.IndexDefinition
	for rows.Next() {
		var index dml.IndexDefinition
		if err := rows.Scan(&index.Name, &index.IsUnique, &index.Fields); err != nil {
			return nil, err
		}
		indexes = append(indexes, index)
	}

	return indexes, rows.Err()
}
