package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"sdlgen/internal/dml"
)

// MySQLIntrospector reads information_schema metadata from a live MySQL
// database and produces the legacy datamodel.
type MySQLIntrospector struct {
	db     *sql.DB
	dbName string
}

// NewMySQLIntrospector connects to MySQL using a go-sql-driver DSN
// (user:pass@tcp(host:port)/dbname) and verifies the connection.
func NewMySQLIntrospector(ctx context.Context, dsn string) (*MySQLIntrospector, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("connection string must name a database")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &MySQLIntrospector{db: db, dbName: cfg.DBName}, nil
}

// Close closes the database connection.
func (i *MySQLIntrospector) Close() error {
	return i.db.Close()
}

// Datasource returns the descriptor shared by every block the introspection
// produces.
func (i *MySQLIntrospector) Datasource() *dml.Datasource {
	return &dml.Datasource{Name: "db", Provider: "mysql"}
}

// Introspect builds the legacy datamodel for the requested tables. An empty
// list means every base table in the database. MySQL has no standalone enum
// types: column-level enum definitions are synthesized into enums named
// table_column.
func (i *MySQLIntrospector) Introspect(ctx context.Context, tables []string) (*dml.Datamodel, error) {
	datamodel := &dml.Datamodel{}

	tableNames, err := i.tableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	for _, tableName := range tableNames {
		model, enums, err := i.introspectTable(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect table %s: %w", tableName, err)
		}
		datamodel.Models = append(datamodel.Models, *model)
		datamodel.Enums = append(datamodel.Enums, enums...)
	}

	addBackRelations(datamodel)
	return datamodel, nil
}

func (i *MySQLIntrospector) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`

	rows, err := i.db.QueryContext(ctx, query, i.dbName)
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

func (i *MySQLIntrospector) introspectTable(ctx context.Context, tableName string) (*dml.Model, []dml.Enum, error) {
	model := &dml.Model{Name: tableName}
	if !validIdentifier(tableName) {
		model.Name = sanitizeIdentifier(tableName)
		model.DatabaseName = tableName
	}

	enums, err := i.introspectColumns(ctx, tableName, model)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to introspect columns: %w", err)
	}

	pk, err := i.introspectPrimaryKey(ctx, tableName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to introspect primary key: %w", err)
	}
	model.PrimaryKey = pk

	if err := i.introspectForeignKeys(ctx, tableName, model); err != nil {
		return nil, nil, fmt.Errorf("failed to introspect foreign keys: %w", err)
	}

	indexes, err := i.introspectIndexes(ctx, tableName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to introspect indexes: %w", err)
	}
	model.Indexes = indexes

	return model, enums, nil
}

func (i *MySQLIntrospector) introspectColumns(ctx context.Context, tableName string, model *dml.Model) ([]dml.Enum, error) {
	query := `
		SELECT
			COLUMN_NAME,
			DATA_TYPE,
			COLUMN_TYPE,
			IS_NULLABLE,
			COLUMN_DEFAULT,
			CHARACTER_MAXIMUM_LENGTH,
			NUMERIC_PRECISION,
			NUMERIC_SCALE,
			DATETIME_PRECISION,
			EXTRA,
			COLUMN_COMMENT
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := i.db.QueryContext(ctx, query, i.dbName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enums []dml.Enum
	for rows.Next() {
		var name, dataType, columnType, nullable, extra, comment string
		var columnDefault sql.NullString
		var charMaxLength, numericPrecision, numericScale, datetimePrecision sql.NullInt64

		if err := rows.Scan(&name, &dataType, &columnType, &nullable, &columnDefault,
			&charMaxLength, &numericPrecision, &numericScale, &datetimePrecision,
			&extra, &comment); err != nil {
			return nil, err
		}

		field := &dml.ScalarField{Name: name, Documentation: comment}
		if nullable == "YES" {
			field.Arity = dml.Optional
		}

		if dataType == "enum" {
			enum := synthesizeColumnEnum(model.Name, name, columnType)
			enums = append(enums, enum)
			field.Type = enum.Name
			field.IsEnum = true
		} else {
			mapped := mapMySQLType(dataType, columnType,
				nullableInt(charMaxLength), nullableInt(numericPrecision),
				nullableInt(numericScale), nullableInt(datetimePrecision))
			field.Type = mapped.name
			field.NativeType = mapped.native
			field.IsUnsupported = mapped.unsupported
		}

		extraLower := strings.ToLower(extra)
		switch {
		case strings.Contains(extraLower, "auto_increment"):
			field.Default = &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "autoincrement"}
		case columnDefault.Valid:
			field.Default = parseMySQLDefault(columnDefault.String, field.Type, field.IsEnum)
		}
		if strings.Contains(extraLower, "on update current_timestamp") {
			field.IsUpdatedAt = true
		}

		markInvalidColumnName(field)
		model.Fields = append(model.Fields, field)
	}

	return enums, rows.Err()
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// synthesizeColumnEnum turns a column-level enum('a','b') definition into a
// standalone enum named table_column, the convention the schema language
// needs because it has no inline enums.
func synthesizeColumnEnum(modelName, columnName, columnType string) dml.Enum {
	enum := dml.Enum{Name: modelName + "_" + columnName}
	if !validIdentifier(enum.Name) {
		enum.DatabaseName = enum.Name
		enum.Name = sanitizeIdentifier(enum.Name)
	}
	for _, label := range parseEnumLabels(columnType) {
		value := dml.EnumValue{Name: label}
		if !validIdentifier(label) {
			value.Name = sanitizeIdentifier(label)
			value.DatabaseName = label
		}
		enum.Values = append(enum.Values, value)
	}
	return enum
}

// parseEnumLabels extracts the labels from an enum('a','b','it''s')
// COLUMN_TYPE expression.
func parseEnumLabels(columnType string) []string {
	open := strings.IndexByte(columnType, '(')
	end := strings.LastIndexByte(columnType, ')')
	if open < 0 || end <= open {
		return nil
	}

	var labels []string
	body := columnType[open+1 : end]
	for i := 0; i < len(body); i++ {
		if body[i] != '\'' {
			continue
		}
		var sb strings.Builder
		for i++; i < len(body); i++ {
			if body[i] == '\'' {
				if i+1 < len(body) && body[i+1] == '\'' {
					sb.WriteByte('\'')
					i++
					continue
				}
				break
			}
			sb.WriteByte(body[i])
		}
		labels = append(labels, sb.String())
	}
	return labels
}

// mapMySQLType translates an information_schema data type into the schema
// scalar plus its native type annotation.
func mapMySQLType(dataType, columnType string, charMaxLength, numericPrecision, numericScale, datetimePrecision *int) mappedType {
	unsigned := strings.Contains(columnType, "unsigned")

	switch dataType {
	case "tinyint":
		if strings.HasPrefix(columnType, "tinyint(1)") {
			return mappedType{name: "Boolean", native: nativeType("TinyInt")}
		}
		if unsigned {
			return mappedType{name: "Int", native: nativeType("UnsignedTinyInt")}
		}
		return mappedType{name: "Int", native: nativeType("TinyInt")}
	case "smallint":
		if unsigned {
			return mappedType{name: "Int", native: nativeType("UnsignedSmallInt")}
		}
		return mappedType{name: "Int", native: nativeType("SmallInt")}
	case "mediumint":
		if unsigned {
			return mappedType{name: "Int", native: nativeType("UnsignedMediumInt")}
		}
		return mappedType{name: "Int", native: nativeType("MediumInt")}
	case "int":
		if unsigned {
			return mappedType{name: "Int", native: nativeType("UnsignedInt")}
		}
		return mappedType{name: "Int"}
	case "bigint":
		if unsigned {
			return mappedType{name: "BigInt", native: nativeType("UnsignedBigInt")}
		}
		return mappedType{name: "BigInt"}
	case "float":
		return mappedType{name: "Float", native: nativeType("Float")}
	case "double":
		return mappedType{name: "Float"}
	case "decimal":
		if numericPrecision != nil && numericScale != nil {
			return mappedType{name: "Decimal", native: nativeType("Decimal", strconv.Itoa(*numericPrecision), strconv.Itoa(*numericScale))}
		}
		return mappedType{name: "Decimal"}
	case "char":
		if charMaxLength != nil {
			return mappedType{name: "String", native: nativeType("Char", strconv.Itoa(*charMaxLength))}
		}
		return mappedType{name: "String", native: nativeType("Char")}
	case "varchar":
		if charMaxLength != nil {
			return mappedType{name: "String", native: nativeType("VarChar", strconv.Itoa(*charMaxLength))}
		}
		return mappedType{name: "String", native: nativeType("VarChar")}
	case "tinytext":
		return mappedType{name: "String", native: nativeType("TinyText")}
	case "text":
		return mappedType{name: "String", native: nativeType("Text")}
	case "mediumtext":
		return mappedType{name: "String", native: nativeType("MediumText")}
	case "longtext":
		return mappedType{name: "String", native: nativeType("LongText")}
	case "date":
		return mappedType{name: "DateTime", native: nativeType("Date")}
	case "datetime":
		return mappedType{name: "DateTime", native: nativeType("DateTime", precisionArgs(datetimePrecision)...)}
	case "timestamp":
		return mappedType{name: "DateTime", native: nativeType("Timestamp", precisionArgs(datetimePrecision)...)}
	case "time":
		return mappedType{name: "DateTime", native: nativeType("Time", precisionArgs(datetimePrecision)...)}
	case "year":
		return mappedType{name: "Int", native: nativeType("Year")}
	case "tinyblob":
		return mappedType{name: "Bytes", native: nativeType("TinyBlob")}
	case "blob":
		return mappedType{name: "Bytes", native: nativeType("Blob")}
	case "mediumblob":
		return mappedType{name: "Bytes", native: nativeType("MediumBlob")}
	case "longblob":
		return mappedType{name: "Bytes", native: nativeType("LongBlob")}
	case "binary":
		if charMaxLength != nil {
			return mappedType{name: "Bytes", native: nativeType("Binary", strconv.Itoa(*charMaxLength))}
		}
		return mappedType{name: "Bytes", native: nativeType("Binary")}
	case "varbinary":
		if charMaxLength != nil {
			return mappedType{name: "Bytes", native: nativeType("VarBinary", strconv.Itoa(*charMaxLength))}
		}
		return mappedType{name: "Bytes", native: nativeType("VarBinary")}
	case "bit":
		return mappedType{name: "Bytes", native: nativeType("Bit")}
	case "json":
		return mappedType{name: "Json"}
	default:
		return mappedType{name: dataType, unsupported: true}
	}
}

// parseMySQLDefault translates a COLUMN_DEFAULT value. MySQL stores literal
// defaults unquoted, so the scalar type decides whether the value is a text
// literal, a constant or a generated expression.
func parseMySQLDefault(raw, scalarType string, isEnum bool) *dml.DefaultValue {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "", strings.EqualFold(trimmed, "NULL"):
		return nil
	case strings.HasPrefix(strings.ToUpper(trimmed), "CURRENT_TIMESTAMP"),
		strings.EqualFold(trimmed, "now()"):
		return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"}
	case isEnum:
		return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: trimmed}
	}

	switch scalarType {
	case "Int", "BigInt", "Float", "Decimal":
		if isNumericLiteral(trimmed) {
			return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: trimmed}
		}
	case "Boolean":
		switch trimmed {
		case "1":
			return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "true"}
		case "0":
			return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "false"}
		}
	case "String", "DateTime":
		if literal, ok := unquoteSQLLiteral(trimmed); ok {
			return &dml.DefaultValue{Kind: dml.DefaultText, Value: literal}
		}
		// MySQL 8 reports expression defaults parenthesized; plain values
		// arrive bare.
		if !strings.HasPrefix(trimmed, "(") {
			return &dml.DefaultValue{Kind: dml.DefaultText, Value: trimmed}
		}
	}

	return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "dbgenerated", Args: []string{trimmed}}
}

func (i *MySQLIntrospector) introspectPrimaryKey(ctx context.Context, tableName string) (*dml.PrimaryKeyDefinition, error) {
	query := `
		SELECT COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND CONSTRAINT_NAME = 'PRIMARY'
		ORDER BY ORDINAL_POSITION
	`

	rows, err := i.db.QueryContext(ctx, query, i.dbName, tableName)
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

func (i *MySQLIntrospector) introspectForeignKeys(ctx context.Context, tableName string, model *dml.Model) error {
	query := `
		SELECT
			kcu.CONSTRAINT_NAME,
			kcu.COLUMN_NAME,
			kcu.REFERENCED_TABLE_NAME,
			kcu.REFERENCED_COLUMN_NAME,
			rc.DELETE_RULE,
			rc.UPDATE_RULE
		FROM information_schema.KEY_COLUMN_USAGE kcu
		JOIN information_schema.REFERENTIAL_CONSTRAINTS rc
			ON rc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			AND rc.CONSTRAINT_SCHEMA = kcu.TABLE_SCHEMA
		WHERE kcu.TABLE_SCHEMA = ?
			AND kcu.TABLE_NAME = ?
			AND kcu.REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION
	`

	rows, err := i.db.QueryContext(ctx, query, i.dbName, tableName)
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

func (i *MySQLIntrospector) introspectIndexes(ctx context.Context, tableName string) ([]dml.IndexDefinition, error) {
	query := `
		SELECT INDEX_NAME, NON_UNIQUE, COLUMN_NAME, SUB_PART
		FROM information_schema.STATISTICS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND INDEX_NAME != 'PRIMARY'
		ORDER BY INDEX_NAME, SEQ_IN_INDEX
	`

	rows, err := i.db.QueryContext(ctx, query, i.dbName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []dml.IndexDefinition
	for rows.Next() {
		var indexName, column string
		var nonUnique int
		var subPart sql.NullInt64
		if err := rows.Scan(&indexName, &nonUnique, &column, &subPart); err != nil {
			return nil, err
		}

		if n := len(indexes); n > 0 && indexes[n-1].Name == indexName {
			indexes[n-1].Fields = append(indexes[n-1].Fields, column)
			// Prefix lengths only render on single-field definitions.
			indexes[n-1].Length = nil
			continue
		}

		index := dml.IndexDefinition{
			Name:     indexName,
			IsUnique: nonUnique == 0,
			Fields:   []string{column},
			Length:   nullableInt(subPart),
		}
		indexes = append(indexes, index)
	}

	return indexes, rows.Err()
}
