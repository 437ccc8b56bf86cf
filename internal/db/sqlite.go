package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"sdlgen/internal/dml"
)

// SQLiteIntrospector reads PRAGMA metadata from a SQLite database file and
// produces the legacy datamodel.
type SQLiteIntrospector struct {
	db *sql.DB
}

// NewSQLiteIntrospector opens a SQLite database file and verifies it.
func NewSQLiteIntrospector(ctx context.Context, path string) (*SQLiteIntrospector, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLiteIntrospector{db: db}, nil
}

// Close closes the database connection.
func (i *SQLiteIntrospector) Close() error {
	return i.db.Close()
}

// Datasource returns the descriptor shared by every block the introspection
// produces.
func (i *SQLiteIntrospector) Datasource() *dml.Datasource {
	return &dml.Datasource{Name: "db", Provider: "sqlite"}
}

// Introspect builds the legacy datamodel for the requested tables. An empty
// list means every user table. SQLite has no enum or composite types, so
// only models come back.
func (i *SQLiteIntrospector) Introspect(ctx context.Context, tables []string) (*dml.Datamodel, error) {
	datamodel := &dml.Datamodel{}

	tableNames, err := i.tableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	for _, tableName := range tableNames {
		model, err := i.introspectTable(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect table %s: %w", tableName, err)
		}
		datamodel.Models = append(datamodel.Models, *model)
	}

	addBackRelations(datamodel)
	return datamodel, nil
}

func (i *SQLiteIntrospector) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := i.db.QueryContext(ctx, query)
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

func (i *SQLiteIntrospector) introspectTable(ctx context.Context, tableName string) (*dml.Model, error) {
	model := &dml.Model{Name: tableName}
	if !validIdentifier(tableName) {
		model.Name = sanitizeIdentifier(tableName)
		model.DatabaseName = tableName
	}

	pkFields, err := i.introspectColumns(ctx, tableName, model)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect columns: %w", err)
	}
	if len(pkFields) > 0 {
		model.PrimaryKey = &dml.PrimaryKeyDefinition{Fields: pkFields}
	}

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

// introspectColumns reads PRAGMA table_info and returns the primary key
// columns in key order.
func (i *SQLiteIntrospector) introspectColumns(ctx context.Context, tableName string, model *dml.Model) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type pkColumn struct {
		name string
		rank int
	}
	var pkColumns []pkColumn

	for rows.Next() {
		var cid, notNull, pk int
		var name, declType string
		var columnDefault sql.NullString

		if err := rows.Scan(&cid, &name, &declType, &notNull, &columnDefault, &pk); err != nil {
			return nil, err
		}

		field := &dml.ScalarField{Name: name}
		if notNull == 0 {
			field.Arity = dml.Optional
		}

		mapped := mapSQLiteType(declType)
		field.Type = mapped.name
		field.IsUnsupported = mapped.unsupported

		if columnDefault.Valid {
			field.Default = parseSQLiteDefault(columnDefault.String, field.Type)
		}
		// INTEGER PRIMARY KEY columns alias the rowid and autoincrement.
		if pk > 0 && strings.EqualFold(declType, "INTEGER") {
			field.Default = &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "autoincrement"}
		}

		markInvalidColumnName(field)
		model.Fields = append(model.Fields, field)

		if pk > 0 {
			pkColumns = append(pkColumns, pkColumn{name: name, rank: pk})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fields := make([]string, len(pkColumns))
	for _, column := range pkColumns {
		fields[column.rank-1] = column.name
	}
	return fields, nil
}

// mapSQLiteType applies SQLite's type affinity rules to a declared column
// type. An empty declaration has blob affinity.
func mapSQLiteType(declType string) mappedType {
	upper := strings.ToUpper(declType)
	switch {
	case upper == "":
		return mappedType{name: "Bytes"}
	case strings.Contains(upper, "INT"):
		return mappedType{name: "Int"}
	case strings.Contains(upper, "CHAR"), strings.Contains(upper, "CLOB"), strings.Contains(upper, "TEXT"):
		return mappedType{name: "String"}
	case strings.Contains(upper, "BLOB"):
		return mappedType{name: "Bytes"}
	case strings.Contains(upper, "REAL"), strings.Contains(upper, "FLOA"), strings.Contains(upper, "DOUB"):
		return mappedType{name: "Float"}
	case strings.Contains(upper, "BOOL"):
		return mappedType{name: "Boolean"}
	case strings.Contains(upper, "NUMERIC"), strings.Contains(upper, "DECIMAL"):
		return mappedType{name: "Decimal"}
	case strings.Contains(upper, "DATE"), strings.Contains(upper, "TIME"):
		return mappedType{name: "DateTime"}
	default:
		return mappedType{name: declType, unsupported: true}
	}
}

// parseSQLiteDefault translates a dflt_value expression, which SQLite
// reports verbatim from the CREATE TABLE statement.
func parseSQLiteDefault(raw, scalarType string) *dml.DefaultValue {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "", strings.EqualFold(trimmed, "NULL"):
		return nil
	case strings.EqualFold(trimmed, "CURRENT_TIMESTAMP"):
		return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "now"}
	}

	if literal, ok := unquoteSQLLiteral(trimmed); ok {
		return &dml.DefaultValue{Kind: dml.DefaultText, Value: literal}
	}
	if scalarType == "Boolean" {
		switch trimmed {
		case "1":
			return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "true"}
		case "0":
			return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: "false"}
		}
	}
	if isNumericLiteral(trimmed) || trimmed == "true" || trimmed == "false" {
		return &dml.DefaultValue{Kind: dml.DefaultConstant, Value: trimmed}
	}

	return &dml.DefaultValue{Kind: dml.DefaultFunction, Value: "dbgenerated", Args: []string{trimmed}}
}

func (i *SQLiteIntrospector) introspectForeignKeys(ctx context.Context, tableName string, model *dml.Model) error {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", tableName))
	if err != nil {
		return err
	}
	defer rows.Close()

	var keys []foreignKey
	for rows.Next() {
		var id, seq int
		var table, from, onUpdate, onDelete, match string
		var to sql.NullString

		if err := rows.Scan(&id, &seq, &table, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return err
		}

		// `to` is NULL when the key references the target's primary key
		// implicitly; fall back to the column name.
		referenced := from
		if to.Valid {
			referenced = to.String
		}

		keys = appendForeignKeyColumn(keys, foreignKey{
			name:       fmt.Sprintf("%s_fk_%d", tableName, id),
			target:     table,
			columns:    []string{from},
			references: []string{referenced},
			onDelete:   mapReferentialAction(onDelete),
			onUpdate:   mapReferentialAction(onUpdate),
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	attachForeignKeys(model, keys)
	return nil
}

func (i *SQLiteIntrospector) introspectIndexes(ctx context.Context, tableName string) ([]dml.IndexDefinition, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list(%q)", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type indexEntry struct {
		name   string
		unique bool
	}
	var entries []indexEntry
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}
		// Skip the indexes SQLite creates internally for PRIMARY KEY and
		// UNIQUE column constraints; the column metadata already covers
		// primary keys, and "u"-origin indexes still need rendering.
		if origin == "pk" {
			continue
		}
		entries = append(entries, indexEntry{name: name, unique: unique == 1})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var indexes []dml.IndexDefinition
	for _, entry := range entries {
		fields, err := i.indexColumns(ctx, entry.name)
		if err != nil {
			return nil, err
		}
		index := dml.IndexDefinition{Fields: fields, IsUnique: entry.unique}
		// Auto-generated constraint indexes keep their implicit name out of
		// the schema.
		if !strings.HasPrefix(entry.name, "sqlite_autoindex_") {
			index.Name = entry.name
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

func (i *SQLiteIntrospector) indexColumns(ctx context.Context, indexName string) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info(%q)", indexName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []string
	for rows.Next() {
		var seqno, cid int
		var name sql.NullString
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}
		if name.Valid {
			fields = append(fields, name.String)
		}
	}
	return fields, rows.Err()
}
