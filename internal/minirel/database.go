package minirel

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Database is the catalog: the root mapping from table name to table and the
// engine's entire state. It is created empty, passed explicitly to every
// caller and torn down with the process; nothing survives a restart.
//
// A single statement holds the catalog lock for its entire duration, so a
// multi-client front end never observes two statements' effects interleaved.
type Database struct {
	tables map[string]*Table
	dbLock *sync.RWMutex
	logger *zap.Logger
}

func NewDatabase(logger *zap.Logger) *Database {
	return &Database{
		tables: make(map[string]*Table),
		dbLock: new(sync.RWMutex),
		logger: logger,
	}
}

// CreateTable declares a new table. Tables must be declared before use;
// there is no implicit creation on first insert.
func (d *Database) CreateTable(ctx context.Context, name string, columns []Column) (*Table, error) {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	return d.createTable(ctx, name, columns)
}

func (d *Database) createTable(ctx context.Context, name string, columns []Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}
	if _, ok := d.tables[name]; ok {
		return nil, fmt.Errorf("%w: %s", errTableAlreadyExists, name)
	}
	if len(columns) == 0 {
		return nil, SchemaMismatchError{Table: name, Detail: "table needs at least one column"}
	}
	seen := make(map[string]struct{}, len(columns))
	for _, aColumn := range columns {
		if aColumn.Name == idColumnName {
			return nil, SchemaMismatchError{
				Table:  name,
				Detail: fmt.Sprintf("column name %q is reserved for the system id column", idColumnName),
			}
		}
		if _, ok := seen[aColumn.Name]; ok {
			return nil, SchemaMismatchError{
				Table:  name,
				Detail: fmt.Sprintf("duplicate column %q", aColumn.Name),
			}
		}
		seen[aColumn.Name] = struct{}{}
	}

	d.logger.Sugar().With("name", name).Debug("creating table")

	aTable := NewTable(d.logger, name, columns)
	d.tables[name] = aTable
	return aTable, nil
}

func (d *Database) dropTable(ctx context.Context, name string) error {
	if _, ok := d.tables[name]; !ok {
		return UnknownTableError{Table: name}
	}

	d.logger.Sugar().With("name", name).Debug("dropping table")

	delete(d.tables, name)
	return nil
}

// GetTable looks a table up without taking the catalog lock; callers outside
// a statement should prefer ExecuteStatement.
func (d *Database) GetTable(name string) (*Table, bool) {
	aTable, ok := d.tables[name]
	return aTable, ok
}

// TableSizes reports the row count of every table, keyed by table name. The
// snapshot is taken under the shared catalog lock so concurrent writers never
// show through mid-statement.
func (d *Database) TableSizes(ctx context.Context) map[string]int {
	d.dbLock.RLock()
	defer d.dbLock.RUnlock()

	sizes := make(map[string]int, len(d.tables))
	for name, aTable := range d.tables {
		sizes[name] = aTable.NumRows()
	}
	return sizes
}

// ListTableNames lists names of all tables in the database, sorted.
func (d *Database) ListTableNames(ctx context.Context) []string {
	d.dbLock.RLock()
	defer d.dbLock.RUnlock()

	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Database) resolveTable(name string) (*Table, error) {
	aTable, ok := d.tables[name]
	if !ok {
		return nil, UnknownTableError{Table: name}
	}
	return aTable, nil
}

// ExecuteStatement executes a single structured statement and returns either
// a row set (SELECT) or an affected-row count. Reads share the catalog lock,
// writes hold it exclusively.
func (d *Database) ExecuteStatement(ctx context.Context, stmt Statement) (StatementResult, error) {
	if stmt.Kind.ReadOnly() {
		d.dbLock.RLock()
		defer d.dbLock.RUnlock()
	} else {
		d.dbLock.Lock()
		defer d.dbLock.Unlock()
	}

	switch stmt.Kind {
	case CreateTable:
		_, err := d.createTable(ctx, stmt.TableName, stmt.Columns)
		return StatementResult{}, err
	case DropTable:
		return StatementResult{}, d.dropTable(ctx, stmt.TableName)
	case Insert:
		return d.executeInsert(ctx, stmt)
	case Select:
		return d.executeSelect(ctx, stmt)
	case Update:
		return d.executeUpdate(ctx, stmt)
	case Delete:
		return d.executeDelete(ctx, stmt)
	}
	return StatementResult{}, errUnrecognizedStatementType
}

func (d *Database) executeInsert(ctx context.Context, stmt Statement) (StatementResult, error) {
	aTable, err := d.resolveTable(stmt.TableName)
	if err != nil {
		return StatementResult{}, err
	}
	if len(stmt.Inserts) == 0 {
		return StatementResult{}, fmt.Errorf("no rows to insert")
	}

	fields := stmt.Fields
	if len(fields) == 0 {
		fields = fieldsFromColumns(aTable.Columns...)
	}

	rows := make([]map[string]Value, 0, len(stmt.Inserts))
	for _, anInsert := range stmt.Inserts {
		if len(anInsert) != len(fields) {
			return StatementResult{}, SchemaMismatchError{
				Table:  aTable.Name,
				Detail: fmt.Sprintf("%d values for %d columns", len(anInsert), len(fields)),
			}
		}
		values := make(map[string]Value, len(fields))
		for i, aField := range fields {
			values[aField.Name] = anInsert[i]
		}
		rows = append(rows, values)
	}

	ids, err := aTable.InsertRows(ctx, rows)
	if err != nil {
		return StatementResult{}, err
	}
	return StatementResult{
		RowsAffected: len(ids),
		LastInsertID: ids[len(ids)-1],
	}, nil
}

func (d *Database) executeUpdate(ctx context.Context, stmt Statement) (StatementResult, error) {
	aTable, err := d.resolveTable(stmt.TableName)
	if err != nil {
		return StatementResult{}, err
	}
	if err := validateConditionFields(aTable.Name, Row{Columns: aTable.outputColumns()}, stmt.Conditions); err != nil {
		return StatementResult{}, err
	}

	count, err := aTable.Update(ctx, conditionsPredicate(stmt.Conditions), stmt.Updates)
	if err != nil {
		return StatementResult{}, err
	}
	return StatementResult{RowsAffected: count}, nil
}

func (d *Database) executeDelete(ctx context.Context, stmt Statement) (StatementResult, error) {
	aTable, err := d.resolveTable(stmt.TableName)
	if err != nil {
		return StatementResult{}, err
	}
	if err := validateConditionFields(aTable.Name, Row{Columns: aTable.outputColumns()}, stmt.Conditions); err != nil {
		return StatementResult{}, err
	}

	count, err := aTable.Delete(ctx, conditionsPredicate(stmt.Conditions))
	if err != nil {
		return StatementResult{}, err
	}
	return StatementResult{RowsAffected: count}, nil
}

// conditionsPredicate translates structured WHERE conditions into a row
// predicate. Empty conditions match every row.
func conditionsPredicate(conditions OneOrMore) func(Row) (bool, error) {
	return func(aRow Row) (bool, error) {
		return aRow.CheckOneOrMore(conditions)
	}
}

// validateConditionFields resolves every column reference in the conditions
// against a prototype row carrying the source schema.
func validateConditionFields(tableLabel string, proto Row, conditions OneOrMore) error {
	for _, aConditionGroup := range conditions {
		for _, aCondition := range aConditionGroup {
			for _, anOperand := range aCondition.Operands() {
				if !anOperand.IsField() {
					continue
				}
				if _, idx := proto.GetColumn(anOperand.Field.Name); idx < 0 {
					return UnknownColumnError{Table: tableLabel, Column: anOperand.Field.Name}
				}
			}
		}
	}
	return nil
}
