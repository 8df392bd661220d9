package minirel

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Table is an ordered collection of rows sharing a column schema. Row storage
// preserves insertion order across deletes; the next-id counter only ever
// grows, so freed ids are never handed out again.
type Table struct {
	logger  *zap.Logger
	Name    string
	Columns []Column
	rows    []Row
	nextID  RowID
}

func NewTable(logger *zap.Logger, name string, columns []Column) *Table {
	return &Table{
		logger:  logger,
		Name:    name,
		Columns: columns,
	}
}

func (t *Table) ColumnByName(name string) (Column, bool) {
	idx := t.columnIdx(name)
	if idx < 0 {
		return Column{}, false
	}
	return t.Columns[idx], true
}

func (t *Table) columnIdx(name string) int {
	for i, aColumn := range t.Columns {
		if aColumn.Name == name {
			return i
		}
	}
	return -1
}

// outputColumns is the table's result schema: the implicit id column first,
// then declared columns in declaration order.
func (t *Table) outputColumns() []Column {
	columns := make([]Column, 0, len(t.Columns)+1)
	columns = append(columns, Column{Kind: Integer, Unique: true, Name: idColumnName})
	columns = append(columns, t.Columns...)
	return columns
}

func (t *Table) NumRows() int {
	return len(t.rows)
}

// materializeRow produces a detached copy of a stored row with the id column
// in the leading position.
func (t *Table) materializeRow(i int) Row {
	stored := t.rows[i]
	values := make([]Value, 0, len(stored.Values)+1)
	values = append(values, NewInteger(int64(stored.Key)))
	values = append(values, stored.Values...)
	return Row{
		Key:     stored.Key,
		Columns: t.outputColumns(),
		Values:  values,
	}
}

// normalizeValues validates a column to value mapping against the declared
// schema and returns values in declared column order, coerced to the column
// kinds. Every declared column must be present, the system id column must
// not be, and no undeclared column is accepted.
func (t *Table) normalizeValues(values map[string]Value) ([]Value, error) {
	if _, ok := values[idColumnName]; ok {
		return nil, SchemaMismatchError{
			Table:  t.Name,
			Detail: fmt.Sprintf("system column %q cannot be set explicitly", idColumnName),
		}
	}
	for name := range values {
		if t.columnIdx(name) < 0 {
			return nil, SchemaMismatchError{
				Table:  t.Name,
				Detail: fmt.Sprintf("column %q is not declared", name),
			}
		}
	}
	normalized := make([]Value, len(t.Columns))
	for i, aColumn := range t.Columns {
		aValue, ok := values[aColumn.Name]
		if !ok {
			return nil, SchemaMismatchError{
				Table:  t.Name,
				Detail: fmt.Sprintf("missing value for column %q", aColumn.Name),
			}
		}
		coerced, ok := aValue.coerce(aColumn.Kind)
		if !ok {
			return nil, SchemaMismatchError{
				Table:  t.Name,
				Detail: fmt.Sprintf("column %q expects %s, got %s", aColumn.Name, aColumn.Kind, aValue.Kind),
			}
		}
		normalized[i] = coerced
	}
	return normalized, nil
}

// Insert validates and appends a single row, returning its assigned id.
func (t *Table) Insert(ctx context.Context, values map[string]Value) (RowID, error) {
	ids, err := t.InsertRows(ctx, []map[string]Value{values})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// InsertRows appends multiple rows atomically: every row is validated against
// the schema, the table's live rows and the other rows being inserted before
// any row is committed.
func (t *Table) InsertRows(ctx context.Context, rows []map[string]Value) ([]RowID, error) {
	pending := make([][]Value, 0, len(rows))
	for _, values := range rows {
		normalized, err := t.normalizeValues(values)
		if err != nil {
			return nil, err
		}
		if err := t.checkUnique(normalized, 0); err != nil {
			return nil, err
		}
		for i, aColumn := range t.Columns {
			if !aColumn.Unique {
				continue
			}
			for _, previous := range pending {
				if previous[i] == normalized[i] {
					return nil, ConstraintViolationError{
						Table:  t.Name,
						Column: aColumn.Name,
						Value:  normalized[i],
					}
				}
			}
		}
		pending = append(pending, normalized)
	}

	ids := make([]RowID, 0, len(pending))
	for _, normalized := range pending {
		t.nextID++
		t.rows = append(t.rows, Row{
			Key:     t.nextID,
			Columns: t.Columns,
			Values:  normalized,
		})
		ids = append(ids, t.nextID)
	}

	t.logger.Sugar().With(
		"table", t.Name,
		"rows", len(ids),
	).Debug("inserted rows")

	return ids, nil
}

// Update applies changes to every row satisfying the predicate. The whole
// statement is all-or-nothing: every matching row's merged values are checked
// against the uniqueness constraints first, including collisions the updated
// rows would cause among themselves, and only then are changes applied. A row
// may update into the value it already holds.
func (t *Table) Update(ctx context.Context, predicate func(Row) (bool, error), changes map[string]Value) (int, error) {
	if _, ok := changes[idColumnName]; ok {
		return 0, SchemaMismatchError{
			Table:  t.Name,
			Detail: fmt.Sprintf("system column %q cannot be updated", idColumnName),
		}
	}
	normalized := make(map[int]Value, len(changes))
	for name, aValue := range changes {
		idx := t.columnIdx(name)
		if idx < 0 {
			return 0, UnknownColumnError{Table: t.Name, Column: name}
		}
		coerced, ok := aValue.coerce(t.Columns[idx].Kind)
		if !ok {
			return 0, SchemaMismatchError{
				Table:  t.Name,
				Detail: fmt.Sprintf("column %q expects %s, got %s", name, t.Columns[idx].Kind, aValue.Kind),
			}
		}
		normalized[idx] = coerced
	}

	// Collect matching rows and their prospective values.
	merged := make(map[int][]Value)
	for i := range t.rows {
		matches, err := predicate(t.materializeRow(i))
		if err != nil {
			return 0, err
		}
		if !matches {
			continue
		}
		mergedValues := slices.Clone(t.rows[i].Values)
		for idx, aValue := range normalized {
			mergedValues[idx] = aValue
		}
		merged[i] = mergedValues
	}

	// Validate the prospective table state before touching anything.
	for colIdx, aColumn := range t.Columns {
		if !aColumn.Unique {
			continue
		}
		seen := make(map[Value]RowID, len(t.rows))
		for i := range t.rows {
			aValue := t.rows[i].Values[colIdx]
			if mergedValues, ok := merged[i]; ok {
				aValue = mergedValues[colIdx]
			}
			if _, ok := seen[aValue]; ok {
				return 0, ConstraintViolationError{
					Table:  t.Name,
					Column: aColumn.Name,
					Value:  aValue,
				}
			}
			seen[aValue] = t.rows[i].Key
		}
	}

	for i, mergedValues := range merged {
		t.rows[i].Values = mergedValues
	}

	t.logger.Sugar().With(
		"table", t.Name,
		"rows", len(merged),
	).Debug("updated rows")

	return len(merged), nil
}

// Delete removes every row satisfying the predicate, preserving the relative
// order of survivors. Freed ids are not reused.
func (t *Table) Delete(ctx context.Context, predicate func(Row) (bool, error)) (int, error) {
	kept := make([]Row, 0, len(t.rows))
	count := 0
	for i := range t.rows {
		matches, err := predicate(t.materializeRow(i))
		if err != nil {
			return 0, err
		}
		if matches {
			count++
			continue
		}
		kept = append(kept, t.rows[i])
	}
	t.rows = kept

	t.logger.Sugar().With(
		"table", t.Name,
		"rows", count,
	).Debug("deleted rows")

	return count, nil
}

// Scan returns a fresh iterator over the table's live rows in insertion
// order, reflecting the table state at iteration time. Each row is a
// detached copy with the id column materialized first.
func (t *Table) Scan() Iterator {
	i := 0
	return NewIterator(func(ctx context.Context) (Row, error) {
		if i >= len(t.rows) {
			return Row{}, ErrNoMoreRows
		}
		aRow := t.materializeRow(i)
		i++
		return aRow, nil
	})
}
