package minirel

import (
	"strings"
)

// RowID is the implicit system `id` column: positive, unique within the
// owning table, assigned at insert time and never reused after deletion.
type RowID uint64

const idColumnName = "id"

// Row is an ordered fixed-layout record. Rows handed out by the engine are
// detached copies; mutating a result set never touches table storage.
// Rows produced by a two table query carry table-qualified column names
// ("users.id", "orders.product").
type Row struct {
	Key     RowID
	Columns []Column
	Values  []Value
}

func NewRowWithValues(columns []Column, values []Value) Row {
	return Row{Columns: columns, Values: values}
}

// GetColumn finds a column by exact name first, then by an unambiguous
// qualified suffix so that "name" resolves to "users.name" on a joined row.
// Returns index -1 when the name is absent or ambiguous.
func (r Row) GetColumn(name string) (Column, int) {
	for i, aColumn := range r.Columns {
		if aColumn.Name == name {
			return aColumn, i
		}
	}
	var (
		found  Column
		idx    = -1
		suffix = "." + name
	)
	for i, aColumn := range r.Columns {
		if strings.HasSuffix(aColumn.Name, suffix) {
			if idx >= 0 {
				return Column{}, -1 // ambiguous
			}
			found = aColumn
			idx = i
		}
	}
	return found, idx
}

func (r Row) GetValue(name string) (Value, bool) {
	_, idx := r.GetColumn(name)
	if idx < 0 {
		return Value{}, false
	}
	return r.Values[idx], true
}

// OnlyFields projects the row to the requested fields, in the requested
// order. Output columns are named exactly as requested, so a joined row
// projected with an unqualified name produces an unqualified output column.
func (r Row) OnlyFields(fields ...Field) (Row, error) {
	projected := Row{
		Key:     r.Key,
		Columns: make([]Column, 0, len(fields)),
		Values:  make([]Value, 0, len(fields)),
	}
	for _, aField := range fields {
		aColumn, idx := r.GetColumn(aField.Name)
		if idx < 0 {
			return Row{}, UnknownColumnError{Column: aField.Name}
		}
		aColumn.Name = aField.Name
		projected.Columns = append(projected.Columns, aColumn)
		projected.Values = append(projected.Values, r.Values[idx])
	}
	return projected, nil
}

// CheckOneOrMore evaluates WHERE conditions: groups are OR-ed together,
// conditions within a group are AND-ed. An empty set of conditions matches
// every row.
func (r Row) CheckOneOrMore(conditions OneOrMore) (bool, error) {
	if len(conditions) == 0 {
		return true, nil
	}
	for _, aConditionGroup := range conditions {
		groupMatches := true
		for _, aCondition := range aConditionGroup {
			matches, err := aCondition.Check(r)
			if err != nil {
				return false, err
			}
			if !matches {
				groupMatches = false
				break
			}
		}
		if groupMatches {
			return true, nil
		}
	}
	return false, nil
}

// combineRows concatenates two tables' rows into one, qualifying every column
// name with its table name so colliding names stay distinct.
func combineRows(leftRow, rightRow Row, leftTable, rightTable string) Row {
	combinedColumns := make([]Column, 0, len(leftRow.Columns)+len(rightRow.Columns))
	for _, aColumn := range leftRow.Columns {
		aColumn.Name = leftTable + "." + aColumn.Name
		combinedColumns = append(combinedColumns, aColumn)
	}
	for _, aColumn := range rightRow.Columns {
		aColumn.Name = rightTable + "." + aColumn.Name
		combinedColumns = append(combinedColumns, aColumn)
	}

	combinedValues := make([]Value, 0, len(leftRow.Values)+len(rightRow.Values))
	combinedValues = append(combinedValues, leftRow.Values...)
	combinedValues = append(combinedValues, rightRow.Values...)

	return NewRowWithValues(combinedColumns, combinedValues)
}
