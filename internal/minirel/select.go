package minirel

import (
	"context"
	"fmt"
	"strings"
)

// executeSelect runs the fixed-order query pipeline: source resolution,
// filter, project, order, limit. The pipeline never mutates source tables;
// it produces a fresh, detached row sequence.
func (d *Database) executeSelect(ctx context.Context, stmt Statement) (StatementResult, error) {
	if stmt.Limit != nil && *stmt.Limit < 0 {
		return StatementResult{}, InvalidLimitError{Value: *stmt.Limit}
	}
	if stmt.Offset != nil && *stmt.Offset < 0 {
		return StatementResult{}, InvalidLimitError{Value: *stmt.Offset}
	}

	tables := stmt.sourceTables()

	var (
		sourceColumns []Column
		tableLabel    string
		filtered      []Row
		err           error
	)
	switch len(tables) {
	case 1:
		aTable, resolveErr := d.resolveTable(tables[0])
		if resolveErr != nil {
			return StatementResult{}, resolveErr
		}
		sourceColumns = aTable.outputColumns()
		tableLabel = aTable.Name
		if err = validateSelectFields(tableLabel, sourceColumns, stmt); err != nil {
			return StatementResult{}, err
		}
		filtered, err = scanFiltered(ctx, aTable, stmt.Conditions)
	case 2:
		leftTable, resolveErr := d.resolveTable(tables[0])
		if resolveErr != nil {
			return StatementResult{}, resolveErr
		}
		rightTable, resolveErr := d.resolveTable(tables[1])
		if resolveErr != nil {
			return StatementResult{}, resolveErr
		}
		sourceColumns = append(
			qualifiedColumns(leftTable),
			qualifiedColumns(rightTable)...,
		)
		tableLabel = strings.Join(tables, ", ")
		if err = validateSelectFields(tableLabel, sourceColumns, stmt); err != nil {
			return StatementResult{}, err
		}
		filtered, err = crossJoinFiltered(ctx, leftTable, rightTable, stmt.Conditions)
	default:
		return StatementResult{}, fmt.Errorf("SELECT supports one or two tables, got %d", len(tables))
	}
	if err != nil {
		return StatementResult{}, err
	}

	// Project
	var outputColumns []Column
	if stmt.IsSelectAll() {
		outputColumns = append([]Column{}, sourceColumns...)
	} else {
		proto := Row{Columns: sourceColumns}
		outputColumns = make([]Column, 0, len(stmt.Fields))
		for _, aField := range stmt.Fields {
			aColumn, idx := proto.GetColumn(aField.Name)
			if idx < 0 {
				return StatementResult{}, UnknownColumnError{Table: tableLabel, Column: aField.Name}
			}
			aColumn.Name = aField.Name
			outputColumns = append(outputColumns, aColumn)
		}
		for i := range filtered {
			filtered[i], err = filtered[i].OnlyFields(stmt.Fields...)
			if err != nil {
				return StatementResult{}, err
			}
		}
	}

	// Order (stable; ties keep insertion order)
	if len(stmt.OrderBy) > 0 {
		for _, anOrderBy := range stmt.OrderBy {
			if _, idx := (Row{Columns: outputColumns}).GetColumn(anOrderBy.Field.Name); idx < 0 {
				return StatementResult{}, UnknownColumnError{Table: tableLabel, Column: anOrderBy.Field.Name}
			}
		}
		if err := sortRows(filtered, stmt.OrderBy); err != nil {
			return StatementResult{}, err
		}
	}

	// Limit / offset
	filtered = applyLimitOffset(filtered, stmt.Limit, stmt.Offset)

	return StatementResult{
		Columns: outputColumns,
		Rows:    NewRowSliceIterator(filtered),
	}, nil
}

// scanFiltered runs the filter stage over a single table scan.
func scanFiltered(ctx context.Context, aTable *Table, conditions OneOrMore) ([]Row, error) {
	var filtered []Row
	it := aTable.Scan()
	for it.Next(ctx) {
		aRow := it.Row()
		matches, err := aRow.CheckOneOrMore(conditions)
		if err != nil {
			return nil, err
		}
		if matches {
			filtered = append(filtered, aRow)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return filtered, nil
}

// crossJoinFiltered produces the Cartesian product of two tables and filters
// it in one pass. Combined rows carry both tables' columns qualified by
// table name, so the equi-join predicate is just a field-to-field condition
// over the product.
func crossJoinFiltered(ctx context.Context, leftTable, rightTable *Table, conditions OneOrMore) ([]Row, error) {
	var filtered []Row
	outer := leftTable.Scan()
	for outer.Next(ctx) {
		leftRow := outer.Row()
		inner := rightTable.Scan()
		for inner.Next(ctx) {
			combined := combineRows(leftRow, inner.Row(), leftTable.Name, rightTable.Name)
			matches, err := combined.CheckOneOrMore(conditions)
			if err != nil {
				return nil, err
			}
			if matches {
				filtered = append(filtered, combined)
			}
		}
		if err := inner.Err(); err != nil {
			return nil, err
		}
	}
	if err := outer.Err(); err != nil {
		return nil, err
	}
	return filtered, nil
}

// qualifiedColumns is a table's result schema with every column name
// prefixed by the table name.
func qualifiedColumns(aTable *Table) []Column {
	columns := aTable.outputColumns()
	for i := range columns {
		columns[i].Name = aTable.Name + "." + columns[i].Name
	}
	return columns
}

// validateSelectFields resolves projection and condition column references
// against the source schema before any rows are touched.
func validateSelectFields(tableLabel string, sourceColumns []Column, stmt Statement) error {
	proto := Row{Columns: sourceColumns}
	if !stmt.IsSelectAll() {
		for _, aField := range stmt.Fields {
			if _, idx := proto.GetColumn(aField.Name); idx < 0 {
				return UnknownColumnError{Table: tableLabel, Column: aField.Name}
			}
		}
	}
	return validateConditionFields(tableLabel, proto, stmt.Conditions)
}

func applyLimitOffset(rows []Row, limit, offset *int64) []Row {
	if offset != nil {
		if int(*offset) >= len(rows) {
			return []Row{}
		}
		rows = rows[*offset:]
	}
	if limit != nil && int(*limit) < len(rows) {
		rows = rows[:*limit]
	}
	return rows
}
