package minirel

// checkUniqueConstraints determines whether any live row other than the one
// identified by exclude shares a value with the candidate on a uniquely
// constrained column. Candidate values follow declared column order. Returns
// the first violated column as a ConstraintViolationError, or nil. Pure
// validation, no side effects; exclude zero means no row is excluded.
func checkUniqueConstraints(tableName string, columns []Column, rows []Row, candidate []Value, exclude RowID) error {
	for i, aColumn := range columns {
		if !aColumn.Unique {
			continue
		}
		for _, aRow := range rows {
			if exclude != 0 && aRow.Key == exclude {
				continue
			}
			if aRow.Values[i] == candidate[i] {
				return ConstraintViolationError{
					Table:  tableName,
					Column: aColumn.Name,
					Value:  candidate[i],
				}
			}
		}
	}
	return nil
}

func (t *Table) checkUnique(candidate []Value, exclude RowID) error {
	return checkUniqueConstraints(t.Name, t.Columns, t.rows, candidate, exclude)
}
