package minirel

import (
	"sort"
)

// sortRows stable-sorts rows by the ordering spec using the value total
// order. Ascending by default; ties preserve the pre-sort order.
func sortRows(rows []Row, orderBy []OrderBy) error {
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		for _, anOrderBy := range orderBy {
			value1, ok1 := rows[i].GetValue(anOrderBy.Field.Name)
			value2, ok2 := rows[j].GetValue(anOrderBy.Field.Name)
			if !ok1 || !ok2 {
				if sortErr == nil {
					sortErr = UnknownColumnError{Column: anOrderBy.Field.Name}
				}
				return false
			}
			cmp, err := value1.Compare(value2)
			if err != nil {
				if sortErr == nil {
					sortErr = err
				}
				return false
			}
			if cmp == 0 {
				continue
			}
			if anOrderBy.Direction == Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return sortErr
}
