package minirel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_GetColumn(t *testing.T) {
	t.Parallel()

	aRow := Row{
		Columns: []Column{
			{Kind: Integer, Unique: true, Name: "users.id"},
			{Kind: Text, Name: "users.name"},
			{Kind: Integer, Unique: true, Name: "orders.id"},
			{Kind: Integer, Name: "orders.user_id"},
		},
		Values: []Value{
			NewInteger(1),
			NewText("Alice"),
			NewInteger(7),
			NewInteger(1),
		},
	}

	t.Run("exact match wins", func(t *testing.T) {
		aColumn, idx := aRow.GetColumn("users.name")
		require.Equal(t, 1, idx)
		assert.Equal(t, "users.name", aColumn.Name)
	})

	t.Run("unambiguous suffix resolves", func(t *testing.T) {
		aColumn, idx := aRow.GetColumn("name")
		require.Equal(t, 1, idx)
		assert.Equal(t, "users.name", aColumn.Name)
	})

	t.Run("ambiguous suffix does not resolve", func(t *testing.T) {
		_, idx := aRow.GetColumn("id")
		assert.Equal(t, -1, idx)
	})

	t.Run("absent column does not resolve", func(t *testing.T) {
		_, idx := aRow.GetColumn("email")
		assert.Equal(t, -1, idx)
	})

	t.Run("suffix matching needs the full path segment", func(t *testing.T) {
		// "user_id" must not match via "id" nor the other way round.
		_, idx := aRow.GetColumn("user_id")
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, 3, idx)
	})
}

func TestRow_OnlyFields(t *testing.T) {
	t.Parallel()

	aRow := testRow()

	t.Run("projects in requested order", func(t *testing.T) {
		projected, err := aRow.OnlyFields(Field{Name: "age"}, Field{Name: "email"})
		require.NoError(t, err)
		assert.Equal(t, []Column{
			{Kind: Integer, Name: "age"},
			{Kind: Text, Unique: true, Name: "email"},
		}, projected.Columns)
		assert.Equal(t, []Value{
			NewInteger(30),
			NewText("alice@example.com"),
		}, projected.Values)
	})

	t.Run("same column twice", func(t *testing.T) {
		projected, err := aRow.OnlyFields(Field{Name: "name"}, Field{Name: "name"})
		require.NoError(t, err)
		assert.Equal(t, []Value{NewText("Alice"), NewText("Alice")}, projected.Values)
	})

	t.Run("unknown field fails", func(t *testing.T) {
		_, err := aRow.OnlyFields(Field{Name: "nope"})
		require.Error(t, err)
		assert.ErrorAs(t, err, &UnknownColumnError{})
	})

	t.Run("unqualified projection renames joined column", func(t *testing.T) {
		joined := combineRows(testRow(), testRow(), "a", "b")
		projected, err := joined.OnlyFields(Field{Name: "a.name"})
		require.NoError(t, err)
		assert.Equal(t, "a.name", projected.Columns[0].Name)
		assert.Equal(t, NewText("Alice"), projected.Values[0])
	})
}

func TestCombineRows(t *testing.T) {
	t.Parallel()

	left := Row{
		Columns: []Column{{Kind: Integer, Name: "id"}, {Kind: Text, Name: "name"}},
		Values:  []Value{NewInteger(1), NewText("Alice")},
	}
	right := Row{
		Columns: []Column{{Kind: Integer, Name: "id"}, {Kind: Integer, Name: "user_id"}},
		Values:  []Value{NewInteger(7), NewInteger(1)},
	}

	combined := combineRows(left, right, "users", "orders")

	assert.Equal(t, []string{"users.id", "users.name", "orders.id", "orders.user_id"}, func() []string {
		names := make([]string, 0, len(combined.Columns))
		for _, aColumn := range combined.Columns {
			names = append(names, aColumn.Name)
		}
		return names
	}())
	assert.Equal(t, []Value{
		NewInteger(1), NewText("Alice"), NewInteger(7), NewInteger(1),
	}, combined.Values)

	// Source rows keep their unqualified names.
	assert.Equal(t, "id", left.Columns[0].Name)
	assert.Equal(t, "id", right.Columns[0].Name)
}
