package minirel

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minirel/minirel/internal/pkg/logging"
)

var (
	gen = newDataGen(time.Now().Unix())

	testLogger *zap.Logger

	usersColumns = []Column{
		{Kind: Text, Unique: true, Name: "email"},
		{Kind: Text, Name: "name"},
		{Kind: Integer, Name: "age"},
	}

	ordersColumns = []Column{
		{Kind: Integer, Name: "user_id"},
		{Kind: Text, Name: "product"},
		{Kind: Real, Name: "amount"},
	}
)

func init() {
	logConf := logging.DefaultConfig()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "error"
	}

	l, err := logging.ParseLevel(level)
	if err != nil {
		panic(err)
	}
	logConf.Level = zap.NewAtomicLevelAt(l)

	testLogger, err = logConf.Build()
	if err != nil {
		panic(err)
	}
}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed int64) *dataGen {
	return &dataGen{
		Faker: gofakeit.New(seed),
	}
}

// UserValues produces a users row with a unique email.
func (g *dataGen) UserValues(i int) map[string]Value {
	return map[string]Value{
		"email": NewText(fmt.Sprintf("%d-%s", i, g.Email())),
		"name":  NewText(g.Name()),
		"age":   NewInteger(int64(g.IntRange(18, 100))),
	}
}

func (g *dataGen) UserRows(number int) []map[string]Value {
	rows := make([]map[string]Value, 0, number)
	for i := 0; i < number; i++ {
		rows = append(rows, g.UserValues(i))
	}
	return rows
}

// newUsersTable builds a users table with the three fixed rows most query
// tests work against.
func newUsersTable(t *testing.T) *Table {
	t.Helper()
	aTable := NewTable(testLogger, "users", usersColumns)
	_, err := aTable.InsertRows(context.Background(), []map[string]Value{
		{"email": NewText("alice@example.com"), "name": NewText("Alice"), "age": NewInteger(30)},
		{"email": NewText("bob@example.com"), "name": NewText("Bob"), "age": NewInteger(25)},
		{"email": NewText("carol@example.com"), "name": NewText("Carol"), "age": NewInteger(35)},
	})
	require.NoError(t, err)
	return aTable
}

// newTestDatabase builds a database with populated users and orders tables.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()
	db := NewDatabase(testLogger)

	usersTable, err := db.CreateTable(ctx, "users", usersColumns)
	require.NoError(t, err)
	_, err = usersTable.InsertRows(ctx, []map[string]Value{
		{"email": NewText("alice@example.com"), "name": NewText("Alice"), "age": NewInteger(30)},
		{"email": NewText("bob@example.com"), "name": NewText("Bob"), "age": NewInteger(25)},
		{"email": NewText("carol@example.com"), "name": NewText("Carol"), "age": NewInteger(35)},
	})
	require.NoError(t, err)

	ordersTable, err := db.CreateTable(ctx, "orders", ordersColumns)
	require.NoError(t, err)
	_, err = ordersTable.InsertRows(ctx, []map[string]Value{
		{"user_id": NewInteger(1), "product": NewText("keyboard"), "amount": NewReal(49.99)},
		{"user_id": NewInteger(1), "product": NewText("mouse"), "amount": NewReal(19.99)},
		{"user_id": NewInteger(2), "product": NewText("monitor"), "amount": NewReal(199.0)},
		{"user_id": NewInteger(3), "product": NewText("desk"), "amount": NewReal(349.5)},
	})
	require.NoError(t, err)

	return db
}

// collectRows drains a statement result's iterator.
func collectRows(t *testing.T, result StatementResult) []Row {
	t.Helper()
	var rows []Row
	ctx := context.Background()
	for result.Rows.Next(ctx) {
		rows = append(rows, result.Rows.Row())
	}
	require.NoError(t, result.Rows.Err())
	return rows
}

// columnValues extracts a single named column from rows.
func columnValues(t *testing.T, rows []Row, name string) []Value {
	t.Helper()
	values := make([]Value, 0, len(rows))
	for _, aRow := range rows {
		aValue, ok := aRow.GetValue(name)
		require.True(t, ok, "column %q not found", name)
		values = append(values, aValue)
	}
	return values
}
