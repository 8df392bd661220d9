package web

import (
	"context"

	"github.com/minirel/minirel/internal/minirel"
)

const (
	usersTable  = "users"
	ordersTable = "orders"
)

// DeclareTables creates the users and orders tables the dashboard works with.
func DeclareTables(ctx context.Context, db *minirel.Database) error {
	if _, err := db.CreateTable(ctx, usersTable, []minirel.Column{
		{Kind: minirel.Text, Unique: true, Name: "email"},
		{Kind: minirel.Text, Name: "name"},
		{Kind: minirel.Integer, Name: "age"},
	}); err != nil {
		return err
	}
	_, err := db.CreateTable(ctx, ordersTable, []minirel.Column{
		{Kind: minirel.Integer, Name: "user_id"},
		{Kind: minirel.Text, Name: "product"},
		{Kind: minirel.Real, Name: "amount"},
	})
	return err
}

// Seed inserts a couple of demo rows so a fresh instance has something to
// show. Order ids reference the seeded users by insertion order.
func Seed(ctx context.Context, db *minirel.Database) error {
	_, err := db.ExecuteStatement(ctx, minirel.Statement{
		Kind:      minirel.Insert,
		TableName: usersTable,
		Fields:    []minirel.Field{{Name: "email"}, {Name: "name"}, {Name: "age"}},
		Inserts: [][]minirel.Value{
			{minirel.NewText("alice@example.com"), minirel.NewText("Alice"), minirel.NewInteger(30)},
			{minirel.NewText("bob@example.com"), minirel.NewText("Bob"), minirel.NewInteger(25)},
			{minirel.NewText("carol@example.com"), minirel.NewText("Carol"), minirel.NewInteger(35)},
		},
	})
	if err != nil {
		return err
	}
	_, err = db.ExecuteStatement(ctx, minirel.Statement{
		Kind:      minirel.Insert,
		TableName: ordersTable,
		Fields:    []minirel.Field{{Name: "user_id"}, {Name: "product"}, {Name: "amount"}},
		Inserts: [][]minirel.Value{
			{minirel.NewInteger(1), minirel.NewText("keyboard"), minirel.NewReal(49.99)},
			{minirel.NewInteger(1), minirel.NewText("mouse"), minirel.NewReal(19.99)},
			{minirel.NewInteger(2), minirel.NewText("monitor"), minirel.NewReal(199.0)},
			{minirel.NewInteger(3), minirel.NewText("desk"), minirel.NewReal(349.5)},
		},
	})
	return err
}
