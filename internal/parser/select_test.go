package parser

import (
	"testing"

	"github.com/minirel/minirel/internal/minirel"
)

func TestParse_Select(t *testing.T) {
	t.Parallel()

	runTestCases(t, []testCase{
		{
			"SELECT without FROM fails",
			"SELECT",
			nil,
			errEmptyTableName,
		},
		{
			"SELECT without fields fails",
			"SELECT FROM b",
			nil,
			errSelectWithoutFields,
		},
		{
			"SELECT with comma and empty field fails",
			"SELECT b, FROM a",
			nil,
			errSelectWithoutFields,
		},
		{
			"SELECT works",
			"SELECT a FROM b;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "a"}},
				},
			},
			nil,
		},
		{
			"SELECT works with lowercase",
			" select a fRoM b;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "a"}},
				},
			},
			nil,
		},
		{
			"SELECT many fields works",
			"SELECT a, c, d FROM b ;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "a"}, {Name: "c"}, {Name: "d"}},
				},
			},
			nil,
		},
		{
			"SELECT * works",
			"SELECT * FROM b;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "*"}},
				},
			},
			nil,
		},
		{
			"SELECT combining * with other fields fails",
			"SELECT a, * FROM b;",
			nil,
			errCannotCombineAsterisk,
		},
		{
			"SELECT from two tables works",
			"SELECT * FROM users, orders WHERE users.id = orders.user_id;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "users",
					TableNames: []string{"users", "orders"},
					Fields:     []minirel.Field{{Name: "*"}},
					Conditions: minirel.OneOrMore{
						{
							minirel.FieldsAreEqual("users.id", "orders.user_id"),
						},
					},
				},
			},
			nil,
		},
		{
			"SELECT from three tables fails",
			"SELECT * FROM a, b, c;",
			nil,
			errSelectTooManyTables,
		},
		{
			"SELECT with LIMIT works",
			"SELECT * FROM b LIMIT 10;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "*"}},
					Limit:      int64Ptr(10),
				},
			},
			nil,
		},
		{
			"SELECT with negative LIMIT parses",
			"SELECT * FROM b LIMIT -1;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "*"}},
					Limit:      int64Ptr(-1),
				},
			},
			nil,
		},
		{
			"SELECT with LIMIT and OFFSET works",
			"SELECT * FROM b LIMIT 10 OFFSET 20;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "b",
					TableNames: []string{"b"},
					Fields:     []minirel.Field{{Name: "*"}},
					Limit:      int64Ptr(10),
					Offset:     int64Ptr(20),
				},
			},
			nil,
		},
		{
			"SELECT with ORDER BY works",
			"SELECT name, age FROM users ORDER BY age DESC, name;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "users",
					TableNames: []string{"users"},
					Fields:     []minirel.Field{{Name: "name"}, {Name: "age"}},
					OrderBy: []minirel.OrderBy{
						{Field: minirel.Field{Name: "age"}, Direction: minirel.Desc},
						{Field: minirel.Field{Name: "name"}, Direction: minirel.Asc},
					},
				},
			},
			nil,
		},
		{
			"SELECT with WHERE, ORDER BY and LIMIT works",
			"SELECT name FROM users WHERE age > 26 ORDER BY age DESC LIMIT 2;",
			[]minirel.Statement{
				{
					Kind:       minirel.Select,
					TableName:  "users",
					TableNames: []string{"users"},
					Fields:     []minirel.Field{{Name: "name"}},
					Conditions: minirel.OneOrMore{
						{
							minirel.FieldIsGreater("age", minirel.NewInteger(26)),
						},
					},
					OrderBy: []minirel.OrderBy{
						{Field: minirel.Field{Name: "age"}, Direction: minirel.Desc},
					},
					Limit: int64Ptr(2),
				},
			},
			nil,
		},
	})
}
