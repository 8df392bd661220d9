package parser

import (
	"testing"

	"github.com/minirel/minirel/internal/minirel"
)

func TestParse_Update(t *testing.T) {
	t.Parallel()

	runTestCases(t, []testCase{
		{
			"Empty UPDATE fails",
			"UPDATE",
			nil,
			errEmptyTableName,
		},
		{
			"Incomplete UPDATE with just table name fails",
			"UPDATE a",
			nil,
			errNoFieldsToUpdate,
		},
		{
			"UPDATE without SET fails",
			"UPDATE a b = 1;",
			nil,
			errUpdateExpectedSet,
		},
		{
			"UPDATE without '=' fails",
			"UPDATE a SET b 1;",
			nil,
			errUpdateExpectedEquals,
		},
		{
			"UPDATE without WHERE works",
			"UPDATE a SET b = 1;",
			[]minirel.Statement{
				{
					Kind:      minirel.Update,
					TableName: "a",
					Updates: map[string]minirel.Value{
						"b": minirel.NewInteger(1),
					},
				},
			},
			nil,
		},
		{
			"UPDATE with multiple fields works",
			"UPDATE a SET b = 1, c = 'two' WHERE d = 3;",
			[]minirel.Statement{
				{
					Kind:      minirel.Update,
					TableName: "a",
					Updates: map[string]minirel.Value{
						"b": minirel.NewInteger(1),
						"c": minirel.NewText("two"),
					},
					Conditions: minirel.OneOrMore{
						{
							minirel.FieldIsEqual("d", minirel.NewInteger(3)),
						},
					},
				},
			},
			nil,
		},
	})
}
