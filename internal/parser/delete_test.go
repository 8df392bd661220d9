package parser

import (
	"testing"

	"github.com/minirel/minirel/internal/minirel"
)

func TestParse_Delete(t *testing.T) {
	t.Parallel()

	runTestCases(t, []testCase{
		{
			"Empty DELETE fails",
			"DELETE FROM",
			nil,
			errEmptyTableName,
		},
		{
			"DELETE without WHERE works",
			"DELETE FROM a;",
			[]minirel.Statement{
				{
					Kind:      minirel.Delete,
					TableName: "a",
				},
			},
			nil,
		},
		{
			"DELETE with empty WHERE fails",
			"DELETE FROM a WHERE",
			nil,
			errEmptyWhereClause,
		},
		{
			"DELETE with WHERE with field but no operator fails",
			"DELETE FROM a WHERE b",
			nil,
			errWhereWithoutOperator,
		},
		{
			"DELETE with multiple conditions works",
			"DELETE FROM a WHERE b = '1' AND c = 789;",
			[]minirel.Statement{
				{
					Kind:      minirel.Delete,
					TableName: "a",
					Conditions: minirel.OneOrMore{
						{
							minirel.FieldIsEqual("b", minirel.NewText("1")),
							minirel.FieldIsEqual("c", minirel.NewInteger(789)),
						},
					},
				},
			},
			nil,
		},
	})
}
