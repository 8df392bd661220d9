package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minirel/minirel/internal/minirel"
)

func TestRenderTable_SizesColumnsToContent(t *testing.T) {
	t.Parallel()

	columns := []minirel.Column{
		{Kind: minirel.Integer, Name: "id"},
		{Kind: minirel.Text, Name: "name"},
	}
	rows := [][]minirel.Value{
		{minirel.NewInteger(1), minirel.NewText("Alice")},
		{minirel.NewInteger(2), minirel.NewText("Bo")},
	}

	var buf bytes.Buffer
	RenderTable(&buf, columns, rows)

	expected := strings.Join([]string{
		"+------------+",
		"| id | name  |",
		"+------------+",
		"| 1  | Alice |",
		"| 2  | Bo    |",
		"+------------+",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderTable_HeaderWiderThanValues(t *testing.T) {
	t.Parallel()

	columns := []minirel.Column{
		{Kind: minirel.Real, Name: "amount"},
	}
	rows := [][]minirel.Value{
		{minirel.NewReal(19.99)},
	}

	var buf bytes.Buffer
	RenderTable(&buf, columns, rows)

	expected := strings.Join([]string{
		"+--------+",
		"| amount |",
		"+--------+",
		"| 19.99  |",
		"+--------+",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderTable_TruncatesOverlongText(t *testing.T) {
	t.Parallel()

	columns := []minirel.Column{
		{Kind: minirel.Text, Name: "note"},
	}
	rows := [][]minirel.Value{
		{minirel.NewText(strings.Repeat("x", 50))},
	}

	var buf bytes.Buffer
	RenderTable(&buf, columns, rows)

	truncated := strings.Repeat("x", 36) + " ..."
	assert.Contains(t, buf.String(), "| "+truncated+" |")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 41))
}

func TestRenderTable_NoRows(t *testing.T) {
	t.Parallel()

	columns := []minirel.Column{
		{Kind: minirel.Integer, Name: "id"},
	}

	var buf bytes.Buffer
	RenderTable(&buf, columns, nil)

	expected := strings.Join([]string{
		"+----+",
		"| id |",
		"+----+",
		"+----+",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}
