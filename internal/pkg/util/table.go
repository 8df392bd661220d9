package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/minirel/minirel/internal/minirel"
)

const (
	truncatedStringEnd = " ..."
	maxColumnWidth     = 40
)

// RenderTable prints a result set as an ASCII table. Each column is sized to
// its widest rendered cell or its header, whichever is longer, capped at
// maxColumnWidth with overlong text truncated.
func RenderTable(w io.Writer, columns []minirel.Column, rows [][]minirel.Value) {
	widths := columnWidths(columns, rows)

	printBorder(w, widths)
	cells := make([]string, 0, len(columns))
	for _, aColumn := range columns {
		cells = append(cells, aColumn.Name)
	}
	printRow(w, widths, cells)
	printBorder(w, widths)

	for _, values := range rows {
		cells = cells[:0]
		for _, aValue := range values {
			cells = append(cells, aValue.String())
		}
		printRow(w, widths, cells)
	}
	printBorder(w, widths)
}

func columnWidths(columns []minirel.Column, rows [][]minirel.Value) []int {
	widths := make([]int, len(columns))
	for i, aColumn := range columns {
		widths[i] = len([]rune(aColumn.Name))
	}
	for _, values := range rows {
		for i, aValue := range values {
			if i >= len(widths) {
				break
			}
			if n := len([]rune(aValue.String())); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

func printBorder(w io.Writer, widths []int) {
	// left border is | followed by a space, right border is space followed
	// by |, between columns we have space, |, space
	total := 1
	for _, width := range widths {
		total += width + 3
	}
	fmt.Fprintf(w, "+%s+\n", strings.Repeat("-", total-2))
}

func printRow(w io.Writer, widths []int, cells []string) {
	for i, aCell := range cells {
		// pad with spaces on the right rather than the left (left-justify
		// the field), the padding size given as an argument via *
		fmt.Fprintf(w, "| %-*s ", widths[i], truncateCell(aCell, widths[i]))
	}
	fmt.Fprintf(w, "|\n")
}

func truncateCell(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-len(truncatedStringEnd)]) + truncatedStringEnd
}
