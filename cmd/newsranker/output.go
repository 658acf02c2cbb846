package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// column is a table column; Max caps its display width (0 means unbounded).
type column struct {
	Title string
	Max   int
	Right bool
}

// renderTable aligns rows by display width so CJK and emoji titles line up.
func renderTable(w io.Writer, cols []column, rows [][]string) {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.Title)
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i := range cols {
			var v string
			if i < len(row) {
				v = strings.Join(strings.Fields(row[i]), " ")
			}
			if cols[i].Max > 0 {
				v = runewidth.Truncate(v, cols[i].Max, "…")
			}
			cells[r][i] = v
			widths[i] = max(widths[i], runewidth.StringWidth(v))
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(c.Title, widths[i], c.Right)
	}
	fmt.Fprintln(w, cyan(strings.TrimRight(strings.Join(header, "  "), " ")))

	for _, row := range cells {
		line := make([]string, len(cols))
		for i, c := range cols {
			line[i] = pad(row[i], widths[i], c.Right)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " "))
	}
}

func pad(s string, width int, right bool) string {
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}
