// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"mvdan.cc/sh/v3/syntax"
)

// newTable returns a bordered table with the shared header and cell styles.
// cellStyle, when non-nil, may restyle individual body cells.
func newTable(headers []string, rows [][]string, cellStyle func(row, col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if cellStyle != nil {
				return cellStyle(row, col).Inherit(tableCellStyle)
			}
			return tableCellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}

// shellJoin renders argv the way it would be typed in a shell.
func shellJoin(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = arg
		}
		parts[i] = quoted
	}
	return strings.Join(parts, " ")
}
