package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, alignments []columnAlignment) string {
	writer := table.NewWriter()
	writer.SetStyle(table.StyleRounded)

	headerRow := make(table.Row, len(headers))
	for i, header := range headers {
		headerRow[i] = header
	}
	writer.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			tableRow[i] = cell
		}
		writer.AppendRow(tableRow)
	}

	if len(alignments) > 0 {
		configs := make([]table.ColumnConfig, 0, len(alignments))
		for i, alignment := range alignments {
			align := text.AlignLeft
			if alignment == alignRight {
				align = text.AlignRight
			}
			configs = append(configs, table.ColumnConfig{
				Number:      i + 1,
				Align:       align,
				AlignHeader: text.AlignLeft,
			})
		}
		writer.SetColumnConfigs(configs)
	}

	rendered := writer.Render()
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	return rendered
}
