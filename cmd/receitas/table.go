package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pageza/receitas/backend/internal/model"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderRecipes(recipes []model.Recipe) string {
	if len(recipes) == 0 {
		return "No recipes found"
	}
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{r.ID, r.Name, r.Category, r.Area})
	}
	return renderTable([]string{"ID", "Name", "Category", "Area"}, rows, []columnAlignment{alignRight})
}

func renderDetail(r *model.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", r.Name, r.ID)
	var meta []string
	for _, s := range []string{r.Area, r.Category} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "%s\n", strings.Join(meta, " · "))
	}
	if tags := r.TagList(); len(tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(tags, ", "))
	}
	if r.YouTube != "" {
		fmt.Fprintf(&b, "Video: %s\n", r.YouTube)
	}

	if slots := r.PresentIngredients(); len(slots) > 0 {
		rows := make([][]string, 0, len(slots))
		for _, s := range slots {
			rows = append(rows, []string{fmt.Sprint(s.Slot + 1), s.Name, s.Measure})
		}
		b.WriteString("\n")
		b.WriteString(renderTable([]string{"#", "Ingredient", "Measure"}, rows, []columnAlignment{alignRight}))
		b.WriteString("\n")
	}
	if r.Instructions != "" {
		b.WriteString("\n")
		b.WriteString(r.Instructions)
	}
	return b.String()
}
