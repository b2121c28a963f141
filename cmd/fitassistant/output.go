package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/units"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table renders rows as aligned columns. Headers are bold on a terminal and
// plain when the output is redirected.
type table struct {
	w       io.Writer
	r       *lipgloss.Renderer
	headers []string
	rows    [][]string
}

func newTable(w io.Writer, headers ...string) *table {
	return &table{w: w, r: lipgloss.NewRenderer(w), headers: headers}
}

func (t *table) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) Flush() error {
	var widths []int
	measure := func(row []string) {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	header := t.r.NewStyle().Bold(true).PaddingRight(2)
	cell := t.r.NewStyle().PaddingRight(2)

	var sb strings.Builder
	line := func(style lipgloss.Style, row []string) {
		parts := make([]string, len(row))
		for i, c := range row {
			s := style
			if i < len(row)-1 {
				s = s.Width(widths[i] + 2)
			} else {
				s = s.UnsetPaddingRight()
			}
			parts[i] = s.Render(c)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		sb.WriteString("\n")
	}
	if len(t.headers) > 0 {
		line(header, t.headers)
	}
	for _, row := range t.rows {
		line(cell, row)
	}

	_, err := io.WriteString(t.w, sb.String())
	return err
}

func formatMeasurement(m domain.BodyMeasurement, system domain.UnitSystem) string {
	v, unit := units.Display(m.Value, m.Type, system)
	return fmt.Sprintf("%s %g %s", m.Type.Label(), v, unit)
}

func formatFit(fit []domain.GarmentFit) string {
	var parts []string
	for _, f := range fit {
		if f.Perception.IsSet() {
			parts = append(parts, fmt.Sprintf("%s: %s", f.MeasurementType, f.Perception))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func writeGarments(w io.Writer, gs []domain.Garment) error {
	tb := newTable(w, "ID", "NAME", "BRAND", "TYPE", "SIZE", "TEACH", "FIT")
	for _, g := range gs {
		tb.Row(g.ID, g.Name, g.Brand, string(g.Type), g.Size, strconv.FormatBool(g.TeachFitAssistant), formatFit(g.Fit))
	}
	return tb.Flush()
}

func writeGarment(w io.Writer, g domain.Garment, system domain.UnitSystem) error {
	tb := newTable(w)
	tb.Row("ID", g.ID)
	tb.Row("Name", g.Name)
	tb.Row("Brand", g.Brand)
	tb.Row("Type", string(g.Type))
	tb.Row("Size", g.Size)
	tb.Row("Color", g.Color)
	tb.Row("Image", g.ImageURL)
	tb.Row("Teach Fit Assistant", strconv.FormatBool(g.TeachFitAssistant))
	for _, m := range g.Measurements {
		tb.Row("Measurement", formatMeasurement(m, system))
	}
	tb.Row("Fit", formatFit(g.Fit))
	tb.Row("Updated", g.UpdatedAt.Format("2006-01-02 15:04"))
	return tb.Flush()
}
