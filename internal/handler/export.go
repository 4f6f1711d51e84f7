// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/olegiv/genstats/internal/report"
)

// ExportHandler serves the report as downloadable spreadsheets.
type ExportHandler struct {
	engine *report.Engine
}

// NewExportHandler creates a new export handler.
func NewExportHandler(engine *report.Engine) *ExportHandler {
	return &ExportHandler{engine: engine}
}

// CSV handles GET /export/csv requests: the daily series as an attachment.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	rep, err := h.engine.Generate(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		slog.Error("failed to generate report for CSV export", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var csvBuilder strings.Builder

	csvBuilder.WriteString(escapeCSVRow([]string{"Date", "Files"}))
	csvBuilder.WriteString("\n")

	for _, day := range rep.Daily {
		row := []string{day.Date, strconv.Itoa(day.Count)}
		csvBuilder.WriteString(escapeCSVRow(row))
		csvBuilder.WriteString("\n")
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="statistics.csv"`)
	_, _ = w.Write([]byte(csvBuilder.String()))
}

// XLSX handles GET /export/xlsx requests: the full report as statistics.xlsx
// with one sheet per statistic.
func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	rep, err := h.engine.Generate(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		slog.Error("failed to generate report for XLSX export", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	f, err := buildWorkbook(rep)
	if err != nil {
		slog.Error("failed to build workbook", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="statistics.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

// buildWorkbook renders the report into an xlsx workbook.
func buildWorkbook(rep *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeRows(f, "Daily", dailyRows(rep)); err != nil {
		return nil, err
	}
	if err := writeRows(f, "Top Users", topUserRows(rep)); err != nil {
		return nil, err
	}
	if err := writeRows(f, "Hourly", hourlyRows(rep)); err != nil {
		return nil, err
	}
	if err := writeRows(f, "Weekday", weekdayRows(rep)); err != nil {
		return nil, err
	}

	// NewFile starts with a default sheet; rename it into the first one.
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Total files", rep.TotalFiles},
		{"Average per day", rep.AveragePerDay},
	}
	if rep.StartDate != "" {
		summary = append(summary, []any{"Start date", rep.StartDate})
	}
	if rep.EndDate != "" {
		summary = append(summary, []any{"End date", rep.EndDate})
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// writeRows creates sheet name and fills it row by row.
func writeRows(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func dailyRows(rep *report.Report) [][]any {
	rows := [][]any{{"Date", "Files"}}
	for _, day := range rep.Daily {
		rows = append(rows, []any{day.Date, day.Count})
	}
	return rows
}

func topUserRows(rep *report.Report) [][]any {
	rows := [][]any{{"User", "Files"}}
	for _, u := range rep.TopUsers {
		rows = append(rows, []any{u.User, u.Count})
	}
	return rows
}

func hourlyRows(rep *report.Report) [][]any {
	rows := [][]any{{"Hour", "Files"}}
	for h, n := range rep.Hourly {
		rows = append(rows, []any{fmt.Sprintf("%02d:00", h), n})
	}
	return rows
}

func weekdayRows(rep *report.Report) [][]any {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	rows := [][]any{{"Weekday", "Files"}}
	for i, n := range rep.Weekday {
		rows = append(rows, []any{names[i], n})
	}
	return rows
}

// escapeCSVRow escapes a row of CSV values.
func escapeCSVRow(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		// Escape double quotes by doubling them
		v = strings.ReplaceAll(v, "\"", "\"\"")
		// Wrap in quotes if contains comma, newline, or quotes
		if strings.ContainsAny(v, ",\"\n\r") {
			v = "\"" + v + "\""
		}
		escaped[i] = v
	}
	return strings.Join(escaped, ",")
}
