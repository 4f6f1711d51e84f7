// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/genstats/internal/middleware"
	"github.com/olegiv/genstats/internal/render"
	"github.com/olegiv/genstats/internal/report"
)

// ReportHandler serves the dashboard pages and the report JSON API. Every
// request triggers a full rescan of the outputs directory, so two concurrent
// requests may see different snapshots while files are being written.
type ReportHandler struct {
	engine   *report.Engine
	renderer *render.Renderer
	metrics  *middleware.Metrics
}

// NewReportHandler creates a new report handler. metrics may be nil.
func NewReportHandler(engine *report.Engine, renderer *render.Renderer, metrics *middleware.Metrics) *ReportHandler {
	return &ReportHandler{
		engine:   engine,
		renderer: renderer,
		metrics:  metrics,
	}
}

// generate runs one scan with a per-scan ID for log correlation.
func (h *ReportHandler) generate(r *http.Request) (*report.Report, error) {
	scanID := uuid.NewString()
	startParam := r.URL.Query().Get("start_date")
	endParam := r.URL.Query().Get("end_date")

	rep, err := h.engine.Generate(r.Context(), startParam, endParam)
	if err != nil {
		slog.Error("report generation failed", "error", err, "scan_id", scanID)
		return nil, err
	}

	slog.Debug("report generated",
		"scan_id", scanID,
		"total_files", rep.TotalFiles,
		"start_date", rep.StartDate,
		"end_date", rep.EndDate)

	if h.metrics != nil {
		h.metrics.ScannedFiles.Observe(float64(rep.TotalFiles))
	}

	return rep, nil
}

// Dashboard handles GET / requests.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rep, err := h.generate(r)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, "dashboard", render.TemplateData{
		Title: "Output activity",
		Data:  rep,
	}); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// APIReport handles GET /api/v1/report requests.
func (h *ReportHandler) APIReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.generate(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// userActivity runs the per-user drill-down for the {id} URL parameter.
func (h *ReportHandler) userActivity(r *http.Request) (*report.UserReport, error) {
	userID := chi.URLParam(r, "id")
	startParam := r.URL.Query().Get("start_date")
	endParam := r.URL.Query().Get("end_date")

	ur, err := h.engine.UserActivity(r.Context(), userID, startParam, endParam)
	if err != nil {
		slog.Error("user activity failed", "error", err, "user_id", userID)
		return nil, err
	}

	return ur, nil
}

// UserPage handles GET /users/{id} requests.
func (h *ReportHandler) UserPage(w http.ResponseWriter, r *http.Request) {
	ur, err := h.userActivity(r)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, "user", render.TemplateData{
		Title: "User " + ur.User,
		Data:  ur,
	}); err != nil {
		slog.Error("failed to render user page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// APIUser handles GET /api/v1/users/{id} requests.
func (h *ReportHandler) APIUser(w http.ResponseWriter, r *http.Request) {
	ur, err := h.userActivity(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, ur)
}

// APIDayHours handles GET /api/v1/days/{date}/hours requests. A date that is
// not a valid YYYY-MM-DD day is a caller error, unlike malformed range
// parameters elsewhere which are silently treated as absent.
func (h *ReportHandler) APIDayHours(w http.ResponseWriter, r *http.Request) {
	dateParam := chi.URLParam(r, "date")

	dr, err := h.engine.DayHours(r.Context(), dateParam)
	if err != nil {
		if errors.Is(err, report.ErrInvalidDate) {
			writeJSONError(w, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD")
			return
		}
		slog.Error("day hours failed", "error", err, "date", dateParam)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, dr)
}
