// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/genstats/internal/logging"
)

// EventsHandler serves the recent WARN+ log events retained in memory.
type EventsHandler struct {
	buffer *logging.EventBufferHandler
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(buffer *logging.EventBufferHandler) *EventsHandler {
	return &EventsHandler{buffer: buffer}
}

// List handles GET /api/v1/events requests. Events come back newest first;
// an optional limit query caps the count.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events := h.buffer.Recent()

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeJSONError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		if limit < len(events) {
			events = events[:limit]
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}
