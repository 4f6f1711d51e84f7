// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"io/fs"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/genstats/web"
)

// templatesFS roots the embedded FS at the templates directory, the same way
// main.go wires the renderer.
func templatesFS(t *testing.T) fs.FS {
	t.Helper()

	sub, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	return sub
}

func TestNewParsesEmbeddedTemplates(t *testing.T) {
	r, err := New(templatesFS(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"dashboard", "user"} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestEmbeddedFSLayout(t *testing.T) {
	// The embed root carries a templates/ prefix; the renderer expects to be
	// rooted below it. Both halves of that contract are pinned here so a
	// change to either the embed directive or the renderer paths shows up.
	if _, err := fs.Stat(web.Templates, "templates/layouts/base.html"); err != nil {
		t.Errorf("base layout missing from embed root: %v", err)
	}
	if _, err := New(web.Templates); err == nil {
		t.Error("New over the unsubbed embed root should fail, callers must use fs.Sub")
	}
}

func TestRenderDashboard(t *testing.T) {
	r, err := New(templatesFS(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	err = r.Render(rec, "dashboard", TemplateData{
		Title: "Output activity",
		Data: map[string]any{
			"TotalFiles":     3,
			"AveragePerDay":  1.5,
			"StartDate":      "2023-01-01",
			"EndDate":        "2023-01-02",
			"Daily":          nil,
			"Last7Days":      nil,
			"TopUsers":       nil,
			"Hourly":         [24]int{},
			"Weekday":        [7]int{},
			"NewUsersPerDay": nil,
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Output activity") {
		t.Error("rendered page missing title")
	}
	if !strings.Contains(body, "total files") {
		t.Error("rendered page missing summary card")
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New(templatesFS(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Render(httptest.NewRecorder(), "missing", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestTemplateFuncs(t *testing.T) {
	funcs := (&Renderer{}).templateFuncs()

	if got := funcs["formatDay"].(func(string) string)("2023-01-02"); got != "Jan 2, 2023" {
		t.Errorf("formatDay = %q, want %q", got, "Jan 2, 2023")
	}
	if got := funcs["formatDay"].(func(string) string)("not-a-date"); got != "not-a-date" {
		t.Errorf("formatDay on bad input = %q, want input back", got)
	}
	if got := funcs["hourLabel"].(func(int) string)(5); got != "05:00" {
		t.Errorf("hourLabel(5) = %q, want %q", got, "05:00")
	}
	if got := funcs["weekdayLabel"].(func(int) string)(0); got != "Mon" {
		t.Errorf("weekdayLabel(0) = %q, want %q", got, "Mon")
	}
	if got := funcs["weekdayLabel"].(func(int) string)(6); got != "Sun" {
		t.Errorf("weekdayLabel(6) = %q, want %q", got, "Sun")
	}
	if got := funcs["weekdayLabel"].(func(int) string)(7); got != "?" {
		t.Errorf("weekdayLabel(7) = %q, want %q", got, "?")
	}
	if got := funcs["add"].(func(int, int) int)(2, 3); got != 5 {
		t.Errorf("add(2, 3) = %d, want 5", got)
	}
}
