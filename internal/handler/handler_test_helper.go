// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/genstats/internal/render"
	"github.com/olegiv/genstats/internal/report"
	"github.com/olegiv/genstats/web"
)

// newTestEngine creates an engine over a temp directory seeded with the
// given artifact filenames.
func newTestEngine(t *testing.T, names ...string) *report.Engine {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("seeding %s: %v", name, err)
		}
	}

	return report.NewEngine(report.DirSource{Dir: dir}, "output", 5)
}

// errSource always fails, standing in for an unreadable outputs directory.
type errSource struct{ err error }

func (s errSource) List(context.Context) ([]string, error) { return nil, s.err }

// newTestRenderer parses the embedded templates or fails the test.
func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}

	r, err := render.New(templatesFS)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
