// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render handles HTML template rendering for the dashboard pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// Renderer renders dashboard pages from templates parsed once at startup.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a new Renderer with parsed templates.
func New(templatesFS fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	if err := r.parseTemplates(templatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all page templates against the base layout.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	pages, err := r.getTemplateFiles(templatesFS, "pages")
	if err != nil {
		return fmt.Errorf("getting page templates: %w", err)
	}

	baseLayout := "layouts/base.html"

	for _, tmplPath := range pages {
		name := strings.TrimSuffix(filepath.Base(tmplPath), ".html")

		tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, baseLayout, tmplPath)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

// getTemplateFiles returns all .html files in a directory.
func (r *Renderer) getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDay": func(day string) string {
			t, err := time.Parse("2006-01-02", day)
			if err != nil {
				return day
			}
			return t.Format("Jan 2, 2006")
		},
		"hourLabel": func(h int) string {
			return fmt.Sprintf("%02d:00", h)
		},
		"weekdayLabel": func(i int) string {
			names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
			if i < 0 || i >= len(names) {
				return "?"
			}
			return names[i]
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	CurrentYear int
}

// Render renders a template with the given data.
func (r *Renderer) Render(w http.ResponseWriter, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
	return nil
}
