// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import (
	"context"
	"fmt"
	"os"
)

// Source enumerates the artifact filenames the report is computed from.
// A listing failure is fatal for the request: no partial report is produced.
type Source interface {
	List(ctx context.Context) ([]string, error)
}

// DirSource lists the artifact collection from a directory on disk. The
// listing is a point-in-time snapshot; files added or removed afterwards show
// up on the next request.
type DirSource struct {
	Dir string
}

// List returns the names of all regular files in the directory.
func (s DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing outputs dir %s: %w", s.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
