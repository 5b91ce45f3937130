// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pkgtoss/toss/pkg/distfile"
)

// File is a distribution file selected for publishing.
type File struct {
	Path     string
	Filename distfile.Filename
}

// FilesForPublishing expands the given path patterns, keeps regular files,
// deduplicates them, and classifies each by filename.
//
// Files are returned in pattern order, then glob order; no ordering policy
// between wheels and source distributions is imposed.
func FilesForPublishing(patterns []string) ([]File, error) {
	seen := make(map[string]struct{})
	var files []File
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFailOnIOErrors())
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, &PatternError{Pattern: pattern, Err: err}
			}
			return nil, &GlobError{Pattern: pattern, Err: err}
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			match = filepath.Clean(match)
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			filename, ok := distfile.Parse(filepath.Base(match))
			if !ok {
				return nil, &InvalidFilenameError{Path: match}
			}
			files = append(files, File{Path: match, Filename: filename})
		}
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}
