// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkgmeta

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkgtoss/toss/pkg/distfile"
)

// ErrMissingDistInfo is returned when a wheel contains no
// .dist-info/METADATA entry for its distribution.
var ErrMissingDistInfo = errors.New("no .dist-info/METADATA file found in wheel")

// ReadWheelMetadata reads the METADATA file from a wheel archive. Wheels
// are zip files; the metadata lives at
// {dist}-{version}.dist-info/METADATA, compared against the filename after
// name normalization.
func ReadWheelMetadata(r io.ReaderAt, size int64, w *distfile.Wheel) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening wheel: %w", err)
	}

	want := NormalizeName(w.Dist) + "-" + strings.ToLower(w.Version)
	var matches []*zip.File
	for _, f := range zr.File {
		dir, base, ok := strings.Cut(f.Name, "/")
		if !ok || base != "METADATA" {
			continue
		}
		stem, ok := strings.CutSuffix(dir, ".dist-info")
		if !ok {
			continue
		}
		i := strings.LastIndex(stem, "-")
		if i <= 0 {
			continue
		}
		if NormalizeName(stem[:i])+"-"+strings.ToLower(stem[i+1:]) != want {
			continue
		}
		matches = append(matches, f)
	}

	switch len(matches) {
	case 0:
		return nil, ErrMissingDistInfo
	case 1:
	default:
		names := make([]string, len(matches))
		for i, f := range matches {
			names[i] = f.Name
		}
		return nil, fmt.Errorf("multiple METADATA files found in wheel: %s", strings.Join(names, ", "))
	}

	rc, err := matches[0].Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", matches[0].Name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", matches[0].Name, err)
	}
	return b, nil
}
