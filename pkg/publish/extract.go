// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkgtoss/toss/pkg/distfile"
	"github.com/pkgtoss/toss/pkg/pkgmeta"
	"github.com/pkgtoss/toss/pkg/targz"
)

// extractMetadata reads and parses the core metadata embedded in a
// distribution file.
func extractMetadata(file File) (*pkgmeta.Metadata, error) {
	var contents []byte
	switch name := file.Filename.(type) {
	case *distfile.SourceDist:
		if name.Extension != distfile.ExtTarGz {
			return nil, &InvalidExtensionError{Filename: name}
		}
		var err error
		contents, err = sourceDistPkgInfo(file.Path)
		if err != nil {
			return nil, err
		}
	case *distfile.Wheel:
		f, err := os.Open(file.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		contents, err = pkgmeta.ReadWheelMetadata(f, info.Size(), name)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported distribution filename %T", file.Filename)
	}

	m, err := pkgmeta.Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	return m, nil
}

// sourceDistPkgInfo extracts the PKG-INFO file from a .tar.gz source
// distribution. The file must sit exactly one level below the archive's
// top-level directory; anything deeper or shallower is ignored. The
// archive is forward-only, so each candidate is read while its entry is
// the active stream position.
func sourceDistPkgInfo(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type pkgInfo struct {
		path string
		data []byte
	}
	var found []pkgInfo
	err = targz.Walk(bufio.NewReader(f), func(h *tar.Header, r io.Reader) error {
		parts := strings.Split(h.Name, "/")
		if len(parts) != 2 || parts[1] != "PKG-INFO" {
			return nil
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return &ReadError{Entry: h.Name, Err: err}
		}
		found = append(found, pkgInfo{path: h.Name, data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, ErrMissingPkgInfo
	case 1:
		return found[0].data, nil
	default:
		paths := make([]string, len(found))
		for i, p := range found {
			paths[i] = p.path
		}
		return nil, &MultiplePkgInfoError{Paths: paths}
	}
}
