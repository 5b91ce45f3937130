// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/pkgtoss/toss/pkg/distfile"
)

const demoPkgInfo = `Metadata-Version: 2.3
Name: demo
Version: 1.0.0
Summary: A demo package
Author-email: Ferris <ferris@example.org>
Requires-Python: >=3.8
Classifier: Development Status :: 4 - Beta
Classifier: Programming Language :: Python
Project-URL: Source, https://example.org/demo
`

type tarEntry struct {
	name string
	data string
}

// writeSdist writes a gzip-compressed tar archive with the given entries
// into dir and returns its path.
func writeSdist(t *testing.T, dir, filename string, entries []tarEntry) string {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		if err := tw.WriteHeader(&tar.Header{
			Name: e.name,
			Mode: 0644,
			Size: int64(len(e.data)),
		}); err != nil {
			t.Fatalf("writing header %s: %v", e.name, err)
		}
		if _, err := tw.Write([]byte(e.data)); err != nil {
			t.Fatalf("writing %s: %v", e.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// writeWheel writes a minimal wheel (zip) archive into dir and returns its
// path.
func writeWheel(t *testing.T, dir, filename, metadata string) string {
	t.Helper()
	w, err := distfile.ParseWheel(filename)
	if err != nil {
		t.Fatalf("ParseWheel(%q): %v", filename, err)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	distInfo := w.Dist + "-" + w.Version + ".dist-info"
	for name, data := range map[string]string{
		w.Dist + "/__init__.py": "",
		distInfo + "/WHEEL":     "Wheel-Version: 1.0\n",
		distInfo + "/METADATA":  metadata,
	} {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := f.Write([]byte(data)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// publishFile builds a File from a path whose base name must classify.
func publishFile(t *testing.T, path string) File {
	t.Helper()
	name, ok := distfile.Parse(filepath.Base(path))
	if !ok {
		t.Fatalf("Parse(%q) failed", filepath.Base(path))
	}
	return File{Path: path, Filename: name}
}
