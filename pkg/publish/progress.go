// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import "io"

// Reporter observes upload progress. Implementations must be safe for
// concurrent use; a caller may publish distinct files from multiple
// goroutines.
type Reporter interface {
	// Progress reports a per-file tick once a file's upload attempt has
	// finished.
	Progress(name, id string)
	// UploadStarted is called before streaming begins and returns an
	// opaque id for the upload. size is the declared file size in bytes,
	// or -1 when unknown.
	UploadStarted(name string, size int64) (id string)
	// UploadProgress reports an incremental byte count for the upload.
	UploadProgress(id string, n int64)
	// UploadComplete is called once the request body has been fully sent
	// and a response received.
	UploadComplete(id string)
}

// NopReporter is a Reporter that discards all events.
type NopReporter struct{}

func (NopReporter) Progress(name, id string) {}

func (NopReporter) UploadStarted(name string, size int64) string { return "" }

func (NopReporter) UploadProgress(id string, n int64) {}

func (NopReporter) UploadComplete(id string) {}

// progressReader forwards reads and reports the byte deltas.
type progressReader struct {
	r      io.Reader
	report func(n int64)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.report(int64(n))
	}
	return n, err
}
