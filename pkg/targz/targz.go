// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package targz reads gzip-compressed tar archives as a forward-only
// stream of entries.
package targz

import (
	"archive/tar"
	"io"

	"github.com/klauspost/compress/gzip"
)

type Reader struct {
	z *gzip.Reader
	r *tar.Reader
}

// Read reads from the current entry. The entry's contents are only
// available between the Next call that returned it and the following one.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.r.Read(p)
}

func (r *Reader) Close() error {
	return r.z.Close()
}

func (r *Reader) Next() (*tar.Header, error) {
	return r.r.Next()
}

func New(r io.Reader) (*Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{z: gz, r: tar.NewReader(gz)}, nil
}

// Walk calls f for each entry in the archive. Returning an error from f
// stops the walk. The io.Reader passed to f is only valid for the duration
// of the call.
func Walk(r io.Reader, f func(*tar.Header, io.Reader) error) error {
	t, err := New(r)
	if err != nil {
		return err
	}
	defer t.Close()

	for {
		header, err := t.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := f(header, t); err != nil {
			return err
		}
	}
	return nil
}
