// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkgtoss/toss/pkg/distfile"
)

// ErrNoFiles is returned when the path patterns expanded to zero
// distribution files.
var ErrNoFiles = errors.New("path patterns didn't match any wheels or source distributions")

// ErrMissingPkgInfo is returned when a source distribution contains no
// PKG-INFO file at the expected location.
var ErrMissingPkgInfo = errors.New("no PKG-INFO file found")

// PatternError reports a syntactically invalid path pattern.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid publish path %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// GlobError reports an I/O failure while expanding a path pattern.
type GlobError struct {
	Pattern string
	Err     error
}

func (e *GlobError) Error() string {
	return fmt.Sprintf("expanding publish path %q: %v", e.Pattern, e.Err)
}

func (e *GlobError) Unwrap() error { return e.Err }

// InvalidFilenameError reports a matched file whose name is neither a
// wheel nor a source distribution.
type InvalidFilenameError struct {
	Path string
}

func (e *InvalidFilenameError) Error() string {
	return fmt.Sprintf("file is neither a wheel nor a source distribution: %s", e.Path)
}

// InvalidExtensionError reports a source distribution with an extension we
// do not upload. Only .tar.gz source distributions are created and
// published; other archive forms exist solely for installation.
type InvalidExtensionError struct {
	Filename *distfile.SourceDist
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("only files ending in .tar.gz are valid source distributions: %s", e.Filename)
}

// MultiplePkgInfoError reports a source distribution with more than one
// PKG-INFO candidate, which would make the upload payload ambiguous.
type MultiplePkgInfoError struct {
	Paths []string
}

func (e *MultiplePkgInfoError) Error() string {
	return "multiple PKG-INFO files found: " + strings.Join(e.Paths, ", ")
}

// ReadError reports a failure reading an archive entry while it was the
// active stream position.
type ReadError struct {
	Entry string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Entry, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// PrepareError wraps any per-file failure that happened before the network
// call: I/O, metadata extraction, or metadata parsing.
type PrepareError struct {
	Path string
	Err  error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("failed to publish %s: %v", e.Path, e.Err)
}

func (e *PrepareError) Unwrap() error { return e.Err }

// SendError wraps any failure during or after the network call. It carries
// both the file path and the registry URL so operators can tell a
// malformed file apart from a rejecting registry.
type SendError struct {
	Path     string
	Registry string
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to publish %s to %s: %v", e.Path, e.Registry, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// RedirectError reports a response whose final URL differs from the
// registry URL. A redirected POST silently turns into a GET that returns
// 200 without uploading anything, so URL drift is always fatal.
type RedirectError struct {
	URL string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("the request was redirected, but redirects are not allowed when publishing, please use the canonical URL: %s", e.URL)
}

// StatusError reports a non-2xx response with an extracted message.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload failed with status code %d: %s", e.StatusCode, e.Message)
}

// PermissionDeniedError reports a 403 that did not match any
// already-exists registry quirk.
type PermissionDeniedError struct {
	StatusCode int
	Message    string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied (status code %d): %s", e.StatusCode, e.Message)
}

// StatusNoBodyError reports a non-2xx response whose body could not be
// read.
type StatusNoBodyError struct {
	StatusCode int
	Err        error
}

func (e *StatusNoBodyError) Error() string {
	return fmt.Sprintf("upload failed with status %d", e.StatusCode)
}

func (e *StatusNoBodyError) Unwrap() error { return e.Err }
