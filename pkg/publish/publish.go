// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish uploads built Python distribution files to a
// PyPI-compatible package registry using the legacy multipart upload
// protocol.
//
// One upload is one sequential pipeline: classify the filename, extract
// the embedded core metadata, build the flat form field set, stream the
// file into a multipart POST, and interpret the response. The file is read
// twice, once for the SHA-256 digest and once for the request body, both
// as streaming reads. Duplicate-upload responses from Artifactory,
// pypiserver, Nexus, and GitLab are normalized into a non-error
// "already exists" outcome.
package publish

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Target is the registry an upload goes to, with optional credentials.
// It is immutable for the duration of an upload.
type Target struct {
	URL      *url.URL
	Username string
	Password string
}

// Publisher uploads distribution files to a registry. The HTTP client is
// shared, read-only infrastructure; a single Publisher may be used for
// multiple files, though each Upload call is internally sequential.
type Publisher struct {
	client   *http.Client
	logger   *zap.Logger
	reporter Reporter
}

// NewPublisher returns a Publisher using the given collaborators. A nil
// client falls back to http.DefaultClient, a nil logger discards logs, and
// a nil reporter discards progress events.
func NewPublisher(client *http.Client, logger *zap.Logger, reporter Reporter) *Publisher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Publisher{client: client, logger: logger, reporter: reporter}
}

// Upload publishes one distribution file to the target registry. It
// returns true if the file was newly uploaded and false if it already
// existed. There are no retries, timeouts, or internal parallelism; those
// belong to the caller.
func (p *Publisher) Upload(ctx context.Context, file File, target *Target) (bool, error) {
	fields, err := formMetadata(file)
	if err != nil {
		return false, &PrepareError{Path: file.Path, Err: err}
	}

	req, id, err := p.buildRequest(ctx, file, target, fields)
	if err != nil {
		p.finishReporting(file, id)
		return false, &PrepareError{Path: file.Path, Err: err}
	}

	resp, err := p.client.Do(req)
	p.finishReporting(file, id)
	if err != nil {
		return false, &SendError{Path: file.Path, Registry: target.URL.String(), Err: err}
	}

	uploaded, err := p.handleResponse(target.URL, resp)
	if err != nil {
		return false, &SendError{Path: file.Path, Registry: target.URL.String(), Err: err}
	}
	return uploaded, nil
}

// finishReporting closes out the reporter session for an upload id, if one
// was handed out. Reporters rely on the Complete/Progress pair to clear
// their per-upload state, including after failed sends.
func (p *Publisher) finishReporting(file File, id string) {
	if id == "" {
		return
	}
	p.reporter.UploadComplete(id)
	p.reporter.Progress(file.Filename.String(), id)
}
