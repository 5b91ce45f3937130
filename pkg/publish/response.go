// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// alreadyExistsQuirks is the ordered table of registry-specific responses
// that mean "this artifact was already uploaded". Twine detects duplicates
// the same way. Evaluated top to bottom; an empty bodyContains matches any
// body.
var alreadyExistsQuirks = []struct {
	registry     string
	status       int
	bodyContains string
}{
	{"artifactory", http.StatusForbidden, "overwrite artifact"},
	{"pypiserver", http.StatusConflict, ""},
	{"nexus", http.StatusBadRequest, "updating asset"},
	{"gitlab", http.StatusBadRequest, "already been taken"},
}

// handleResponse classifies the registry's response. It returns true for a
// fresh upload and false when the artifact already existed.
func (p *Publisher) handleResponse(registry *url.URL, resp *http.Response) (bool, error) {
	defer resp.Body.Close()

	p.logger.Debug("upload response",
		zap.String("registry", registry.String()),
		zap.Int("status", resp.StatusCode))

	// A redirect on POST turns the retried request into a GET (see
	// Post/Redirect/Get), which reports 200 without uploading anything.
	// net/http cannot restrict redirect policies to a method, so check the
	// final URL after the fact. The request URL carries user-info when a
	// bare username was supplied; the registry URL never does, so drop it
	// before comparing.
	finalURL := *resp.Request.URL
	finalURL.User = nil
	if finalURL.String() != registry.String() {
		return false, &RedirectError{URL: finalURL.String()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if p.logger.Core().Enabled(zapcore.DebugLevel) {
			if body, err := io.ReadAll(resp.Body); err == nil {
				p.logger.Debug("response body", zap.ByteString("body", body))
			} else {
				p.logger.Debug("failed to read response body", zap.Error(err))
			}
		}
		return true, nil
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &StatusNoBodyError{StatusCode: resp.StatusCode, Err: err}
	}
	text := string(body)
	p.logger.Debug("upload error response", zap.String("body", text))

	for _, quirk := range alreadyExistsQuirks {
		if resp.StatusCode == quirk.status && strings.Contains(text, quirk.bodyContains) {
			p.logger.Debug("artifact already exists",
				zap.String("registry_kind", quirk.registry))
			return false, nil
		}
	}

	message := extractErrorMessage(text, contentType)
	if resp.StatusCode == http.StatusForbidden {
		return false, &PermissionDeniedError{StatusCode: resp.StatusCode, Message: message}
	}
	return false, &StatusError{StatusCode: resp.StatusCode, Message: message}
}

// extractErrorMessage pulls the most specific diagnostic out of an error
// body. PyPI returns JSON whose code field carries the crucial context
// ("Invalid or non-existent authentication information" vs "user X isn't
// allowed to upload to project Y") while message and title are verbose
// boilerplate. Anything that is not a JSON object with a code key is
// returned verbatim; a present-but-empty code is trusted as-is. The content
// type must be exactly application/json; registries that append charset
// parameters do not use this body shape.
func extractErrorMessage(body, contentType string) string {
	if contentType != "application/json" {
		return body
	}
	var structured struct {
		Code *string `json:"code"`
	}
	if err := json.Unmarshal([]byte(body), &structured); err != nil || structured.Code == nil {
		return body
	}
	return *structured.Code
}
