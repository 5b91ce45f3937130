// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"

	"go.uber.org/zap"
)

// acceptHeader asks PyPI for structured error messages instead of HTML,
// and other registries for plain text over HTML. See extractErrorMessage.
const acceptHeader = "application/json;q=0.9, text/plain;q=0.8, text/html;q=0.7"

// buildRequest assembles the multipart POST for one distribution file. The
// file is streamed into the request body through a progress-observing
// reader, never buffered whole. It returns the reporter's upload id
// alongside the request.
func (p *Publisher) buildRequest(ctx context.Context, file File, target *Target, fields []Field) (*http.Request, string, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, "", err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, "", err
	}
	id := p.reporter.UploadStarted(file.Filename.String(), info.Size())
	content := &progressReader{r: f, report: func(n int64) {
		p.reporter.UploadProgress(id, n)
	}}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		defer f.Close()
		err := writeForm(form, fields, file.Filename.String(), content)
		if cerr := form.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	u := *target.URL
	if target.Username != "" && target.Password == "" {
		// Attach the username to the URL so a downstream authentication
		// layer can find the matching password. net/http promotes the
		// user-info into basic auth with an empty password on its own.
		u.User = url.User(target.Username)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), pr)
	if err != nil {
		pr.Close()
		return nil, id, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", acceptHeader)
	if target.Username != "" && target.Password != "" {
		p.logger.Debug("using username/password basic auth",
			zap.String("username", target.Username))
		req.SetBasicAuth(target.Username, target.Password)
	}
	return req, id, nil
}

func writeForm(form *multipart.Writer, fields []Field, filename string, content io.Reader) error {
	for _, field := range fields {
		if err := form.WriteField(field.Name, field.Value); err != nil {
			return err
		}
	}
	part, err := form.CreateFormFile("content", filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	return err
}
