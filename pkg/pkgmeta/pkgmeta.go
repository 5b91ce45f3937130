// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkgmeta reads Python core metadata: the PKG-INFO file of a source
// distribution and the dist-info METADATA file of a wheel. Both share the
// same format, RFC 822 style headers optionally followed by a body that
// holds the long description.
package pkgmeta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/textproto"
	"strings"
)

// Metadata is a parsed core-metadata record. Optional scalar fields are
// empty strings when absent; repeated fields are nil when absent.
type Metadata struct {
	MetadataVersion string
	Name            string
	Version         string

	Summary                string
	Description            string
	DescriptionContentType string
	Author                 string
	AuthorEmail            string
	Maintainer             string
	MaintainerEmail        string
	License                string
	Keywords               string
	HomePage               string
	DownloadURL            string
	RequiresPython         string

	Classifiers      []string
	Platforms        []string
	RequiresDist     []string
	ProvidesDist     []string
	ObsoletesDist    []string
	RequiresExternal []string
	ProjectURLs      []string
}

// ParseError reports structurally invalid metadata.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid package metadata: " + e.Reason
}

// Parse parses a PKG-INFO or METADATA document. Metadata 2.1 and later put
// the long description in the message body; older documents carry it in a
// Description header. The body wins when both are present and the header is
// empty.
func Parse(b []byte) (*Metadata, error) {
	r := textproto.NewReader(bufio.NewReader(bytes.NewReader(b)))
	header, err := r.ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Reason: err.Error()}
	}

	m := &Metadata{
		MetadataVersion:        header.Get("Metadata-Version"),
		Name:                   header.Get("Name"),
		Version:                header.Get("Version"),
		Summary:                header.Get("Summary"),
		Description:            header.Get("Description"),
		DescriptionContentType: header.Get("Description-Content-Type"),
		Author:                 header.Get("Author"),
		AuthorEmail:            header.Get("Author-Email"),
		Maintainer:             header.Get("Maintainer"),
		MaintainerEmail:        header.Get("Maintainer-Email"),
		License:                header.Get("License"),
		Keywords:               header.Get("Keywords"),
		HomePage:               header.Get("Home-Page"),
		DownloadURL:            header.Get("Download-Url"),
		RequiresPython:         header.Get("Requires-Python"),
		Classifiers:            header.Values("Classifier"),
		Platforms:              header.Values("Platform"),
		RequiresDist:           header.Values("Requires-Dist"),
		ProvidesDist:           header.Values("Provides-Dist"),
		ObsoletesDist:          header.Values("Obsoletes-Dist"),
		RequiresExternal:       header.Values("Requires-External"),
		ProjectURLs:            header.Values("Project-Url"),
	}

	if m.Description == "" {
		body, readErr := io.ReadAll(r.R)
		if readErr != nil {
			return nil, &ParseError{Reason: readErr.Error()}
		}
		if desc := strings.TrimSpace(string(body)); desc != "" {
			m.Description = desc
		}
	}

	switch {
	case m.MetadataVersion == "":
		return nil, &ParseError{Reason: "missing Metadata-Version"}
	case m.Name == "":
		return nil, &ParseError{Reason: "missing Name"}
	case m.Version == "":
		return nil, &ParseError{Reason: "missing Version"}
	}
	return m, nil
}

// NormalizeName normalizes a distribution name per PEP 503: runs of
// ".", "-" and "_" collapse to a single "-" and the result is lowercased.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '.' || c == '-' || c == '_' {
			prevSep = true
			continue
		}
		if prevSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		prevSep = false
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
