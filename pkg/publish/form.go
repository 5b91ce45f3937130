// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"bufio"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
)

// Field is one name/value pair of the upload form. Duplicate names are
// allowed; repeated metadata fields emit one Field per value.
type Field struct {
	Name  string
	Value string
}

// formMetadata collects the non-file fields of the multipart upload form,
// mirroring the flat schema of the PyPI legacy upload endpoint.
func formMetadata(file File) ([]Field, error) {
	hashHex, err := hashFile(file.Path)
	if err != nil {
		return nil, err
	}

	metadata, err := extractMetadata(file)
	if err != nil {
		return nil, err
	}

	fields := []Field{
		{":action", "file_upload"},
		{"sha256_digest", hashHex},
		{"protocol_version", "1"},
		{"metadata_version", metadata.MetadataVersion},
		{"name", metadata.Name},
		{"version", metadata.Version},
		{"filetype", file.Filename.FileType()},
		{"pyversion", file.Filename.PyVersion()},
	}

	addOption := func(name, value string) {
		if value != "" {
			fields = append(fields, Field{name, value})
		}
	}
	addOption("summary", metadata.Summary)
	addOption("description", metadata.Description)
	addOption("description_content_type", metadata.DescriptionContentType)
	addOption("author", metadata.Author)
	addOption("author_email", metadata.AuthorEmail)
	addOption("maintainer", metadata.Maintainer)
	addOption("maintainer_email", metadata.MaintainerEmail)
	addOption("license", metadata.License)
	addOption("keywords", metadata.Keywords)
	addOption("home_page", metadata.HomePage)
	addOption("download_url", metadata.DownloadURL)

	// The GitLab PyPI repository API requires this field even when empty,
	// so it is always emitted.
	fields = append(fields, Field{"requires_python", metadata.RequiresPython})

	addAll := func(name string, values []string) {
		for _, v := range values {
			fields = append(fields, Field{name, v})
		}
	}
	addAll("classifiers", metadata.Classifiers)
	addAll("platform", metadata.Platforms)
	addAll("requires_dist", metadata.RequiresDist)
	addAll("provides_dist", metadata.ProvidesDist)
	addAll("obsoletes_dist", metadata.ObsoletesDist)
	addAll("requires_external", metadata.RequiresExternal)
	addAll("project_urls", metadata.ProjectURLs)

	return fields, nil
}

// hashFile computes the SHA-256 hex digest of a file's contents as a
// bounded-memory streaming read.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digester := digest.SHA256.Digester()
	if _, err := io.Copy(digester.Hash(), bufio.NewReader(f)); err != nil {
		return "", err
	}
	return digester.Digest().Encoded(), nil
}
