// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package distfile parses the filenames of Python distribution files.
//
// A distribution file is either a wheel (PEP 427, e.g.
// "tqdm-4.66.1-py3-none-any.whl") or a source distribution (PEP 625, e.g.
// "tqdm-999.0.0.tar.gz"). Classification happens purely on the base name;
// no file I/O is performed here.
package distfile

import (
	"strings"
)

// Extension is the archive extension of a source distribution.
type Extension string

const (
	ExtTarGz  Extension = "tar.gz"
	ExtTarBz2 Extension = "tar.bz2"
	ExtTarXz  Extension = "tar.xz"
	ExtTarZst Extension = "tar.zst"
	ExtZip    Extension = "zip"
)

var sourceDistExtensions = []Extension{ExtTarGz, ExtTarBz2, ExtTarXz, ExtTarZst, ExtZip}

// Filename is a classified distribution filename: either *Wheel or
// *SourceDist.
type Filename interface {
	// String returns the original base name.
	String() string
	// FileType is the upload form's filetype field: "bdist_wheel" or
	// "sdist".
	FileType() string
	// PyVersion is the upload form's pyversion field: the wheel's
	// dot-joined Python tags, or "source" for a source distribution.
	PyVersion() string
}

// Wheel is a parsed wheel filename.
type Wheel struct {
	Dist         string
	Version      string
	Build        string // optional build tag, empty if absent
	PythonTags   []string
	ABITags      []string
	PlatformTags []string

	raw string
}

func (w *Wheel) String() string { return w.raw }

func (*Wheel) FileType() string { return "bdist_wheel" }

func (w *Wheel) PyVersion() string { return strings.Join(w.PythonTags, ".") }

// SourceDist is a parsed source distribution filename.
type SourceDist struct {
	Dist      string
	Version   string
	Extension Extension

	raw string
}

func (s *SourceDist) String() string { return s.raw }

func (*SourceDist) FileType() string { return "sdist" }

func (*SourceDist) PyVersion() string { return "source" }

// Parse classifies a base filename as a wheel or a source distribution.
// It reports false for anything else.
func Parse(name string) (Filename, bool) {
	if strings.HasSuffix(name, ".whl") {
		w, err := ParseWheel(name)
		if err != nil {
			return nil, false
		}
		return w, true
	}
	for _, ext := range sourceDistExtensions {
		if strings.HasSuffix(name, "."+string(ext)) {
			s, err := ParseSourceDist(name)
			if err != nil {
				return nil, false
			}
			return s, true
		}
	}
	return nil, false
}

// ParseWheel parses a wheel filename of the form
// {dist}-{version}(-{build})?-{python}-{abi}-{platform}.whl.
//
// Wheel filenames escape problematic characters in the name and version
// with underscores, so splitting on "-" is unambiguous.
func ParseWheel(name string) (*Wheel, error) {
	stem, ok := strings.CutSuffix(name, ".whl")
	if !ok {
		return nil, &ParseError{Name: name, Reason: "missing .whl extension"}
	}
	parts := strings.Split(stem, "-")
	if len(parts) != 5 && len(parts) != 6 {
		return nil, &ParseError{Name: name, Reason: "expected 5 or 6 dash-separated components"}
	}
	for _, p := range parts {
		if p == "" {
			return nil, &ParseError{Name: name, Reason: "empty component"}
		}
	}
	w := &Wheel{
		Dist:    parts[0],
		Version: parts[1],
		raw:     name,
	}
	tags := parts[2:]
	if len(parts) == 6 {
		w.Build = parts[2]
		tags = parts[3:]
		// A build tag must start with a digit (PEP 427).
		if w.Build[0] < '0' || w.Build[0] > '9' {
			return nil, &ParseError{Name: name, Reason: "build tag must start with a digit"}
		}
	}
	if !validDistName(w.Dist) {
		return nil, &ParseError{Name: name, Reason: "invalid distribution name"}
	}
	if !validVersion(w.Version) {
		return nil, &ParseError{Name: name, Reason: "invalid version"}
	}
	w.PythonTags = strings.Split(tags[0], ".")
	w.ABITags = strings.Split(tags[1], ".")
	w.PlatformTags = strings.Split(tags[2], ".")
	return w, nil
}

// ParseSourceDist parses a source distribution filename of the form
// {dist}-{version}.{ext}. The version starts after the last dash, since
// distribution names may themselves contain dashes.
func ParseSourceDist(name string) (*SourceDist, error) {
	var ext Extension
	var stem string
	for _, e := range sourceDistExtensions {
		if s, ok := strings.CutSuffix(name, "."+string(e)); ok {
			ext = e
			stem = s
			break
		}
	}
	if ext == "" {
		return nil, &ParseError{Name: name, Reason: "unrecognized archive extension"}
	}
	i := strings.LastIndex(stem, "-")
	if i <= 0 || i == len(stem)-1 {
		return nil, &ParseError{Name: name, Reason: "expected {name}-{version}"}
	}
	s := &SourceDist{
		Dist:      stem[:i],
		Version:   stem[i+1:],
		Extension: ext,
		raw:       name,
	}
	if !validDistName(s.Dist) {
		return nil, &ParseError{Name: name, Reason: "invalid distribution name"}
	}
	if !validVersion(s.Version) {
		return nil, &ParseError{Name: name, Reason: "invalid version"}
	}
	return s, nil
}

// ParseError reports a filename that does not follow the wheel or source
// distribution grammar.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid distribution filename " + e.Name + ": " + e.Reason
}

func validDistName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
			if i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validVersion accepts anything that plausibly starts a PEP 440 version.
// Full version parsing is left to the registry; the filename check only has
// to reject names that are clearly not distribution files.
func validVersion(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= '0' && c <= '9'
}
