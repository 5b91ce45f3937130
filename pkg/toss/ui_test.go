// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toss

import (
	"strings"
	"testing"
	"time"
)

func TestFormatUploadDetail(t *testing.T) {
	tests := []struct {
		name  string
		sent  float64
		total float64
		rate  float64
		want  string
	}{
		{"no total", 2048, 0, 0, "2.00 KB"},
		{"halfway", 1 << 20, 2 << 20, 0, " 50% 1.00 MB/2.00 MB"},
		{"with rate and eta", 1 << 20, 2 << 20, 1 << 20, " 50% 1.00 MB/2.00 MB @ 1.00 MB/s ETA 1s"},
		{"sent clamps to total", 3 << 20, 2 << 20, 0, "100% 2.00 MB/2.00 MB"},
		{"negative sent", -5, 0, 0, "0.00 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatUploadDetail(tt.sent, tt.total, tt.rate)
			if got != strings.TrimSpace(tt.want) {
				t.Errorf("formatUploadDetail(%v, %v, %v) = %q, want %q", tt.sent, tt.total, tt.rate, got, strings.TrimSpace(tt.want))
			}
		})
	}
}

func TestFormatShortDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "0s"},
		{time.Second, "1s"},
		{59 * time.Second, "59s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Hour, "2h00m"},
		{3*time.Hour + 5*time.Minute, "3h05m"},
	}
	for _, tt := range tests {
		if got := formatShortDuration(tt.d); got != tt.want {
			t.Errorf("formatShortDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestHumanReadableBytes(t *testing.T) {
	tests := []struct {
		bts  float64
		want string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{2048, "2.00 KB"},
		{5 << 20, "5.00 MB"},
	}
	for _, tt := range tests {
		if got := humanReadableBytes(tt.bts); got != tt.want {
			t.Errorf("humanReadableBytes(%v) = %q, want %q", tt.bts, got, tt.want)
		}
	}
}

func TestConsoleReporterLifecycle(t *testing.T) {
	var b strings.Builder
	r := NewConsoleReporter(&b)

	id := r.UploadStarted("demo-1.0.0.tar.gz", 100)
	if id == "" {
		t.Fatal("UploadStarted returned empty id")
	}
	r.UploadProgress(id, 100)
	r.UploadComplete(id)
	r.Progress("demo-1.0.0.tar.gz", id)

	if !strings.Contains(b.String(), "demo-1.0.0.tar.gz") {
		t.Errorf("output %q does not mention the file", b.String())
	}
	// Progress drops the upload; a second call is a no-op.
	before := b.String()
	r.Progress("demo-1.0.0.tar.gz", id)
	if b.String() != before {
		t.Errorf("second Progress wrote output: %q", b.String())
	}
}
