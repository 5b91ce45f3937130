// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toss

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const uploadProgressInterval = 120 * time.Millisecond

// ConsoleReporter renders upload progress to a terminal-ish writer.
// Progress lines are rewritten in place with a carriage return; the
// final line per file is written by Progress.
type ConsoleReporter struct {
	w io.Writer

	mu      sync.Mutex
	uploads map[string]*uploadState
}

type uploadState struct {
	name  string
	total int64
	sent  atomic.Int64
	start time.Time
	last  time.Time
}

// NewConsoleReporter returns a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		w:       w,
		uploads: make(map[string]*uploadState),
	}
}

// UploadStarted registers a new upload and returns its id.
func (c *ConsoleReporter) UploadStarted(name string, size int64) string {
	id := uuid.New().String()
	c.mu.Lock()
	c.uploads[id] = &uploadState{
		name:  name,
		total: size,
		start: time.Now(),
	}
	c.mu.Unlock()
	return id
}

// UploadProgress records n more bytes sent for the upload id and redraws
// the progress line if enough time has passed since the last draw.
func (c *ConsoleReporter) UploadProgress(id string, n int64) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.uploads[id]
	if !ok {
		return
	}
	u.sent.Add(n)
	now := time.Now()
	if now.Sub(u.last) < uploadProgressInterval {
		return
	}
	u.last = now
	fmt.Fprintf(c.w, "\r%s %s", u.name, u.detail())
}

// UploadComplete clears the in-place progress line for the upload id.
func (c *ConsoleReporter) UploadComplete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.uploads[id]
	if !ok {
		return
	}
	if !u.last.IsZero() {
		fmt.Fprint(c.w, "\r", strings.Repeat(" ", len(u.name)+1+len(u.detail())), "\r")
	}
}

// Progress writes the final transfer summary for a file and forgets the
// upload. The publish outcome is not known yet at this point, so the
// line carries no verdict.
func (c *ConsoleReporter) Progress(name, id string) {
	c.mu.Lock()
	u, ok := c.uploads[id]
	delete(c.uploads, id)
	c.mu.Unlock()
	if !ok {
		return
	}
	if detail := u.finalDetail(); detail != "" {
		fmt.Fprintf(c.w, "%s %s\n", color.New(color.Faint).Sprint(name), detail)
	}
}

func (u *uploadState) detail() string {
	sent := float64(u.sent.Load())
	total := float64(u.total)
	var rate float64
	if elapsed := time.Since(u.start); elapsed > 0 {
		rate = sent / elapsed.Seconds()
	}
	return formatUploadDetail(sent, total, rate)
}

func (u *uploadState) finalDetail() string {
	var total float64
	if u.total > 0 {
		total = float64(u.total)
	} else {
		total = float64(u.sent.Load())
	}
	if total <= 0 {
		return ""
	}
	detail := humanReadableBytes(total)
	elapsed := time.Since(u.start)
	if elapsed > 0 {
		rate := total / elapsed.Seconds()
		if rate > 0 {
			detail = fmt.Sprintf("%s @ %s/s", detail, humanReadableBytes(rate))
		}
	}
	return detail
}

func formatUploadDetail(sent, total, rate float64) string {
	if sent < 0 {
		sent = 0
	}
	if total > 0 && sent > total {
		sent = total
	}

	var b strings.Builder
	if total > 0 {
		percent := (sent / total) * 100
		if percent > 100 {
			percent = 100
		}
		fmt.Fprintf(&b, "%3.0f%% %s/%s", percent, humanReadableBytes(sent), humanReadableBytes(total))
	} else {
		b.WriteString(humanReadableBytes(sent))
	}

	if rate > 0 {
		fmt.Fprintf(&b, " @ %s/s", humanReadableBytes(rate))
		if total > 0 {
			remaining := total - sent
			if remaining < 0 {
				remaining = 0
			}
			eta := time.Duration(remaining/rate*float64(time.Second) + 0.5)
			if eta < 0 {
				eta = 0
			}
			fmt.Fprintf(&b, " ETA %s", formatShortDuration(eta))
		}
	}

	return strings.TrimSpace(b.String())
}

func formatShortDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	seconds := int64(d.Seconds() + 0.5)
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60

	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

func humanReadableBytes(bts float64) string {
	const unit = 1024
	if bts <= unit {
		return fmt.Sprintf("%.2f B", bts)
	}
	const prefix = "KMGTPE"
	n := bts
	i := -1
	for n > unit {
		i++
		n = n / unit
	}

	return fmt.Sprintf("%.2f %cB", n, prefix[i])
}
