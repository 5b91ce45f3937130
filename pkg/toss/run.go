// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toss

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/pkgtoss/toss/pkg/publish"
)

// PublishAll resolves patterns to distribution files and uploads each
// one to target, printing a verdict line per file to w. Files are
// uploaded sequentially; a failed file does not stop the rest. The
// returned error joins all per-file failures.
func PublishAll(ctx context.Context, p *publish.Publisher, logger *zap.Logger, w io.Writer, patterns []string, target *publish.Target) error {
	files, err := publish.FilesForPublishing(patterns)
	if err != nil {
		return err
	}

	logger.Info("publishing",
		zap.Int("files", len(files)),
		zap.String("registry", target.URL.String()))

	var errs []error
	for _, file := range files {
		name := file.Filename.String()
		uploaded, err := p.Upload(ctx, file, target)
		switch {
		case err != nil:
			fmt.Fprintf(w, "%s %s: %v\n", color.RedString("error"), name, err)
			errs = append(errs, err)
		case uploaded:
			fmt.Fprintf(w, "%s %s\n", color.GreenString("uploaded"), name)
		default:
			fmt.Fprintf(w, "%s %s already exists on the registry\n", color.YellowString("skipped"), name)
		}
	}
	return errors.Join(errs...)
}
