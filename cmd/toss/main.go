// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The toss command uploads Python distribution files (wheels and
// source distributions) to a PyPI-compatible package registry.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pkgtoss/toss/pkg/publish"
	"github.com/pkgtoss/toss/pkg/toss"
)

var flags struct {
	registry   string
	username   string
	password   string
	prompt     bool
	configPath string
	verbose    bool
	noColor    bool
}

var rootCmd = &cobra.Command{
	Use:           "toss",
	Short:         "Upload Python packages to a registry",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var publishCmd = &cobra.Command{
	Use:   "publish [flags] FILES...",
	Short: "Upload distribution files to a package registry",
	Long: `Upload wheel and source distribution files to a PyPI-compatible
registry over the legacy upload API.

FILES are paths or glob patterns, e.g. 'dist/*'. Each matched file must
be named like a wheel (.whl) or a source distribution (.tar.gz).

The registry may be a URL or the name of an entry in the registries
config file. Credentials come from flags, the TOSS_USERNAME and
TOSS_PASSWORD environment variables, or the config file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&flags.registry, "registry", "r", "", "registry URL or config entry name")
	publishCmd.Flags().StringVarP(&flags.username, "username", "u", "", "username for the registry")
	publishCmd.Flags().StringVar(&flags.password, "password", "", "password or token for the registry")
	publishCmd.Flags().BoolVar(&flags.prompt, "prompt", false, "prompt for a password if none was given")
	publishCmd.Flags().StringVar(&flags.configPath, "config", "", "path to the registries config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if flags.noColor {
		color.NoColor = true
	}

	logger := zap.NewNop()
	if flags.verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	configPath := flags.configPath
	if configPath == "" {
		configPath = toss.ConfigPath()
	}
	cfg, err := toss.LoadConfig(configPath)
	if err != nil {
		return err
	}

	target, err := toss.ResolveTarget(cfg, flags.registry, flags.username, flags.password)
	if err != nil {
		return err
	}
	if target.Username != "" && target.Password == "" && flags.prompt {
		target.Password, err = promptPassword(target.Username)
		if err != nil {
			return err
		}
	}

	client := &http.Client{Timeout: 15 * time.Minute}
	reporter := toss.NewConsoleReporter(cmd.OutOrStdout())
	p := publish.NewPublisher(client, logger, reporter)

	return toss.PublishAll(cmd.Context(), p, logger, cmd.OutOrStdout(), args, target)
}

func promptPassword(username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("cannot prompt for a password: stdin is not a terminal")
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("toss:"), err)
		os.Exit(1)
	}
}
