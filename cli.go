package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		opts            watchOptions
		create          bool
		noCreate        bool
		intervalSeconds int
	)

	root := &cobra.Command{
		Use:   "prdash",
		Short: "Live dashboard for the current branch's pull request",
		Long: "Watches the pull request for the current git branch and renders its\n" +
			"metadata and CI checks in place, exiting once every check has finished.\n\n" +
			"Requires `gh` and a GitHub-backed repository.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if create && noCreate {
				return usageError(cmd, "--create and --no-create are mutually exclusive")
			}
			opts.create = createAsk
			if create {
				opts.create = createAlways
			}
			if noCreate {
				opts.create = createNever
			}
			if intervalSeconds < 0 {
				return usageError(cmd, "--interval must not be negative")
			}
			opts.interval = time.Duration(intervalSeconds) * time.Second
			return runWatch(opts)
		},
	}

	root.Flags().StringVarP(&opts.branch, "branch", "b", "", "Watch this branch instead of the checked-out one")
	root.Flags().BoolVar(&opts.draft, "draft", false, "Create the pull request as a draft")
	root.Flags().BoolVar(&create, "create", false, "Create a pull request without asking when none exists")
	root.Flags().BoolVar(&noCreate, "no-create", false, "Fail instead of offering to create a missing pull request")
	root.Flags().BoolVar(&opts.openURL, "open", false, "Open the pull request in the browser once checks finish")
	root.Flags().BoolVar(&opts.verbose, "verbose", false, "Mirror log records to stderr in addition to the log file")
	root.Flags().IntVar(&intervalSeconds, "interval", 0, "Minimum seconds between refetches (0 uses the configured default)")

	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the prdash version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), currentVersion())
			return nil
		},
	}
}

func usageError(cmd *cobra.Command, msg string) error {
	return errors.New(msg + "\n\n" + cmd.UsageString())
}
