package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var errAborted = errors.New("aborted")

type createMode int

const (
	createAsk createMode = iota
	createAlways
	createNever
)

type watchOptions struct {
	branch   string
	draft    bool
	create   createMode
	openURL  bool
	verbose  bool
	interval time.Duration // 0 uses the configured default

	// output overrides the render sink; tests inject a buffer here.
	output io.Writer
}

// runWatch is the blocking entry point: resolve the branch, fetch (or
// create) its pull request, then render until every check is terminal.
func runWatch(opts watchOptions) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	// Verbose mode mirrors log records to stderr alongside the dashboard.
	logger, closeLogs, err := setupLogger(cfg, !opts.verbose)
	if err != nil {
		return err
	}
	defer closeLogs()

	gitMgr, err := OpenGitManager(".")
	if err != nil {
		return err
	}
	branch := opts.branch
	if branch == "" {
		branch, err = gitMgr.CurrentBranch()
		if err != nil {
			return err
		}
	}

	interval := opts.interval
	if interval <= 0 {
		interval = cfg.RefreshInterval()
	}
	ghMgr := NewGHManager(gitMgr.Root(), interval)

	started := time.Now()
	logger.Info("watching pull request", "branch", branch, "refresh_interval", interval)
	status, err := ghMgr.FetchInitial(branch)
	if errors.Is(err, ErrNoPR) {
		status, err = maybeCreatePR(gitMgr, ghMgr, branch, opts, logger)
	}
	if err != nil {
		return err
	}

	model := newWatchModel(ghMgr, status, cfg.TickInterval(), logger)
	var progOpts []tea.ProgramOption
	if opts.output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.output))
	}
	p := tea.NewProgram(model, progOpts...)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(watchModel); ok && m.aborted {
		return errAborted
	}

	fmt.Printf("✨ Done in %s\n", time.Since(started).Round(time.Second))
	if opts.openURL && status.URL != "" {
		if err := openBrowser(status.URL); err != nil {
			logger.Warn("open browser failed", "url", status.URL, "err", err)
		}
	}
	return nil
}
