package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// maybeCreatePR handles the no-PR-yet startup path. Depending on the create
// mode it fails fast, asks, or goes ahead: push the branch, create the PR
// from the branch's first commit message, then fetch the fresh record.
func maybeCreatePR(gitMgr *GitManager, ghMgr *GHManager, branch string, opts watchOptions, logger *slog.Logger) (*PrStatus, error) {
	switch opts.create {
	case createNever:
		return nil, fmt.Errorf("%w %q", ErrNoPR, branch)
	case createAsk:
		if !stderrIsTTY() {
			return nil, fmt.Errorf("%w %q (pass --create to open one)", ErrNoPR, branch)
		}
		ok, err := confirmCreatePR(branch)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrNoPR, branch)
		}
	}

	logger.Info("pushing branch to origin", "branch", branch)
	if err := gitMgr.PushCurrentBranch(); err != nil {
		return nil, err
	}
	title, body, err := gitMgr.BranchTitleBody()
	if err != nil {
		return nil, err
	}
	logger.Info("creating pull request", "title", title, "draft", opts.draft)
	if err := ghMgr.CreatePR(title, body, opts.draft); err != nil {
		return nil, err
	}
	return ghMgr.FetchInitial(branch)
}

func confirmCreatePR(branch string) (bool, error) {
	var result bool
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("No pull request found for %q.", branch)).
		Description("Push the branch and create one?").
		Affirmative("Yes").
		Negative("No").
		Value(&result)
	form := huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(prdashHuhTheme()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return result, nil
}

func prdashHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

func stderrIsTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}
