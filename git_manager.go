package main

import (
	"errors"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitManager answers the small set of repository questions the dashboard
// needs: the current branch, the default branch, and enough history to draft
// a pull request title from the branch's first commit.
type GitManager struct {
	repo *git.Repository
	root string
}

func OpenGitManager(dir string) (*GitManager, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}
	return &GitManager{repo: repo, root: wt.Filesystem.Root()}, nil
}

func (g *GitManager) Root() string {
	return g.root
}

func (g *GitManager) CurrentBranch() (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached; check out a branch or pass --branch")
	}
	return head.Name().Short(), nil
}

// DefaultBranch prefers the origin main/master refs and falls back to local
// ones for repositories without a remote.
func (g *GitManager) DefaultBranch() (string, error) {
	for _, name := range []string{"main", "master"} {
		if _, err := g.repo.Reference(plumbing.NewRemoteReferenceName("origin", name), true); err == nil {
			return name, nil
		}
	}
	for _, name := range []string{"main", "master"} {
		if _, err := g.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
			return name, nil
		}
	}
	return "", errors.New("no main or master branch found")
}

// PushCurrentBranch pushes the checked-out branch to origin. Up to date is
// not an error.
func (g *GitManager) PushCurrentBranch() error {
	branch, err := g.CurrentBranch()
	if err != nil {
		return err
	}
	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err = g.repo.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push %s to origin: %w", branch, err)
	}
	return nil
}

// BranchTitleBody derives a pull request title and body from the first
// commit the branch added on top of the default branch, falling back to the
// head commit when the merge base cannot be determined.
func (g *GitManager) BranchTitleBody() (string, string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", "", err
	}
	headCommit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return "", "", err
	}

	message := headCommit.Message
	if root, err := g.branchRootCommit(headCommit); err == nil && root != nil {
		message = root.Message
	}
	title, body := splitCommitMessage(message)
	if title == "" {
		return "", "", errors.New("head commit has an empty message")
	}
	return title, body, nil
}

// branchRootCommit walks first parents from head until the merge base with
// the default branch, returning the last commit before the base.
func (g *GitManager) branchRootCommit(head *object.Commit) (*object.Commit, error) {
	defaultBranch, err := g.DefaultBranch()
	if err != nil {
		return nil, err
	}
	baseRef, err := g.repo.Reference(plumbing.NewRemoteReferenceName("origin", defaultBranch), true)
	if err != nil {
		baseRef, err = g.repo.Reference(plumbing.NewBranchReferenceName(defaultBranch), true)
		if err != nil {
			return nil, err
		}
	}
	baseCommit, err := g.repo.CommitObject(baseRef.Hash())
	if err != nil {
		return nil, err
	}
	bases, err := head.MergeBase(baseCommit)
	if err != nil || len(bases) == 0 {
		return nil, fmt.Errorf("no merge base with %s", defaultBranch)
	}
	baseHash := bases[0].Hash

	current := head
	for current.Hash != baseHash {
		parent, err := current.Parent(0)
		if err != nil {
			return current, nil
		}
		if parent.Hash == baseHash {
			return current, nil
		}
		current = parent
	}
	// Branch has no commits of its own yet.
	return head, nil
}

func splitCommitMessage(message string) (string, string) {
	message = strings.TrimSpace(message)
	title, body, found := strings.Cut(message, "\n")
	if !found {
		return message, ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(body)
}
