package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "tester",
		Email: "tester@example.test",
		When:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func commitFile(t *testing.T, wt *git.Worktree, dir string, name string, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: testSignature()}); err != nil {
		t.Fatalf("commit %s: %v", name, err)
	}
}

func initTestRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	commitFile(t, wt, dir, "base.txt", "initial commit")
	return repo, wt, dir
}

func TestOpenGitManagerAndCurrentBranch(t *testing.T) {
	_, _, dir := initTestRepo(t)
	g, err := OpenGitManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	branch, err := g.CurrentBranch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if branch != "master" {
		t.Fatalf("expected master, got %q", branch)
	}
	if g.Root() == "" {
		t.Fatalf("expected a repo root")
	}
}

func TestDefaultBranchFallsBackToLocal(t *testing.T) {
	_, _, dir := initTestRepo(t)
	g, err := OpenGitManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	branch, err := g.DefaultBranch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if branch != "master" {
		t.Fatalf("expected master, got %q", branch)
	}
}

func TestBranchTitleBodyUsesFirstBranchCommit(t *testing.T) {
	repo, wt, dir := initTestRepo(t)

	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}); err != nil {
		t.Fatalf("checkout feature: %v", err)
	}
	commitFile(t, wt, dir, "a.txt", "add retry logic\n\nretries transient failures")
	commitFile(t, wt, dir, "b.txt", "fix typo")

	g := &GitManager{repo: repo, root: dir}
	title, body, err := g.BranchTitleBody()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "add retry logic" {
		t.Fatalf("expected the branch's first commit headline, got %q", title)
	}
	if body != "retries transient failures" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitCommitMessage(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantTitle string
		wantBody  string
	}{
		{name: "title only", message: "fix bug", wantTitle: "fix bug", wantBody: ""},
		{name: "title and body", message: "fix bug\n\nlong story", wantTitle: "fix bug", wantBody: "long story"},
		{name: "trailing newline", message: "fix bug\n", wantTitle: "fix bug", wantBody: ""},
		{name: "empty", message: "", wantTitle: "", wantBody: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			title, body := splitCommitMessage(tc.message)
			if title != tc.wantTitle || body != tc.wantBody {
				t.Fatalf("expected (%q, %q), got (%q, %q)", tc.wantTitle, tc.wantBody, title, body)
			}
		})
	}
}
