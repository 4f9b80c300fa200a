package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrNoPR is returned when no pull request exists for the watched branch.
var ErrNoPR = errors.New("no pull request found for branch")

// ghCommandTimeout bounds the one-shot gh calls (initial lookup, PR
// creation). Refreshes carry no deadline; the in-flight guard keeps a slow
// gh from stacking calls while the dashboard renders the last snapshot.
const ghCommandTimeout = 8 * time.Second

const ghStatusFields = "number,title,url,body,state,isDraft,author,headRefName," +
	"createdAt,updatedAt,commits,files,statusCheckRollup"

// GHManager fetches pull request snapshots through the GitHub CLI. It
// enforces the minimum refetch interval against the snapshot's lastFetched
// stamp and allows at most one fetch in flight at a time; a Refresh that
// arrives while either guard holds returns the current snapshot unchanged.
type GHManager struct {
	mu          sync.Mutex
	repoRoot    string
	minInterval time.Duration
	inFlight    bool
	lastAttempt time.Time

	now   func() time.Time
	runGH func(ctx context.Context, repoRoot string, args ...string) ([]byte, error)
}

func NewGHManager(repoRoot string, minInterval time.Duration) *GHManager {
	return &GHManager{
		repoRoot:    repoRoot,
		minInterval: minInterval,
		now:         time.Now,
		runGH:       runGHCommand,
	}
}

// FetchInitial looks up the PR for branch. Called once at startup; a failure
// here is fatal to the run.
func (m *GHManager) FetchInitial(branch string) (*PrStatus, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return nil, errors.New("branch is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ghCommandTimeout)
	defer cancel()
	return m.fetch(ctx, branch)
}

// Refresh returns a replacement snapshot for current, or current itself when
// the minimum interval has not elapsed, another fetch is already in flight,
// or the fetch fails.
func (m *GHManager) Refresh(current *PrStatus) (*PrStatus, error) {
	m.mu.Lock()
	now := m.now()
	// lastAttempt covers failed fetches, which never advance lastFetched;
	// without it a persistent gh failure would be retried every tick.
	if m.inFlight ||
		now.Sub(current.lastFetched) < m.minInterval ||
		now.Sub(m.lastAttempt) < m.minInterval {
		m.mu.Unlock()
		return current, nil
	}
	m.inFlight = true
	m.lastAttempt = now
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	fresh, err := m.fetch(context.Background(), current.HeadRefName)
	if err != nil {
		return current, err
	}
	if fresh.lastFetched.Before(current.lastFetched) {
		fresh.lastFetched = current.lastFetched
	}
	return fresh, nil
}

// CreatePR pushes the PR through `gh pr create`. The branch must already be
// on the remote.
func (m *GHManager) CreatePR(title string, body string, draft bool) error {
	args := []string{"pr", "create", "--title", title, "--body", body}
	if draft {
		args = append(args, "--draft")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ghCommandTimeout)
	defer cancel()
	_, err := m.runGH(ctx, m.repoRoot, args...)
	if err != nil {
		return fmt.Errorf("create pull request: %w", err)
	}
	return nil
}

func (m *GHManager) fetch(ctx context.Context, branch string) (*PrStatus, error) {
	out, err := m.runGH(ctx, m.repoRoot,
		"pr", "list",
		"--head", branch,
		"--json", ghStatusFields,
		"--limit", "1",
	)
	if err != nil {
		return nil, err
	}
	var prs []PrStatus
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("parse gh pr list output: %w", err)
	}
	if len(prs) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoPR, branch)
	}
	status := prs[0]
	status.lastFetched = m.now()
	return &status, nil
}

func runGHCommand(ctx context.Context, repoRoot string, args ...string) ([]byte, error) {
	ghPath, err := exec.LookPath("gh")
	if err != nil {
		return nil, errors.New("`gh` not installed; install GitHub CLI to use prdash")
	}
	cmd := exec.CommandContext(ctx, ghPath, args...)
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("gh timed out after %s", ghCommandTimeout.Round(time.Second))
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(string(exitErr.Stderr))
			if msg != "" {
				return nil, fmt.Errorf("%w: %s", err, msg)
			}
		}
		return nil, err
	}
	return out, nil
}
