package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrbonezy/prdash/ui"
)

type CheckStatusState string

const (
	CheckStatusQueued     CheckStatusState = "QUEUED"
	CheckStatusPending    CheckStatusState = "PENDING"
	CheckStatusRequested  CheckStatusState = "REQUESTED"
	CheckStatusInProgress CheckStatusState = "IN_PROGRESS"
	CheckStatusWaiting    CheckStatusState = "WAITING"
	CheckStatusCompleted  CheckStatusState = "COMPLETED"
)

type CheckConclusionState string

const (
	CheckConclusionSuccess        CheckConclusionState = "SUCCESS"
	CheckConclusionFailure        CheckConclusionState = "FAILURE"
	CheckConclusionNeutral        CheckConclusionState = "NEUTRAL"
	CheckConclusionSkipped        CheckConclusionState = "SKIPPED"
	CheckConclusionCancelled      CheckConclusionState = "CANCELLED"
	CheckConclusionTimedOut       CheckConclusionState = "TIMED_OUT"
	CheckConclusionActionRequired CheckConclusionState = "ACTION_REQUIRED"
	CheckConclusionStale          CheckConclusionState = "STALE"
	CheckConclusionStartupFailure CheckConclusionState = "STARTUP_FAILURE"
)

type StatusContextState string

const (
	ContextStatePending  StatusContextState = "PENDING"
	ContextStateSuccess  StatusContextState = "SUCCESS"
	ContextStateFailure  StatusContextState = "FAILURE"
	ContextStateError    StatusContextState = "ERROR"
	ContextStateExpected StatusContextState = "EXPECTED"
)

// StatusCheck is one entry of a PR's status check rollup: either a workflow
// check run or an external commit status context.
type StatusCheck interface {
	CheckName() string
	// IsTerminal reports whether the outcome is final and will not change
	// without a new run.
	IsTerminal() bool
	// ShortLabel is the four-character outcome glyph shown in check rows.
	ShortLabel() string
}

type RunCheck struct {
	Name         string               `json:"name"`
	WorkflowName string               `json:"workflowName"`
	StartedAt    string               `json:"startedAt"`
	CompletedAt  string               `json:"completedAt"`
	Status       CheckStatusState     `json:"status"`
	Conclusion   CheckConclusionState `json:"conclusion"`
}

func (c RunCheck) CheckName() string { return c.Name }

func (c RunCheck) IsTerminal() bool { return c.Status == CheckStatusCompleted }

func (c RunCheck) ShortLabel() string {
	if !c.IsTerminal() {
		return ui.CheckLabelPending
	}
	switch c.Conclusion {
	case CheckConclusionSuccess:
		return ui.CheckLabelOK
	case CheckConclusionNeutral, CheckConclusionCancelled:
		return ui.CheckLabelPass
	case CheckConclusionSkipped:
		return ui.CheckLabelSkip
	case CheckConclusionFailure, CheckConclusionTimedOut, CheckConclusionActionRequired,
		CheckConclusionStale, CheckConclusionStartupFailure:
		return ui.CheckLabelFail
	default:
		// GitHub occasionally reports conclusions this tool does not know;
		// treat them like a missing conclusion.
		return ui.CheckLabelPending
	}
}

type ContextCheck struct {
	Context   string             `json:"context"`
	StartedAt string             `json:"startedAt"`
	State     StatusContextState `json:"state"`
	TargetURL string             `json:"targetUrl"`
}

func (c ContextCheck) CheckName() string { return c.Context }

func (c ContextCheck) IsTerminal() bool {
	switch c.State {
	case ContextStateSuccess, ContextStateFailure, ContextStateError:
		return true
	default:
		return false
	}
}

func (c ContextCheck) ShortLabel() string {
	switch c.State {
	case ContextStateSuccess:
		return ui.CheckLabelPass
	case ContextStateFailure, ContextStateError:
		return ui.CheckLabelFail
	default:
		return ui.CheckLabelPending
	}
}

// CheckList decodes the statusCheckRollup array, discriminated by the
// GraphQL __typename field.
type CheckList []StatusCheck

func (l *CheckList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	checks := make(CheckList, 0, len(raws))
	for _, raw := range raws {
		var tag struct {
			Typename string `json:"__typename"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return err
		}
		switch tag.Typename {
		case "CheckRun":
			var c RunCheck
			if err := json.Unmarshal(raw, &c); err != nil {
				return err
			}
			checks = append(checks, c)
		case "StatusContext":
			var c ContextCheck
			if err := json.Unmarshal(raw, &c); err != nil {
				return err
			}
			checks = append(checks, c)
		default:
			return fmt.Errorf("unknown status check type %q", tag.Typename)
		}
	}
	*l = checks
	return nil
}

type User struct {
	Login string `json:"login"`
}

type Commit struct {
	OID             string `json:"oid"`
	MessageHeadline string `json:"messageHeadline"`
	MessageBody     string `json:"messageBody"`
}

type FileChange struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// PrStatus is one snapshot of a pull request, as reported by the GitHub CLI.
// Snapshots are replaced wholesale on refresh; lastFetched is owned by the
// GHManager and only ever moves forward.
type PrStatus struct {
	Number            int          `json:"number"`
	Title             string       `json:"title"`
	URL               string       `json:"url"`
	Body              string       `json:"body"`
	State             string       `json:"state"`
	IsDraft           bool         `json:"isDraft"`
	Author            User         `json:"author"`
	HeadRefName       string       `json:"headRefName"`
	CreatedAt         string       `json:"createdAt"`
	UpdatedAt         string       `json:"updatedAt"`
	Commits           []Commit     `json:"commits"`
	Files             []FileChange `json:"files"`
	StatusCheckRollup CheckList    `json:"statusCheckRollup"`

	lastFetched time.Time
}

// HeadSHA is the oid of the last commit, or empty when gh reported none.
func (p *PrStatus) HeadSHA() string {
	if len(p.Commits) == 0 {
		return ""
	}
	return p.Commits[len(p.Commits)-1].OID
}

// IsComplete reports whether every check has reached a terminal state. A PR
// with no checks configured counts as complete immediately; otherwise a
// watch on such a branch could never finish.
func (p *PrStatus) IsComplete() bool {
	for _, c := range p.StatusCheckRollup {
		if !c.IsTerminal() {
			return false
		}
	}
	return true
}

func (p *PrStatus) LastFetched() time.Time {
	return p.lastFetched
}
