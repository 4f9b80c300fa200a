package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Four-character check outcome labels shared by the status model and the
// check row colorizer.
const (
	CheckLabelOK      = " OK "
	CheckLabelPass    = "Pass"
	CheckLabelFail    = "Fail"
	CheckLabelSkip    = "Skip"
	CheckLabelPending = " .. "
)

// StatusView is the render-ready projection of one pull request snapshot.
type StatusView struct {
	Number    int
	Title     string
	URL       string
	URLText   string
	Body      string
	State     string
	Author    string
	CreatedAt string
	UpdatedAt string
	SHA       string
	Files     []FileRow
	Checks    []CheckRow
}

type FileRow struct {
	Path      string
	Additions int
	Deletions int
}

type CheckRow struct {
	Name     string
	Label    string
	Terminal bool
}

// BuildStatusRows maps a status view into the ordered row specs for one
// frame. It is deterministic for a given view; row keys are stable across
// ticks so the registry can update rows in place.
func BuildStatusRows(view StatusView) []RowSpec {
	urlText := view.URLText
	if urlText == "" {
		urlText = view.URL
	}

	rows := []RowSpec{
		{Key: "header", Kind: RowHeader, Prefix: fmt.Sprintf("#%d - %s", view.Number, view.Title)},
		{Key: "url", Kind: RowPlain, Indent: 4, Prefix: "> ", Message: urlText},
		{Key: "body", Kind: RowSection, Prefix: "Body"},
		{Key: "_body", Kind: RowPlain, Message: view.Body},
	}

	if len(view.Files) > 0 {
		rows = append(rows, RowSpec{Key: "files", Kind: RowSection, Prefix: "Files"})
		width := longestPathWidth(view.Files)
		for _, f := range view.Files {
			rows = append(rows, RowSpec{
				Key:         f.Path,
				Kind:        RowLabeled,
				Indent:      2,
				Prefix:      f.Path,
				PrefixWidth: width,
				Message:     fmt.Sprintf("%d+%d-", f.Additions, f.Deletions),
			})
		}
	}

	rows = append(rows,
		RowSpec{Key: "details", Kind: RowSection, Prefix: "Details"},
		RowSpec{Key: "state", Kind: RowLabeled, Prefix: "state", Message: view.State},
		RowSpec{Key: "author", Kind: RowLabeled, Prefix: "author", Message: view.Author},
		RowSpec{Key: "createdAt", Kind: RowLabeled, Prefix: "createdAt", Message: view.CreatedAt},
		RowSpec{Key: "updatedAt", Kind: RowLabeled, Prefix: "updatedAt", Message: view.UpdatedAt},
		RowSpec{Key: "sha", Kind: RowLabeled, Prefix: "sha", Message: view.SHA},
		RowSpec{Key: "detail-url", Kind: RowLabeled, Prefix: "url", Message: urlText},
	)

	if len(view.Checks) > 0 {
		rows = append(rows, RowSpec{Key: "checks", Kind: RowSection, Prefix: "Checks"})
		for _, c := range view.Checks {
			rows = append(rows, RowSpec{
				Key:      c.Name,
				Kind:     RowCheck,
				Prefix:   c.Name,
				Message:  c.Label,
				Terminal: c.Terminal,
			})
		}
	}

	return rows
}

// longestPathWidth is recomputed from the current file set on every build so
// columns stay aligned as the set grows. Ties keep first-encountered order.
func longestPathWidth(files []FileRow) int {
	width := 0
	for _, f := range files {
		if w := runewidth.StringWidth(f.Path); w > width {
			width = w
		}
	}
	return width
}
