package ui

import (
	"strings"
)

type RowKind int

const (
	RowPlain RowKind = iota
	RowHeader
	RowSection
	RowLabeled
	RowCheck
)

const labeledPrefixWidth = 10

// RowSpec describes one display row for a single frame. Specs are rebuilt
// every tick; the Key binds a logical row across ticks.
type RowSpec struct {
	Key         string
	Kind        RowKind
	Indent      int
	Prefix      string
	PrefixWidth int
	Message     string
	// Terminal marks check rows whose outcome is final; non-terminal check
	// rows render an animated marker.
	Terminal bool
}

type row struct {
	spec RowSpec
}

// Registry owns one persistent on-screen row per unique key. Rows are
// appended on first sight of a key and updated in place afterwards; they are
// never reordered or removed for the lifetime of a run.
type Registry struct {
	rows  []*row
	byKey map[string]*row
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[string]*row{}}
}

func (r *Registry) Apply(specs []RowSpec) {
	for _, spec := range specs {
		if existing, ok := r.byKey[spec.Key]; ok {
			existing.spec = spec
			continue
		}
		entry := &row{spec: spec}
		r.rows = append(r.rows, entry)
		r.byKey[spec.Key] = entry
	}
}

func (r *Registry) Len() int {
	return len(r.rows)
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.rows))
	for _, entry := range r.rows {
		keys = append(keys, entry.spec.Key)
	}
	return keys
}

// Render produces one frame in row order. spinnerFrame is the current
// animation glyph for non-terminal check rows.
func (r *Registry) Render(spinnerFrame string, styles Styles) string {
	var b strings.Builder
	for i, entry := range r.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(entry.spec, spinnerFrame, styles))
	}
	return b.String()
}

func renderRow(spec RowSpec, spinnerFrame string, styles Styles) string {
	indent := strings.Repeat(" ", spec.Indent)
	switch spec.Kind {
	case RowHeader:
		return styles.Arrow("====>") + " " + styles.Header(spec.Prefix+spec.Message)
	case RowSection:
		return styles.Arrow("---->") + " " + styles.Section(spec.Prefix+spec.Message)
	case RowLabeled:
		if spec.Indent > 0 {
			return indent + styles.Arrow("-->") + " " +
				styles.Label(PadOrTrim(spec.Prefix, spec.PrefixWidth)) + " " +
				styles.Arrow("|") + " " + styles.Normal(spec.Message)
		}
		width := spec.PrefixWidth
		if width <= 0 {
			width = labeledPrefixWidth
		}
		return styles.Label(PadOrTrim(spec.Prefix, width)) + " " +
			styles.Arrow("-->") + " " + styles.Normal(spec.Message)
	case RowCheck:
		marker := " "
		if !spec.Terminal {
			marker = " " + spinnerFrame + " "
		}
		return styles.Normal("[") + checkLabelStyle(spec.Message, styles)(spec.Message) +
			styles.Normal("]") + marker + styles.Secondary(spec.Prefix)
	default:
		return indent + spec.Prefix + styles.Normal(spec.Message)
	}
}

func checkLabelStyle(label string, styles Styles) func(string) string {
	switch label {
	case CheckLabelOK:
		return styles.Success
	case CheckLabelFail:
		return styles.Failure
	case CheckLabelSkip:
		return styles.Warning
	default:
		return styles.Normal
	}
}
