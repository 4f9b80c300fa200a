package ui

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegistryAppendsNewKeysInOrder(t *testing.T) {
	r := NewRegistry()
	r.Apply([]RowSpec{
		{Key: "header", Kind: RowHeader, Prefix: "#1 - title"},
		{Key: "url", Kind: RowPlain, Message: "https://example.test"},
	})
	want := []string{"header", "url"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
}

func TestRegistryUpdatesInPlaceWithoutReordering(t *testing.T) {
	r := NewRegistry()
	r.Apply([]RowSpec{
		{Key: "a", Kind: RowPlain, Message: "one"},
		{Key: "b", Kind: RowPlain, Message: "two"},
	})
	// Later frame lists b before a; existing positions must not move.
	r.Apply([]RowSpec{
		{Key: "b", Kind: RowPlain, Message: "two'"},
		{Key: "a", Kind: RowPlain, Message: "one'"},
		{Key: "c", Kind: RowPlain, Message: "three"},
	})
	want := []string{"a", "b", "c"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	frame := r.Render("", PlainStyles())
	if frame != "one'\ntwo'\nthree" {
		t.Fatalf("unexpected frame: %q", frame)
	}
}

func TestRegistryNeverRemovesRows(t *testing.T) {
	r := NewRegistry()
	r.Apply([]RowSpec{
		{Key: "a", Kind: RowPlain, Message: "one"},
		{Key: "b", Kind: RowPlain, Message: "two"},
	})
	r.Apply([]RowSpec{
		{Key: "a", Kind: RowPlain, Message: "one"},
	})
	if r.Len() != 2 {
		t.Fatalf("expected 2 rows to survive, got %d", r.Len())
	}
}

func TestRegistryApplyIsIdempotent(t *testing.T) {
	specs := []RowSpec{
		{Key: "header", Kind: RowHeader, Prefix: "#7 - fix"},
		{Key: "state", Kind: RowLabeled, Prefix: "state", Message: "OPEN"},
	}
	r := NewRegistry()
	r.Apply(specs)
	first := r.Render("", PlainStyles())
	r.Apply(specs)
	second := r.Render("", PlainStyles())
	if first != second {
		t.Fatalf("expected identical frames, got %q then %q", first, second)
	}
	if r.Len() != len(specs) {
		t.Fatalf("expected %d rows, got %d", len(specs), r.Len())
	}
}

func TestRenderRowTemplates(t *testing.T) {
	tests := []struct {
		name    string
		spec    RowSpec
		spinner string
		want    string
	}{
		{
			name: "header",
			spec: RowSpec{Kind: RowHeader, Prefix: "#12 - add caching"},
			want: "====> #12 - add caching",
		},
		{
			name: "section",
			spec: RowSpec{Kind: RowSection, Prefix: "Checks"},
			want: "----> Checks",
		},
		{
			name: "labeled detail",
			spec: RowSpec{Kind: RowLabeled, Prefix: "author", Message: "octocat"},
			want: "author     --> octocat",
		},
		{
			name: "labeled file",
			spec: RowSpec{Kind: RowLabeled, Indent: 2, Prefix: "a.go", PrefixWidth: 6, Message: "3+1-"},
			want: "  --> a.go   | 3+1-",
		},
		{
			name:    "check pending spins",
			spec:    RowSpec{Kind: RowCheck, Prefix: "ci", Message: CheckLabelPending},
			spinner: "*",
			want:    "[ .. ] * ci",
		},
		{
			name:    "check terminal is static",
			spec:    RowSpec{Kind: RowCheck, Prefix: "ci", Message: CheckLabelOK, Terminal: true},
			spinner: "*",
			want:    "[ OK ] ci",
		},
		{
			name: "plain with indent and marker",
			spec: RowSpec{Kind: RowPlain, Indent: 4, Prefix: "> ", Message: "https://example.test"},
			want: "    > https://example.test",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := renderRow(tc.spec, tc.spinner, PlainStyles())
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRenderJoinsRowsWithNewlines(t *testing.T) {
	r := NewRegistry()
	r.Apply([]RowSpec{
		{Key: "a", Kind: RowPlain, Message: "one"},
		{Key: "b", Kind: RowPlain, Message: "two"},
	})
	frame := r.Render("", PlainStyles())
	if strings.Count(frame, "\n") != 1 {
		t.Fatalf("expected a single separator, got %q", frame)
	}
}

func TestPadOrTrim(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abc…"},
		{"abc", 0, "abc"},
	}
	for _, tc := range tests {
		if got := PadOrTrim(tc.value, tc.width); got != tc.want {
			t.Fatalf("PadOrTrim(%q, %d): expected %q, got %q", tc.value, tc.width, tc.want, got)
		}
	}
}
