package notes

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string { return &s }

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []Section
	}{
		{
			name: "theory and example",
			doc: `## Photosynthesis
**Theory:** Plants turn light into chemical energy.
**Example:** A leaf in sunlight producing glucose.`,
			want: []Section{{
				Title:   "Photosynthesis",
				Body:    "**Theory:** Plants turn light into chemical energy.\n**Example:** A leaf in sunlight producing glucose.",
				Theory:  ptr("Plants turn light into chemical energy."),
				Example: ptr("A leaf in sunlight producing glucose."),
			}},
		},
		{
			name: "theory without example",
			doc:  "# Entropy\nTheory: Disorder tends to increase.\n",
			want: []Section{{
				Title:  "Entropy",
				Body:   "Theory: Disorder tends to increase.",
				Theory: ptr("Disorder tends to increase."),
			}},
		},
		{
			name: "example without theory is not split",
			doc:  "## Loops\nExample: for i := range 10 {}",
			want: []Section{{
				Title: "Loops",
				Body:  "Example: for i := range 10 {}",
			}},
		},
		{
			name: "bold label variants and lead text",
			doc:  "### **Gravity**\nNewton's idea.\n**Theory**: Masses attract.\n__Example:__ An apple falls.",
			want: []Section{{
				Title:   "Gravity",
				Body:    "Newton's idea.\n**Theory**: Masses attract.\n__Example:__ An apple falls.",
				Theory:  ptr("Masses attract."),
				Example: ptr("An apple falls."),
			}},
		},
		{
			name: "single emphasis labels",
			doc:  "## Loops\n*Theory:* Repeat a block.\n_Example:_ A for loop.",
			want: []Section{{
				Title:   "Loops",
				Body:    "*Theory:* Repeat a block.\n_Example:_ A for loop.",
				Theory:  ptr("Repeat a block."),
				Example: ptr("A for loop."),
			}},
		},
		{
			name: "duplicate titles stay distinct",
			doc:  "## Recap\nfirst\n## Recap\nsecond",
			want: []Section{
				{Title: "Recap", Body: "first"},
				{Title: "Recap", Body: "second"},
			},
		},
		{
			name: "preamble is not a section",
			doc:  "Lecture 4 notes\n\n## Topic\nbody",
			want: []Section{{Title: "Topic", Body: "body"}},
		},
		{
			name: "closing hashes and hashtags",
			doc:  "## C# basics ##\n#notaheading\nbody",
			want: []Section{{Title: "C# basics", Body: "#notaheading\nbody"}},
		},
		{
			name: "empty document",
			doc:  "   \n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrict(tt.doc)
			if err != nil {
				t.Fatalf("ParseStrict() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStrict() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStrictNoHeadings(t *testing.T) {
	_, err := ParseStrict("Just a paragraph of notes.\nTheory: something.")
	if !errors.Is(err, ErrUnparseableDocument) {
		t.Fatalf("expected ErrUnparseableDocument, got %v", err)
	}
}

func TestParseFallback(t *testing.T) {
	doc := Document("Just a paragraph.\nTheory: ideas.\nExample: one.")
	got := Parse(doc)
	if len(got) != 1 {
		t.Fatalf("expected 1 fallback section, got %d", len(got))
	}
	if got[0].Title != "" {
		t.Errorf("fallback title = %q, want empty", got[0].Title)
	}
	if got[0].Body != string(doc) {
		t.Errorf("fallback body = %q", got[0].Body)
	}
	if got[0].Theory == nil || *got[0].Theory != "ideas." {
		t.Errorf("fallback theory = %v", got[0].Theory)
	}
}

func TestSectionCountMatchesHeadings(t *testing.T) {
	doc := Document(`# Course
intro
## One
Theory: a
Example: b
## Two
plain
### Three
Theory: c`)

	sections, err := ParseStrict(doc)
	if err != nil {
		t.Fatal(err)
	}

	headings := 0
	for _, line := range strings.Split(string(doc), "\n") {
		if _, ok := headingTitle(line); ok {
			headings++
		}
	}
	if len(sections) != headings {
		t.Fatalf("sections = %d, headings = %d", len(sections), headings)
	}

	wantTitles := []string{"Course", "One", "Two", "Three"}
	for i, sec := range sections {
		if sec.Title != wantTitles[i] {
			t.Errorf("section %d title = %q, want %q", i, sec.Title, wantTitles[i])
		}
	}
}

func TestParseIsRepeatable(t *testing.T) {
	doc := Document("## A\nTheory: x\nExample: y\n## B\nz")
	first := Parse(doc)
	second := Parse(doc)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parse not repeatable:\n%s", diff)
	}
}

func TestUnmarkedBodyIsVerbatim(t *testing.T) {
	body := "Line one with  double  spaces.\n\n  indented line\nlast line"
	sections := Parse(Document("## Verbatim\n" + body + "\n"))
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	sec := sections[0]
	if sec.Theory != nil || sec.Example != nil {
		t.Errorf("expected no theory/example, got %v / %v", sec.Theory, sec.Example)
	}
	if sec.Body != body {
		t.Errorf("body = %q, want %q", sec.Body, body)
	}
}

func TestCRLFDocuments(t *testing.T) {
	sections := Parse("## Title\r\nTheory: a\r\nExample: b\r\n")
	if len(sections) != 1 || sections[0].Title != "Title" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
	if *sections[0].Example != "b" {
		t.Errorf("example = %q", *sections[0].Example)
	}
}
