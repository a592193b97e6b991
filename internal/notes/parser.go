package notes

import (
	"errors"
	"strings"
)

// ErrUnparseableDocument is returned by ParseStrict when a non-empty
// document contains no heading line.
var ErrUnparseableDocument = errors.New("unparseable notes document")

type block struct {
	title string
	lines []string
}

type scanned struct {
	preamble []string
	blocks   []block
}

func scan(doc Document) scanned {
	text := strings.ReplaceAll(string(doc), "\r\n", "\n")

	var out scanned
	var current *block
	for _, line := range strings.Split(text, "\n") {
		if title, ok := headingTitle(line); ok {
			out.blocks = append(out.blocks, block{title: title})
			current = &out.blocks[len(out.blocks)-1]
			continue
		}
		if current == nil {
			out.preamble = append(out.preamble, line)
			continue
		}
		current.lines = append(current.lines, line)
	}
	return out
}

// ParseStrict splits doc into sections in source order, one per heading line.
// Text before the first heading is not part of any section.
func ParseStrict(doc Document) ([]Section, error) {
	s := scan(doc)
	if len(s.blocks) == 0 {
		if strings.TrimSpace(string(doc)) == "" {
			return nil, nil
		}
		return nil, ErrUnparseableDocument
	}

	sections := make([]Section, 0, len(s.blocks))
	for _, b := range s.blocks {
		sections = append(sections, newSection(b.title, joinTrimmed(b.lines)))
	}
	return sections, nil
}

// Parse is ParseStrict with a fallback: a document without headings becomes
// a single untitled section holding the whole text.
func Parse(doc Document) []Section {
	sections, err := ParseStrict(doc)
	if errors.Is(err, ErrUnparseableDocument) {
		text := strings.ReplaceAll(string(doc), "\r\n", "\n")
		return []Section{newSection("", joinTrimmed(strings.Split(text, "\n")))}
	}
	return sections
}

// Preamble returns the text before the first heading.
func Preamble(doc Document) string {
	s := scan(doc)
	if len(s.blocks) == 0 {
		return ""
	}
	return joinTrimmed(s.preamble)
}

func newSection(title, body string) Section {
	sec := Section{Title: title, Body: body}
	sec.Theory, sec.Example = splitBody(body)
	return sec
}

// splitBody returns the text after the first Theory marker up to the next
// Example marker, and the text after that Example marker. Both are nil when
// there is no Theory marker.
func splitBody(body string) (theory, example *string) {
	loc := reTheory.FindStringIndex(body)
	if loc == nil {
		return nil, nil
	}
	rest := body[loc[1]:]

	ex := reExample.FindStringIndex(rest)
	if ex == nil {
		t := strings.TrimSpace(rest)
		return &t, nil
	}
	t := strings.TrimSpace(rest[:ex[0]])
	e := strings.TrimSpace(rest[ex[1]:])
	return &t, &e
}

// lead returns the part of a body before its Theory marker.
func lead(body string) string {
	loc := reTheory.FindStringIndex(body)
	if loc == nil {
		return body
	}
	before := strings.TrimRight(body[:loc[0]], " \t")
	return joinTrimmed(strings.Split(before, "\n"))
}

// joinTrimmed joins lines, dropping blank lines at both ends.
func joinTrimmed(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
