package notes

import (
	"regexp"
	"strings"
)

var reBlankRun = regexp.MustCompile(`\n{3,}`)

// FormatMarkdown renders doc for export: every heading becomes a level-2
// heading, Theory/Example markers become bold labels, trailing spaces are
// dropped and blank-line runs collapse to one. Parsing the output yields the
// same titles, theory and example text as parsing doc.
func FormatMarkdown(doc Document) string {
	sections, err := ParseStrict(doc)
	if err != nil {
		// No headings: keep the text, normalise markers only.
		return tidy(formatBody(Parse(doc)[0]))
	}

	var b strings.Builder
	if pre := Preamble(doc); pre != "" {
		b.WriteString(pre)
		b.WriteString("\n\n")
	}
	for _, sec := range sections {
		b.WriteString("## ")
		b.WriteString(sec.Title)
		b.WriteString("\n\n")
		if body := formatBody(sec); body != "" {
			b.WriteString(body)
			b.WriteString("\n\n")
		}
	}
	return tidy(b.String())
}

func formatBody(sec Section) string {
	if !sec.HasSplit() {
		return sec.Body
	}

	var parts []string
	if l := lead(sec.Body); l != "" {
		parts = append(parts, l)
	}
	parts = append(parts, "**"+TheoryToken+":** "+*sec.Theory)
	if sec.Example != nil {
		parts = append(parts, "**"+ExampleToken+":** "+*sec.Example)
	}
	return strings.Join(parts, "\n\n")
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	s = reBlankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	// Leading indentation is kept: an indented "#" line is not a heading.
	return strings.TrimRight(strings.TrimLeft(s, "\n"), "\n") + "\n"
}
