package notes

import (
	"fmt"
	"regexp"
	"strings"
)

// GrammarVersion identifies the notes convention shared by the generator
// prompt and the parser.
const GrammarVersion = "v1"

const (
	TheoryToken  = "Theory"
	ExampleToken = "Example"
)

var (
	// Up to three leading spaces, 1-6 '#', whitespace, then the title.
	reHeading = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)

	// "Theory:", "**Theory:**", "**Theory**:", "*Theory:*" and the _ variants.
	reTheory  = sentinel(TheoryToken)
	reExample = sentinel(ExampleToken)
)

func sentinel(token string) *regexp.Regexp {
	const emph = `(?:\*\*|__|\*|_)`
	return regexp.MustCompile(`(?:\*\*|__|\*|_|\b)` + token + emph + `?:` + emph + `?`)
}

// headingTitle returns the title of a heading line, or false if the line is
// not a heading.
func headingTitle(line string) (string, bool) {
	m := reHeading.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return "", false
	}
	title := unwrapEmphasis(strings.TrimSpace(m[2]))
	if title == "" {
		return "", false
	}
	return title, true
}

// GrammarInstructions renders the convention as instructions for the
// generation collaborator.
func GrammarInstructions() string {
	return fmt.Sprintf(`Format (notes grammar %s):
- Start every topic with a markdown heading line: "## <topic title>".
- Inside a topic, write "%s:" followed by the core explanation.
- Then write "%s:" followed by one concrete example.
- Do not put headings inside the %s or %s text.`,
		GrammarVersion, TheoryToken, ExampleToken, TheoryToken, ExampleToken)
}

// unwrapEmphasis strips one pair of surrounding ** or __.
func unwrapEmphasis(s string) string {
	for _, mark := range []string{"**", "__"} {
		if len(s) > 2*len(mark) && strings.HasPrefix(s, mark) && strings.HasSuffix(s, mark) {
			return strings.TrimSpace(s[len(mark) : len(s)-len(mark)])
		}
	}
	return s
}
