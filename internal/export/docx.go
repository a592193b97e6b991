package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// WriteDocx renders the study guide (file info, key concepts, one block per
// section) to a .docx file.
func WriteDocx(result *notes.LectureResult, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	info := result.FileInfo
	addStyledRun(doc.AddParagraph(""), info.Name, true, 16)
	addPlain(doc.AddParagraph(""), fmt.Sprintf("%d words analysed, about %d min reading time",
		info.WordCount, info.EstimatedReadingMinutes))

	if len(result.Keywords) > 0 {
		addStyledRun(doc.AddParagraph(""), "Key Concepts", true, 15)
		addPlain(doc.AddParagraph(""), strings.Join(result.Keywords, ", "))
	}

	if pre := notes.Preamble(result.Notes); pre != "" {
		addLines(doc, pre)
	}

	for i, sec := range notes.Parse(result.Notes) {
		title := sec.Title
		if title == "" {
			title = "Notes"
		}
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Module %d: %s", i+1, title), true, 14)

		if !sec.HasSplit() {
			addLines(doc, sec.Body)
			continue
		}

		if l := sec.Lead(); l != "" {
			addLines(doc, l)
		}

		p := doc.AddParagraph("")
		p.AddText(notes.TheoryToken + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
		addRichText(p, *sec.Theory)

		if sec.Example != nil {
			p := doc.AddParagraph("")
			p.AddText(notes.ExampleToken + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			addRichText(p, *sec.Example)
		}
	}

	return doc.SaveTo(outputPath)
}

// addLines writes a markdown-ish body one paragraph per non-blank line.
func addLines(doc *docx.RootDoc, body string) {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}
		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addPlain(p *docx.Paragraph, text string) {
	p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(fontSize).Color("000000")
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
