package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

// Artifact file names offered for download and written by batch runs.
const (
	PlainTextName = "notes.txt"
	MarkdownName  = "notes.md"
	DocxName      = "notes.docx"
)

// Format is one export artefact kind.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatDocx     Format = "docx"
)

// FormatFromName maps a download file name to its format.
func FormatFromName(name string) (Format, bool) {
	switch name {
	case PlainTextName:
		return FormatText, true
	case MarkdownName:
		return FormatMarkdown, true
	case DocxName:
		return FormatDocx, true
	}
	return "", false
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// PlainText is the raw notes document.
func PlainText(result *notes.LectureResult) []byte {
	return []byte(result.Notes)
}

// Markdown is the formatter's rendering of the notes document.
func Markdown(result *notes.LectureResult) []byte {
	return []byte(notes.FormatMarkdown(result.Notes))
}

// WriteAll writes notes.txt, notes.md and notes.docx into dir.
func WriteAll(result *notes.LectureResult, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	txtPath := filepath.Join(dir, PlainTextName)
	if err := os.WriteFile(txtPath, PlainText(result), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", PlainTextName, err)
	}

	mdPath := filepath.Join(dir, MarkdownName)
	if err := os.WriteFile(mdPath, Markdown(result), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", MarkdownName, err)
	}

	docxPath := filepath.Join(dir, DocxName)
	if err := WriteDocx(result, docxPath); err != nil {
		return nil, fmt.Errorf("write %s: %w", DocxName, err)
	}

	return []string{txtPath, mdPath, docxPath}, nil
}
