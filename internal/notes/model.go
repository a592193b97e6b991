// Package notes holds the lecture document model: the transcript, keyword
// list and generated notes of one pipeline run, plus the parser and
// formatter that recover and render the notes' section structure.
package notes

import "time"

// Transcript is the text produced by the transcription stage.
type Transcript string

// KeywordList is ordered by relevance as returned by the extraction stage.
// Duplicates are not removed here.
type KeywordList []string

// Document is a generated notes document in the heading/Theory/Example
// convention described by Grammar.
type Document string

// Section is one titled unit of a Document. Theory and Example are nil when
// the body carries no Theory marker.
type Section struct {
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Theory  *string `json:"theory,omitempty"`
	Example *string `json:"example,omitempty"`
}

// HasSplit reports whether the body was segmented into theory/example.
func (s Section) HasSplit() bool {
	return s.Theory != nil
}

// Lead is the body text before the Theory marker, or the whole body when the
// section is not split.
func (s Section) Lead() string {
	return lead(s.Body)
}

// FileInfo is derived from the transcript of one upload.
type FileInfo struct {
	Name                    string `json:"name"`
	WordCount               int    `json:"word_count"`
	EstimatedReadingMinutes int    `json:"estimated_reading_minutes"`
}

// LectureResult bundles the output of one successful pipeline run.
// It is built once and replaced wholesale on the next run.
type LectureResult struct {
	Transcript Transcript  `json:"transcript"`
	Keywords   KeywordList `json:"keywords"`
	Notes      Document    `json:"notes"`
	FileInfo   FileInfo    `json:"file_info"`
	Warnings   []string    `json:"warnings,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
