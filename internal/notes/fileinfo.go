package notes

import (
	"math"
	"strings"
)

// WordsPerMinute is the fixed reading speed used for reading-time estimates.
const WordsPerMinute = 200

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes returns max(1, round(words/200)), rounding halves to even.
func ReadingMinutes(wordCount int) int {
	if wordCount <= 0 {
		return 1
	}
	minutes := int(math.RoundToEven(float64(wordCount) / WordsPerMinute))
	return max(1, minutes)
}

// NewFileInfo derives the file statistics for a transcript.
func NewFileInfo(name string, transcript Transcript) FileInfo {
	words := WordCount(string(transcript))
	return FileInfo{
		Name:                    name,
		WordCount:               words,
		EstimatedReadingMinutes: ReadingMinutes(words),
	}
}
