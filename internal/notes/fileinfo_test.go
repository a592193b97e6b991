package notes

import "testing"

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{301, 2},
		{399, 2},
		{500, 2}, // 2.5 rounds half to even
		{700, 4}, // 3.5 rounds half to even
		{1000, 5},
	}

	for _, tt := range tests {
		if got := ReadingMinutes(tt.words); got != tt.want {
			t.Errorf("ReadingMinutes(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"the quick brown fox", 4},
		{"", 0},
		{"   ", 0},
		{"tabs\tand\nnewlines  too", 4},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestNewFileInfo(t *testing.T) {
	info := NewFileInfo("lecture.mp3", "the quick brown fox")
	want := FileInfo{Name: "lecture.mp3", WordCount: 4, EstimatedReadingMinutes: 1}
	if info != want {
		t.Errorf("NewFileInfo() = %+v, want %+v", info, want)
	}
}
