// Package audio knows which uploaded file types the pipeline accepts.
package audio

import (
	"path/filepath"
	"strings"
)

// Extensions are the accepted audio/video container extensions, without dot.
var Extensions = []string{"mp3", "wav", "m4a", "mp4", "flac", "ogg"}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(Extensions))
	for _, ext := range Extensions {
		m["."+ext] = true
	}
	return m
}()

// IsSupported reports whether name has an accepted extension (case-insensitive).
func IsSupported(name string) bool {
	return supported[strings.ToLower(filepath.Ext(name))]
}

// Accept renders the extensions for an HTML file input's accept attribute.
func Accept() string {
	parts := make([]string, len(Extensions))
	for i, ext := range Extensions {
		parts[i] = "." + ext
	}
	return strings.Join(parts, ",")
}
