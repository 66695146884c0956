package analysis

import (
	"strings"
	"testing"
)

func TestRemoveLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"markdown link keeps text", "see [the docs](https://example.com/docs) here", "see the docs here"},
		{"bare url dropped", "visit https://example.com today", "visit  today"},
		{"www url dropped", "go to www.example.com now", "go to  now"},
		{"plain text untouched", "nothing to strip", "nothing to strip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveLinks(tt.input); got != tt.want {
				t.Errorf("RemoveLinks(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarkdownToText(t *testing.T) {
	got := MarkdownToText("# Heading\n\nSome **bold** text")
	if strings.ContainsAny(got, "#*<>") {
		t.Errorf("markdown markers survived: %q", got)
	}
	if !strings.Contains(got, "Heading") || !strings.Contains(got, "bold") {
		t.Errorf("content lost: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxRunes int
		want     string
	}{
		{"under cap untouched", "short", 10, "short"},
		{"at cap untouched", "12345", 5, "12345"},
		{"over cap marked", "123456", 5, "12345" + TruncationMarker},
		{"zero cap disables", "anything at all", 0, "anything at all"},
		{"multibyte runes counted as runes", "héllo wörld", 5, "héllo" + TruncationMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.maxRunes); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxRunes, got, tt.want)
			}
		})
	}
}
