package services

import "testing"

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single word", "golang", "https://www.google.com/search?q=golang"},
		{"spaces become plus", "cute cats", "https://www.google.com/search?q=cute+cats"},
		{"special characters escaped", "c++ & go", "https://www.google.com/search?q=c%2B%2B+%26+go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSearchURL(tt.query); got != tt.want {
				t.Errorf("BuildSearchURL(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare host gets https", "example.com", "https://example.com"},
		{"http preserved", "http://example.com", "http://example.com"},
		{"https preserved", "https://example.com/x", "https://example.com/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.raw); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
