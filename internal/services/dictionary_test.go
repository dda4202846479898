package services

import (
	"testing"
)

func TestParseSynthesis(t *testing.T) {
	raw := "```json\n{\"found\": true, \"suggestion\": \"\", \"entry\": {\"translation\": \"casa\", \"definition\": \"a building for living in\", \"phonetic\": \"haʊs\", \"part_of_speech\": \"noun\", \"examples\": [\"The house is old.\"]}}\n```"

	result, err := parseSynthesis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found {
		t.Fatal("expected found=true")
	}
	if result.Entry.Translation != "casa" {
		t.Fatalf("expected translation 'casa', got %q", result.Entry.Translation)
	}
	if len(result.Entry.Examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(result.Entry.Examples))
	}
}

func TestParseSynthesis_NotFoundWithSuggestion(t *testing.T) {
	raw := `{"found": false, "suggestion": "house", "entry": {}}`

	result, err := parseSynthesis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Found {
		t.Fatal("expected found=false")
	}
	if result.Suggestion != "house" {
		t.Fatalf("expected suggestion 'house', got %q", result.Suggestion)
	}
}

func TestParseSynthesis_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose", "Sorry, I cannot help with that."},
		{"truncated", `{"found": true, "entry": {`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseSynthesis(tc.raw); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello  ", "hello"},
		{"Look   Up", "look up"},
		{"", ""},
		{"\tmañana\n", "mañana"},
	}

	for _, tc := range tests {
		if got := normalizeQuery(tc.in); got != tc.want {
			t.Errorf("normalizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCacheKey_DistinguishesLanguagePairs(t *testing.T) {
	a := cacheKey("hello", "en", "es")
	b := cacheKey("hello", "en", "de")
	if a == b {
		t.Fatal("expected different cache keys for different target languages")
	}
	if a != cacheKey("hello", "en", "es") {
		t.Fatal("expected cache key to be deterministic")
	}
}

func TestTermHeard(t *testing.T) {
	tests := []struct {
		transcript string
		expected   string
		want       bool
	}{
		{"I said hello world", "Hello World", true},
		{"completely different", "hello", false},
		{"", "hello", false},
		{"hello", "", false},
	}

	for _, tc := range tests {
		if got := termHeard(tc.transcript, tc.expected); got != tc.want {
			t.Errorf("termHeard(%q, %q) = %v, want %v", tc.transcript, tc.expected, got, tc.want)
		}
	}
}
