package processor

import (
	"reflect"
	"testing"
)

func TestKeywordFilterCaseInsensitiveSubstring(t *testing.T) {
	f := NewKeywordFilter([]string{"LLM", "Nvidia"})

	cases := map[string]bool{
		"New LLM released":        true,
		"new llm released":        true,
		"NVIDIA ships new chip":   true,
		"Benchmarking llms today": true,
		"Weather update":          false,
		"":                        false,
		"   ":                     false,
	}
	for title, want := range cases {
		if got := f.Match(title); got != want {
			t.Fatalf("Match(%q) = %v, want %v", title, got, want)
		}
	}
}

func TestKeywordFilterSubstringInsideWord(t *testing.T) {
	f := NewKeywordFilter([]string{"AI"})
	// 子串匹配而不是按词匹配
	if !f.Match("Show HN: a faster Email client") {
		t.Fatalf("expected substring match inside a word")
	}
}

func TestNewKeywordFilterDedupesAndDropsBlank(t *testing.T) {
	f := NewKeywordFilter([]string{"AI", " ai ", "", "GPT"})
	want := []string{"ai", "gpt"}
	if got := f.Keywords(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keywords() = %v, want %v", got, want)
	}
}

func TestKeywordFilterEmptyVocabularyMatchesNothing(t *testing.T) {
	f := NewKeywordFilter(nil)
	if f.Match("Anything at all") {
		t.Fatalf("empty vocabulary should not match")
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := NormalizeTitle("  Claude 5  "); got != "Claude 5" {
		t.Fatalf("NormalizeTitle = %q", got)
	}
}
