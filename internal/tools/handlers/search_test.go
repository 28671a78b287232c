package handlers

import (
	"context"
	"strings"
	"testing"

	"toolchat/internal/tools"
)

func TestSearchExactMatch(t *testing.T) {
	got := Search("Weather Today")
	if got != "Today's weather: Partly cloudy, 72°F (22°C), with a gentle breeze." {
		t.Fatalf("Search() = %q", got)
	}
}

func TestSearchPartialMatchUsesTableOrder(t *testing.T) {
	cases := map[string]string{
		"what is the weather today in paris": "Today's weather",
		"news":                               "Top headlines",
		"tokyo":                              "Current time in Tokyo",
		"latest news and weather today":      "Today's weather",
		"chocolate":                          "Simple chocolate cake",
	}
	for query, prefix := range cases {
		if got := Search(query); !strings.HasPrefix(got, prefix) {
			t.Fatalf("Search(%q) = %q, want prefix %q", query, got, prefix)
		}
	}
}

func TestSearchDefaultKeepsOriginalQuery(t *testing.T) {
	got := Search("ZzzzNotFound")
	want := `Search results for "ZzzzNotFound": Multiple relevant results found. Visit your favorite search engine for detailed information.`
	if got != want {
		t.Fatalf("Search() = %q", got)
	}
}

func TestSearchHandlerJoinsArgsWithSpace(t *testing.T) {
	inv := tools.Parse("[web: recipe,chocolate cake]").Tools[0]
	got := (SearchHandler{}).Handle(context.Background(), inv)
	if !strings.HasPrefix(got, "Simple chocolate cake") {
		t.Fatalf("Handle() = %q", got)
	}
}
