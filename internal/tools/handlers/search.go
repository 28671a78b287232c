package handlers

import (
	"context"
	"fmt"
	"strings"

	"toolchat/internal/tools"
)

type cannedAnswer struct {
	key    string
	answer string
}

// cannedAnswers is scanned in this order for partial matches.
var cannedAnswers = []cannedAnswer{
	{"weather today", "Today's weather: Partly cloudy, 72°F (22°C), with a gentle breeze."},
	{"latest news", "Top headlines: Tech stocks rise, New climate accord signed, Sports team wins championship."},
	{"time in tokyo", "Current time in Tokyo: 2:30 PM JST (UTC+9)"},
	{"python tutorial", "Python basics: Variables, loops, functions. Visit python.org for comprehensive guides."},
	{"recipe chocolate cake", "Simple chocolate cake: Mix flour, cocoa, sugar, eggs, butter. Bake at 350°F for 30 mins."},
}

// SearchHandler answers queries from a fixed table of canned results.
type SearchHandler struct{}

func (SearchHandler) Name() string         { return "search" }
func (SearchHandler) Kind() tools.ToolKind { return tools.ToolSearch }
func (SearchHandler) Aliases() []string    { return []string{"web"} }

func (SearchHandler) Handle(_ context.Context, inv tools.Invocation) string {
	return Search(strings.Join(inv.Args, " "))
}

// Search returns the canned answer whose key equals the lower-cased query,
// else the first key contained in the query (or containing it), else a
// generic pointer that quotes the query as given.
func Search(query string) string {
	lower := strings.ToLower(query)
	for _, c := range cannedAnswers {
		if c.key == lower {
			return c.answer
		}
	}
	for _, c := range cannedAnswers {
		if strings.Contains(lower, c.key) || strings.Contains(c.key, lower) {
			return c.answer
		}
	}
	return fmt.Sprintf(`Search results for "%s": Multiple relevant results found. Visit your favorite search engine for detailed information.`, query)
}
