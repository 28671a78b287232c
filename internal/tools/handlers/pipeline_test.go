package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"toolchat/internal/tools"
)

func TestDefaultPipelineEndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"contents":"<title>Go</title><p>The Go language</p>"}`))
	}))
	defer ts.Close()

	rt := tools.NewRuntime(Default(Options{Client: ts.Client(), ProxyURL: ts.URL})...)
	text := "Sum: [calculator: 1+1], weather: [search: weather today], page: [webpage: https://go.dev], odd: [nope: x]"
	got, msg := rt.Process(context.Background(), text)

	if len(msg.Tools) != 4 {
		t.Fatalf("expected 4 invocations, got %d", len(msg.Tools))
	}
	parts := []string{
		"Sum: [calculator: 1+1] → 2,",
		"weather: [search: weather today] → Today's weather: Partly cloudy",
		"page: [webpage: https://go.dev] → Title: Go\n\nContent preview: GoThe Go language,",
		"odd: [nope: x] → Unknown tool: nope",
	}
	last := -1
	for _, p := range parts {
		idx := strings.Index(got, p)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", p, got)
		}
		if idx <= last {
			t.Fatalf("output out of order at %q:\n%s", p, got)
		}
		last = idx
	}
}

func TestDefaultAliasTable(t *testing.T) {
	rt := tools.NewRuntime(Default(Options{})...)
	want := map[string]tools.ToolKind{
		"calculator":   tools.ToolCalculator,
		"calc":         tools.ToolCalculator,
		"search":       tools.ToolSearch,
		"web":          tools.ToolSearch,
		"fetch":        tools.ToolWebFetch,
		"fetchwebpage": tools.ToolWebFetch,
		"webpage":      tools.ToolWebFetch,
	}
	for name, kind := range want {
		h, ok := rt.Registry().Handler(name)
		if !ok || h.Kind() != kind {
			t.Fatalf("alias %q not bound to %s", name, kind)
		}
	}
	if got := len(rt.Registry().Aliases()); got != len(want) {
		t.Fatalf("expected %d aliases, got %d", len(want), got)
	}
}
