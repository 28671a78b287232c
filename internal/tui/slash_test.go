package tui

import (
	"strings"
	"testing"
)

func TestMatchSlash(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "/help", want: "help", ok: true},
		{input: "/HELP ", want: "help", ok: true},
		{input: "/cl", want: "clear", ok: true},
		{input: "/cpy", want: "copy", ok: true},
		{input: "/", ok: false},
		{input: "/zzz", ok: false},
	}
	for _, tc := range cases {
		got, ok := matchSlash(tc.input)
		if ok != tc.ok {
			t.Fatalf("matchSlash(%q) ok = %v, want %v", tc.input, ok, tc.ok)
		}
		if ok && got.Name != tc.want {
			t.Fatalf("matchSlash(%q) = %q, want %q", tc.input, got.Name, tc.want)
		}
	}
}

func TestSlashHelpListsCommands(t *testing.T) {
	help := slashHelp()
	for _, c := range slashCommands {
		if !strings.Contains(help, "/"+c.Name) {
			t.Fatalf("help missing /%s:\n%s", c.Name, help)
		}
	}
}

func TestInputHistoryDedupesConsecutive(t *testing.T) {
	h := newInputHistory(nil)
	h.Add("a")
	h.Add("a")
	h.Add("  ")
	h.Add("b")
	if len(h.entries) != 2 {
		t.Fatalf("entries = %#v", h.entries)
	}
	if got, _ := h.Prev("draft"); got != "b" {
		t.Fatalf("prev = %q", got)
	}
	if got, _ := h.Prev(""); got != "a" {
		t.Fatalf("prev = %q", got)
	}
	if got, _ := h.Prev(""); got != "a" {
		t.Fatalf("prev at start = %q", got)
	}
	h.Next()
	if got, _ := h.Next(); got != "draft" {
		t.Fatalf("next past end = %q, want draft", got)
	}
	if _, ok := h.Next(); ok {
		t.Fatalf("next when not browsing should report false")
	}
}

func TestInputHistoryCapsEntries(t *testing.T) {
	var seed []string
	for i := 0; i < maxInputHistory+20; i++ {
		seed = append(seed, strings.Repeat("x", i+1))
	}
	h := newInputHistory(seed)
	if len(h.entries) != maxInputHistory {
		t.Fatalf("entries = %d, want %d", len(h.entries), maxInputHistory)
	}
	if got, _ := h.Prev(""); got != seed[len(seed)-1] {
		t.Fatalf("newest entry lost")
	}
}
