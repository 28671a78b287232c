package tools

import "testing"

func TestFormatSingleResult(t *testing.T) {
	msg := Parse("[calculator: 2+2]")
	msg.Tools[0].Result = "4"
	if got := Format(msg); got != "[calculator: 2+2] → 4" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatNoToolsPassThrough(t *testing.T) {
	msg := Parse("plain text, nothing to do")
	if got := Format(msg); got != "plain text, nothing to do" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatPlaceholderWithoutResult(t *testing.T) {
	msg := Parse("x [search: go] y")
	if got := Format(msg); got != "x [search: go] → Processing... y" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatIrregularSpacingStillReplaced(t *testing.T) {
	msg := Parse("A [CALC:   1 ,2  ] B [search:a,b] C")
	msg.Tools[0].Result = "12"
	msg.Tools[1].Result = "found"
	want := "A [calc: 1, 2] → 12 B [search: a, b] → found C"
	if got := Format(msg); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormatDuplicatesReplacedInOrder(t *testing.T) {
	msg := Parse("[calc: 1+1] [calc: 1+1]")
	msg.Tools[0].Result = "first"
	msg.Tools[1].Result = "second"
	want := "[calc: 1+1] → first [calc: 1+1] → second"
	if got := Format(msg); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormatResultIsNotReinterpreted(t *testing.T) {
	msg := Parse("[search: x]")
	msg.Tools[0].Result = "costs $& and $1"
	if got := Format(msg); got != "[search: x] → costs $& and $1" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatSkipsStaleSpans(t *testing.T) {
	msg := ParsedMessage{
		Content: "nothing bracketed",
		Tools: []Invocation{
			{Tool: "calc", Args: []string{"1"}, Result: "1", Span: Span{Start: 0, End: 7}},
			{Tool: "calc", Args: []string{"1"}, Result: "1", Span: Span{Start: 5, End: 500}},
		},
	}
	if got := Format(msg); got != "nothing bracketed" {
		t.Fatalf("Format() = %q", got)
	}
}
