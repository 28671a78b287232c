package tools

import "strings"

type ToolKind string

const (
	ToolCalculator ToolKind = "calculator"
	ToolSearch     ToolKind = "search"
	ToolWebFetch   ToolKind = "web_fetch"
	ToolUnknown    ToolKind = "unknown"
)

// ProcessingPlaceholder is displayed for an invocation that has no result yet.
const ProcessingPlaceholder = "Processing..."

// Span is the half-open byte range [Start, End) a directive occupies in the
// message it was parsed from.
type Span struct {
	Start int
	End   int
}

// Invocation is one `[name: args]` directive found in a message.
type Invocation struct {
	// Tool is the directive name, lower-cased.
	Tool string
	// Args is the bracket body split on commas, each part trimmed.
	Args []string
	// Result is empty until the runtime has executed the invocation.
	Result string
	Span   Span
}

// HasResult reports whether the runtime has populated Result.
func (inv Invocation) HasResult() bool {
	return inv.Result != ""
}

// Marker rebuilds the directive in canonical form, args joined with ", ".
func (inv Invocation) Marker() string {
	return "[" + inv.Tool + ": " + strings.Join(inv.Args, ", ") + "]"
}

// ParsedMessage pairs the untouched source text with its invocations in
// left-to-right order.
type ParsedMessage struct {
	Content string
	Tools   []Invocation
}

// Clone returns a copy whose invocation slice (and args) can be modified
// without affecting m.
func (m ParsedMessage) Clone() ParsedMessage {
	out := ParsedMessage{Content: m.Content}
	if m.Tools == nil {
		return out
	}
	out.Tools = make([]Invocation, len(m.Tools))
	for i, inv := range m.Tools {
		inv.Args = append([]string(nil), inv.Args...)
		out.Tools[i] = inv
	}
	return out
}
