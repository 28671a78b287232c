package tools

import "strings"

// Format renders msg for display: every directive is replaced in place by
// "[tool: args] → result". Replacement is done by the byte spans Parse
// recorded, so original spacing inside the brackets never prevents a match.
// Invocations whose span no longer addresses a directive in Content, or that
// overlap an earlier one, are left as they are.
func Format(msg ParsedMessage) string {
	if len(msg.Tools) == 0 {
		return msg.Content
	}
	var sb strings.Builder
	sb.Grow(len(msg.Content))
	last := 0
	for i, inv := range msg.Tools {
		if !spanAddressesDirective(msg.Content, inv.Span, last) {
			currentToolsLog().WithField("tool", inv.Tool).Debugf("format_skip index=%d span=%d:%d", i, inv.Span.Start, inv.Span.End)
			continue
		}
		sb.WriteString(msg.Content[last:inv.Span.Start])
		sb.WriteString(Display(inv))
		last = inv.Span.End
	}
	sb.WriteString(msg.Content[last:])
	return sb.String()
}

// Display renders a single invocation as "[tool: args] → result".
func Display(inv Invocation) string {
	result := inv.Result
	if result == "" {
		result = ProcessingPlaceholder
	}
	return inv.Marker() + " → " + result
}

func spanAddressesDirective(content string, span Span, floor int) bool {
	if span.Start < floor || span.End <= span.Start || span.End > len(content) {
		return false
	}
	return content[span.Start] == '[' && content[span.End-1] == ']'
}
