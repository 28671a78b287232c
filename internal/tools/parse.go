package tools

import (
	"regexp"
	"strings"
)

// directivePattern matches `[name: body]`. The body is everything up to the
// first closing bracket, so nested brackets truncate it.
var directivePattern = regexp.MustCompile(`\[(\w+):\s*([^\]]+)\]`)

// Parse extracts tool directives from text. Malformed directives such as a
// missing colon or an empty name stay literal text and produce nothing.
func Parse(text string) ParsedMessage {
	msg := ParsedMessage{Content: text, Tools: []Invocation{}}
	for _, loc := range directivePattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		body := text[loc[4]:loc[5]]
		msg.Tools = append(msg.Tools, Invocation{
			Tool: strings.ToLower(name),
			Args: splitArgs(body),
			Span: Span{Start: loc[0], End: loc[1]},
		})
	}
	return msg
}

func splitArgs(body string) []string {
	parts := strings.Split(body, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
