package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// slashCommand 表示内置斜杠命令。
type slashCommand struct {
	Name        string
	Description string
}

var slashCommands = []slashCommand{
	{Name: "help", Description: "show tool syntax and commands"},
	{Name: "tools", Description: "list recognized tool names"},
	{Name: "clear", Description: "clear the transcript view"},
	{Name: "copy", Description: "copy the last reply to the clipboard"},
	{Name: "quit", Description: "leave the chat"},
}

// matchSlash resolves a possibly partial "/cmd" to a command. An exact name
// wins; otherwise the best fuzzy match is used.
func matchSlash(input string) (slashCommand, bool) {
	token := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "/")))
	if token == "" {
		return slashCommand{}, false
	}
	names := make([]string, len(slashCommands))
	for i, c := range slashCommands {
		if c.Name == token {
			return c, true
		}
		names[i] = c.Name
	}
	results := fuzzy.Find(token, names)
	if len(results) == 0 {
		return slashCommand{}, false
	}
	return slashCommands[results[0].Index], true
}

func slashHelp() string {
	var sb strings.Builder
	sb.WriteString("Embed tools in a message: [calculator: 2**8], [search: weather today], [fetch: https://example.com]\n")
	for _, c := range slashCommands {
		sb.WriteString("/" + c.Name + "  " + c.Description + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
