package tools

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Handler 定义具体工具的执行入口。
// Handle must never fail: every failure is rendered into the returned text.
type Handler interface {
	Name() string
	Kind() ToolKind
	Aliases() []string
	Handle(ctx context.Context, inv Invocation) string
}

// Registry is the fixed alias table mapping directive names to handlers.
type Registry struct {
	handlers map[string]Handler
	aliases  []string
}

func NewRegistry(handlers ...Handler) *Registry {
	table := make(map[string]Handler)
	for _, h := range handlers {
		if h == nil {
			continue
		}
		names := append([]string{h.Name()}, h.Aliases()...)
		for _, name := range names {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				continue
			}
			if _, dup := table[key]; dup {
				continue
			}
			table[key] = h
		}
	}
	aliases := make([]string, 0, len(table))
	for k := range table {
		aliases = append(aliases, k)
	}
	sort.Strings(aliases)
	return &Registry{handlers: table, aliases: aliases}
}

// Handler resolves name case-insensitively.
func (r *Registry) Handler(name string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[strings.ToLower(name)]
	return h, ok
}

// Aliases lists every recognized directive name in sorted order.
func (r *Registry) Aliases() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.aliases...)
}

// Suggest returns the closest known alias to name, or "" if nothing is close.
func (r *Registry) Suggest(name string) string {
	if r == nil || strings.TrimSpace(name) == "" {
		return ""
	}
	matches := fuzzy.Find(strings.ToLower(name), r.aliases)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
