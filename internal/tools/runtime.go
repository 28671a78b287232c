package tools

import (
	"context"
	"strings"
	"time"
)

// Runtime resolves invocations through the alias table and runs them one
// after another, in parse order. It holds no per-message state, so one
// Runtime may serve concurrent messages.
type Runtime struct {
	registry *Registry
}

func NewRuntime(handlers ...Handler) *Runtime {
	return &Runtime{registry: NewRegistry(handlers...)}
}

// Registry exposes the alias table the runtime dispatches through.
func (r *Runtime) Registry() *Registry {
	return r.registry
}

// Execute returns a copy of msg with every invocation's Result populated.
// Invocations run sequentially; a slow fetch delays everything after it.
func (r *Runtime) Execute(ctx context.Context, msg ParsedMessage) ParsedMessage {
	out := msg.Clone()
	for i := range out.Tools {
		out.Tools[i].Result = r.Dispatch(ctx, i, out.Tools[i])
	}
	return out
}

// Dispatch runs a single invocation and returns its result text. Unknown
// tool names produce "Unknown tool: <name>".
func (r *Runtime) Dispatch(ctx context.Context, index int, inv Invocation) string {
	handler, ok := r.registry.Handler(inv.Tool)
	kind := ToolUnknown
	if ok {
		kind = handler.Kind()
	}
	logToolRequest(index, inv, kind, ok, r.registry)

	start := time.Now()
	var result string
	if !ok {
		result = "Unknown tool: " + inv.Tool
	} else {
		result = handler.Handle(ctx, inv)
	}
	logToolResult(index, inv, kind, ok, result, time.Since(start))
	return result
}

// Process runs the whole pipeline on text: parse, execute, format.
func (r *Runtime) Process(ctx context.Context, text string) (string, ParsedMessage) {
	msg := r.Execute(ctx, Parse(text))
	return Format(msg), msg
}

func logToolRequest(index int, inv Invocation, kind ToolKind, recognized bool, registry *Registry) {
	status := "received"
	if !recognized {
		status = "unknown"
	}
	entry := currentToolsLog().WithField("tool", inv.Tool)
	if !recognized {
		if hint := registry.Suggest(inv.Tool); hint != "" {
			entry = entry.WithField("suggest", hint)
		}
	}
	entry.Infof("tool_call index=%d kind=%s status=%s args=%s",
		index, kind, status, sanitizeForLog(strings.Join(inv.Args, ",")))
}

func logToolResult(index int, inv Invocation, kind ToolKind, recognized bool, result string, elapsed time.Duration) {
	status := "ok"
	switch {
	case !recognized:
		status = "unknown"
	case strings.HasPrefix(result, "Error:"):
		status = "error"
	}
	currentToolsLog().WithField("tool", inv.Tool).Infof("tool_result index=%d kind=%s status=%s duration_ms=%d result=%s",
		index, kind, status, elapsed.Milliseconds(), sanitizeForLog(result))
}

func sanitizeForLog(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "(empty)"
	}
	text = strings.ReplaceAll(text, "\n", `\n`)
	text = strings.ReplaceAll(text, "\r", `\r`)
	return text
}
