package tui

import "strings"

// maxInputHistory 限制内存中保留的历史条数，超出时丢弃最旧的。
const maxInputHistory = 500

// inputHistory 负责输入框历史浏览状态（上下箭头）。
// cursor == len(entries) 表示未在浏览历史，draft 保存浏览前的输入。
type inputHistory struct {
	entries []string
	cursor  int
	draft   string
}

func newInputHistory(entries []string) inputHistory {
	var h inputHistory
	for _, e := range entries {
		h.push(e)
	}
	h.cursor = len(h.entries)
	return h
}

// Add records a submitted line and leaves browsing mode. A line equal to the
// newest entry is not repeated.
func (h *inputHistory) Add(text string) {
	h.push(text)
	h.cursor = len(h.entries)
	h.draft = ""
}

func (h *inputHistory) push(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == text {
		return
	}
	h.entries = append(h.entries, text)
	if over := len(h.entries) - maxInputHistory; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
}

func (h *inputHistory) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor >= len(h.entries) {
		h.cursor = len(h.entries)
		h.draft = current
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

func (h *inputHistory) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.cursor], true
}
