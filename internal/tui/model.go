package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"toolchat/internal/chat"
	"toolchat/internal/logger"
	"toolchat/internal/store"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sender 抽象消息提交能力，*chat.Service 实现该接口。
type Sender interface {
	Send(ctx context.Context, chatID string, role store.Role, text string) (chat.Reply, error)
}

// PromptLog 持久化用户输入，供后续会话的上下箭头浏览。
type PromptLog interface {
	Append(chatID, text string) error
}

type Options struct {
	Sender Sender
	ChatID string
	// Prompts seeds the up/down history. Stored user messages never do,
	// since the formatted store policy rewrites them for display.
	Prompts   []string
	PromptLog PromptLog
	// History is rendered before the first prompt when resuming a chat.
	History []store.Message
	// Tools lists the recognized directive names for /tools.
	Tools []string
	// Copy writes to the system clipboard; nil uses clipboard.WriteAll.
	Copy  func(string) error
	Clock func() time.Time
}

var log = logger.Named("tui")

type replyMsg struct {
	Reply chat.Reply
	Err   error
}

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entrySystem
)

type entry struct {
	kind entryKind
	text string
}

var (
	userLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	systemLabelStyle = lipgloss.NewStyle().Faint(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444"))
)

type Model struct {
	textarea  textarea.Model
	viewport  viewport.Model
	spin      spinner.Model
	status    statusLine
	history   inputHistory
	entries   []entry
	sender    Sender
	chatID    string
	tools     []string
	copy      func(string) error
	promptLog PromptLog
	pendingAt int
	lastReply string
	width     int
	height    int
}

func New(opts Options) *Model {
	ti := textarea.New()
	ti.Placeholder = "Type a message, e.g. what is [calculator: 2**10]?"
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.SetWidth(90)
	ti.SetHeight(1)
	ti.ShowLineNumbers = false
	ti.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := &Model{
		textarea:  ti,
		viewport:  viewport.New(90, 18),
		spin:      spin,
		status:    newStatusLine(opts.Clock),
		sender:    opts.Sender,
		chatID:    opts.ChatID,
		tools:     append([]string(nil), opts.Tools...),
		copy:      copyFn,
		promptLog: opts.PromptLog,
		pendingAt: -1,
		width:     90,
		height:    24,
	}

	for _, msg := range opts.History {
		kind := entryAssistant
		if msg.Role == store.RoleUser {
			kind = entryUser
		}
		m.entries = append(m.entries, entry{kind: kind, text: msg.Content})
		m.lastReply = msg.Content
	}
	m.history = newInputHistory(opts.Prompts)
	if len(m.entries) == 0 {
		m.entries = append(m.entries, entry{kind: entrySystem, text: "Type a message with [tool: args] directives. /help lists commands."})
	}
	if m.chatID != "" {
		m.status.Idle("chat " + m.chatID)
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case replyMsg:
		m.finishReply(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.status.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyTab:
			m.completeSlash()
			return m, nil
		case tea.KeyUp:
			if text, ok := m.history.Prev(m.textarea.Value()); ok {
				m.textarea.SetValue(text)
			}
			return m, nil
		case tea.KeyDown:
			if text, ok := m.history.Next(); ok {
				m.textarea.SetValue(text)
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	status := m.status.Render(m.spin.View(), m.width)
	if m.status.state == statusError {
		status = errorStyle.Render(status)
	} else {
		status = statusStyle.Render(status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Width(max(m.width-2, 1)).Render(m.viewport.View()),
		status,
		m.textarea.View(),
	)
}

// ChatID reports the chat the session wrote to.
func (m *Model) ChatID() string {
	return m.chatID
}

func (m *Model) submit() tea.Cmd {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return nil
	}
	if strings.HasPrefix(input, "/") {
		m.textarea.Reset()
		return m.runSlash(input)
	}
	if m.status.Busy() {
		return nil
	}
	if m.sender == nil {
		m.status.Fail(fmt.Errorf("no chat service configured"))
		return nil
	}

	m.history.Add(input)
	if m.promptLog != nil {
		if err := m.promptLog.Append(m.chatID, input); err != nil {
			log.Warnf("append prompt history: %v", err)
		}
	}
	m.textarea.Reset()
	m.entries = append(m.entries, entry{kind: entryUser, text: input})
	m.pendingAt = len(m.entries) - 1
	m.status.Working("running tools")
	m.refresh()

	sender, chatID := m.sender, m.chatID
	send := func() tea.Msg {
		reply, err := sender.Send(context.Background(), chatID, store.RoleUser, input)
		return replyMsg{Reply: reply, Err: err}
	}
	return tea.Batch(send, m.spin.Tick)
}

func (m *Model) finishReply(msg replyMsg) {
	if msg.Err != nil {
		m.status.Fail(msg.Err)
		m.pendingAt = -1
		return
	}
	if m.pendingAt >= 0 && m.pendingAt < len(m.entries) {
		m.entries[m.pendingAt].text = msg.Reply.Display
	} else {
		m.entries = append(m.entries, entry{kind: entryUser, text: msg.Reply.Display})
	}
	m.pendingAt = -1
	m.lastReply = msg.Reply.Display
	m.status.Idle(fmt.Sprintf("%d tool call(s)", len(msg.Reply.Invocations)))
	m.refresh()
}

func (m *Model) runSlash(input string) tea.Cmd {
	cmd, ok := matchSlash(input)
	if !ok {
		m.status.Idle("unknown command " + input)
		return nil
	}
	switch cmd.Name {
	case "help":
		m.appendSystem(slashHelp())
	case "tools":
		m.appendSystem("Tools: " + strings.Join(m.tools, ", "))
	case "clear":
		m.entries = nil
		m.pendingAt = -1
		m.refresh()
	case "copy":
		if m.lastReply == "" {
			m.status.Idle("nothing to copy")
			return nil
		}
		if err := m.copy(m.lastReply); err != nil {
			m.status.Fail(fmt.Errorf("copy: %w", err))
			return nil
		}
		m.status.Idle("copied last reply")
	case "quit":
		return tea.Quit
	}
	return nil
}

func (m *Model) completeSlash() {
	value := strings.TrimSpace(m.textarea.Value())
	if !strings.HasPrefix(value, "/") {
		return
	}
	if cmd, ok := matchSlash(value); ok {
		m.textarea.SetValue("/" + cmd.Name)
		m.textarea.CursorEnd()
	}
}

func (m *Model) appendSystem(text string) {
	m.entries = append(m.entries, entry{kind: entrySystem, text: text})
	m.refresh()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(max(width-2, 10))
	// border (2) + status (1) + composer (1)
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-6, 3)
	m.refresh()
}

func (m *Model) refresh() {
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width, 10))
	var sb strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch e.kind {
		case entrySystem:
			sb.WriteString(systemLabelStyle.Render(wrap.Render(e.text)))
		case entryAssistant:
			sb.WriteString(systemLabelStyle.Render("assistant") + "\n")
			sb.WriteString(wrap.Render(e.text))
		default:
			sb.WriteString(userLabelStyle.Render("you") + "\n")
			sb.WriteString(wrap.Render(e.text))
		}
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}
