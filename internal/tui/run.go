package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run 封装 Bubble Tea 入口，返回本次会话使用的 chat id。
func Run(opts Options) (string, error) {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	m, err := program.Run()
	if err != nil {
		return "", err
	}
	tuiModel, ok := m.(*Model)
	if !ok {
		return "", errors.New("unexpected tui model")
	}
	return tuiModel.ChatID(), nil
}
