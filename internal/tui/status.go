package tui

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// statusState 枚举状态行可显示的状态。
type statusState int

const (
	statusIdle statusState = iota
	// statusWorking 表示工具正在执行，计时器持续累加。
	statusWorking
	statusError
)

// statusLine 记录当前状态、提示文本与执行计时。
type statusLine struct {
	state   statusState
	note    string
	started time.Time
	clock   func() time.Time
}

func newStatusLine(clock func() time.Time) statusLine {
	if clock == nil {
		clock = time.Now
	}
	return statusLine{clock: clock}
}

func (s *statusLine) Working(note string) {
	s.state = statusWorking
	s.note = note
	s.started = s.clock()
}

func (s *statusLine) Idle(note string) {
	s.state = statusIdle
	s.note = note
}

func (s *statusLine) Fail(err error) {
	s.state = statusError
	s.note = err.Error()
}

func (s statusLine) Busy() bool {
	return s.state == statusWorking
}

// Render 绘制单行状态，按显示宽度截断（CJK 与 emoji 计双宽）。
func (s statusLine) Render(spinner string, width int) string {
	var line string
	switch s.state {
	case statusWorking:
		elapsed := uint64(s.clock().Sub(s.started).Seconds())
		line = fmt.Sprintf("%s %s (%s • ctrl+c to quit)", spinner, s.note, fmtElapsedCompact(elapsed))
	case statusError:
		line = "! " + s.note
	default:
		line = s.note
	}
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(line, width, "…")
}

// fmtElapsedCompact 将秒数格式化为友好字符串。
func fmtElapsedCompact(elapsedSecs uint64) string {
	switch {
	case elapsedSecs < 60:
		return fmt.Sprintf("%ds", elapsedSecs)
	case elapsedSecs < 3600:
		return fmt.Sprintf("%dm %02ds", elapsedSecs/60, elapsedSecs%60)
	default:
		hours := elapsedSecs / 3600
		minutes := (elapsedSecs % 3600) / 60
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, elapsedSecs%60)
	}
}
