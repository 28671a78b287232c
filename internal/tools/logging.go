package tools

import (
	"fmt"
	"io"
	"sync"

	"toolchat/internal/logger"
)

// DefaultToolsLogPath 工具调用日志的默认路径。
const DefaultToolsLogPath = "logs/tools.log"

// toolsSink 保存 runtime 写入的 logger。SetupToolsLog 成功之前，
// tool_call/tool_result 行写入根 logger（component=tools）。
type toolsSink struct {
	mu     sync.Mutex
	entry  *logger.LogEntry
	closer io.Closer
	path   string
}

var sink = &toolsSink{entry: logger.Named("tools")}

// SetupToolsLog routes tool lines to their own file and returns its path.
// Once a file is open, later calls return the existing path.
func SetupToolsLog(logPath string) (string, error) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.closer != nil {
		return sink.path, nil
	}
	if logPath == "" {
		logPath = DefaultToolsLogPath
	}
	entry, closer, resolved, err := logger.SetupComponentFile("tools", logPath)
	if err != nil {
		return logPath, fmt.Errorf("tools log: %w", err)
	}
	sink.entry, sink.closer, sink.path = entry, closer, resolved
	return resolved, nil
}

// CloseToolsLog closes the tool log file and falls back to the root logger.
func CloseToolsLog() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.closer == nil {
		return nil
	}
	err := sink.closer.Close()
	sink.entry, sink.closer, sink.path = logger.Named("tools"), nil, ""
	return err
}

func currentToolsLog() *logger.LogEntry {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.entry
}
