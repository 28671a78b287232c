// Package logger wraps logrus with the single-line format every toolchat log
// file uses.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger
type LogEntry = logrus.Entry
type Fields = logrus.Fields

// DefaultLogPath 主程序日志的默认路径。
const DefaultLogPath = "logs/toolchat.log"

// prefixFields 以方括号前缀输出（按此顺序），不再出现在 k=v 字段里。
// component 输出为 [name]，其余输出为 [key=value]。
var prefixFields = []string{"component", "tool", "chat_id"}

var (
	rootMu     sync.RWMutex
	rootLogger = logrus.StandardLogger()
)

// Configure 为全局 logger 设置 PlainFormatter 与 caller 输出。
func Configure() {
	applyFormat(root())
}

func applyFormat(l *Logger) {
	l.SetReportCaller(true)
	l.SetFormatter(PlainFormatter{})
}

// SetLevel applies a logrus level name ("debug", "info", ...) to the root
// logger. An empty name is a no-op.
func SetLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	root().SetLevel(lvl)
	return nil
}

// SetupFile 将全局日志追加写入 logPath（为空时使用 DefaultLogPath）。
func SetupFile(logPath string) (io.Closer, string, error) {
	f, resolved, err := openLogFile(logPath)
	if err != nil {
		return nil, "", err
	}
	root().SetOutput(f)
	return f, resolved, nil
}

// SetupComponentFile opens a separate logger writing to logPath. It inherits
// the root level at the time of the call; every line carries component.
func SetupComponentFile(component, logPath string) (*LogEntry, io.Closer, string, error) {
	f, resolved, err := openLogFile(logPath)
	if err != nil {
		return nil, nil, "", err
	}
	l := logrus.New()
	applyFormat(l)
	l.SetLevel(root().GetLevel())
	l.SetOutput(f)
	return withComponent(l, component), f, resolved, nil
}

// SetRoot 替换全局 logger；nil 恢复为 logrus 标准 logger。
// Entries created earlier by Named keep their original logger.
func SetRoot(l *Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	rootMu.Lock()
	rootLogger = l
	rootMu.Unlock()
}

// Named returns an entry on the root logger tagged with component.
func Named(component string) *LogEntry {
	return withComponent(root(), component)
}

func withComponent(l *Logger, component string) *LogEntry {
	entry := logrus.NewEntry(l)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func root() *Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return rootLogger
}

// PlainFormatter renders
//
//	caller [RFC3339Nano] [LEVEL] [component] [tool=x] [chat_id=y] message k=v...
//
// with the remaining fields sorted by key.
type PlainFormatter struct{}

func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	var b bytes.Buffer
	if caller := formatCaller(entry); caller != "" {
		b.WriteString(caller)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s] [%s]", entry.Time.UTC().Format(time.RFC3339Nano), strings.ToUpper(entry.Level.String()))
	for _, key := range prefixFields {
		val, ok := entry.Data[key].(string)
		if !ok || val == "" {
			continue
		}
		if key == "component" {
			fmt.Fprintf(&b, " [%s]", val)
		} else {
			fmt.Fprintf(&b, " [%s=%s]", key, val)
		}
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	if fields := formatFields(entry.Data); fields != "" {
		b.WriteByte(' ')
		b.WriteString(fields)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatCaller(entry *logrus.Entry) string {
	if entry.HasCaller() && entry.Caller != nil {
		return shortenFilePath(entry.Caller.File) + ":" + strconv.Itoa(entry.Caller.Line)
	}
	caller, _ := entry.Data["caller"].(string)
	return caller
}

func isPrefixField(key string) bool {
	if key == "caller" {
		return true
	}
	for _, p := range prefixFields {
		if key == p {
			return true
		}
	}
	return false
}

// formatFields renders the non-prefix fields as sorted k=v pairs. String values
// containing spaces or quotes are Go-quoted so a line stays splittable.
func formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !isPrefixField(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		val := fmt.Sprint(fields[k])
		if strings.ContainsAny(val, " \t\n\"") {
			val = strconv.Quote(val)
		}
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, " ")
}

// shortenFilePath trims a caller path to the part below the module root.
func shortenFilePath(file string) string {
	file = filepath.ToSlash(file)
	for _, marker := range []string{"/internal/", "/cmd/"} {
		if idx := strings.Index(file, marker); idx != -1 {
			return file[idx+1:]
		}
	}
	if idx := strings.Index(file, "/toolchat/"); idx != -1 {
		return file[idx+len("/toolchat/"):]
	}
	return filepath.Base(file)
}

func openLogFile(logPath string) (*os.File, string, error) {
	if logPath == "" {
		logPath = DefaultLogPath
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, "", fmt.Errorf("logger: create dir: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("logger: open %s: %w", logPath, err)
	}
	return f, logPath, nil
}
