package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestPlainFormatterPrefixesAndFields(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name    string
		data    logrus.Fields
		message string
		want    string
	}{
		{
			name: "with tool",
			data: logrus.Fields{
				"component": "tools",
				"tool":      "calculator",
				"caller":    "x.go:1",
				"index":     0,
				"status":    "ok",
			},
			message: "tool_result",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] [tools] [tool=calculator] tool_result index=0 status=ok\n",
		},
		{
			name: "without tool",
			data: logrus.Fields{
				"component": "chat",
				"caller":    "x.go:1",
				"foo":       "bar",
			},
			message: "hello",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] [chat] hello foo=bar\n",
		},
		{
			name: "chat prefix and quoted values",
			data: logrus.Fields{
				"component": "chat",
				"chat_id":   "c-1",
				"note":      "two words",
				"n":         3,
			},
			message: "message stored",
			want:    "[2025-01-02T03:04:05Z] [INFO] [chat] [chat_id=c-1] message stored n=3 note=\"two words\"\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Logger:  logrus.New(),
				Time:    ts,
				Level:   logrus.InfoLevel,
				Message: tc.message,
				Data:    tc.data,
			}
			out, err := (PlainFormatter{}).Format(entry)
			if err != nil {
				t.Fatalf("Format() error: %v", err)
			}
			got := string(out)
			if got != tc.want {
				t.Fatalf("unexpected format:\nwant: %q\ngot:  %q", tc.want, got)
			}
			if _, ok := tc.data["tool"]; ok {
				if strings.Count(got, "calculator") != 1 {
					t.Fatalf("expected tool to appear only once in output, got: %q", got)
				}
			}
		})
	}
}

func TestShortenFilePath(t *testing.T) {
	cases := map[string]string{
		"/home/u/src/toolchat/internal/tools/runtime.go": "internal/tools/runtime.go",
		"/home/u/src/toolchat/cmd/toolchat/main.go":      "cmd/toolchat/main.go",
		"/home/u/src/toolchat/main.go":                   "main.go",
		"/elsewhere/file.go":                             "file.go",
	}
	for in, want := range cases {
		if got := shortenFilePath(in); got != want {
			t.Fatalf("shortenFilePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetupComponentFileWritesComponentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tools.log")
	entry, closer, resolved, err := SetupComponentFile("tools", path)
	if err != nil {
		t.Fatalf("SetupComponentFile: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	entry.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[tools] hello") {
		t.Fatalf("expected component line, got %q", data)
	}
}

func TestSetLevel(t *testing.T) {
	l := logrus.New()
	SetRoot(l)
	t.Cleanup(func() { SetRoot(nil) })

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", l.GetLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if err := SetLevel(""); err != nil {
		t.Fatalf("empty level should be ignored, got %v", err)
	}
}
