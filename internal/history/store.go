// Package history keeps the prompts typed into the chat UI across sessions
// as a JSON-lines file, independent of which chat they were sent to.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultLimit caps how many prompts LoadRecent returns.
const DefaultLimit = 500

type Entry struct {
	Text   string    `json:"text"`
	ChatID string    `json:"chat_id,omitempty"`
	TS     time.Time `json:"ts"`
}

// Store appends prompts to Path. A zero Store is unusable; a nil *Store
// reports errors instead of panicking.
type Store struct {
	Path string
	now  func() time.Time
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".toolchat", "prompts.jsonl"), nil
}

func NewDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return &Store{Path: path}, nil
}

func (s *Store) check() error {
	if s == nil {
		return errors.New("history: store is nil")
	}
	if strings.TrimSpace(s.Path) == "" {
		return errors.New("history: store path is empty")
	}
	return nil
}

// Append records text typed into chatID. Blank text is ignored.
func (s *Store) Append(chatID, text string) error {
	if err := s.check(); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	data, err := json.Marshal(Entry{Text: text, ChatID: chatID, TS: now().UTC()})
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// LoadRecent returns up to limit of the newest prompts, oldest first, with
// consecutive repeats collapsed. Lines that are not JSON objects with a string
// "text" field are skipped. A missing file yields no prompts.
func (s *Store) LoadRecent(limit int) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []string
	for scanner.Scan() {
		line := scanner.Bytes()
		if !gjson.ValidBytes(line) {
			continue
		}
		text := gjson.GetBytes(line, "text")
		if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == text.Str {
			continue
		}
		out = append(out, text.Str)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
