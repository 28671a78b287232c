// Package store persists chats and their messages in SQLite. It is the local
// stand-in for the hosted backend's Chat and Message models; the tool
// pipeline itself never touches it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chats (
	id TEXT PRIMARY KEY,
	system_prompt TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	chat_id TEXT NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_by_chat ON messages (chat_id, timestamp, seq);`

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var (
	ErrNotFound    = errors.New("store: not found")
	ErrInvalidRole = errors.New("store: role must be user or assistant")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole accepts "user" or "assistant" in any case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAssistant:
		return RoleAssistant, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

type Chat struct {
	ID           string
	SystemPrompt string
	CreatedAt    time.Time
}

type Message struct {
	ID        string
	ChatID    string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Config configures the SQLite-backed store.
type Config struct {
	DSN string
}

// Store persists chats and messages. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at cfg.DSN. Parent directories of a
// file path are created as needed.
func Open(cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store: sqlite dsn is required")
	}
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: sqlite open: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: sqlite set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: sqlite set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: sqlite create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("store: sqlite store is nil")
	}
	return nil
}

// CreateChat starts a new chat with the given system prompt.
func (s *Store) CreateChat(ctx context.Context, systemPrompt string) (Chat, error) {
	if err := s.ready(ctx); err != nil {
		return Chat{}, err
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return Chat{}, errors.New("store: system prompt is required")
	}
	chat := Chat{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
		CreatedAt:    s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO chats (id, system_prompt, created_at)
VALUES (?, ?, ?)`, chat.ID, chat.SystemPrompt, chat.CreatedAt.Format(timeLayout))
	if err != nil {
		return Chat{}, fmt.Errorf("store: insert chat: %w", err)
	}
	return chat, nil
}

// GetChat returns ErrNotFound for an unknown id.
func (s *Store) GetChat(ctx context.Context, id string) (Chat, error) {
	if err := s.ready(ctx); err != nil {
		return Chat{}, err
	}
	row := s.db.QueryRowContext(ctx, `
SELECT id, system_prompt, created_at
FROM chats
WHERE id = ?`, id)
	chat, err := scanChat(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Chat{}, fmt.Errorf("%w: chat %s", ErrNotFound, id)
		}
		return Chat{}, fmt.Errorf("store: get chat: %w", err)
	}
	return chat, nil
}

// ListChats returns every chat, newest first.
func (s *Store) ListChats(ctx context.Context) ([]Chat, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, system_prompt, created_at
FROM chats
ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: list chats: %w", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: chat rows: %w", err)
	}
	return chats, nil
}

// DeleteChat removes a chat together with its messages.
func (s *Store) DeleteChat(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete messages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete chat: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: chat %s", ErrNotFound, id)
	}
	return tx.Commit()
}

// AppendMessage stores msg in its chat. A missing ID or Timestamp is filled
// in; the stored message is returned.
func (s *Store) AppendMessage(ctx context.Context, msg Message) (Message, error) {
	if err := s.ready(ctx); err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(msg.ChatID) == "" {
		return Message{}, errors.New("store: chat id is required")
	}
	if msg.Content == "" {
		return Message{}, errors.New("store: message content is required")
	}
	role, err := ParseRole(string(msg.Role))
	if err != nil {
		return Message{}, err
	}
	msg.Role = role
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	msg.Timestamp = msg.Timestamp.UTC()

	if _, err := s.GetChat(ctx, msg.ChatID); err != nil {
		return Message{}, err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO messages (id, chat_id, role, content, timestamp)
VALUES (?, ?, ?, ?, ?)`, msg.ID, msg.ChatID, string(msg.Role), msg.Content, msg.Timestamp.Format(timeLayout))
	if err != nil {
		return Message{}, fmt.Errorf("store: insert message: %w", err)
	}
	return msg, nil
}

// ListMessages returns a chat's messages in timestamp order, ties broken by
// insertion order.
func (s *Store) ListMessages(ctx context.Context, chatID string) ([]Message, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, chat_id, role, content, timestamp
FROM messages
WHERE chat_id = ?
ORDER BY timestamp ASC, seq ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("store: list messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var (
			m    Message
			role string
			ts   string
		)
		if err := rows.Scan(&m.ID, &m.ChatID, &role, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("store: scan message: %w", err)
		}
		m.Role = Role(role)
		if m.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("store: message %s timestamp: %w", m.ID, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: message rows: %w", err)
	}
	return msgs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (Chat, error) {
	var (
		chat    Chat
		created string
	)
	if err := row.Scan(&chat.ID, &chat.SystemPrompt, &created); err != nil {
		return Chat{}, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return Chat{}, fmt.Errorf("chat %s created_at: %w", chat.ID, err)
	}
	chat.CreatedAt = ts
	return chat, nil
}
