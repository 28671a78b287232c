// Package chat binds the tool pipeline to chat persistence: every message
// sent is rewritten with its tool results and appended to its chat.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toolchat/internal/logger"
	"toolchat/internal/store"
	"toolchat/internal/tools"
)

var ErrEmptyMessage = errors.New("chat: message is empty")

// MessageStore is the persistence the service needs; *store.Store implements it.
type MessageStore interface {
	CreateChat(ctx context.Context, systemPrompt string) (store.Chat, error)
	GetChat(ctx context.Context, id string) (store.Chat, error)
	AppendMessage(ctx context.Context, msg store.Message) (store.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]store.Message, error)
}

// Processor runs the tool pipeline on one message.
type Processor interface {
	Process(ctx context.Context, text string) (string, tools.ParsedMessage)
}

type Options struct {
	Store     MessageStore
	Processor Processor
	// StoreRaw persists the text as typed instead of the formatted display text.
	StoreRaw     bool
	SystemPrompt string
}

type Service struct {
	store        MessageStore
	processor    Processor
	storeRaw     bool
	systemPrompt string
	log          *logger.LogEntry
}

// Reply is the outcome of sending one message.
type Reply struct {
	Message     store.Message
	Display     string
	Invocations []tools.Invocation
}

func New(opts Options) *Service {
	return &Service{
		store:        opts.Store,
		processor:    opts.Processor,
		storeRaw:     opts.StoreRaw,
		systemPrompt: opts.SystemPrompt,
		log:          logger.Named("chat"),
	}
}

// Open resumes chatID, or starts a new chat when chatID is empty.
func (s *Service) Open(ctx context.Context, chatID string) (store.Chat, error) {
	if s.store == nil {
		return store.Chat{}, errors.New("chat: no store configured")
	}
	if strings.TrimSpace(chatID) != "" {
		return s.store.GetChat(ctx, chatID)
	}
	chat, err := s.store.CreateChat(ctx, s.systemPrompt)
	if err != nil {
		return store.Chat{}, err
	}
	s.log.Infof("chat created id=%s", chat.ID)
	return chat, nil
}

// Send processes text through the tool pipeline and appends the result to
// chatID. Without a store the reply is returned unpersisted.
func (s *Service) Send(ctx context.Context, chatID string, role store.Role, text string) (Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, ErrEmptyMessage
	}
	if s.processor == nil {
		return Reply{}, errors.New("chat: no processor configured")
	}
	display, parsed := s.processor.Process(ctx, text)
	reply := Reply{
		Display:     display,
		Invocations: parsed.Tools,
		Message:     store.Message{ChatID: chatID, Role: role, Content: display},
	}
	if s.storeRaw {
		reply.Message.Content = text
	}
	if s.store == nil {
		return reply, nil
	}

	stored, err := s.store.AppendMessage(ctx, reply.Message)
	if err != nil {
		return reply, fmt.Errorf("chat: persist message: %w", err)
	}
	reply.Message = stored
	s.log.WithField("chat_id", chatID).Infof("message stored id=%s role=%s tools=%d", stored.ID, stored.Role, len(parsed.Tools))
	return reply, nil
}

// History returns the stored messages of chatID in order.
func (s *Service) History(ctx context.Context, chatID string) ([]store.Message, error) {
	if s.store == nil {
		return nil, errors.New("chat: no store configured")
	}
	return s.store.ListMessages(ctx, chatID)
}
