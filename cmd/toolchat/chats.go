package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"toolchat/internal/store"
)

func chatsMain(root rootArgs, args []string) {
	fs := flag.NewFlagSet("chats", flag.ExitOnError)
	var deleteID string
	fs.StringVar(&deleteID, "delete", "", "Delete the chat with this id and its messages")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse chats args: %v", err)
	}

	a, err := newApp(loadConfig(root, nil), true)
	if err != nil {
		log.Fatalf("failed to open chat store: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	if deleteID != "" {
		if err := a.store.DeleteChat(ctx, deleteID); err != nil {
			log.Fatalf("delete chat: %v", err)
		}
		fmt.Printf("deleted %s\n", deleteID)
		return
	}
	list, err := a.store.ListChats(ctx)
	if err != nil {
		log.Fatalf("list chats: %v", err)
	}
	if err := printChats(os.Stdout, list); err != nil {
		log.Fatalf("print chats: %v", err)
	}
}

func historyMain(root rootArgs, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	var chatID string
	fs.StringVar(&chatID, "chat", "", "Chat id to print (required)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse history args: %v", err)
	}
	if strings.TrimSpace(chatID) == "" {
		log.Fatalf("history requires --chat <id>")
	}

	a, err := newApp(loadConfig(root, nil), true)
	if err != nil {
		log.Fatalf("failed to open chat store: %v", err)
	}
	defer a.Close()

	msgs, err := a.chats.History(context.Background(), chatID)
	if err != nil {
		log.Fatalf("load history: %v", err)
	}
	if err := printHistory(os.Stdout, msgs); err != nil {
		log.Fatalf("print history: %v", err)
	}
}

func printChats(w io.Writer, chats []store.Chat) error {
	if len(chats) == 0 {
		_, err := fmt.Fprintln(w, "no chats")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSYSTEM PROMPT")
	for _, c := range chats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.CreatedAt.Local().Format(time.DateTime), firstLine(c.SystemPrompt))
	}
	return tw.Flush()
}

func printHistory(w io.Writer, msgs []store.Message) error {
	for _, m := range msgs {
		if _, err := fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Local().Format(time.DateTime), m.Role, m.Content); err != nil {
			return err
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
