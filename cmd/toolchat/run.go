package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"toolchat/internal/store"
)

func runMain(root rootArgs, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var chatID string
	var role string
	var overrides stringSlice
	fs.StringVar(&chatID, "chat", "", "Append the processed message to this chat id")
	fs.StringVar(&role, "role", string(store.RoleUser), "Message role when appending to a chat (user|assistant)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse run args: %v", err)
	}

	text, err := readInput(fs.Args(), os.Stdin)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	parsedRole, err := store.ParseRole(role)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := newApp(loadConfig(root, overrides), chatID != "")
	if err != nil {
		log.Fatalf("failed to open chat store: %v", err)
	}
	defer a.Close()

	reply, err := a.chats.Send(context.Background(), chatID, parsedRole, text)
	if err != nil {
		log.Fatalf("send: %v", err)
	}
	fmt.Println(reply.Display)
}

// readInput joins args with spaces, or reads all of r when no args are given.
func readInput(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
