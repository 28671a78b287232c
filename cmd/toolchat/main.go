package main

import (
	"context"
	"flag"
	"os"

	promptHistory "toolchat/internal/history"
	"toolchat/internal/logger"
	"toolchat/internal/tools"
	"toolchat/internal/tui"
)

var log = logger.Named("cli")

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}
	if _, err := tools.SetupToolsLog(tools.DefaultToolsLogPath); err != nil {
		log.Warnf("failed to initialize tools log (%s): %v", tools.DefaultToolsLogPath, err)
	}
	defer tools.CloseToolsLog()

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parse args: %v", err)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "run":
			runMain(root, rest[1:])
			return
		case "batch":
			batchMain(root, rest[1:])
			return
		case "chats":
			chatsMain(root, rest[1:])
			return
		case "history":
			historyMain(root, rest[1:])
			return
		case "config":
			configMain(root, rest[1:])
			return
		}
	}

	runInteractive(root, rest)
}

func runInteractive(root rootArgs, args []string) {
	fs := flag.NewFlagSet("toolchat", flag.ExitOnError)
	var chatID string
	var overrides stringSlice
	fs.StringVar(&chatID, "chat", "", "Resume an existing chat id (default: start a new chat)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}

	a, err := newApp(loadConfig(root, overrides), true)
	if err != nil {
		log.Fatalf("failed to open chat store: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	current, err := a.chats.Open(ctx, chatID)
	if err != nil {
		log.Fatalf("failed to open chat %q: %v", chatID, err)
	}
	history, err := a.chats.History(ctx, current.ID)
	if err != nil {
		log.Fatalf("failed to load chat history: %v", err)
	}

	opts := tui.Options{
		Sender:  a.chats,
		ChatID:  current.ID,
		History: history,
		Tools:   a.runtime.Registry().Aliases(),
	}
	if prompts, err := promptHistory.NewDefault(); err != nil {
		log.Warnf("prompt history disabled: %v", err)
	} else {
		opts.PromptLog = prompts
		if recent, err := prompts.LoadRecent(promptHistory.DefaultLimit); err != nil {
			log.Warnf("load prompt history: %v", err)
		} else {
			opts.Prompts = recent
		}
	}

	used, err := tui.Run(opts)
	if err != nil {
		log.Fatalf("tui error: %v", err)
	}
	log.Infof("chat session ended id=%s", used)
}
