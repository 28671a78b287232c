package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"toolchat/internal/config"
)

func configMain(root rootArgs, args []string) {
	if len(args) == 0 || args[0] != "init" {
		log.Fatalf("usage: toolchat config init [--force]")
	}
	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	var force bool
	fs.BoolVar(&force, "force", false, "Overwrite an existing config file")
	if err := fs.Parse(args[1:]); err != nil {
		log.Fatalf("parse config args: %v", err)
	}

	path, err := initConfig(root.cfgPath, force)
	if err != nil {
		log.Fatalf("config init: %v", err)
	}
	fmt.Printf("wrote %s\n", path)
}

// initConfig writes the default config to path (DefaultPath when empty).
func initConfig(path string, force bool) (string, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, err
		}
	}
	return path, config.Save(path, config.Default())
}
