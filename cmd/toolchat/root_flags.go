package main

import (
	"flag"
	"io"
)

type rootArgs struct {
	cfgPath   string
	overrides []string
}

// parseRootArgs consumes the flags that precede the subcommand name.
func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("toolchat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var overrides stringSlice
	var cfgPath string
	fs.Var(&overrides, "c", "Override config value key=value (repeatable, applied before subcommand overrides)")
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.toolchat/config.toml)")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, nil, err
	}
	return rootArgs{cfgPath: cfgPath, overrides: append([]string{}, overrides...)}, fs.Args(), nil
}

func prependOverrides(root []string, overrides []string) []string {
	merged := append([]string{}, root...)
	return append(merged, overrides...)
}
