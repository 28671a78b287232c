package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"toolchat/internal/chat"

	"golang.org/x/sync/errgroup"
)

func batchMain(root rootArgs, args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var jobs int
	var overrides stringSlice
	fs.IntVar(&jobs, "jobs", runtime.NumCPU(), "Messages processed concurrently")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse batch args: %v", err)
	}

	rt := newRuntime(loadConfig(root, overrides))
	if err := runBatch(context.Background(), rt, os.Stdin, os.Stdout, jobs); err != nil {
		log.Fatalf("batch: %v", err)
	}
}

// runBatch treats every input line as an independent message and writes the
// display texts in input order. Blank lines are echoed as-is.
func runBatch(ctx context.Context, proc chat.Processor, r io.Reader, w io.Writer, jobs int) error {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if jobs <= 0 {
		jobs = 1
	}
	results := make([]string, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], _ = proc.Process(gctx, line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, res := range results {
		if _, err := fmt.Fprintln(bw, res); err != nil {
			return err
		}
	}
	return bw.Flush()
}
