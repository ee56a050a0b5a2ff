package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/agenthands/rvlex/pkg/batch"
	"github.com/agenthands/rvlex/pkg/source"
)

const (
	historyFile = ".rvlex_history"
	promptMain  = "rv> "
)

func runRepl(args []string) int {
	home, _ := os.UserHomeDir()

	replCmd := flag.NewFlagSet("repl", flag.ExitOnError)
	histPath := replCmd.String("history", filepath.Join(home, historyFile), "History file")
	noColor := replCmd.Bool("no-color", false, "Disable colored output")
	replCmd.Parse(args)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(*histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(*histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Println("rvlex repl. Type :quit to exit.")
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			return 0
		}

		ln.AppendHistory(line)
		r := batch.ScanFile(source.FromBytes("<repl>", []byte(line)))
		report(os.Stdout, os.Stdout, []*batch.Result{r}, !*noColor)
	}
}
