package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/agenthands/rvlex/pkg/batch"
	"github.com/agenthands/rvlex/pkg/compiler/lexer"
	"github.com/agenthands/rvlex/pkg/diag"
	"github.com/agenthands/rvlex/pkg/source"
	"github.com/agenthands/rvlex/pkg/tokenstream"
)

const usage = `Usage: rvlex <command> [flags] <file.rv>...

Commands:
  scan   print the token stream and lexical diagnostics
  dump   encode the token stream as text, json or bson
  repl   scan lines interactively
`

var debugEnabled bool

func debugf(format string, args ...any) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Print(usage)
		return 1
	}

	switch args[0] {
	case "scan":
		return runScan(args[1:])
	case "dump":
		return runDump(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Println("Unknown command:", args[0])
		fmt.Print(usage)
		return 1
	}
}

func runScan(args []string) int {
	scanCmd := flag.NewFlagSet("scan", flag.ExitOnError)
	root := scanCmd.String("root", ".", "Sandbox root for source files")
	maxSize := scanCmd.Int64("max-size", source.DefaultMaxFileSize, "Maximum source file size in bytes")
	workers := scanCmd.Int("j", runtime.GOMAXPROCS(0), "Number of files scanned concurrently")
	noColor := scanCmd.Bool("no-color", false, "Disable colored output")
	scanCmd.BoolVar(&debugEnabled, "debug", false, "Enable debug output")
	scanCmd.Parse(args)

	if scanCmd.NArg() < 1 {
		fmt.Println("No input file provided.")
		fmt.Println("Usage: rvlex scan [flags] <file.rv>...")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := source.NewLoader(*root, *maxSize)
	debugf("[Scan] root=%s files=%d workers=%d\n", loader.Root, scanCmd.NArg(), *workers)

	results, err := batch.Scan(ctx, loader, scanCmd.Args(), batch.Options{Workers: *workers})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return 1
	}

	return report(os.Stdout, os.Stderr, results, !*noColor)
}

// report prints listings to out and diagnostics to errOut. It returns the
// process exit code.
func report(out, errOut io.Writer, results []*batch.Result, color bool) int {
	bag := diag.NewBag()
	emitter := diag.NewEmitter(errOut, color)

	for _, r := range results {
		debugf("  Tokenized %s (%d bytes)\n", r.File.Path, len(r.File.Content))
		debugf("    Generated %d tokens\n", len(r.Tokens))

		if len(results) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", r.File.Path)
		}
		doc := tokenstream.NewDocument(r.File.Path, r.File.Content, r.Tokens)
		if err := tokenstream.WriteListing(out, doc, color); err != nil {
			fmt.Fprintf(errOut, "Error writing listing: %v\n", err)
			return 1
		}

		if len(r.Diagnostics) > 0 {
			lines := r.File.Lines()
			for _, d := range r.Diagnostics {
				emitter.Emit(d, lines)
			}
		}
		bag.Add(r.Diagnostics...)
	}

	emitter.Summary(bag)
	if bag.HasErrors() {
		return 1
	}
	return 0
}

func runDump(args []string) int {
	dumpCmd := flag.NewFlagSet("dump", flag.ExitOnError)
	formatName := dumpCmd.String("format", "text", "Output format: text, json or bson")
	compress := dumpCmd.Bool("zstd", false, "Compress the output with zstd")
	output := dumpCmd.String("o", "", "Write to file instead of stdout")
	root := dumpCmd.String("root", ".", "Sandbox root for source files")
	maxSize := dumpCmd.Int64("max-size", source.DefaultMaxFileSize, "Maximum source file size in bytes")
	dumpCmd.BoolVar(&debugEnabled, "debug", false, "Enable debug output")
	dumpCmd.Parse(args)

	if dumpCmd.NArg() != 1 {
		fmt.Println("Usage: rvlex dump [-format text|json|bson] [-zstd] [-o file] <file.rv>")
		return 1
	}

	format, err := tokenstream.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	f, err := source.NewLoader(*root, *maxSize).Load(dumpCmd.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return 1
	}

	tokens := lexer.Tokenize(f.Content)
	doc := tokenstream.NewDocument(f.Path, f.Content, tokens)
	debugf("  Encoding %d tokens from %s as %s (zstd=%v)\n", len(tokens), f.Path, format, *compress)

	if *output == "" {
		if err := tokenstream.Encode(os.Stdout, doc, format, *compress); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing dump: %v\n", err)
			return 1
		}
		return 0
	}

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		return 1
	}
	if err := writeDump(out, doc, format, *compress); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dump: %v\n", err)
		return 1
	}
	return 0
}

// writeDump encodes doc into w and closes it. A failed close is reported
// since buffered file data may not have reached disk.
func writeDump(w io.WriteCloser, doc *tokenstream.Document, format tokenstream.Format, compress bool) error {
	if err := tokenstream.Encode(w, doc, format, compress); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
