package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/binmode-transcoder/binmode"
	"github.com/wippyai/binmode-transcoder/xmlrpc"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Binmode-RPC input file (default stdin)")
		configFile  = flag.String("config", "", "Optional TOML config with theme and indent settings")
		emitXML     = flag.Bool("x", false, "Print the XML-RPC document and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()
	binmode.SetLogger(logger.Named("binmode"))

	cfg := defaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	data, name, err := readInput(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	msg, err := binmode.DecodeMessage(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	switch {
	case *emitXML:
		if err := xmlrpc.EmitTo(os.Stdout, msg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal on stdout")
			os.Exit(1)
		}
		if err := runInteractive(cfg, name, msg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		printSummary(os.Stdout, name, msg)
	}
}

func readInput(path string) ([]byte, string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "(stdin)", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, path, nil
}

func printSummary(w io.Writer, name string, msg *binmode.Message) {
	fmt.Fprintf(w, "Message: %s\n", name)
	fmt.Fprintf(w, "Type: %s\n", msg.Type)
	switch msg.Type {
	case binmode.MessageCall:
		fmt.Fprintf(w, "Method: %s\n", msg.Method)
		fmt.Fprintf(w, "Params: %d\n", len(msg.Params))
	case binmode.MessageFault:
		fmt.Fprintf(w, "Fault members: %d\n", len(msg.Fault.Members))
	case binmode.MessageResult:
		fmt.Fprintf(w, "Result kind: %s\n", msg.Result.Kind)
	}
	if msg.Trailing > 0 {
		fmt.Fprintf(w, "Warning: %d trailing bytes after message\n", msg.Trailing)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return zap.Must(cfg.Build())
}
