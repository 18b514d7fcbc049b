package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/binmode-transcoder/binmode"
	"github.com/wippyai/binmode-transcoder/xmlrpc"
)

// Exit codes: 1 for usage and I/O problems, 2 for a malformed message.
const (
	exitUsage  = 1
	exitDecode = 2
)

func main() {
	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: binmode2xmlrpc < input.bin > output.xml")
		fmt.Fprintln(os.Stderr, "Reads one Binmode-RPC message from stdin and writes the XML-RPC document to stdout.")
		fmt.Fprintln(os.Stderr, "No arguments are accepted.")
		os.Exit(exitUsage)
	}

	logger := newLogger()
	defer logger.Sync()
	binmode.SetLogger(logger.Named("binmode"))

	if err := run(os.Stdin, os.Stdout, logger); err != nil {
		os.Exit(exitCode(err))
	}
}

type decodeError struct{ err error }

func (e decodeError) Error() string { return e.err.Error() }
func (e decodeError) Unwrap() error { return e.err }

func run(in io.Reader, out io.Writer, logger *zap.Logger) error {
	data, err := io.ReadAll(in)
	if err != nil {
		logger.Error("read input", zap.Error(err))
		return err
	}

	msg, err := binmode.DecodeMessage(data)
	if err != nil {
		logger.Error("decode message", zap.Error(err))
		return decodeError{err}
	}

	// Already logged as a warning by the decoder; does not change the
	// exit code.
	_ = msg.Trailing

	if err := xmlrpc.EmitTo(out, msg); err != nil {
		logger.Error("write output", zap.Error(err))
		return err
	}
	return nil
}

func exitCode(err error) int {
	if _, ok := err.(decodeError); ok {
		return exitDecode
	}
	return exitUsage
}

// newLogger builds a console logger on stderr. Diagnostics must never
// mix into the document on stdout.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return zap.Must(cfg.Build())
}
