package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/syslogng-lsp/internal/cli"
)

// main is the entrypoint for the syslogng-lsp command.
func main() {
	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	// A panic anywhere below is reported as an ordinary failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("syslogng-lsp panicked: %v", r)
		}
	}()
	return cli.Execute(args, outW, errW)
}
