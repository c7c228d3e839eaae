package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return ExitCodeSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, exitErr.msg, exitErr.err)
		} else if exitErr.msg != "" {
			fmt.Fprintf(stderr, FmtError, exitErr.msg)
		}
		return exitErr.code
	}

	// Anything else comes from cobra: unknown command, bad flag, wrong arity.
	fmt.Fprintf(stderr, FmtError, err)
	return ExitCodeUsageError
}

// exitError carries an exit code out of a command.
type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(msg string, err error) error {
	return &exitError{code: ExitCodeUsageError, msg: msg, err: err}
}

func inputError(msg string, err error) error {
	return &exitError{code: ExitCodeInputError, msg: msg, err: err}
}

func runtimeError(msg string, err error) error {
	return &exitError{code: ExitCodeError, msg: msg, err: err}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           CLIName,
		Short:         CLIDescription,
		Long:          HelpRootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&flags.verbose, FlagVerbose, FlagVerboseShort, false, "Log engine activity to stderr")

	root.AddCommand(
		newCompileCommand(flags),
		newMatchCommand(flags),
		newGenerateCommand(flags),
		newClassifyCommand(flags),
		newVersionCommand(),
	)
	return root
}

// newLogger returns a console logger on the command's stderr when verbose,
// or a no-op logger.
func newLogger(cmd *cobra.Command, flags *globalFlags) *zap.Logger {
	if !flags.verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(cmd.ErrOrStderr()), zapcore.DebugLevel)
	return zap.New(core)
}
