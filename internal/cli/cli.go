package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/syslogng-lsp/internal/app"
)

// Version is set at build time.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	settingsPath string
	logLevel     string
	logFormat    string
	grammarDB    string
	includePaths []string
}

// Execute runs the command line described by args. Command output goes to
// outW, logs to errW. Usage problems come back as an *ExitError with code 2.
func Execute(args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.Execute()
}

// exactArgs reports argument count mismatches as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// NewRootCommand builds the syslogng-lsp command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "syslogng-lsp",
		Short:         "Language tooling for syslog-ng configuration files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.settingsPath, "config", "", "Path to a YAML settings file.")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&flags.grammarDB, "grammar-db", "", "Path to a JSON grammar database replacing the bundled one.")
	pf.StringSliceVar(&flags.includePaths, "include-path", nil, "Directory searched for relative @include patterns. Repeatable.")

	root.AddCommand(
		newCheckCmd(flags),
		newCompleteCmd(flags),
		newObjectsCmd(flags),
		newWatchCmd(flags),
		newVersionCmd(),
	)
	return root
}

// settings merges the settings file, if any, with explicitly set flags.
func (f *globalFlags) settings(cmd *cobra.Command) (*app.Settings, error) {
	s := app.DefaultSettings()
	if f.settingsPath != "" {
		loaded, err := app.LoadSettings(f.settingsPath)
		if err != nil {
			return nil, usageError(err)
		}
		s = loaded
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		s.LogLevel = f.logLevel
	}
	if changed("log-format") {
		s.LogFormat = f.logFormat
	}
	if changed("grammar-db") {
		s.GrammarDatabase = f.grammarDB
	}
	if changed("include-path") {
		s.IncludePaths = f.includePaths
	}

	settings, err := app.NewSettings(s)
	if err != nil {
		return nil, usageError(err)
	}
	return settings, nil
}

func (f *globalFlags) newApp(cmd *cobra.Command) (*app.App, error) {
	settings, err := f.settings(cmd)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cmd.ErrOrStderr(), settings)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("failed to initialise: %v", err)}
	}
	return a, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "syslogng-lsp", Version)
			return err
		},
	}
}
