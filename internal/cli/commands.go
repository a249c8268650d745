package cli

import (
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/protocol"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report diagnostics for a configuration and its includes",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd)
			if err != nil {
				return err
			}
			cfg, diags, err := a.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), cfg, diags)
		},
	}
}

// report prints diagnostics document by document and fails when any of
// them is an error.
func report(w io.Writer, cfg *model.Configuration, diags map[string][]protocol.Diagnostic) error {
	errs := 0
	for _, uri := range cfg.Documents() {
		list := diags[uri]
		protocol.SortDiagnostics(list)
		for _, d := range list {
			if d.Severity == protocol.SeverityError {
				errs++
			}
			if _, err := fmt.Fprintln(w, protocol.Format(uri, d)); err != nil {
				return err
			}
		}
	}
	if errs > 0 {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d error(s) found", errs)}
	}
	return nil
}

func newCompleteCmd(flags *globalFlags) *cobra.Command {
	var document string
	cmd := &cobra.Command{
		Use:   "complete FILE LINE COLUMN",
		Short: "List completions at a 1-based position",
		Long: "List completions at a 1-based position. The position refers to FILE " +
			"unless --document names one of its includes.",
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := position(args[1], args[2])
			if err != nil {
				return err
			}
			a, err := flags.newApp(cmd)
			if err != nil {
				return err
			}
			items, err := a.Complete(cmd.Context(), args[0], document, pos)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", item.Label, item.Detail); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&document, "document", "", "Included document the position refers to.")
	return cmd
}

func position(line, column string) (protocol.Position, error) {
	l, err := strconv.Atoi(line)
	if err != nil || l < 1 {
		return protocol.Position{}, usageError(fmt.Errorf("invalid line %q: must be a positive integer", line))
	}
	c, err := strconv.Atoi(column)
	if err != nil || c < 1 {
		return protocol.Position{}, usageError(fmt.Errorf("invalid column %q: must be a positive integer", column))
	}
	return protocol.Position{Line: l - 1, Character: c - 1}, nil
}

func newObjectsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "objects FILE",
		Short: "List the objects a configuration defines",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, o := range cfg.Objects() {
				if _, err := fmt.Fprintln(out, objectLine(o)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func objectLine(o *model.Object) string {
	id := o.ID()
	if id == "" {
		id = "-"
	}
	loc, ok := o.Location()
	if !ok {
		return fmt.Sprintf("%s\t%s\t-", o.Kind(), id)
	}
	return fmt.Sprintf("%s\t%s\t%s:%d-%d", o.Kind(), id, loc.Filename, loc.Start.Line, loc.End.Line)
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-check a configuration whenever it or its includes change",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = a.Watch(ctx, args[0], func(cfg *model.Configuration, diags map[string][]protocol.Diagnostic) {
				fmt.Fprintf(out, "--- %s\n", cfg.URI)
				if err := report(out, cfg, diags); err != nil {
					fmt.Fprintln(out, err)
				}
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}
