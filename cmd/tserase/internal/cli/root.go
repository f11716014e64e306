// Package cli provides the Cobra command for tserase.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/erase"
)

// errParseFailed is returned when erase.Transform reported a parse error for
// at least one input file; the per-file diagnostic was already logged.
var errParseFailed = errors.New("tserase: one or more files failed to parse")

type flags struct {
	write bool
	quiet bool
	json  bool
}

// NewRootCommand builds the tserase command.
func NewRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "tserase <file.ts> [file2.ts...]",
		Short:         "Erase TypeScript-only syntax, producing length-preserving plain JavaScript",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "rewrite each file in place instead of printing to stdout")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "suppress unsupported-construct diagnostics")
	cmd.Flags().BoolVar(&f.json, "json", false, "emit diagnostics as JSON lines instead of human-readable log lines")

	return cmd
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: false,
	})
	if f.json {
		logger.SetFormatter(log.JSONFormatter)
	}

	hadParseError := false
	for _, path := range args {
		src, err := readInput(cmd, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		out, perr := erase.Transform(string(src), func(n ast.Node, msg string) {
			if f.quiet {
				return
			}
			logger.Warn(msg, "file", path, "offset", int(n.Start()))
		})
		if perr != nil {
			logger.Error("parse failed", "file", path, "error", perr)
			hadParseError = true
			continue
		}

		if path == "-" || !f.write {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			continue
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if hadParseError {
		return errParseFailed
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
