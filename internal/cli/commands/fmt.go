package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chisellabs/chisel/internal/engine"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool // Rewrite files in place
	Check bool // Report files that would change, exit non-zero
	Watch bool // Keep running and reformat on file changes
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format .chl files",
		Long: `Format .chl files by running the configured pass pipeline over each one.

Without flags the formatted output is printed to stdout. Directories are
searched recursively for .chl files; hidden directories are skipped.`,
		Example: `  # Print formatted output for a file
  chisel fmt script.chl

  # Rewrite every .chl file under the current directory
  chisel fmt -w .

  # Fail if any file is not formatted (CI)
  chisel fmt --check src/

  # Reformat on every change
  chisel fmt --watch src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Check && opts.Write {
				return fmt.Errorf("--check and --write are mutually exclusive")
			}
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero if any file would change")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch paths and reformat on change")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if opts.Watch {
		return runWatch(cmd, args, cmdCtx)
	}

	summary, err := cmdCtx.Engine.FormatPaths(cmd.Context(), args, opts.Write)
	if err != nil {
		if errors.Is(err, engine.ErrNoFiles) {
			r.Warning("no .chl files found")
			return nil
		}
		return err
	}

	var failed int
	for _, res := range summary.Results {
		for _, d := range res.Diagnostics {
			r.Warning(fmt.Sprintf("%s: pass %s: %s", d.Path, d.Pass, d.Message))
		}
		switch {
		case res.Err != nil:
			failed++
			r.Error(fmt.Sprintf("%s: %v", res.Path, res.Err))
		case opts.Check && res.Changed:
			r.Println(res.Path)
		case opts.Write && res.Changed:
			if cmdCtx.Cfg.Verbose {
				r.Muted(fmt.Sprintf("rewrote %s", res.Path))
			}
		case !opts.Write && !opts.Check:
			r.Printf("%s", res.Output)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, summary.Files)
	}
	if opts.Check && summary.Changed > 0 {
		return fmt.Errorf("%d files are not formatted", summary.Changed)
	}
	if opts.Write {
		r.Success(fmt.Sprintf("%d files checked, %d rewritten", summary.Files, summary.Changed))
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string, cmdCtx *CommandContext) error {
	r := cmdCtx.Renderer
	if len(args) == 0 {
		args = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Muted("watching for changes (ctrl-c to stop)")
	err := cmdCtx.Engine.Watch(ctx, args, func(res engine.FileResult) {
		switch {
		case res.Err != nil:
			r.Error(fmt.Sprintf("%s: %v", res.Path, res.Err))
		case res.Changed:
			r.Success(fmt.Sprintf("rewrote %s", res.Path))
		}
		for _, d := range res.Diagnostics {
			r.Warning(fmt.Sprintf("%s: pass %s: %s", d.Path, d.Pass, d.Message))
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
