package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/chisellabs/chisel/internal/engine"
	"github.com/chisellabs/chisel/pkg/pass"
	_ "github.com/chisellabs/chisel/pkg/passes" // register built-in passes
)

// PassesOptions holds options for the passes command.
type PassesOptions struct {
	Plugins bool // Include Starlark plugins from the plugins directory
}

// NewPassesCommand creates the passes command.
func NewPassesCommand() *cobra.Command {
	opts := &PassesOptions{}
	cmd := &cobra.Command{
		Use:   "passes [pass-name]",
		Short: "List available passes",
		Long: `List the passes available to the fmt pipeline, in the order they run.

With a pass name, show its full description and ignore prefixes.
Use --plugins to also load and list Starlark plugins.`,
		Example: `  # List built-in passes
  chisel passes

  # Include plugins from the configured plugins directory
  chisel passes --plugins

  # Show details for one pass
  chisel passes fold-constants`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showPass(cmd, args[0], opts)
			}
			return listPasses(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Plugins, "plugins", false, "Include Starlark plugins")

	return cmd
}

func loadRegistered(cmd *cobra.Command, opts *PassesOptions) (*CommandContext, []pass.Pass, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	if opts.Plugins {
		// ResolvePasses registers plugins as a side effect.
		if _, err := engine.ResolvePasses(nil, cmdCtx.Cfg.PluginsDir, cmdCtx.Logger); err != nil {
			return nil, nil, err
		}
	}
	return cmdCtx, pass.All(), nil
}

func listPasses(cmd *cobra.Command, opts *PassesOptions) error {
	cmdCtx, passes, err := loadRegistered(cmd, opts)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	if r.Styled() {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"#", "Name", "Description"})
	for i, p := range passes {
		t.AppendRow(table.Row{i + 1, p.Name, p.Description})
	}
	t.Render()

	r.Muted(fmt.Sprintf("%d passes; 'chisel passes <name>' for details", len(passes)))
	return nil
}

func showPass(cmd *cobra.Command, name string, opts *PassesOptions) error {
	cmdCtx, passes, err := loadRegistered(cmd, opts)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	styles := r.Styles()

	for _, p := range passes {
		if p.Name != name {
			continue
		}
		r.Header(p.Name)
		r.Println()
		r.Printf("  %s\n", p.Description)
		if len(p.IgnorePrefixes) > 0 {
			r.Printf("  %s: %s\n", styles.Bold.Render("Ignores"), strings.Join(p.IgnorePrefixes, ", "))
		}
		return nil
	}
	return fmt.Errorf("unknown pass %q (known: %s)", name, strings.Join(pass.Names(), ", "))
}
