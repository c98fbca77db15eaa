package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/chisellabs/chisel/internal/starlark"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/pipeline"
)

// PassSpec names a pass to run, with optional per-pass ignore prefixes
// merged on top of whatever the pass itself declares.
type PassSpec struct {
	Name           string
	IgnorePrefixes []string
}

// ResolvePasses turns a list of pass specs into concrete passes, drawing
// from the built-in registry and from script plugins loaded out of
// pluginsDir. A nil specs slice selects every registered pass in
// registration order; an empty non-nil slice selects none.
func ResolvePasses(specs []PassSpec, pluginsDir string, logger *slog.Logger) ([]pass.Pass, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	plugins, err := starlark.LoadDir(pluginsDir)
	if err != nil {
		return nil, fmt.Errorf("loading plugins from %s: %w", pluginsDir, err)
	}
	for _, p := range plugins {
		if _, ok := pass.Get(p.Name); ok {
			logger.Warn("plugin shadows built-in pass", "pass", p.Name, "dir", pluginsDir)
		}
		pass.Register(p)
	}

	if specs == nil {
		return pass.All(), nil
	}

	resolved := make([]pass.Pass, 0, len(specs))
	for _, spec := range specs {
		p, ok := pass.Get(spec.Name)
		if !ok {
			return nil, &pipeline.ConfigError{
				Message: fmt.Sprintf("unknown pass %q (known: %v)", spec.Name, pass.Names()),
			}
		}
		if len(spec.IgnorePrefixes) > 0 {
			p.IgnorePrefixes = append(append([]string{}, p.IgnorePrefixes...), spec.IgnorePrefixes...)
		}
		resolved = append(resolved, p)
	}
	return resolved, nil
}
