// Package engine drives chisel over files: read, parse, run the pass
// pipeline, render, and optionally write back. Files are independent units
// of work and are processed in parallel; all per-file state (cursor,
// context, comments) is created fresh per file and never shared.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/chisellabs/chisel/pkg/parser"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/pipeline"
	"github.com/chisellabs/chisel/pkg/printer"
)

// Config holds engine configuration.
type Config struct {
	// Passes is the ordered pipeline; an empty (non-nil) slice means the
	// identity pipeline.
	Passes []pass.Pass
	// Policy decides how a failing pass is handled (log or raise).
	Policy pipeline.Policy
	// Width is the printer's line budget (0 means the default).
	Width int
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine formats chisel script files.
type Engine struct {
	passes []pass.Pass
	policy pipeline.Policy
	width  int
	logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		passes: cfg.Passes,
		policy: cfg.Policy,
		width:  cfg.Width,
		logger: logger,
	}
}

// FormatSource canonicalizes one file's source text. A parse failure is
// fatal and surfaced unchanged; pass failures follow the configured policy.
func (e *Engine) FormatSource(src, path string) (string, []pass.Diagnostic, error) {
	root, cs, err := parser.Parse(src, path)
	if err != nil {
		return "", nil, err
	}
	res, err := pipeline.Run(root, cs, path, e.passes, pipeline.Options{
		Policy: e.policy,
		Logger: e.logger,
	})
	if err != nil {
		return "", nil, err
	}
	return printer.Render(res.Tree, res.Comments, e.width), res.Diagnostics, nil
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	Output      string
	Changed     bool
	Diagnostics []pass.Diagnostic
	Err         error
}

// FormatFile formats one file, rewriting it in place when write is set and
// the content changed.
func (e *Engine) FormatFile(path string, write bool) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	out, diags, err := e.FormatSource(string(data), path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	res := FileResult{
		Path:        path,
		Output:      out,
		Changed:     out != string(data),
		Diagnostics: diags,
	}
	if write && res.Changed {
		info, err := os.Stat(path)
		if err != nil {
			res.Err = err
			return res
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			res.Err = err
		}
	}
	return res
}

// Summary aggregates the results of one FormatPaths invocation.
type Summary struct {
	Results []FileResult
	Files   int
	Changed int
	Failed  int
}

// FormatPaths discovers chisel files under the given paths and formats them
// in parallel, one pipeline per file. Per-file failures land in the summary
// rather than aborting the batch; only discovery problems return an error.
func (e *Engine) FormatPaths(ctx context.Context, paths []string, write bool) (*Summary, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	e.logger.Info("formatting files", "run_id", runID, "files", len(files), "policy", e.policy.String())

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{Path: f, Err: err}
				return nil
			}
			results[i] = e.FormatFile(f, write)
			if results[i].Err != nil {
				e.logger.Warn("file failed", "run_id", runID, "path", f, "error", results[i].Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("formatting: %w", err)
	}

	s := &Summary{Results: results, Files: len(files)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Changed:
			s.Changed++
		}
	}
	e.logger.Info("run complete", "run_id", runID, "files", s.Files, "changed", s.Changed, "failed", s.Failed)
	return s, nil
}
