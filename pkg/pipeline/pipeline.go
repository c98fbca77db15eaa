// Package pipeline sequences rewrite passes over one file's tree. It owns
// the cursor for the duration of a run, applies per-pass path filtering,
// and isolates per-pass failures so a misbehaving pass can never leave a
// half-applied rewrite in the output.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/chisellabs/chisel/pkg/comments"
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/tree"
	"github.com/chisellabs/chisel/pkg/walk"
)

// Policy selects how the orchestrator reacts to a failing pass.
type Policy int

// Failure policies.
const (
	// PolicyLog records a diagnostic, discards the failing pass's edits,
	// and proceeds with the next pass.
	PolicyLog Policy = iota
	// PolicyRaise aborts the whole pipeline for this file.
	PolicyRaise
)

// String returns the policy name as used in configuration.
func (p Policy) String() string {
	if p == PolicyRaise {
		return "raise"
	}
	return "log"
}

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "log", "":
		return PolicyLog, nil
	case "raise":
		return PolicyRaise, nil
	default:
		return PolicyLog, &ConfigError{Message: fmt.Sprintf("unknown failure policy %q (want log or raise)", s)}
	}
}

// Options configures one pipeline run.
type Options struct {
	Policy Policy
	Logger *slog.Logger // nil discards
}

// Result is the outcome of a completed pipeline run.
type Result struct {
	Tree        tree.Node
	Comments    *comments.Store
	Diagnostics []pass.Diagnostic
}

// ConfigError reports malformed pass configuration, detected before any
// traversal begins.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "pipeline config: " + e.Message
}

// PassError reports one pass failing on one file under the raise policy.
type PassError struct {
	Pass string
	Path string
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("pass %q failed on %s: %v", e.Pass, e.Path, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// Run folds the enabled subset of passes left-to-right over the tree.
// Each pass sees the cumulative output of all prior passes, wrapped in a
// fresh cursor. The incoming comment store is cloned, so the caller's copy
// is never touched. Under PolicyLog the returned Result always carries
// best-effort output; under PolicyRaise an error means no output at all.
func Run(root tree.Node, cs *comments.Store, path string, passes []pass.Pass, opts Options) (Result, error) {
	if err := validate(passes); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cs == nil {
		cs = comments.NewStore(nil)
	}

	ctx := &pass.Context{Comments: cs.Clone(), Path: path}
	current := root

	for _, p := range passes {
		if !p.EnabledFor(path) {
			logger.Debug("pass filtered out", "pass", p.Name, "path", path)
			continue
		}

		// Snapshot the side channel; the pre-pass tree snapshot is just
		// the current immutable value.
		saved := ctx.Comments
		ctx.Comments = saved.Clone()

		next, err := runPass(current, p, ctx)
		if err != nil {
			if opts.Policy == PolicyRaise {
				return Result{}, &PassError{Pass: p.Name, Path: path, Err: err}
			}
			ctx.Comments = saved
			ctx.Report(p.Name, err.Error())
			logger.Warn("pass failed, edits discarded", "pass", p.Name, "path", path, "error", err)
			continue
		}
		current = next
	}

	return Result{Tree: current, Comments: ctx.Comments, Diagnostics: ctx.Diagnostics}, nil
}

// runPass executes one full traversal, converting both returned errors and
// panics from the visit function into a pass failure at this boundary.
// Failure is a value here, never an ambient exception: the caller still
// holds the pre-pass tree and falls back to it.
func runPass(root tree.Node, p pass.Pass, ctx *pass.Context) (out tree.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("visit panicked: %v", r)
		}
	}()
	return walk.Tree(root, func(cur *cursor.Cursor) (walk.Signal, error) {
		return p.Visit(cur, ctx)
	})
}

func validate(passes []pass.Pass) error {
	seen := make(map[string]bool, len(passes))
	for _, p := range passes {
		if p.Name == "" {
			return &ConfigError{Message: "pass with empty name"}
		}
		if p.Visit == nil {
			return &ConfigError{Message: fmt.Sprintf("pass %q has no visit function", p.Name)}
		}
		if seen[p.Name] {
			return &ConfigError{Message: fmt.Sprintf("duplicate pass %q", p.Name)}
		}
		seen[p.Name] = true
	}
	return nil
}
