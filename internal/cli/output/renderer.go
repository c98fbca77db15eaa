// Package output renders CLI results with terminal-aware styling.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

const (
	// ModeAuto picks text for terminals and plain for pipes.
	ModeAuto Mode = "auto"
	// ModeText renders styled, human-oriented output.
	ModeText Mode = "text"
	// ModePlain renders unstyled output suitable for scripts.
	ModePlain Mode = "plain"
)

// Renderer writes command output to the configured streams, applying
// styles only when the effective mode calls for them.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer for the given streams and mode.
// An empty or unknown mode falls back to auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModePlain:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: DefaultStyles(),
	}
}

// Out returns the renderer's standard output stream.
func (r *Renderer) Out() io.Writer { return r.out }

// Err returns the renderer's error stream.
func (r *Renderer) Err() io.Writer { return r.errOut }

// Styles returns the style set used by this renderer.
func (r *Renderer) Styles() *Styles { return &r.styles }

// EffectiveMode resolves auto to text or plain based on whether the
// output stream is a terminal.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModePlain
}

// Styled reports whether styled output should be emitted.
func (r *Renderer) Styled() bool {
	return r.EffectiveMode() == ModeText
}

// Printf writes formatted output to the standard stream.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Println writes a line to the standard stream.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Success writes a success line, styled when the terminal supports it.
func (r *Renderer) Success(msg string) {
	if r.Styled() {
		_, _ = fmt.Fprintln(r.out, r.styles.Success.Render(msg))
		return
	}
	_, _ = fmt.Fprintln(r.out, msg)
}

// Warning writes a warning line to the error stream.
func (r *Renderer) Warning(msg string) {
	if r.Styled() {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(msg string) {
	if r.Styled() {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Muted writes a de-emphasized line to the standard stream.
func (r *Renderer) Muted(msg string) {
	if r.Styled() {
		_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(msg))
		return
	}
	_, _ = fmt.Fprintln(r.out, msg)
}

// Header writes a section header to the standard stream.
func (r *Renderer) Header(msg string) {
	if r.Styled() {
		_, _ = fmt.Fprintln(r.out, r.styles.Header1.Render(msg))
		return
	}
	_, _ = fmt.Fprintln(r.out, msg)
}
