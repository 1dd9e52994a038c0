package diag

import (
	"io"

	"github.com/fatih/color"
)

var faultPrefixColor = color.New(color.FgRed, color.Bold)

// Renderer writes fault diagnostics with an optional colored prefix.
// The plain-text bytes are identical in every mode: color only wraps the
// prefix in SGR sequences when the target stream is a terminal.
type Renderer struct {
	mode Mode
}

// NewRenderer creates a renderer with the given color mode.
func NewRenderer(mode Mode) *Renderer {
	return &Renderer{mode: mode}
}

// Fault writes "<prefix>: <msg>\n" to w. Write errors are ignored: the
// process is terminating and there is nowhere left to report them.
func (r *Renderer) Fault(w io.Writer, prefix, msg string) {
	if r == nil || w == nil {
		return
	}
	p := prefix
	if r.mode.enabled(w) {
		p = faultPrefixColor.Sprint(prefix)
	}
	_, _ = io.WriteString(w, p+": "+msg+"\n")
}

var defaultRenderer = NewRenderer(ModeAuto)

// SetMode replaces the color mode of the default renderer and returns the
// previous mode.
func SetMode(mode Mode) Mode {
	prev := defaultRenderer.mode
	defaultRenderer.mode = mode
	return prev
}

// Fault renders through the default renderer.
func Fault(w io.Writer, prefix, msg string) {
	defaultRenderer.Fault(w, prefix, msg)
}
