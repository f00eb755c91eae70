package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/render"
	"github.com/san-kum/barviz/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints a full frame for every tick it observes. Its OnTick
// method fits loop.WithTickFunc.
type LiveRenderer struct {
	w      io.Writer
	sort   dataset.SortMode
	color  bool
	clear  bool
	canvas *viz.Canvas

	mu  sync.Mutex
	err error
}

type Option func(*LiveRenderer)

// WithColor styles bars with their fill colors.
func WithColor(on bool) Option { return func(r *LiveRenderer) { r.color = on } }

// WithClear toggles the clear-screen prefix; off is useful when piping.
func WithClear(on bool) Option { return func(r *LiveRenderer) { r.clear = on } }

func NewLiveRenderer(w io.Writer, width, height int, mode dataset.SortMode, opts ...Option) *LiveRenderer {
	r := &LiveRenderer{
		w:      w,
		sort:   mode,
		clear:  true,
		canvas: viz.NewCanvas(width, height, viz.TerminalPadding),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnTick draws d, sorted by the renderer's mode. Write errors are kept and
// reported by Err; later frames are skipped once one occurs.
func (r *LiveRenderer) OnTick(tick int, d dataset.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	r.err = r.frame(tick, d)
}

func (r *LiveRenderer) frame(tick int, d dataset.Dataset) error {
	shown := dataset.Sort(d, r.sort)
	f, err := render.Build(shown, r.canvas.Viewport(), viz.TerminalPadding, render.Transition{})
	if err != nil {
		return err
	}
	r.canvas.Clear()
	render.Replay(f.Commands, r.canvas)

	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "  barviz  tick=%d  sort=%s\n", tick, r.sort)
	b.WriteString("  " + strings.Repeat("─", r.canvas.Width) + "\n")

	body := r.canvas.String()
	if r.color {
		body = r.canvas.Render() + "\n"
	}
	for _, line := range strings.SplitAfter(body, "\n") {
		if line != "" {
			b.WriteString("  " + line)
		}
	}

	b.WriteString("  " + strings.Repeat("─", r.canvas.Width) + "\n")
	vals := make([]string, 0, len(shown))
	for _, p := range shown {
		vals = append(vals, fmt.Sprintf("%s=%.1f", p.Label, p.Value))
	}
	b.WriteString("  " + strings.Join(vals, " ") + "\n")

	_, err = io.WriteString(r.w, b.String())
	return err
}

func (r *LiveRenderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *LiveRenderer) Start() { io.WriteString(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.w, showCursor) }
