package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/layout"
)

const (
	DefaultDuration = 500 * time.Millisecond

	tickLength   = 5
	labelGap     = 10
	valueGap     = 5
	categoryGap  = 20
	cornerRadius = 4
)

type TransitionMode int

const (
	// TransitionSmooth animates each bar from its last displayed height.
	TransitionSmooth TransitionMode = iota
	// TransitionPop regrows every bar from zero whenever any height changes.
	TransitionPop
)

var ErrUnknownTransition = errors.New("render: unknown transition mode")

func (m TransitionMode) String() string {
	if m == TransitionPop {
		return "pop"
	}
	return "smooth"
}

func ParseTransition(s string) (TransitionMode, error) {
	switch s {
	case "", "smooth":
		return TransitionSmooth, nil
	case "pop":
		return TransitionPop, nil
	}
	return TransitionSmooth, fmt.Errorf("%q: %w", s, ErrUnknownTransition)
}

// Transition describes how bars enter. Previous holds the heights shown by
// the last render keyed by label; nil means nothing has been shown yet.
type Transition struct {
	Mode     TransitionMode
	Duration time.Duration
	Previous map[string]float64
}

type Frame struct {
	Geometry layout.Geometry
	Commands []Command
}

// Heights returns the bar heights this frame settles on.
func (f Frame) Heights() map[string]float64 {
	if len(f.Geometry.Bars) == 0 {
		return nil
	}
	return f.Geometry.Heights()
}

// Build computes geometry for ds and emits the full command list. An empty
// dataset produces an empty frame.
func Build(ds dataset.Dataset, vp layout.Viewport, pad layout.Padding, tr Transition) (Frame, error) {
	if len(ds) == 0 {
		return Frame{}, nil
	}
	g, err := layout.Compute(ds, vp, pad)
	if err != nil {
		return Frame{}, err
	}
	if tr.Duration <= 0 {
		tr.Duration = DefaultDuration
	}

	b := &builder{cmds: make([]Command, 0, 4+3*len(g.Ticks)+5*len(g.Bars))}
	b.axes(g)
	b.ticks(g)

	pop := tr.Mode == TransitionPop && changed(g, tr.Previous)
	for _, bar := range g.Bars {
		b.bar(g, bar, tr, pop)
	}
	return Frame{Geometry: g, Commands: b.cmds}, nil
}

// changed reports whether any bar height differs from prev.
func changed(g layout.Geometry, prev map[string]float64) bool {
	if prev == nil || len(prev) != len(g.Bars) {
		return true
	}
	for _, bar := range g.Bars {
		h, ok := prev[bar.Label]
		if !ok || h != bar.Height {
			return true
		}
	}
	return false
}

type builder struct {
	cmds []Command
}

func (b *builder) line(l Line) { b.cmds = append(b.cmds, Command{Kind: KindLine, Line: &l}) }
func (b *builder) rect(r Rect) { b.cmds = append(b.cmds, Command{Kind: KindRect, Rect: &r}) }
func (b *builder) text(t Text) { b.cmds = append(b.cmds, Command{Kind: KindText, Text: &t}) }
func (b *builder) animate(a Animation) {
	b.cmds = append(b.cmds, Command{Kind: KindAnimate, Animate: &a})
}

func (b *builder) axes(g layout.Geometry) {
	b.line(Line{X1: 0, Y1: 0, X2: 0, Y2: g.ChartHeight, Stroke: AxisColor, Role: RoleAxis})
	b.line(Line{X1: 0, Y1: g.ChartHeight, X2: g.ChartWidth, Y2: g.ChartHeight, Stroke: AxisColor, Role: RoleAxis})
}

func (b *builder) ticks(g layout.Geometry) {
	for _, tk := range g.Ticks {
		b.line(Line{X1: -tickLength, Y1: tk.Y, X2: 0, Y2: tk.Y, Stroke: AxisColor, Role: RoleTick})
		b.line(Line{X1: 0, Y1: tk.Y, X2: g.ChartWidth, Y2: tk.Y, Stroke: GridColor, Dashed: true, Role: RoleGrid})
		b.text(Text{
			X: -labelGap, Y: tk.Y,
			Value:  fmt.Sprintf("%.0f", tk.Value),
			Anchor: AnchorEnd,
			Fill:   TickLabelColor,
			Role:   RoleTickLabel,
		})
	}
}

func (b *builder) bar(g layout.Geometry, bar layout.Bar, tr Transition, pop bool) {
	id := BarID(bar.Label)
	b.rect(Rect{
		ID: id,
		X:  bar.X, Y: bar.Y,
		Width: bar.Width, Height: bar.Height,
		Fill:   BarColor(bar.Index),
		Radius: cornerRadius,
		Index:  bar.Index,
	})

	var from float64
	var animate bool
	switch tr.Mode {
	case TransitionPop:
		from, animate = 0, pop
	default:
		// a missing label grows from the axis
		from = tr.Previous[bar.Label]
		animate = from != bar.Height
	}
	if animate {
		b.animate(Animation{Target: id, Attr: "height", From: from, To: bar.Height, Duration: tr.Duration})
		b.animate(Animation{Target: id, Attr: "y", From: g.ChartHeight - from, To: bar.Y, Duration: tr.Duration})
	}

	b.text(Text{
		X: bar.Center(), Y: bar.Y - valueGap,
		Value:  fmt.Sprintf("%.1f", bar.Value),
		Anchor: AnchorMiddle,
		Fill:   ValueColor,
		Bold:   true,
		Role:   RoleValueLabel,
	})
	b.text(Text{
		X: bar.Center(), Y: g.ChartHeight + categoryGap,
		Value:  bar.Label,
		Anchor: AnchorMiddle,
		Fill:   TickLabelColor,
		Role:   RoleCategoryLabel,
	})
}

// BarID is the rect id used for the bar labeled label.
func BarID(label string) string { return "bar-" + label }
