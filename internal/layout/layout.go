// Package layout maps a dataset onto bar chart pixel geometry.
package layout

import (
	"errors"
	"fmt"

	"github.com/san-kum/barviz/internal/dataset"
)

const (
	// TickCount is the number of intervals on the value axis.
	TickCount = 5

	barFraction     = 0.8
	spacingFraction = 0.2
)

var (
	ErrEmptyDataset     = errors.New("layout: empty dataset")
	ErrViewportTooSmall = errors.New("layout: viewport smaller than padding")
)

type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding leaves room for tick labels on the left and category labels
// underneath.
var DefaultPadding = Padding{Top: 20, Right: 20, Bottom: 40, Left: 60}

func (p Padding) Horizontal() float64 { return p.Left + p.Right }
func (p Padding) Vertical() float64   { return p.Top + p.Bottom }

type Viewport struct {
	Width, Height float64
}

type Bar struct {
	Index   int
	Label   string
	Value   float64
	X, Y    float64
	Width   float64
	Height  float64
	Spacing float64
}

// Center is the horizontal middle of the bar.
func (b Bar) Center() float64 { return b.X + b.Width/2 }

type Tick struct {
	Value float64
	Y     float64
}

// Geometry is in chart coordinates: origin at the top-left of the plot area,
// after padding.
type Geometry struct {
	Viewport    Viewport
	Padding     Padding
	ChartWidth  float64
	ChartHeight float64
	MaxValue    float64
	Bars        []Bar
	Ticks       []Tick
}

// Compute lays out ds inside vp. It is a pure function of its arguments.
func Compute(ds dataset.Dataset, vp Viewport, pad Padding) (Geometry, error) {
	if len(ds) == 0 {
		return Geometry{}, ErrEmptyDataset
	}
	g := Geometry{
		Viewport:    vp,
		Padding:     pad,
		ChartWidth:  vp.Width - pad.Horizontal(),
		ChartHeight: vp.Height - pad.Vertical(),
		MaxValue:    ds.Max(),
	}
	if g.ChartWidth <= 0 || g.ChartHeight <= 0 {
		return Geometry{}, fmt.Errorf("%.0fx%.0f: %w", vp.Width, vp.Height, ErrViewportTooSmall)
	}

	slot := g.ChartWidth / float64(len(ds))
	barWidth := slot * barFraction
	spacing := slot * spacingFraction

	g.Bars = make([]Bar, len(ds))
	for i, p := range ds {
		h := g.scale(p.Value)
		g.Bars[i] = Bar{
			Index:   i,
			Label:   p.Label,
			Value:   p.Value,
			X:       float64(i)*(barWidth+spacing) + spacing/2,
			Y:       g.ChartHeight - h,
			Width:   barWidth,
			Height:  h,
			Spacing: spacing,
		}
	}

	g.Ticks = make([]Tick, TickCount+1)
	for i := range g.Ticks {
		f := float64(i) / TickCount
		g.Ticks[i] = Tick{
			Value: f * g.MaxValue,
			Y:     g.ChartHeight - f*g.ChartHeight,
		}
	}
	return g, nil
}

// scale converts a value to a bar height. A non-positive maximum gives
// zero-height bars.
func (g Geometry) scale(v float64) float64 {
	if g.MaxValue <= 0 || v <= 0 {
		return 0
	}
	return v / g.MaxValue * g.ChartHeight
}

// Heights returns each bar's height keyed by label.
func (g Geometry) Heights() map[string]float64 {
	h := make(map[string]float64, len(g.Bars))
	for _, b := range g.Bars {
		h[b.Label] = b.Height
	}
	return h
}
