package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/layout"
	"github.com/san-kum/barviz/internal/render"
)

const (
	background = "#111827"
	fontSize   = 12
)

// SVG is a render.Surface that accumulates SVG elements. Animations attach
// to the rect with the matching id, so the rect must be drawn first.
type SVG struct {
	Width, Height float64
	Padding       layout.Padding

	elems []*element
	byID  map[string]*element
}

type element struct {
	open     string
	children []string
	close    string
}

func NewSVG(width, height float64, pad layout.Padding) *SVG {
	return &SVG{
		Width:   width,
		Height:  height,
		Padding: pad,
		byID:    make(map[string]*element),
	}
}

func (s *SVG) DrawLine(l render.Line) {
	dash := ""
	if l.Dashed {
		dash = ` stroke-dasharray="2,2"`
	}
	s.add(&element{open: fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"%s/>`,
		num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), l.Stroke, dash)})
}

func (s *SVG) DrawRect(r render.Rect) {
	e := &element{
		open: fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" rx="%s">`,
			escape(r.ID), num(r.X), num(r.Y), num(r.Width), num(r.Height), r.Fill, num(r.Radius)),
		close: "</rect>",
	}
	s.add(e)
	if r.ID != "" {
		s.byID[r.ID] = e
	}
}

func (s *SVG) DrawText(t render.Text) {
	anchor := "start"
	switch t.Anchor {
	case render.AnchorMiddle:
		anchor = "middle"
	case render.AnchorEnd:
		anchor = "end"
	}
	extra := ""
	if t.Role == render.RoleTickLabel {
		extra += ` dominant-baseline="middle"`
	}
	if t.Bold {
		extra += ` font-weight="bold"`
	}
	s.add(&element{open: fmt.Sprintf(`<text x="%s" y="%s" text-anchor="%s" fill="%s" font-size="%d"%s>%s</text>`,
		num(t.X), num(t.Y), anchor, t.Fill, fontSize, extra, escape(t.Value))})
}

func (s *SVG) Animate(a render.Animation) {
	e, ok := s.byID[a.Target]
	if !ok {
		return
	}
	e.children = append(e.children, fmt.Sprintf(`<animate attributeName="%s" from="%s" to="%s" dur="%gs" fill="freeze"/>`,
		a.Attr, num(a.From), num(a.To), a.Duration.Seconds()))
}

func (s *SVG) add(e *element) { s.elems = append(s.elems, e) }

// String renders the accumulated document.
func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="%s"/>
<g transform="translate(%s, %s)">
`, num(s.Width), num(s.Height), num(s.Width), num(s.Height), background, num(s.Padding.Left), num(s.Padding.Top)))

	for _, e := range s.elems {
		if len(e.children) == 0 && e.close != "" {
			// self-close childless containers
			sb.WriteString(strings.TrimSuffix(e.open, ">") + "/>\n")
			continue
		}
		sb.WriteString(e.open)
		sb.WriteString("\n")
		for _, c := range e.children {
			sb.WriteString("  " + c + "\n")
		}
		if e.close != "" {
			sb.WriteString(e.close + "\n")
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

type Options struct {
	Width, Height float64
	Padding       layout.Padding
	Transition    render.Transition
}

// WriteSVG renders d as a standalone animated SVG document.
func WriteSVG(w io.Writer, d dataset.Dataset, opts Options) error {
	if opts.Padding == (layout.Padding{}) {
		opts.Padding = layout.DefaultPadding
	}
	frame, err := render.Build(d, layout.Viewport{Width: opts.Width, Height: opts.Height}, opts.Padding, opts.Transition)
	if err != nil {
		return err
	}
	s := NewSVG(opts.Width, opts.Height, opts.Padding)
	render.Replay(frame.Commands, s)
	_, err = io.WriteString(w, s.String())
	return err
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
