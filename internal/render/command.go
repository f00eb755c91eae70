package render

import "time"

type Kind int

const (
	KindLine Kind = iota
	KindRect
	KindText
	KindAnimate
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindAnimate:
		return "animate"
	}
	return "unknown"
}

// Role tells adapters what a primitive is for so they can pick glyphs and
// styles without re-deriving it from coordinates.
type Role int

const (
	RoleAxis Role = iota
	RoleTick
	RoleGrid
	RoleTickLabel
	RoleBar
	RoleValueLabel
	RoleCategoryLabel
)

type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Dashed         bool
	Role           Role
}

type Rect struct {
	ID            string
	X, Y          float64
	Width, Height float64
	Fill          string
	Radius        float64
	Index         int
}

type Text struct {
	X, Y   float64
	Value  string
	Anchor Anchor
	Fill   string
	Bold   bool
	Role   Role
}

// Animation moves a numeric attribute of the rect named Target from From to
// To over Duration, holding the final value afterwards.
type Animation struct {
	Target   string
	Attr     string
	From, To float64
	Duration time.Duration
}

// Command is one drawing instruction; exactly one of the pointers matching
// Kind is set.
type Command struct {
	Kind    Kind
	Line    *Line
	Rect    *Rect
	Text    *Text
	Animate *Animation
}

// Surface is anything the command list can be drawn on.
type Surface interface {
	DrawLine(l Line)
	DrawRect(r Rect)
	DrawText(t Text)
	Animate(a Animation)
}

// Replay draws cmds onto s in order.
func Replay(cmds []Command, s Surface) {
	for _, c := range cmds {
		switch c.Kind {
		case KindLine:
			s.DrawLine(*c.Line)
		case KindRect:
			s.DrawRect(*c.Rect)
		case KindText:
			s.DrawText(*c.Text)
		case KindAnimate:
			s.Animate(*c.Animate)
		}
	}
}
