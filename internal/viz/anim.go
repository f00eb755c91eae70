package viz

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/barviz/internal/render"
)

const (
	frameRate = 60
	settleEps = 0.05

	// a critically damped spring settles to within 1% after ~4.6/ω
	settleFactor = 4.6
)

type springState struct {
	pos, vel, target float64
}

// animator eases bar heights toward their targets with critically damped
// springs, one per bar id.
type animator struct {
	spring harmonica.Spring
	bars   map[string]*springState
}

func newAnimator(d time.Duration) *animator {
	if d <= 0 {
		d = render.DefaultDuration
	}
	return &animator{
		spring: harmonica.NewSpring(harmonica.FPS(frameRate), settleFactor/d.Seconds(), 1.0),
		bars:   make(map[string]*springState),
	}
}

// Apply starts the height animations found in cmds. A bar already heading
// for From keeps its position and velocity, so retargeting mid-flight stays
// smooth; anything else jumps to From first.
func (a *animator) Apply(cmds []render.Command) {
	for _, c := range cmds {
		if c.Kind != render.KindAnimate || c.Animate.Attr != "height" {
			continue
		}
		an := c.Animate
		s, ok := a.bars[an.Target]
		if !ok || s.target != an.From {
			s = &springState{pos: an.From}
			a.bars[an.Target] = s
		}
		s.target = an.To
	}
}

// Step advances every spring by one frame and reports whether any is still
// moving.
func (a *animator) Step() bool {
	active := false
	for _, s := range a.bars {
		if s.settled() {
			continue
		}
		s.pos, s.vel = a.spring.Update(s.pos, s.vel, s.target)
		if s.settled() {
			s.pos, s.vel = s.target, 0
			continue
		}
		active = true
	}
	return active
}

func (a *animator) Active() bool {
	for _, s := range a.bars {
		if !s.settled() {
			return true
		}
	}
	return false
}

// Height is the height to draw for id; bars without a spring are drawn at
// their target.
func (a *animator) Height(id string, target float64) float64 {
	s, ok := a.bars[id]
	if !ok {
		return target
	}
	return math.Max(0, s.pos)
}

// Forget drops springs whose ids are not in keep.
func (a *animator) Forget(keep map[string]struct{}) {
	for id := range a.bars {
		if _, ok := keep[id]; !ok {
			delete(a.bars, id)
		}
	}
}

func (s *springState) settled() bool {
	return math.Abs(s.pos-s.target) < settleEps && math.Abs(s.vel) < settleEps
}
