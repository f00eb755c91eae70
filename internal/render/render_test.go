package render

import (
	"strings"
	"testing"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/layout"
)

type recorder struct {
	lines []Line
	rects []Rect
	texts []Text
	anims []Animation
	order []Kind
}

func (r *recorder) DrawLine(l Line)    { r.lines = append(r.lines, l); r.order = append(r.order, KindLine) }
func (r *recorder) DrawRect(x Rect)    { r.rects = append(r.rects, x); r.order = append(r.order, KindRect) }
func (r *recorder) DrawText(t Text)    { r.texts = append(r.texts, t); r.order = append(r.order, KindText) }
func (r *recorder) Animate(a Animation) { r.anims = append(r.anims, a); r.order = append(r.order, KindAnimate) }

var (
	sample = dataset.Dataset{{Label: "A", Value: 10}, {Label: "B", Value: 50}, {Label: "C", Value: 30}}
	vp     = layout.Viewport{Width: 800, Height: 400}
)

func build(t *testing.T, ds dataset.Dataset, tr Transition) (Frame, *recorder) {
	t.Helper()
	f, err := Build(ds, vp, layout.DefaultPadding, tr)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	r := &recorder{}
	Replay(f.Commands, r)
	return f, r
}

func TestBuildStructure(t *testing.T) {
	_, r := build(t, sample, Transition{})

	// 2 axes + 6 ticks + 6 grid lines
	if len(r.lines) != 14 {
		t.Errorf("expected 14 lines, got %d", len(r.lines))
	}
	if len(r.rects) != len(sample) {
		t.Errorf("expected %d rects, got %d", len(sample), len(r.rects))
	}
	// 6 tick labels + value and category label per bar
	if len(r.texts) != 6+2*len(sample) {
		t.Errorf("expected %d texts, got %d", 6+2*len(sample), len(r.texts))
	}

	grid := 0
	for _, l := range r.lines {
		if l.Role == RoleGrid {
			grid++
			if !l.Dashed {
				t.Error("grid lines should be dashed")
			}
		}
	}
	if grid != 6 {
		t.Errorf("expected 6 grid lines, got %d", grid)
	}

	labels := []string{}
	for _, tx := range r.texts {
		if tx.Role == RoleTickLabel {
			labels = append(labels, tx.Value)
		}
	}
	if strings.Join(labels, ",") != "0,10,20,30,40,50" {
		t.Errorf("unexpected tick labels %v", labels)
	}
}

func TestBuildBars(t *testing.T) {
	f, r := build(t, sample, Transition{})

	a := r.rects[0]
	want := 10.0 / 50.0 * f.Geometry.ChartHeight
	if a.Height != want {
		t.Errorf("expected A height %f, got %f", want, a.Height)
	}
	if a.ID != "bar-A" || a.Radius != 4 {
		t.Errorf("unexpected rect %+v", a)
	}
	if r.rects[0].Fill == r.rects[1].Fill {
		t.Error("adjacent bars should differ in hue")
	}

	var values []string
	for _, tx := range r.texts {
		if tx.Role == RoleValueLabel {
			values = append(values, tx.Value)
		}
	}
	if strings.Join(values, ",") != "10.0,50.0,30.0" {
		t.Errorf("unexpected value labels %v", values)
	}
}

func TestBuildSmoothTransition(t *testing.T) {
	first, r := build(t, sample, Transition{})
	if len(r.anims) != 2*len(sample) {
		t.Fatalf("first render should animate every bar, got %d animations", len(r.anims))
	}
	if r.anims[0].From != 0 || r.anims[0].Duration != DefaultDuration {
		t.Errorf("unexpected first animation %+v", r.anims[0])
	}

	_, r = build(t, sample, Transition{Previous: first.Heights()})
	if len(r.anims) != 0 {
		t.Errorf("identical re-render should not animate, got %d", len(r.anims))
	}

	moved := sample.Clone()
	moved[2].Value = 40
	_, r = build(t, moved, Transition{Previous: first.Heights()})
	if len(r.anims) != 2 {
		t.Fatalf("expected one bar to animate, got %d animations", len(r.anims))
	}
	if r.anims[0].Target != "bar-C" || r.anims[0].From != first.Heights()["C"] {
		t.Errorf("unexpected animation %+v", r.anims[0])
	}
}

func TestBuildPopTransition(t *testing.T) {
	first, _ := build(t, sample, Transition{Mode: TransitionPop})

	_, r := build(t, sample, Transition{Mode: TransitionPop, Previous: first.Heights()})
	if len(r.anims) != 0 {
		t.Errorf("identical re-render should not pop, got %d", len(r.anims))
	}

	moved := sample.Clone()
	moved[0].Value = 11
	_, r = build(t, moved, Transition{Mode: TransitionPop, Previous: first.Heights()})
	if len(r.anims) != 2*len(sample) {
		t.Fatalf("expected every bar to pop, got %d", len(r.anims))
	}
	for _, a := range r.anims {
		if a.Attr == "height" && a.From != 0 {
			t.Errorf("pop should start from zero, got %+v", a)
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	f, err := Build(nil, vp, layout.DefaultPadding, Transition{})
	if err != nil || len(f.Commands) != 0 {
		t.Errorf("empty dataset should render nothing, got %d commands, err %v", len(f.Commands), err)
	}

	zero := dataset.Dataset{{Label: "A", Value: 0}, {Label: "B", Value: 0}}
	_, r := build(t, zero, Transition{})
	for _, rc := range r.rects {
		if rc.Height != 0 {
			t.Errorf("expected zero-height bar, got %f", rc.Height)
		}
	}
}

func TestBuildRectPrecedesAnimation(t *testing.T) {
	_, r := build(t, sample, Transition{})
	seenRect := false
	for _, k := range r.order {
		if k == KindRect {
			seenRect = true
		}
		if k == KindAnimate && !seenRect {
			t.Fatal("animation emitted before its rect")
		}
	}
}

func TestParseTransition(t *testing.T) {
	for in, want := range map[string]TransitionMode{"": TransitionSmooth, "smooth": TransitionSmooth, "pop": TransitionPop} {
		got, err := ParseTransition(in)
		if err != nil || got != want {
			t.Errorf("%q: got %v, %v", in, got, err)
		}
		if got.String() != want.String() {
			t.Errorf("%q: string mismatch", in)
		}
	}
	if _, err := ParseTransition("fade"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestHueColor(t *testing.T) {
	if BarColor(0) != HueColor(210) {
		t.Error("first bar should use the base hue")
	}
	if HueColor(570) != HueColor(210) {
		t.Error("hue should wrap at 360")
	}
	if c := BarColor(3); len(c) != 7 || c[0] != '#' {
		t.Errorf("expected hex color, got %q", c)
	}
}
