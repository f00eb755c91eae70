package layout

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/barviz/internal/dataset"
)

const eps = 1e-9

func TestComputeEndToEnd(t *testing.T) {
	ds := dataset.Dataset{{Label: "A", Value: 10}, {Label: "B", Value: 50}, {Label: "C", Value: 30}}
	g, err := Compute(ds, Viewport{Width: 800, Height: 400}, DefaultPadding)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	if g.ChartWidth != 720 || g.ChartHeight != 340 {
		t.Fatalf("expected 720x340 chart, got %.1fx%.1f", g.ChartWidth, g.ChartHeight)
	}
	if g.MaxValue != 50 {
		t.Errorf("expected max 50, got %f", g.MaxValue)
	}

	want := (10.0 / 50.0) * g.ChartHeight
	if math.Abs(g.Bars[0].Height-want) > eps {
		t.Errorf("expected A height %f, got %f", want, g.Bars[0].Height)
	}
	if math.Abs(g.Bars[0].Y-(g.ChartHeight-want)) > eps {
		t.Errorf("expected A y %f, got %f", g.ChartHeight-want, g.Bars[0].Y)
	}
	if math.Abs(g.Bars[1].Height-g.ChartHeight) > eps {
		t.Errorf("max bar should fill the chart, got %f", g.Bars[1].Height)
	}

	// slot = 240, bar = 192, spacing = 48
	if math.Abs(g.Bars[2].X-(2*240+24)) > eps {
		t.Errorf("expected C x 504, got %f", g.Bars[2].X)
	}
}

func TestComputeSlots(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []Viewport{{800, 400}, {123, 97}, {1920, 1080}, {200.5, 300.25}}

	for n := 1; n <= len(dataset.Labels); n++ {
		ds, err := dataset.Generate(n, rng)
		if err != nil {
			t.Fatal(err)
		}
		for _, vp := range sizes {
			g, err := Compute(ds, vp, DefaultPadding)
			if err != nil {
				t.Fatalf("n=%d vp=%v: %v", n, vp, err)
			}
			total := 0.0
			for _, b := range g.Bars {
				total += b.Width + b.Spacing
				if math.Abs(b.Width-4*b.Spacing) > 1e-9 {
					t.Errorf("n=%d: width %f should be 4x spacing %f", n, b.Width, b.Spacing)
				}
			}
			if math.Abs(total-g.ChartWidth) > 1e-6 {
				t.Errorf("n=%d vp=%v: slots sum to %f, chart width %f", n, vp, total, g.ChartWidth)
			}
		}
	}
}

func TestComputeTicks(t *testing.T) {
	ds := dataset.Dataset{{Label: "A", Value: 80}, {Label: "B", Value: 20}}
	g, err := Compute(ds, Viewport{Width: 400, Height: 260}, DefaultPadding)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Ticks) != TickCount+1 {
		t.Fatalf("expected %d ticks, got %d", TickCount+1, len(g.Ticks))
	}
	for i, tk := range g.Ticks {
		wantValue := float64(i) * 16
		wantY := g.ChartHeight - float64(i)*g.ChartHeight/TickCount
		if math.Abs(tk.Value-wantValue) > eps || math.Abs(tk.Y-wantY) > eps {
			t.Errorf("tick %d: got (%f, %f), want (%f, %f)", i, tk.Value, tk.Y, wantValue, wantY)
		}
	}
}

func TestComputeZeroMax(t *testing.T) {
	ds := dataset.Dataset{{Label: "A", Value: 0}, {Label: "B", Value: 0}}
	g, err := Compute(ds, Viewport{Width: 400, Height: 300}, DefaultPadding)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range g.Bars {
		if b.Height != 0 || math.IsNaN(b.Y) {
			t.Errorf("bar %s: expected zero height, got h=%f y=%f", b.Label, b.Height, b.Y)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	if _, err := Compute(nil, Viewport{Width: 400, Height: 300}, DefaultPadding); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}

	ds := dataset.Dataset{{Label: "A", Value: 10}}
	if _, err := Compute(ds, Viewport{Width: 70, Height: 300}, DefaultPadding); !errors.Is(err, ErrViewportTooSmall) {
		t.Errorf("expected ErrViewportTooSmall, got %v", err)
	}
}

func TestHeights(t *testing.T) {
	ds := dataset.Dataset{{Label: "A", Value: 25}, {Label: "B", Value: 100}}
	g, err := Compute(ds, Viewport{Width: 280, Height: 160}, DefaultPadding)
	if err != nil {
		t.Fatal(err)
	}
	h := g.Heights()
	if h["A"] != 25 || h["B"] != 100 {
		t.Errorf("unexpected heights %v", h)
	}
	if g.Bars[1].Center() != g.Bars[1].X+g.Bars[1].Width/2 {
		t.Error("center mismatch")
	}
}
