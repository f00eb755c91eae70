package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/render"
)

func drawn(t *testing.T, d dataset.Dataset, w, h int) *Canvas {
	t.Helper()
	c := NewCanvas(w, h, TerminalPadding)
	f, err := render.Build(d, c.Viewport(), TerminalPadding, render.Transition{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	render.Replay(f.Commands, c)
	return c
}

func TestCanvasBars(t *testing.T) {
	d := dataset.Dataset{{Label: "A", Value: 100}, {Label: "B", Value: 50}}
	c := drawn(t, d, 40, 12)

	// tallest bar fills from the first plot row down to the axis
	for row := 1; row <= 9; row++ {
		if got := c.At(10, row); got != '█' {
			t.Errorf("bar A row %d: got %q, want full block", row, got)
		}
	}
	// B is 36 units tall: half of row 5 and everything below
	if got := c.At(30, 5); got != '▄' {
		t.Errorf("bar B top: got %q, want lower half block", got)
	}
	if got := c.At(30, 6); got != '█' {
		t.Errorf("bar B body: got %q", got)
	}
}

func TestCanvasAxesAndLabels(t *testing.T) {
	d := dataset.Dataset{{Label: "A", Value: 100}, {Label: "B", Value: 50}}
	c := drawn(t, d, 40, 12)

	if got := c.At(6, 5); got != '│' {
		t.Errorf("y axis: got %q", got)
	}
	if got := c.At(15, 10); got != '─' {
		t.Errorf("x axis: got %q", got)
	}
	if got := string([]rune{c.At(2, 1), c.At(3, 1), c.At(4, 1)}); got != "100" {
		t.Errorf("top tick label: got %q", got)
	}

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	if !strings.Contains(lines[0], "100.0") {
		t.Errorf("value label missing from first row: %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "A") || !strings.Contains(last, "B") {
		t.Errorf("category labels missing from last row: %q", last)
	}
}

func TestCanvasBarHeightOverride(t *testing.T) {
	d := dataset.Dataset{{Label: "A", Value: 100}, {Label: "B", Value: 50}}
	c := NewCanvas(40, 12, TerminalPadding)
	c.BarHeight = func(string, float64) float64 { return 0 }
	f, err := render.Build(d, c.Viewport(), TerminalPadding, render.Transition{})
	if err != nil {
		t.Fatal(err)
	}
	render.Replay(f.Commands, c)

	if strings.ContainsRune(c.String(), '█') {
		t.Error("bars drawn despite zero override")
	}
}

func TestCanvasEmptyAndBounds(t *testing.T) {
	c := drawn(t, nil, 20, 6)
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("empty dataset drew something:\n%s", c.String())
	}
	if c.At(-1, 0) != 0 || c.At(0, 6) != 0 {
		t.Error("At outside canvas should return 0")
	}
	if NewCanvas(0, 0, TerminalPadding).Render() != "" {
		t.Error("zero canvas should render empty")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline(nil, 4, 0, 1); got != "────" {
		t.Errorf("empty: got %q", got)
	}
	if got := sparkline([]float64{0, 1}, 4, 0, 1); got != "▁█" {
		t.Errorf("range: got %q", got)
	}
	if got := sparkline([]float64{0, 0, 1}, 2, 0, 1); got != "▁█" {
		t.Errorf("window: got %q", got)
	}
}
