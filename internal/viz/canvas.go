package viz

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/barviz/internal/layout"
	"github.com/san-kum/barviz/internal/render"
)

// SubRows is the vertical resolution of one terminal row: bars are drawn
// with eighth blocks, so a row holds 8 pixel units. One column is one unit.
const SubRows = 8

// TerminalPadding is the plot inset in canvas units: one row above for value
// labels, two below for the axis and category labels, and room on the left
// for three digit tick labels.
var TerminalPadding = layout.Padding{Top: SubRows, Right: 1, Bottom: 2 * SubRows, Left: 6}

var lowerBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

type cell struct {
	r     rune
	color string
	bold  bool
	layer int
}

const (
	layerEmpty = iota
	layerGrid
	layerAxis
	layerBar
	layerText
)

// Canvas is a render.Surface over a grid of terminal cells. Coordinates
// passed to the Draw methods are relative to the padded plot origin.
type Canvas struct {
	Width, Height int
	Padding       layout.Padding
	Grid          [][]cell

	// BarHeight, when set, overrides the height a bar rect is drawn with so
	// an animator can show in-between frames.
	BarHeight func(id string, target float64) float64
	// BarColor, when set, overrides the fill for the bar at index.
	BarColor func(index int, fill string) string
}

func NewCanvas(w, h int, pad layout.Padding) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Padding: pad,
		Grid:    make([][]cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]cell, w)
	}
	c.Clear()
	return c
}

// Viewport is the canvas size in pixel units.
func (c *Canvas) Viewport() layout.Viewport {
	return layout.Viewport{Width: float64(c.Width), Height: float64(c.Height * SubRows)}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = cell{r: ' '}
		}
	}
}

// set writes r at a cell unless a higher layer already owns it.
func (c *Canvas) set(col, row int, r rune, color string, bold bool, layer int) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	if c.Grid[row][col].layer > layer {
		return
	}
	c.Grid[row][col] = cell{r: r, color: color, bold: bold, layer: layer}
}

// At returns the rune at a cell, or 0 outside the canvas.
func (c *Canvas) At(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0
	}
	return c.Grid[row][col].r
}

func (c *Canvas) col(x float64) int { return int(math.Round(c.Padding.Left + x)) }
func (c *Canvas) row(y float64) int { return int(math.Floor((c.Padding.Top + y) / SubRows)) }

func (c *Canvas) DrawLine(l render.Line) {
	layer, glyph := layerAxis, '─'
	switch {
	case l.Role == render.RoleGrid:
		layer, glyph = layerGrid, '┄'
	case l.X1 == l.X2:
		glyph = '│'
	}

	x0, y0 := c.col(l.X1), c.row(l.Y1)
	x1, y1 := c.col(l.X2), c.row(l.Y2)
	if l.Role == render.RoleTick {
		// a tick is shorter than a cell; mark the column left of the axis
		c.set(x1-1, y1, '╶', l.Stroke, false, layer)
		return
	}
	if x0 == x1 && l.Y2 > l.Y1 {
		// keep the axis off the row the x-axis runs through
		y1 = c.row(l.Y2 - 1)
	}

	// Bresenham over cells
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.set(x0, y0, glyph, l.Stroke, false, layer)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect fills a bar. The top edge uses lower eighth blocks so heights
// resolve to an eighth of a row.
func (c *Canvas) DrawRect(r render.Rect) {
	h := r.Height
	if c.BarHeight != nil {
		h = c.BarHeight(r.ID, r.Height)
	}
	fill := r.Fill
	if c.BarColor != nil {
		fill = c.BarColor(r.Index, fill)
	}
	if h <= 0 {
		return
	}

	bottom := c.Padding.Top + r.Y + r.Height
	top := bottom - h
	c0 := c.col(r.X)
	c1 := c.col(r.X + r.Width)
	if c1 <= c0 {
		c1 = c0 + 1
	}

	for row := int(top / SubRows); row*SubRows < int(math.Ceil(bottom)); row++ {
		rowTop, rowBottom := float64(row*SubRows), float64((row+1)*SubRows)
		covered := math.Min(bottom, rowBottom) - math.Max(top, rowTop)
		if covered <= 0 {
			continue
		}
		var glyph rune
		switch {
		case covered >= SubRows:
			glyph = '█'
		case bottom >= rowBottom:
			glyph = lowerBlocks[int(math.Round(covered))]
		case covered >= SubRows/2:
			// bar ends mid-row above the axis; approximate with a half block
			glyph = '▀'
		default:
			continue
		}
		if glyph == ' ' {
			continue
		}
		for col := c0; col < c1; col++ {
			c.set(col, row, glyph, fill, false, layerBar)
		}
	}
}

// DrawText places labels by role: pixel offsets meant for vector output are
// smaller than a cell, so tick labels hug the axis and category labels take
// the last row.
func (c *Canvas) DrawText(t render.Text) {
	n := utf8.RuneCountInString(t.Value)
	col, row := c.col(t.X), c.row(t.Y)
	switch t.Role {
	case render.RoleTickLabel:
		col = c.col(0) - 2
	case render.RoleCategoryLabel:
		row = min(row, c.Height-1)
	}
	switch t.Anchor {
	case render.AnchorMiddle:
		col -= n / 2
	case render.AnchorEnd:
		col -= n - 1
	}
	if t.Role == render.RoleValueLabel && c.occupied(col, row, n, layerBar) {
		row--
	}
	for i, r := range []rune(t.Value) {
		c.set(col+i, row, r, t.Fill, t.Bold, layerText)
	}
}

func (c *Canvas) occupied(col, row, n, layer int) bool {
	if row < 0 || row >= c.Height {
		return false
	}
	for i := col; i < col+n; i++ {
		if i >= 0 && i < c.Width && c.Grid[row][i].layer >= layer {
			return true
		}
	}
	return false
}

// Animate is a no-op; transitions are played by the animator through
// BarHeight.
func (c *Canvas) Animate(render.Animation) {}

// String renders plain runes without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render styles runs of cells sharing a color with lipgloss.
func (c *Canvas) Render() string {
	if c.Width == 0 {
		return ""
	}
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		cur := row[0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cur.color)).Bold(cur.bold).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != cur.color || cl.bold != cur.bold {
				flush()
				cur = cl
			}
			run.WriteRune(cl.r)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
