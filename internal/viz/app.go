package viz

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/barviz/internal/config"
	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/export"
	"github.com/san-kum/barviz/internal/loop"
	"github.com/san-kum/barviz/internal/render"
	"github.com/san-kum/barviz/internal/storage"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	speedStep       = 100
	historyCapacity = 120

	// rows outside the chart: header, status, help and the panel border
	chromeRows = 6
	tableWidth = 22
	minCols    = 20
	minRows    = 6
)

// TickMsg asks the model to perturb the data. Seq must match the loop's
// current sequence or the tick is dropped.
type TickMsg struct {
	Seq uint64
}

type frameMsg struct{}

type Options struct {
	Config *config.Config
	// Data replaces the generated dataset when set.
	Data   dataset.Dataset
	Store  *storage.Store
	Logger *slog.Logger
	Rand   *rand.Rand
	// ExportDir receives SVG exports. Defaults to the working directory.
	ExportDir string
}

// Model owns the dataset and every piece of UI state. The dataset is only
// touched from Update.
type Model struct {
	cfg       *config.Config
	rng       *rand.Rand
	log       *slog.Logger
	store     *storage.Store
	exportDir string

	loop  *loop.Loop
	data  dataset.Dataset
	shown dataset.Dataset
	sort  dataset.SortMode
	speed int
	ticks int

	transition render.TransitionMode
	previous   map[string]float64
	frame      render.Frame
	anim       *animator
	animating  bool
	canvas     *Canvas

	theme    Theme
	styles   styles
	keys     keyMap
	help     help.Model
	history  []float64
	status   string
	failed   bool
	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.SeedOrNow()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	lp, err := loop.New(cfg.Interval())
	if err != nil {
		return Model{}, err
	}

	data := opts.Data.Clone()
	if data == nil {
		if data, err = dataset.Generate(cfg.Count, rng); err != nil {
			return Model{}, err
		}
	} else if err := data.Validate(); err != nil {
		return Model{}, err
	}

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	theme := GetTheme(cfg.Theme)
	m := Model{
		cfg:        cfg,
		rng:        rng,
		log:        logger,
		store:      opts.Store,
		exportDir:  exportDir,
		loop:       lp,
		data:       data,
		sort:       cfg.SortMode(),
		speed:      cfg.Speed,
		transition: cfg.TransitionMode(),
		anim:       newAnimator(render.DefaultDuration),
		theme:      theme,
		styles:     newStyles(theme),
		keys:       newKeyMap(),
		help:       help.New(),
		history:    make([]float64, 0, historyCapacity),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.canvas = m.newCanvas()
	m.shown = dataset.Sort(m.data, m.sort)
	m.record()
	m.redraw()
	if cfg.Autoplay {
		m.loop.Start()
	}
	return m, nil
}

func tick(seq uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return TickMsg{Seq: seq} })
}

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.loop.Running() {
		cmds = append(cmds, tick(m.loop.Seq(), m.loop.Interval()))
	}
	if m.animating {
		cmds = append(cmds, nextFrame())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.canvas = m.newCanvas()
		// heights are in canvas units; regrow from the axis at the new scale
		m.previous = nil
		m.anim = newAnimator(render.DefaultDuration)
		return m, m.redraw()
	case TickMsg:
		if !m.loop.Accept(msg.Seq) {
			m.log.Debug("stale tick dropped", "seq", msg.Seq, "current", m.loop.Seq())
			return m, nil
		}
		loop.Perturb(m.data, m.rng)
		m.ticks++
		m.record()
		m.shown = dataset.Sort(m.data, m.sort)
		return m, tea.Batch(tick(msg.Seq, m.loop.Interval()), m.redraw())
	case frameMsg:
		if m.anim.Step() {
			return m, nextFrame()
		}
		m.animating = false
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.loop.Stop()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		seq, running := m.loop.Toggle()
		m.log.Info("loop toggled", "state", m.loop.State(), "seq", seq)
		m.setStatus("%s", m.loop.State())
		if running {
			return m, tick(seq, m.loop.Interval())
		}
	case key.Matches(msg, m.keys.Regenerate):
		return m, m.regenerate()
	case key.Matches(msg, m.keys.CycleSort):
		return m, m.setSort(m.sort.Next())
	case key.Matches(msg, m.keys.Ascending):
		return m, m.setSort(dataset.SortAscending)
	case key.Matches(msg, m.keys.Descending):
		return m, m.setSort(dataset.SortDescending)
	case key.Matches(msg, m.keys.Unsorted):
		return m, m.setSort(dataset.SortNone)
	case key.Matches(msg, m.keys.Faster):
		return m, m.setSpeed(m.speed + speedStep)
	case key.Matches(msg, m.keys.Slower):
		return m, m.setSpeed(m.speed - speedStep)
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
		m.setStatus("theme %s", m.theme.Name)
	case key.Matches(msg, m.keys.Transition):
		if m.transition == render.TransitionSmooth {
			m.transition = render.TransitionPop
		} else {
			m.transition = render.TransitionSmooth
		}
		m.setStatus("transition %s", m.transition)
	case key.Matches(msg, m.keys.Export):
		m.exportSVG()
	case key.Matches(msg, m.keys.Snapshot):
		m.snapshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) regenerate() tea.Cmd {
	d, err := dataset.Generate(len(m.data), m.rng)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.data = d
	m.ticks = 0
	m.history = m.history[:0]
	m.record()
	m.shown = dataset.Sort(m.data, m.sort)
	m.log.Info("dataset regenerated", "count", len(d))
	m.setStatus("new data")
	return m.redraw()
}

func (m *Model) setSort(mode dataset.SortMode) tea.Cmd {
	m.sort = mode
	m.shown = dataset.Sort(m.data, mode)
	m.setStatus("sort %s", mode)
	return m.redraw()
}

// setSpeed clamps speed to the supported range. A running loop restarts its
// timer so the old period's pending tick goes stale.
func (m *Model) setSpeed(speed int) tea.Cmd {
	speed = max(loop.MinSpeed, min(speed, loop.MaxSpeed))
	d, err := loop.IntervalForSpeed(speed)
	if err != nil {
		m.fail(err)
		return nil
	}
	seq, restart, err := m.loop.SetInterval(d)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.speed = speed
	m.setStatus("speed %d (%v)", speed, d)
	if restart {
		return tick(seq, d)
	}
	return nil
}

// redraw rebuilds the command list for the shown order and hands the
// transitions to the animator. It returns a frame command when a new
// animation loop has to start.
func (m *Model) redraw() tea.Cmd {
	f, err := render.Build(m.shown, m.canvas.Viewport(), TerminalPadding, render.Transition{
		Mode:     m.transition,
		Duration: render.DefaultDuration,
		Previous: m.previous,
	})
	if err != nil {
		m.fail(err)
		return nil
	}
	m.frame = f
	m.previous = f.Heights()
	m.anim.Apply(f.Commands)

	keep := make(map[string]struct{}, len(f.Geometry.Bars))
	for _, b := range f.Geometry.Bars {
		keep[render.BarID(b.Label)] = struct{}{}
	}
	m.anim.Forget(keep)

	if m.animating || !m.anim.Active() {
		return nil
	}
	m.animating = true
	return nextFrame()
}

func (m *Model) newCanvas() *Canvas {
	w := max(minCols, m.width-tableWidth-4)
	h := max(minRows, m.height-chromeRows)
	return NewCanvas(w, h, TerminalPadding)
}

func (m *Model) record() {
	m.history = append(m.history, mean(m.data))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) exportSVG() {
	name := filepath.Join(m.exportDir, fmt.Sprintf("barviz_%d.svg", time.Now().Unix()))
	f, err := os.Create(name)
	if err != nil {
		m.fail(err)
		return
	}
	defer f.Close()

	err = export.WriteSVG(f, m.shown, export.Options{
		Width:      float64(m.cfg.Export.Width),
		Height:     float64(m.cfg.Export.Height),
		Transition: render.Transition{Mode: m.transition, Duration: render.DefaultDuration},
	})
	if err != nil {
		m.fail(err)
		return
	}
	m.log.Info("svg exported", "path", name)
	m.setStatus("exported %s", name)
}

func (m *Model) snapshot() {
	if m.store == nil {
		m.setStatus("no snapshot store")
		return
	}
	id, err := m.store.Save("tui", m.data, storage.Metadata{
		Seed:  m.cfg.Seed,
		Sort:  m.sort.String(),
		Ticks: m.ticks,
	})
	if err != nil {
		m.fail(err)
		return
	}
	m.log.Info("snapshot saved", "id", id)
	m.setStatus("saved %s", id)
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *Model) fail(err error) {
	m.log.Error("action failed", "err", err)
	m.status = err.Error()
	m.failed = true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.canvas.Clear()
	m.canvas.BarHeight = m.anim.Height
	shift := m.theme.HueShift
	m.canvas.BarColor = func(i int, fill string) string {
		if shift == 0 {
			return fill
		}
		return render.ShiftedBarColor(i, shift)
	}
	render.Replay(m.frame.Commands, m.canvas)

	state := m.styles.paused.Render("● PAUSED")
	if m.loop.Running() {
		state = m.styles.running.Render("● RUNNING")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("BARVIZ"), "  ", state, "  ",
		m.styles.label.Render("mean "),
		m.styles.spark.Render(sparkline(m.history, 24, dataset.MinValue, dataset.MaxValue)),
	)

	chart := m.styles.panel.Render(m.canvas.Render())
	body := lipgloss.JoinHorizontal(lipgloss.Top, chart, " ", m.table())

	info := []string{
		m.styles.label.Render("speed ") + m.styles.value.Render(fmt.Sprintf("%d", m.speed)),
		m.styles.label.Render("interval ") + m.styles.value.Render(m.loop.Interval().String()),
		m.styles.label.Render("sort ") + m.styles.value.Render(m.sort.String()),
		m.styles.label.Render("transition ") + m.styles.value.Render(m.transition.String()),
		m.styles.label.Render("ticks ") + m.styles.value.Render(fmt.Sprintf("%d", m.ticks)),
	}
	status := strings.Join(info, m.styles.subtle.Render(" │ "))
	if m.status != "" {
		st := m.styles.subtle
		if m.failed {
			st = m.styles.err
		}
		status += "  " + st.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, m.help.View(m.keys))
}

func (m Model) table() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(m.theme.Border)).
		Headers("LABEL", "VALUE").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Foreground(m.theme.Title).Bold(true)
			}
			if col == 1 {
				return s.Foreground(m.theme.Text).Align(lipgloss.Right)
			}
			return s.Foreground(m.theme.Muted)
		})
	for _, p := range m.shown {
		t.Row(p.Label, fmt.Sprintf("%.2f", p.Value))
	}
	return t.Render()
}

func mean(d dataset.Dataset) float64 {
	if len(d) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range d {
		sum += p.Value
	}
	return sum / float64(len(d))
}

// Run starts the interactive program and blocks until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
