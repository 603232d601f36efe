package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	frameRate       = 30
	maxStepsPerTick = 64
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// frameBuffer survives the Model copies Bubble Tea makes between calls.
type frameBuffer struct {
	bodies []dynamo.Body
}

// Model drives an engine from the Bubble Tea event loop. The engine is
// stepped only from Update, so rendering always sees a between-steps state.
type Model struct {
	cfg    dynamo.Config
	engine *physics.Engine
	camera *Camera
	canvas *Canvas
	frame  *frameBuffer

	stepsPerTick   int
	last           dynamo.Diagnostics
	energyHistory  []float64
	contactHistory []float64

	rateSteps   int
	rateStart   time.Time
	stepsPerSec float64

	showHelp bool
	notice   string
	err      error
}

// NewModel initializes an engine from cfg.
func NewModel(cfg dynamo.Config) (Model, error) {
	engine, err := physics.Initialize(cfg)
	if err != nil {
		return Model{}, err
	}
	canvas := NewCanvas(width, height)
	pw, ph := canvas.Pixels()
	return Model{
		cfg:            engine.Config(),
		engine:         engine,
		camera:         NewCamera(cfg.Width, cfg.Height, cfg.Radius, pw, ph),
		canvas:         canvas,
		frame:          &frameBuffer{},
		stepsPerTick:   1,
		energyHistory:  make([]float64, 0, historyCapacity),
		contactHistory: make([]float64, 0, historyCapacity),
		rateStart:      time.Now(),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case TickMsg:
		if !m.engine.IsPaused() {
			m.step()
		}
		m.measure(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch key {
	case "esc", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		m.engine.SetPaused(!m.engine.IsPaused())
	case "w":
		m.camera.Pan(0, -1)
	case "s":
		m.camera.Pan(0, 1)
	case "a":
		m.camera.Pan(-1, 0)
	case "d":
		m.camera.Pan(1, 0)
	case "e":
		m.camera.ZoomIn()
	case "q":
		if !m.camera.ZoomOut() {
			m.notice = "zoom limit"
		}
	case "+", "=":
		if m.stepsPerTick < maxStepsPerTick {
			m.stepsPerTick *= 2
		}
	case "-", "_":
		if m.stepsPerTick > 1 {
			m.stepsPerTick /= 2
		}
	case "r":
		m.reset()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < m.stepsPerTick; i++ {
		m.last = m.engine.Step(m.cfg.Dt)
		m.rateSteps++
	}
	m.energyHistory = pushHistory(m.energyHistory, m.last.KineticEnergy)
	m.contactHistory = pushHistory(m.contactHistory, float64(m.last.Contacts))
}

func (m *Model) measure(now time.Time) {
	elapsed := now.Sub(m.rateStart)
	if elapsed < time.Second {
		return
	}
	m.stepsPerSec = float64(m.rateSteps) / elapsed.Seconds()
	m.rateSteps = 0
	m.rateStart = now
}

// reset rebuilds the population from the same seed, keeping the camera and
// the pause state.
func (m *Model) reset() {
	engine, err := physics.Initialize(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	engine.SetPaused(m.engine.IsPaused())
	m.engine = engine
	m.last = dynamo.Diagnostics{}
	m.energyHistory = m.energyHistory[:0]
	m.contactHistory = m.contactHistory[:0]
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

// Engine exposes the driven engine.
func (m Model) Engine() *physics.Engine { return m.engine }

// StepsPerTick is the number of engine steps per frame.
func (m Model) StepsPerTick() int { return m.stepsPerTick }

func (m Model) Camera() *Camera { return m.camera }

// View renders the TUI interface.
func (m Model) View() string {
	m.frame.bodies = m.engine.CopyBodies(m.frame.bodies)
	m.camera.Draw(m.canvas, m.frame.bodies)
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(Title.Render(fmt.Sprintf("N-BODY  %s  n=%d", strings.ToUpper(string(m.cfg.Layout)), m.engine.Len())) + "\n")

	status := StatusRunning.Render("RUNNING")
	if m.engine.IsPaused() {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n")
	if m.err != nil {
		s.WriteString(ErrorStyle.Render(m.err.Error()) + "\n")
	}
	if m.notice != "" {
		s.WriteString(KeyHint.Render(m.notice) + "\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(MetricLine("Step", fmt.Sprintf("%d", m.engine.Steps())) + "\n")
	s.WriteString(MetricLine("Time", fmt.Sprintf("%.0f", float64(m.engine.Steps())*m.cfg.Dt)) + "\n")
	s.WriteString(MetricLine("Kinetic", fmt.Sprintf("%.4g", m.last.KineticEnergy)) + "\n")
	s.WriteString(MetricLine("Contacts", fmt.Sprintf("%d", m.last.Contacts)) + "\n")
	s.WriteString(MetricLine("Gravity pairs", fmt.Sprintf("%d", m.last.GravityPairs)) + "\n")
	s.WriteString(MetricLine("Steps/frame", fmt.Sprintf("%d", m.stepsPerTick)) + "\n")
	s.WriteString(MetricLine("Steps/sec", fmt.Sprintf("%.1f", m.stepsPerSec)) + "\n")
	s.WriteString(MetricLine("Zoom", fmt.Sprintf("%.2f", m.camera.Zoom)) + "\n")
	s.WriteString(SparklineChart(m.contactHistory, 30) + "\n")

	s.WriteString(helpStyle.Render("SP/P:Pause WASD:Pan Q/E:Zoom\n+/-:Speed R:Reset ?:Help Esc:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return Panel.Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD SHORTCUTS

Space/P  Pause or resume
W A S D  Pan the view
Q / E    Zoom out / in
+ / -    Double / halve steps per frame
R        Reset to the initial population
?        Toggle this help
Esc      Quit`
