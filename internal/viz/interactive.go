package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/logging"
	"github.com/san-kum/trackball/internal/rotmath"
	"github.com/san-kum/trackball/internal/scene"
	"github.com/san-kum/trackball/internal/trackball"
)

const (
	width      = 60
	height     = 24
	statsWidth = 46
)

type Options struct {
	Scene       *scene.Scene
	Trackball   trackball.Config
	Log         *zap.Logger
	Observers   []trackball.Observer
	// Sink receives orientations; nil means Scene.
	Sink        trackball.OrientationSink
	GraphHeight int
	History     int
	Recording   bool
}

// Model is the terminal trackball host. Mouse drags in the canvas rotate the
// active object; tab moves control to the next object.
type Model struct {
	scene    *scene.Scene
	registry *trackball.Registry
	log      *zap.Logger
	canvas   *Canvas
	camera   *Camera

	graphHeight int
	historyCap  int
	history     []float64
	recording   bool
	sinkErrors  int
	quitting    bool
}

func NewModel(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	if opts.GraphHeight <= 0 {
		opts.GraphHeight = 6
	}
	if opts.History <= 0 {
		opts.History = 120
	}

	var sink trackball.OrientationSink = opts.Scene
	if opts.Sink != nil {
		sink = opts.Sink
	}
	reg := trackball.NewRegistry(sink, opts.Trackball)
	for _, id := range opts.Scene.IDs() {
		reg.Attach(id)
	}
	for _, o := range opts.Observers {
		reg.AddObserver(o)
	}

	return Model{
		scene:       opts.Scene,
		registry:    reg,
		log:         log,
		canvas:      NewCanvas(width, height),
		camera:      NewCamera(opts.Scene.Camera),
		graphHeight: opts.GraphHeight,
		historyCap:  opts.History,
		history:     make([]float64, 0, opts.History),
		recording:   opts.Recording,
	}
}

func (m Model) Registry() *trackball.Registry { return m.registry }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width-statsWidth-4, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		if ev := input.ClassifyTea(msg); ev.Quits() {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.dispatch(input.ClassifyTea(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if id, ok := m.registry.Cycle(); ok {
			m.history = m.history[:0]
			m.log.Debug("active object", logging.Object(id))
		}
	case "+", "=":
		m.camera.ZoomIn()
	case "-":
		m.camera.ZoomOut()
	case "r":
		if logging.Warn(m.log, m.registry.Reset()) {
			m.sinkErrors++
		}
		m.history = m.history[:0]
		m.log.Info("orientations reset")
	}
	return m, nil
}

func (m *Model) dispatch(ev input.Event) {
	if ev.Kind == input.Ignored {
		return
	}
	step, err := m.registry.Dispatch(ev)
	if logging.Warn(m.log, err) {
		m.sinkErrors++
	}
	if step.Rotated {
		m.history = append(m.history, rotmath.Angle(step.Orientation))
		if len(m.history) > m.historyCap {
			m.history = m.history[len(m.history)-m.historyCap:]
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.canvas.Clear()
	Render(m.canvas, m.scene, m.camera)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scene.Name)) + "\n")

	c, ok := m.registry.Active()
	if !ok {
		s.WriteString(warnStyle.Render("no objects") + "\n")
		return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	}

	status := idleStyle.Render("IDLE")
	if c.DragState() == trackball.Dragging {
		status = dragStyle.Render("DRAGGING")
	}
	if m.recording {
		status += "  " + recStyle.Render("REC")
	}
	s.WriteString(status + "\n\n")

	for _, id := range m.registry.IDs() {
		name := id.String()[:8]
		if o, ok := m.scene.Object(id); ok {
			name = o.Name
		}
		if id == c.ID() {
			s.WriteString(activeItem.Render("> "+name) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(name) + "\n")
		}
	}
	s.WriteString("\n")

	q := c.Orientation()
	angle := rotmath.Angle(q)
	axis := rotmath.Axis(q)
	s.WriteString(row("Quaternion", fmt.Sprintf("%.3f %+.3f %+.3f %+.3f", q.W, q.V.X(), q.V.Y(), q.V.Z())))
	s.WriteString(row("Angle", fmt.Sprintf("%s %6.1f°", bar(angle, 180, 10), angle)))
	s.WriteString(row("Axis", fmt.Sprintf("%+.2f %+.2f %+.2f", axis.X(), axis.Y(), axis.Z())))
	s.WriteString(row("Sensitivity", fmt.Sprintf("%.2f°/cell", c.Config().Sensitivity)))
	s.WriteString(row("Zoom", fmt.Sprintf("%.2fx", m.camera.Zoom)))
	if m.sinkErrors > 0 {
		s.WriteString(labelStyle.Render("Sink errors") + warnStyle.Render(fmt.Sprintf("%d", m.sinkErrors)) + "\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(m.graphHeight),
			asciigraph.Width(statsWidth-12),
			asciigraph.LowerBound(0),
			asciigraph.Caption("angle (deg)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(keyHints("drag", "rotate", "tab", "next", "+/-", "zoom") + "\n" +
		keyHints("r", "reset", "q/esc", "quit")))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the terminal host and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
