// Package window hosts the trackball in an Ebitengine window.
package window

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/logging"
	"github.com/san-kum/trackball/internal/rotmath"
	"github.com/san-kum/trackball/internal/scene"
	"github.com/san-kum/trackball/internal/trackball"
	"github.com/san-kum/trackball/internal/viz"
)

var (
	colBg     = color.RGBA{10, 10, 10, 255}
	colActive = color.RGBA{200, 200, 200, 255}
	colDim    = color.RGBA{70, 70, 70, 255}
	tagColors = map[rune]color.RGBA{
		'X': {255, 80, 80, 255},
		'Y': {80, 255, 80, 255},
		'Z': {80, 140, 255, 255},
	}
)

type Options struct {
	Scene     *scene.Scene
	Trackball trackball.Config
	Log       *zap.Logger
	Observers []trackball.Observer
	// Sink receives orientations; nil means Scene.
	Sink      trackball.OrientationSink
	Width     int
	Height    int
	FPS       int
	Title     string
	Recording bool
}

// Game implements ebiten.Game over a trackball registry.
type Game struct {
	scene    *scene.Scene
	registry *trackball.Registry
	camera   *viz.Camera
	zoom     *Zoom
	log      *zap.Logger
	sampler  input.Sampler

	fps        int
	sinkErrors int
	recording  bool
}

func NewGame(opts Options) *Game {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
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
	cam := viz.NewCamera(opts.Scene.Camera)
	fps := opts.FPS
	if fps <= 0 {
		fps = ebiten.DefaultTPS
	}
	return &Game{
		scene:     opts.Scene,
		registry:  reg,
		camera:    cam,
		zoom:      NewZoom(cam),
		log:       log,
		fps:       fps,
		recording: opts.Recording,
	}
}

// Run opens the window and blocks until the user quits.
func Run(opts Options) error {
	g := NewGame(opts)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.fps)
	// Close requests go through the event classifier like everything else.
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(g)
	g.log.Info("window closed", zap.Int("sink_errors", g.sinkErrors))
	return err
}

func (g *Game) pointer() input.PointerState {
	x, y := ebiten.CursorPosition()
	return input.PointerState{
		X:      float64(x),
		Y:      float64(y),
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		Escape: ebiten.IsKeyPressed(ebiten.KeyEscape),
		Close:  ebiten.IsWindowBeingClosed(),
	}
}

func (g *Game) Update() error {
	for _, ev := range g.sampler.Events(g.pointer()) {
		if ev.Quits() {
			return ebiten.Termination
		}
		_, err := g.registry.Dispatch(ev)
		if logging.Warn(g.log, err) {
			g.sinkErrors++
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if id, ok := g.registry.Cycle(); ok {
			g.log.Debug("active object", logging.Object(id))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if logging.Warn(g.log, g.registry.Reset()) {
			g.sinkErrors++
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.zoom.Wheel(dy)
	}
	g.zoom.Update(1 / float32(g.fps))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	active, _ := g.registry.Active()
	for _, sg := range g.scene.Segments() {
		x1, y1, _, ok1 := g.camera.Project(sg.A, w, h)
		x2, y2, _, ok2 := g.camera.Project(sg.B, w, h)
		if !ok1 || !ok2 {
			continue
		}
		col := colDim
		if active != nil && sg.Object == active.ID() {
			col = colActive
		}
		if c, ok := tagColors[sg.Tag]; ok {
			col = c
		}
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1.5, col, true)
	}

	ebitenutil.DebugPrintAt(screen, g.hud(), 12, 12)
}

func (g *Game) hud() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "trackball :: %s", g.scene.Name)
	if g.recording {
		sb.WriteString("  [REC]")
	}
	sb.WriteByte('\n')

	c, ok := g.registry.Active()
	if !ok {
		sb.WriteString("no objects\n")
		return sb.String()
	}
	name := c.ID().String()[:8]
	if o, ok := g.scene.Object(c.ID()); ok {
		name = o.Name
	}
	status := "idle"
	if c.DragState() == trackball.Dragging {
		status = "dragging"
	}
	q := c.Orientation()
	fmt.Fprintf(&sb, "object %s (%s)\n", name, status)
	fmt.Fprintf(&sb, "quat   %.3f %+.3f %+.3f %+.3f\n", q.W, q.V.X(), q.V.Y(), q.V.Z())
	fmt.Fprintf(&sb, "angle  %.1f deg\n", rotmath.Angle(q))
	fmt.Fprintf(&sb, "zoom   %.2fx\n", g.camera.Zoom)
	if g.sinkErrors > 0 {
		fmt.Fprintf(&sb, "sink errors %d\n", g.sinkErrors)
	}
	fmt.Fprintf(&sb, "%.0f TPS  drag rotate, tab next, wheel zoom, r reset, esc quit", ebiten.ActualTPS())
	return sb.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
