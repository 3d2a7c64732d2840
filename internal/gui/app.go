// Package gui hosts the trackball in a raylib window.
package gui

import (
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/logging"
	"github.com/san-kum/trackball/internal/rotmath"
	"github.com/san-kum/trackball/internal/scene"
	"github.com/san-kum/trackball/internal/trackball"
)

// Monochrome palette; axis edges keep their own colors.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColWarn    = rl.NewColor(255, 170, 0, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

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

type App struct {
	Scene    *scene.Scene
	Registry *trackball.Registry
	Camera   rl.Camera3D
	Font     rl.Font

	log        *zap.Logger
	sampler    input.Sampler
	distance   float32
	telemetry  []float64
	maxHistory int
	sinkErrors int
	recording  bool
	quit       bool
	width      int32
	height     int32
}

func initWindow(opts Options) {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	// Escape is classified like any other key; raylib must not consume it.
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when the system font is
// missing.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(opts Options) *App {
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

	dist := float32(opts.Scene.Camera)
	return &App{
		Scene:    opts.Scene,
		Registry: reg,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, dist),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Font:       loadFont(),
		log:        log,
		distance:   dist,
		telemetry:  make([]float64, 0, 200),
		maxHistory: 200,
		recording:  opts.Recording,
		width:      int32(opts.Width),
		height:     int32(opts.Height),
	}
}

// Run opens the raylib window and blocks until it is closed.
func Run(opts Options) error {
	initWindow(opts)
	defer rl.CloseWindow()
	app := NewApp(opts)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit {
		a.Update()
		a.Draw()
	}
	a.log.Info("window closed", zap.Int("sink_errors", a.sinkErrors))
}

func (a *App) pointer() input.PointerState {
	pos := rl.GetMousePosition()
	return input.PointerState{
		X:      float64(pos.X),
		Y:      float64(pos.Y),
		Left:   rl.IsMouseButtonDown(rl.MouseLeftButton),
		Right:  rl.IsMouseButtonDown(rl.MouseRightButton),
		Middle: rl.IsMouseButtonDown(rl.MouseMiddleButton),
		Escape: rl.IsKeyDown(rl.KeyEscape),
		Close:  rl.WindowShouldClose(),
	}
}

func (a *App) Update() {
	for _, ev := range a.sampler.Events(a.pointer()) {
		if ev.Quits() {
			a.quit = true
			return
		}
		step, err := a.Registry.Dispatch(ev)
		if logging.Warn(a.log, err) {
			a.sinkErrors++
		}
		if step.Rotated {
			a.telemetry = append(a.telemetry, rotmath.Angle(step.Orientation))
			if len(a.telemetry) > a.maxHistory {
				a.telemetry = a.telemetry[1:]
			}
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if id, ok := a.Registry.Cycle(); ok {
			a.telemetry = a.telemetry[:0]
			a.log.Debug("active object", logging.Object(id))
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if logging.Warn(a.log, a.Registry.Reset()) {
			a.sinkErrors++
		}
		a.telemetry = a.telemetry[:0]
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.distance *= float32(math.Pow(0.9, float64(wheel)))
		a.distance = float32(math.Max(1.5, math.Min(40, float64(a.distance))))
		a.Camera.Position = rl.NewVector3(0, 0, a.distance)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawScene()
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
