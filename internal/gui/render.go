package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/trackball/internal/rotmath"
	"github.com/san-kum/trackball/internal/trackball"
)

var axisColors = map[rune]rl.Color{
	'X': rl.NewColor(255, 80, 80, 255),
	'Y': rl.NewColor(80, 255, 80, 255),
	'Z': rl.NewColor(80, 140, 255, 255),
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func (a *App) drawScene() {
	active, _ := a.Registry.Active()
	rl.BeginMode3D(a.Camera)
	for _, sg := range a.Scene.Segments() {
		col := ColTextDim
		if active != nil && sg.Object == active.ID() {
			col = ColAccent
		}
		if c, ok := axisColors[sg.Tag]; ok {
			col = c
		}
		rl.DrawLine3D(vec3(sg.A), vec3(sg.B), col)
	}
	rl.EndMode3D()
}

func (a *App) DrawHUD() {
	a.drawText("trackball", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Scene.Name), 170, 34, 16, ColText)

	c, ok := a.Registry.Active()
	if !ok {
		a.drawText("NO OBJECTS", int(a.width)-160, 30, 16, ColWarn)
		return
	}

	status, col := "IDLE", ColTextDim
	if c.DragState() == trackball.Dragging {
		status, col = "DRAGGING", ColSelect
	}
	a.drawText(status, int(a.width)-160, 30, 16, col)
	if a.recording {
		a.drawText("REC", int(a.width)-160, 52, 16, rl.Red)
	}

	name := c.ID().String()[:8]
	if o, ok := a.Scene.Object(c.ID()); ok {
		name = o.Name
	}
	q := c.Orientation()
	axis := rotmath.Axis(q)
	a.drawText(fmt.Sprintf("object  %s", name), 30, 70, 16, ColText)
	a.drawText(fmt.Sprintf("quat    %.3f %+.3f %+.3f %+.3f", q.W, q.V.X(), q.V.Y(), q.V.Z()), 30, 92, 16, ColText)
	a.drawText(fmt.Sprintf("angle   %.1f deg", rotmath.Angle(q)), 30, 114, 16, ColText)
	a.drawText(fmt.Sprintf("axis    %+.2f %+.2f %+.2f", axis.X(), axis.Y(), axis.Z()), 30, 136, 16, ColText)
	if a.sinkErrors > 0 {
		a.drawText(fmt.Sprintf("sink errors %d", a.sinkErrors), 30, 158, 16, ColWarn)
	}

	a.DrawTelemetry()

	bottom := int(a.height) - 40
	a.drawText("[DRAG] ROTATE  [TAB] NEXT  [WHEEL] ZOOM  [R] RESET  [ESC] QUIT", int(a.width)-580, bottom, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, bottom, 14, ColTextDim)
}

// DrawTelemetry plots the active object's rotation angle, scaled to [0, 180].
func (a *App) DrawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}
	rectX, rectY := 30, int(a.height)-120
	width, height := 400, 60

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(rectX) + float32(i)/float32(len(a.telemetry))*float32(width)
		py := float32(rectY+height) - float32(val/180)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("%.1f deg", a.telemetry[len(a.telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
