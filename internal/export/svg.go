package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/trackball/internal/scene"
	"github.com/san-kum/trackball/internal/viz"
)

var ErrTooFewPoints = errors.New("export: trace needs at least two points")

const background = "#0a0a0a"

var tagColors = map[rune]string{
	'X': "#ff4444",
	'Y': "#44ff44",
	'Z': "#4488ff",
}

func header(sb *strings.Builder, w, h float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

// CanvasToSVG draws every set braille dot as a circle, scale pixels apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}
	dw, dh := canvas.Dots()
	var sb strings.Builder
	header(&sb, float64(dw)*scale, float64(dh)*scale)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", color)

	r := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SceneToSVG projects the scene's wireframe through cam as vector lines.
// Axis edges keep their X/Y/Z colors.
func SceneToSVG(s *scene.Scene, cam *viz.Camera, width, height int, stroke string) string {
	if s == nil || cam == nil {
		return ""
	}
	w, h := float64(width), float64(height)
	var sb strings.Builder
	header(&sb, w, h)
	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-width=\"1.2\" stroke-linecap=\"round\">\n", stroke)

	for _, sg := range s.Segments() {
		x1, y1, _, ok1 := cam.Project(sg.A, w, h)
		x2, y2, _, ok2 := cam.Project(sg.B, w, h)
		if !ok1 || !ok2 {
			continue
		}
		if c, ok := tagColors[sg.Tag]; ok {
			fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\"/>\n", x1, y1, x2, y2, c)
			continue
		}
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x1, y1, x2, y2)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// AngleTraceToSVG plots rotation angle in degrees against session time.
// The y axis always spans [0, 180].
func AngleTraceToSVG(times, angles []float64, width, height int, stroke string) (string, error) {
	n := min(len(times), len(angles))
	if n < 2 {
		return "", ErrTooFewPoints
	}

	t0, t1 := times[0], times[n-1]
	span := t1 - t0
	if span <= 0 {
		span = 1
	}
	const pad = 10.0
	w, h := float64(width), float64(height)
	pw, ph := w-2*pad, h-2*pad

	var sb strings.Builder
	header(&sb, w, h)
	fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#333344\"/>\n", pad, h-pad, w-pad, h-pad)
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", stroke)
	for i := 0; i < n; i++ {
		x := pad + (times[i]-t0)/span*pw
		y := h - pad - angles[i]/180*ph
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String(), nil
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
