package scene

import (
	"image/color"
	"math"

	"github.com/plus3/cubefall/physics"
)

// Scale returns pixels per world unit for a screen of the given height.
func (c Camera) Scale(screenHeight int) float64 {
	if c.ViewHeight <= 0 {
		return 1
	}
	return float64(screenHeight) / c.ViewHeight
}

// WorldToScreen maps a world point to pixels. The target sits at the center
// of the screen and y grows downwards on screen.
func (c Camera) WorldToScreen(x, y float64, screenWidth, screenHeight int) (float64, float64) {
	scale := c.Scale(screenHeight)
	sx := float64(screenWidth)/2 + (x-c.TargetX)*scale
	sy := float64(screenHeight)/2 - (y-c.TargetY)*scale
	return sx, sy
}

// Corners returns the four world-space corners of a box of size w by h
// posed by t, counter-clockwise from bottom-left.
func Corners(t physics.Transform, w, h float64) [4][2]float64 {
	hw, hh := w/2, h/2
	sin, cos := math.Sincos(t.Angle)
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var out [4][2]float64
	for i, p := range local {
		out[i][0] = t.X + p[0]*cos - p[1]*sin
		out[i][1] = t.Y + p[0]*sin + p[1]*cos
	}
	return out
}

// Brightness returns the light factor in [Ambient, 1] for a point at
// distance dist from the light.
func (l PointLight) Brightness(dist float64) float64 {
	falloff := 0.0
	if l.Range > 0 {
		falloff = math.Max(0, 1-dist/l.Range)
	}
	b := l.Ambient + (1-l.Ambient)*l.Intensity*falloff
	return math.Min(1, math.Max(l.Ambient, b))
}

// Shade lights base for a surface at (x, y) with the light positioned at pos.
func (l PointLight) Shade(base color.RGBA, pos physics.Transform, x, y float64) color.RGBA {
	b := l.Brightness(math.Hypot(x-pos.X, y-pos.Y))
	return color.RGBA{
		R: uint8(math.Round(float64(base.R) * b)),
		G: uint8(math.Round(float64(base.G) * b)),
		B: uint8(math.Round(float64(base.B) * b)),
		A: base.A,
	}
}
