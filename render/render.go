// Package render draws the scene with Ebiten.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/physics"
	"github.com/plus3/cubefall/scene"
)

// Background is the clear color behind the scene.
var Background = colornames.Dimgray

const maxBatchVertices = 1 << 15

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type cameraView struct {
	*physics.Transform
	*scene.Camera
}

type lightView struct {
	*physics.Transform
	*scene.PointLight
}

type meshView struct {
	*physics.Transform
	*scene.Mesh
	*scene.Material
	Cube *scene.Cube `ecs:"optional"`
}

// System draws every mesh and text node to Screen. Set Screen before each
// run; a nil Screen skips the frame.
type System struct {
	Screen *ebiten.Image

	Cameras ecs.Query[cameraView]
	Lights  ecs.Query[lightView]
	Meshes  ecs.Query[meshView]
	Labels  ecs.Query[struct{ *scene.TextNode }]

	source   *text.GoTextFaceSource
	faces    map[float64]*text.GoTextFace
	vertices []ebiten.Vertex
	indices  []uint16
	edges    []edge
}

// edge is an outline segment in screen space.
type edge struct {
	x0, y0, x1, y1 float32
}

var edgeColor = color.RGBA{A: 0x60}

// NewSystem loads the label font.
func NewSystem() (*System, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &System{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen
	if screen == nil {
		return
	}
	screen.Fill(Background)

	camera := scene.Camera{ViewHeight: 1}
	for c := range s.Cameras.Iter() {
		camera = *c.Camera
		break
	}

	var light *lightView
	for l := range s.Lights.Iter() {
		light = &l
		break
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scale := camera.Scale(h)

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.edges = s.edges[:0]
	for m := range s.Meshes.Iter() {
		base := m.Material.Color
		if light != nil {
			base = light.PointLight.Shade(base, *light.Transform, m.Transform.X, m.Transform.Y)
		}
		s.appendQuad(screen, camera, *m.Transform, m.Mesh.Width, m.Mesh.Height, base, w, h)

		if m.Cube != nil && scale*m.Mesh.Width >= 6 {
			s.outline(camera, *m.Transform, m.Mesh.Width, m.Mesh.Height, w, h)
		}
	}
	s.flush(screen)
	for _, e := range s.edges {
		vector.StrokeLine(screen, e.x0, e.y0, e.x1, e.y1, 1, edgeColor, true)
	}

	for label := range s.Labels.Iter() {
		s.drawLabel(screen, label.TextNode, h)
	}
}

func (s *System) appendQuad(screen *ebiten.Image, camera scene.Camera, t physics.Transform, width, height float64, clr color.RGBA, w, h int) {
	if len(s.vertices)+4 > maxBatchVertices {
		s.flush(screen)
	}

	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff

	start := uint16(len(s.vertices))
	for _, corner := range scene.Corners(t, width, height) {
		x, y := camera.WorldToScreen(corner[0], corner[1], w, h)
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	s.indices = append(s.indices, start, start+1, start+2, start, start+2, start+3)
}

func (s *System) flush(screen *ebiten.Image) {
	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// outline queues the edges of a cube so neighbours with similar colors
// stay distinguishable. Edges are stroked after the quad batch is drawn.
func (s *System) outline(camera scene.Camera, t physics.Transform, width, height float64, w, h int) {
	corners := scene.Corners(t, width, height)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		x0, y0 := camera.WorldToScreen(a[0], a[1], w, h)
		x1, y1 := camera.WorldToScreen(b[0], b[1], w, h)
		s.edges = append(s.edges, edge{float32(x0), float32(y0), float32(x1), float32(y1)})
	}
}

func (s *System) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 20
	}
	size = math.Round(size)
	face, ok := s.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: s.source, Size: size}
		s.faces[size] = face
	}
	return face
}

func (s *System) drawLabel(screen *ebiten.Image, node *scene.TextNode, screenHeight int) {
	if node.Text == "" || s.source == nil {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.SecondaryAlign = text.AlignEnd
	op.GeoM.Translate(node.Left, float64(screenHeight)-node.Bottom)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, node.Text, s.face(node.Size), op)
}
