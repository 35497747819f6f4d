// Package live is the accelerated rendering backend: an ebiten window
// whose draw loop acts as the external per-frame clock driving the
// pipeline. Layers are drawn individually on the GPU from the same
// snapshots the raster backend consumes.
package live

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"layerstage/internal/pipeline"
	"layerstage/internal/render"
	"layerstage/internal/scene"
)

// Game implements ebiten.Game over a pipeline engine.
type Game struct {
	engine   *pipeline.Engine
	source   render.ImageSource
	textures map[string]*ebiten.Image
	bg       color.Color
}

// New creates the live backend for an engine.
func New(engine *pipeline.Engine, source render.ImageSource, bg color.Color) *Game {
	return &Game{
		engine:   engine,
		source:   source,
		textures: make(map[string]*ebiten.Image),
		bg:       bg,
	}
}

// Update is a no-op: all motion derives from wall-clock timestamps at
// draw time, so there is no simulation state to advance.
func (g *Game) Update() error {
	return nil
}

// Draw computes the current frame's snapshots and draws each visible
// layer with a GPU transform.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.bg != nil {
		screen.Fill(g.bg)
	}

	g.engine.NextFrame()
	for _, snap := range g.engine.Frame(time.Now().UnixMilli()) {
		g.drawLayer(screen, snap)
	}
}

// Layout maps the window to stage coordinates; ebiten handles the
// viewport scaling.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := int(g.engine.StageSize())
	return s, s
}

func (g *Game) drawLayer(screen *ebiten.Image, snap scene.Snapshot) {
	if !snap.Visible || snap.Opacity <= 0 {
		return
	}
	tex := g.texture(snap.Image)
	if tex == nil {
		return
	}

	b := tex.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(snap.ScaleX, snap.ScaleY)
	op.GeoM.Rotate(snap.Rotation * math.Pi / 180)
	op.GeoM.Translate(snap.X, snap.Y)
	if snap.Opacity < 1 {
		op.ColorScale.ScaleAlpha(float32(snap.Opacity))
	}
	screen.DrawImage(tex, op)
}

// texture uploads a decoded image on first use and reuses it after.
func (g *Game) texture(ref string) *ebiten.Image {
	if tex, ok := g.textures[ref]; ok {
		return tex
	}
	img := g.source.Resolve(ref)
	var tex *ebiten.Image
	if img != nil {
		tex = ebiten.NewImageFromImage(img)
	}
	g.textures[ref] = tex
	return tex
}

// Run opens the preview window and blocks until it closes.
func Run(g *Game, title string, windowSize int) error {
	if windowSize <= 0 {
		windowSize = 768
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}
