package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/physics"
	"github.com/lixenwraith/sirup/status"
	"github.com/lixenwraith/sirup/vmath"
)

// Glyphs
const (
	glyphWall     = '│'
	glyphBase     = '─'
	glyphFluid    = '█'
	glyphBottle   = '▓'
	glyphParticle = '•'
	glyphFloor    = '▔'
	glyphDeath    = '┄'
)

var (
	colorGlass  = core.RGBA{R: 0.66, G: 0.69, B: 0.84, A: 1}
	colorFloor  = core.RGBA{R: 0.34, G: 0.37, B: 0.54, A: 1}
	colorDeath  = core.RGBA{R: 0.97, G: 0.46, B: 0.56, A: 0.6}
	colorStatus = core.RGBA{R: 0.48, G: 0.64, B: 0.97, A: 1}
	colorSelect = core.RGBA{R: 0.88, G: 0.69, B: 0.41, A: 1}
)

// Viewport is the world rectangle shown on screen
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultViewport frames the default bar scene
var DefaultViewport = Viewport{MinX: -3, MaxX: 3, MinY: -1.5, MaxY: 3.5}

// Cell maps a world point into a w×h cell grid, y grows downward on screen
func (v Viewport) Cell(p vmath.Vec3F, w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	fx := (p.X - v.MinX) / (v.MaxX - v.MinX)
	fy := (v.MaxY - p.Y) / (v.MaxY - v.MinY)
	x = int(math.Floor(fx * float64(w)))
	y = int(math.Floor(fy * float64(h)))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// ParticleSource enumerates live particles for drawing
type ParticleSource interface {
	EachParticle(fn func(id physics.ParticleID, src physics.SourceID, pos vmath.Vec3F))
}

// TerminalView draws the world onto a tcell screen
// The bottom row is the status bar
type TerminalView struct {
	screen    tcell.Screen
	viewport  Viewport
	particles ParticleSource
	bg        tcell.Style
}

// NewTerminalView creates a view, particles may be nil
func NewTerminalView(screen tcell.Screen, particles ParticleSource) *TerminalView {
	return &TerminalView{
		screen:    screen,
		viewport:  DefaultViewport,
		particles: particles,
		bg:        tcell.StyleDefault.Background(RGBAToTcell(Background, Background)),
	}
}

// SetViewport changes the visible world rectangle
func (v *TerminalView) SetViewport(vp Viewport) {
	v.viewport = vp
}

// Draw renders one frame, call under the world's update lock
func (v *TerminalView) Draw(world *engine.World, selected string) {
	w, h := v.screen.Size()
	v.screen.Fill(' ', v.bg)
	if h < 2 {
		v.screen.Show()
		return
	}
	sceneH := h - 1

	v.drawRow(0, glyphFloor, colorFloor, w, sceneH)
	v.drawRow(parameter.DeathZoneY, glyphDeath, colorDeath, w, sceneH)

	for _, vessel := range world.Vessels() {
		v.drawVessel(vessel, vessel.Name == selected, w, sceneH)
	}

	if v.particles != nil {
		v.particles.EachParticle(func(_ physics.ParticleID, src physics.SourceID, pos vmath.Vec3F) {
			x, y, ok := v.viewport.Cell(pos, w, sceneH)
			if !ok {
				return
			}
			color := colorGlass
			if em, found := world.Emitter(src); found {
				if c, hasColor := em.Color(); hasColor {
					color = c
				}
			}
			v.set(x, y, glyphParticle, color)
		})
	}

	v.drawStatus(world, selected, w, h-1)
	v.screen.Show()
}

func (v *TerminalView) drawRow(worldY float64, glyph rune, color core.RGBA, w, h int) {
	_, y, ok := v.viewport.Cell(vmath.Vec3F{X: v.viewport.MinX, Y: worldY}, w, h)
	if !ok {
		return
	}
	for x := 0; x < w; x++ {
		v.set(x, y, glyph, color)
	}
}

func (v *TerminalView) drawVessel(vessel *engine.Vessel, selected bool, w, h int) {
	body := vessel.Body
	if body == nil {
		return
	}

	glass := colorGlass
	if selected {
		glass = colorSelect
	}

	var fill float64
	fluid, hasFluid := core.Transparent, false
	switch vessel.Kind {
	case engine.VesselCup:
		fill = vessel.Container.FillRatio()
		fluid, hasFluid = vessel.Container.MixedColor()
	case engine.VesselBottle:
		fill = 1
		fluid, hasFluid = vessel.Emitter.Color()
	}

	// Sample the body in its local frame at roughly half-cell resolution
	cellW := (v.viewport.MaxX - v.viewport.MinX) / float64(w)
	cellH := (v.viewport.MaxY - v.viewport.MinY) / float64(h)
	step := math.Min(cellW, cellH) / 2
	half := body.Width / 2

	for ly := 0.0; ly <= body.Height; ly += step {
		for lx := -half; lx <= half; lx += step {
			x, y, ok := v.viewport.Cell(body.Local(vmath.Vec3F{X: lx, Y: ly}), w, h)
			if !ok {
				continue
			}
			switch {
			case ly < step:
				v.set(x, y, glyphBase, glass)
			case lx-step < -half || lx+step > half:
				v.set(x, y, glyphWall, glass)
			case hasFluid && ly <= fill*body.Height:
				if vessel.Kind == engine.VesselBottle {
					v.set(x, y, glyphBottle, fluid)
				} else {
					v.set(x, y, glyphFluid, fluid)
				}
			}
		}
	}

	// Label under the base
	x, y, ok := v.viewport.Cell(body.Position, w, h)
	if ok && y+1 < h {
		v.text(x-len(vessel.Name)/2, y+1, vessel.Name, glass)
	}
}

func (v *TerminalView) drawStatus(world *engine.World, selected string, w, y int) {
	ints := world.Status.Ints
	line := fmt.Sprintf("tick %d  hits %d  miss %d  over %d",
		world.CurrentTick(),
		ints.Get(status.RouteHits).Load(),
		ints.Get(status.RouteMisses).Load(),
		ints.Get(status.Overflows).Load(),
	)
	if vessel, ok := world.Vessel(selected); ok {
		line = fmt.Sprintf("[%s] tilt %.2f speed %.2f", vessel.Name, vessel.Body.Angle, vessel.Emitter.Speed)
		if vessel.Container != nil {
			line += fmt.Sprintf(" level %.1f/%.0f", vessel.Container.Level(), vessel.Container.Capacity())
		}
		line += "  " + fmt.Sprintf("tick %d  hits %d", world.CurrentTick(), ints.Get(status.RouteHits).Load())
	}
	if len(line) > w {
		line = line[:w]
	}
	v.text(0, y, line, colorStatus)
}

func (v *TerminalView) text(x, y int, s string, color core.RGBA) {
	for i, r := range []rune(s) {
		v.set(x+i, y, r, color)
	}
}

func (v *TerminalView) set(x, y int, r rune, color core.RGBA) {
	w, h := v.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	v.screen.SetContent(x, y, r, nil, v.bg.Foreground(RGBAToTcell(color, Background)))
}
