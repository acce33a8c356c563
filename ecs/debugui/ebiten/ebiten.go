// Package ebiten runs an ecs.Registry inside an Ebiten game loop with a Dear
// ImGui overlay.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/lazyengine/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game. Every Update advances the registry by the
// wall-clock time since the previous Update, inside an ImGui frame.
type Game struct {
	Registry *ecs.Registry
	Backend  *ImguiBackend
	// DrawWorld, if set, draws the scene under the ImGui overlay.
	DrawWorld func(screen *ebiten.Image)

	clock clock
}

// NewGame returns a Game driving registry. backend may be nil to run without
// an overlay.
func NewGame(registry *ecs.Registry, backend *ImguiBackend) *Game {
	return &Game{
		Registry: registry,
		Backend:  backend,
	}
}

func (g *Game) Update() error {
	dt := g.clock.tick(time.Now())

	if g.Backend != nil {
		g.Backend.BeginFrame()
		defer g.Backend.EndFrame()
	}

	g.Registry.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawWorld != nil {
		g.DrawWorld(screen)
	}
	if g.Backend != nil {
		g.Backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Backend != nil {
		g.Backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// clock measures the seconds between ticks. The first tick reports one
// nominal frame at ebiten's tick rate.
type clock struct {
	last time.Time
}

func (c *clock) tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 1.0 / float64(ebiten.DefaultTPS)
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}
