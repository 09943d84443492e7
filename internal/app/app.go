//go:build ebiten

package app

import (
	"time"

	"cellmachine/internal/core"
	"cellmachine/internal/render"
	"cellmachine/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the parameter panel in pixels.
const HUDWidth = 240

// Game adapts a Player to the ebiten.Game interface.
type Game struct {
	player  *Player
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game that advances one generation per frame delay.
func New(p *Player) *Game {
	opts := p.Options()
	size := opts.Dimensions.Size()
	g := &Game{
		player:  p,
		painter: render.NewGridPainter(size),
		overlay: ui.NewOverlay(size),
		timer:   core.NewFrameDelayStep(opts.Delay),
		scale:   opts.Dimensions.Scale,
	}
	g.hud = ui.NewHUD(p, HUDWidth)
	return g
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.player.Reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.player.Reseed(uint64(time.Now().UnixNano())); err != nil {
			return err
		}
	}
	g.overlay.Update()

	due := g.timer.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		if err := g.player.Advance(); err != nil {
			return err
		}
		g.tickOnce = false
	}
	g.hud.Update()
	return nil
}

// Draw renders the current generation, the change overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	pal := g.player.Options().Palette
	screen.Fill(pal.Background)
	g.painter.Blit(screen, g.player.Grid(), pal.Foreground, pal.Background, g.scale)
	if prev := g.player.Previous(); prev != nil {
		g.overlay.Draw(screen, prev, g.player.Grid(), g.scale)
	}
	size := g.painter.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.painter.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
