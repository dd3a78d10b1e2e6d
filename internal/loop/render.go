package loop

import (
	"fmt"
	"strconv"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/object"
)

// HUD layout in arena pixels.
const (
	heartSize    = 20
	heartSpacing = 5
	hudPadding   = 10
)

// Draw paints the arena and the HUD onto s. It reads state only, so hosts
// may call it at any rate.
func (g *Game) Draw(s draw.Surface) {
	now := g.clock.Now()
	s.Clear()

	g.Player.Draw(s, g.Mode != ModeNormal)

	s.SetFillStyle(object.BulletColor)
	drawAll(s, g.Bullets)
	drawAll(s, g.Enemies)
	drawAll(s, g.PowerUps)
	drawAll(s, g.Companions)
	for _, e := range g.Explosions {
		e.Draw(s, now)
	}

	g.drawHUD(s)
}

func drawAll[T object.Drawable](s draw.Surface, items []T) {
	for _, it := range items {
		it.Draw(s)
	}
}

func (g *Game) drawHUD(s draw.Surface) {
	w := g.arena.Width

	s.SetFillStyle("red")
	for i := 0; i < g.Health; i++ {
		x := float64(hudPadding + i*(heartSize+heartSpacing))
		s.FillPath(draw.Heart(x, hudPadding, heartSize))
	}

	s.SetFillStyle("cyan")
	s.SetFont("20px Orbitron, sans-serif")
	s.FillText("Score: "+strconv.Itoa(g.Score), w-120, hudPadding+20)

	s.SetFillStyle("yellow")
	s.SetFont("18px Orbitron, sans-serif")
	s.FillText("H Score: "+strconv.Itoa(g.HighScore), w-140, hudPadding+45)

	s.SetFillStyle("#ff69b4")
	s.SetFont("14px Orbitron, sans-serif")
	s.FillText("Charges: "+strconv.Itoa(g.Charges)+" (H)", hudPadding, hudPadding+heartSize+20)

	if g.Mode != ModeNormal {
		s.SetFillStyle("#7fffd4")
		left := g.Stats().ModeLeft
		s.FillText(fmt.Sprintf("%s %ds", g.Mode, left), hudPadding, hudPadding+heartSize+40)
	}

	if g.GameOver {
		h := g.arena.Height
		s.SetFillStyle("rgba(0, 0, 0, 0.6)")
		s.FillRect(0, h/2-60, w, 120)
		s.SetFillStyle("red")
		s.SetFont("32px Orbitron, sans-serif")
		s.FillText("GAME OVER", w/2-90, h/2-15)
		s.SetFillStyle("white")
		s.SetFont("18px Orbitron, sans-serif")
		s.FillText("Final score: "+strconv.Itoa(g.Score), w/2-70, h/2+15)
		s.FillText("Press R to restart", w/2-80, h/2+40)
	}
}
