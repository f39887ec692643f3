package game

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/stigmerge/antfarm/systems"
)

// renderState holds the GPU-side resources. Created on the first Draw
// so constructing a Game never requires a window.
type renderState struct {
	fieldTex rl.Texture2D
	pixels   []color.RGBA
	texW     int
	texH     int
}

func newRenderState(w, h int) *renderState {
	img := rl.GenImageColor(w, h, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return &renderState{
		fieldTex: tex,
		pixels:   make([]color.RGBA, w*h),
		texW:     w,
		texH:     h,
	}
}

// Draw renders one frame. No-op in headless mode: no GPU state is
// created and no raylib call is made.
func (g *Game) Draw() {
	if g.opts.Headless {
		return
	}
	if g.render == nil {
		g.render = newRenderState(g.cfg.World.Width, g.cfg.World.Height)
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 20, G: 20, B: 20, A: 255})

	if g.showField {
		g.drawField()
	}
	g.drawColony()
	g.drawFood()
	g.drawAnts()
	g.drawHUD()

	rl.EndDrawing()
}

// drawField uploads both scent grids into one texture, home scent in
// the blue channel and food scent in the green, and draws it
// additively over the background.
func (g *Game) drawField() {
	r := g.render
	home := g.field.Grid(systems.HomeScent)
	food := g.field.Grid(systems.FoodScent)
	max := float32(g.cfg.Pheromone.Max)

	for i := range r.pixels {
		hv := home[i] / max
		fv := food[i] / max
		if hv > 1 {
			hv = 1
		}
		if fv > 1 {
			fv = 1
		}
		r.pixels[i] = color.RGBA{
			G: uint8(fv * 255),
			B: uint8(hv * 255),
			A: 255,
		}
	}
	rl.UpdateTexture(r.fieldTex, r.pixels)

	srcRect := rl.Rectangle{Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{Width: float32(g.cfg.Screen.Width), Height: float32(g.cfg.Screen.Height)}
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawTexturePro(r.fieldTex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	rl.EndBlendMode()
}

func (g *Game) drawColony() {
	rl.DrawCircle(int32(g.colony.X), int32(g.colony.Y), float32(g.cfg.Colony.CaptureRadius),
		rl.Color{R: 0, G: 150, B: 255, A: 255})
}

func (g *Game) drawFood() {
	for _, f := range g.foods.Sources() {
		if f.Amount <= 0 {
			continue
		}
		radius := float32(10 + f.Amount/20)
		if radius > 30 {
			radius = 30
		}
		rl.DrawCircle(int32(f.X), int32(f.Y), radius, rl.Color{R: 0, G: 200, B: 0, A: 255})
	}
}

func (g *Game) drawAnts() {
	normal := rl.Color{R: 220, G: 220, B: 220, A: 255}
	panicked := rl.Color{R: 255, G: 100, B: 100, A: 255}

	g.VisitAnts(func(x, y, heading float32, panicking bool) {
		c := normal
		if panicking {
			c = panicked
		}
		rl.DrawCircle(int32(x), int32(y), 2, c)
		tipX := x + 4*float32(math.Cos(float64(heading)))
		tipY := y + 4*float32(math.Sin(float64(heading)))
		rl.DrawLine(int32(x), int32(y), int32(tipX), int32(tipY), c)
	})
}

// hudRect is the panel area clicks must not treat as world space.
func (g *Game) hudRect() rl.Rectangle {
	return rl.Rectangle{X: 10, Y: 10, Width: 240, Height: 90}
}

func (g *Game) drawHUD() {
	panel := g.hudRect()
	rl.DrawRectangleRec(panel, rl.Color{R: 0, G: 0, B: 0, A: 160})

	label := "Pause"
	if g.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panel.X + 10, Y: panel.Y + 10, Width: 80, Height: 24}, label) {
		g.paused = !g.paused
	}

	steps := gui.SliderBar(
		rl.Rectangle{X: panel.X + 110, Y: panel.Y + 10, Width: 100, Height: 24},
		"1", "10",
		float32(g.stepsPerUpdate), 1, 10,
	)
	g.stepsPerUpdate = int(steps + 0.5)

	snap := g.snapshot()
	rl.DrawText(fmt.Sprintf("tick %d  speed x%d", g.tick, g.stepsPerUpdate),
		int32(panel.X+10), int32(panel.Y+44), 10, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("search %d  carry %d  panic %d  food %d",
		snap.Searching, snap.Carrying, snap.Panicking, snap.FoodRemaining),
		int32(panel.X+10), int32(panel.Y+60), 10, rl.RayWhite)
}

// Unload frees GPU resources. Safe to call in headless mode.
func (g *Game) Unload() {
	if g.render != nil {
		rl.UnloadTexture(g.render.fieldTex)
		g.render = nil
	}
}
