package demo

import (
	"fmt"

	"rasterkit/game"
	"rasterkit/pixel"
	"rasterkit/raster"
)

// Title waits for Enter or a click on its start button, then switches to
// the world state. Q ends the game. Coming back from the world it shows the last score.
type Title struct {
	// Next is the index of the state started from the title.
	Next int

	width, height int
	frame         *raster.Raster
	start         game.Button
	last          int
	clicked       bool
}

var _ game.State = (*Title)(nil)

func NewTitle(width, height, next int) *Title {
	return &Title{Next: next, width: width, height: height}
}

func (t *Title) Init(g *game.Game, args any) error {
	var err error
	if t.frame, err = raster.New(t.width, t.height); err != nil {
		return err
	}
	t.start = game.NewButton(t.width/2, t.height/2+40, 120, 32, pixel.Pack(40, 120, 40, 255))
	t.last = -1
	if hits, ok := args.(int); ok {
		t.last = hits
	}
	return nil
}

func (t *Title) Update(g *game.Game, _ float32, in *game.Input) {
	t.clicked = t.start.Pressed(in)
	if in.Pressed(game.KeyEnter) || t.clicked {
		g.RequestStateChange(t.Next, nil)
	}
	if in.Pressed(game.KeyQ) {
		g.Quit()
	}

	t.frame.Fill(pixel.RGB(20, 20, 40))
	raster.DrawRectangle(t.frame, 4, 4, t.width-8, t.height-8, pixel.RGB(200, 200, 220).Packed())
	t.start.Show(t.frame)

	title := "rasterkit demo"
	raster.DrawText(t.frame, t.width/2-textWidth(title)/2, t.height/2-40, title, pixel.White)
	if t.last >= 0 {
		score := fmt.Sprintf("last run: %d hits", t.last)
		raster.DrawText(t.frame, t.width/2-textWidth(score)/2, t.height/2-20, score, pixel.White)
	}
	label := "start"
	raster.DrawText(t.frame, t.width/2-textWidth(label)/2, t.height/2+40-raster.TextHeight/2, label, pixel.White)
}

func textWidth(s string) int {
	return 7 * len(s)
}

func (t *Title) Render(*game.Game) *raster.Raster {
	return t.frame
}

func (t *Title) Cleanup(*game.Game) {
	t.frame.Cleanup()
}
