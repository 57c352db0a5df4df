package demo

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"rasterkit/game"
	"rasterkit/pixel"
	"rasterkit/raster"
	"rasterkit/sprite"
)

const (
	smallSpeed = 450
	bigSpeed   = 150

	// Frames each animation step is held for.
	heroStepFrames      = 5
	explosionStepFrames = 5
)

type Options struct {
	Width, Height int
	Seed          uint64
	Blit          raster.BlitConfig
	// Boxes outlines the hit boxes of the hero and the mushroom.
	Boxes bool
}

// World is the playing state: a hero walking a tile map and collecting a
// mushroom that explodes when touched.
type World struct {
	opts   Options
	logger *slog.Logger
	rnd    *rand.Rand
	art    *assets

	frame *raster.Raster
	cols  int
	rows  int
	tiles [][]int

	heroX, heroY int
	direction    int
	animFrame    int
	heroHold     int
	big          bool
	flipped      bool

	mushX, mushY int
	tint         pixel.Pixel

	exploding    bool
	boomX, boomY int
	boomCol      int
	boomRow      int
	boomHold     int
	hits         int

	// showPoint presents the point-sampled backdrop instead of the frame.
	showPoint bool
}

var _ game.State = (*World)(nil)

func NewWorld(opts Options, logger *slog.Logger) *World {
	return &World{opts: opts, logger: logger}
}

func (w *World) Hits() int {
	return w.hits
}

func (w *World) Init(g *game.Game, args any) error {
	w.rnd = rand.New(rand.NewPCG(w.opts.Seed, w.opts.Seed^0x9e3779b97f4a7c15))

	var err error
	if w.art, err = loadAssets(w.rnd, w.opts.Blit, w.opts.Width, w.opts.Height); err != nil {
		return err
	}
	if w.frame, err = raster.New(w.opts.Width, w.opts.Height); err != nil {
		return err
	}

	w.cols, w.rows = w.opts.Width/TileSize, w.opts.Height/TileSize
	w.tiles = make([][]int, w.rows)
	for y := range w.rows {
		w.tiles[y] = make([]int, w.cols)
		for x := range w.cols {
			w.tiles[y][x] = w.randomTile()
		}
	}

	w.heroX, w.heroY = w.opts.Width/2, w.opts.Height/2
	w.direction, w.animFrame, w.heroHold = faceDown, 0, 0
	w.big, w.flipped = false, false
	w.mushX, w.mushY = 600%w.opts.Width, 600%w.opts.Height
	w.tint = pixel.RGB(200, 40, 40)
	w.exploding = false
	w.hits = 0
	w.logger.Debug("world ready", "cols", w.cols, "rows", w.rows, "seed", w.opts.Seed)
	return nil
}

func (w *World) randomTile() int {
	if w.rnd.Float32() > 0.7 {
		return numGrass + w.rnd.IntN(numTiles-numGrass)
	}
	return w.rnd.IntN(numGrass)
}

// blocked reports whether the tile under the pixel (px, py) stops the small
// hero. Everything outside the map is blocked.
func (w *World) blocked(px, py int) bool {
	if px < 0 || py < 0 {
		return true
	}
	tx, ty := px/TileSize, py/TileSize
	if tx >= w.cols || ty >= w.rows {
		return true
	}
	return w.tiles[ty][tx] >= numGrass
}

func (w *World) fell(px, py int) {
	if px < 0 || py < 0 {
		return
	}
	tx, ty := px/TileSize, py/TileSize
	if tx < w.cols && ty < w.rows && w.tiles[ty][tx] >= numGrass {
		w.tiles[ty][tx] = w.rnd.IntN(numGrass)
		w.logger.Debug("tree felled", "x", tx, "y", ty)
	}
}

func (w *World) heroSize() (int, int) {
	if w.big {
		return 2 * heroFrameW, 2 * heroFrameH
	}
	return heroFrameW, heroFrameH
}

func (w *World) sheet() *sprite.Sheet {
	switch {
	case !w.big:
		return w.art.hero
	case w.flipped:
		return w.art.heroFlipped
	default:
		return w.art.heroBig
	}
}

func (w *World) Update(g *game.Game, dt float32, in *game.Input) {
	if in.Pressed(game.KeyEscape) {
		g.RequestStateChange(0, w.hits)
	}

	w.collide()
	if w.big {
		if w.flipped {
			w.fell(w.heroX+heroFrameW, w.heroY)
		} else {
			w.fell(w.heroX+heroFrameW, w.heroY+2*heroFrameH)
		}
	}

	if in.Pressed(game.KeyF) {
		w.flipped = !w.flipped
	}
	if w.move(dt, in) {
		if w.heroHold == 0 {
			w.animFrame = (w.animFrame + 1) % heroCols
			w.heroHold = heroStepFrames
		} else {
			w.heroHold--
		}
	}

	if w.exploding {
		w.advanceExplosion()
	}
	if in.Pressed(game.KeyB) {
		w.big = !w.big
	}

	w.showPoint = in.Down(game.KeySpace)
	w.compose()
}

// collide checks the hero box against the mushroom box, which is centred on
// (mushX, mushY).
func (w *World) collide() {
	hw, hh := w.heroSize()
	if w.heroX+hw < w.mushX-mushroomW/2 || w.heroX > w.mushX+mushroomW/2 ||
		w.heroY+hh < w.mushY-mushroomH/2 || w.heroY > w.mushY+mushroomH/2 {
		return
	}

	w.hits++
	w.exploding = true
	w.boomX, w.boomY = w.mushX, w.mushY
	w.boomCol, w.boomRow, w.boomHold = 0, 0, 0
	w.mushX, w.mushY = w.rnd.IntN(w.opts.Width), w.rnd.IntN(w.opts.Height)
	w.logger.Info("mushroom hit", "hits", w.hits, "x", w.boomX, "y", w.boomY)
	if !w.big {
		w.flipped = false
	}
}

// move applies one of W, A, S, D and reports whether the hero walked. The
// small hero checks the tile ahead; the enlarged one walks anywhere, and
// upside down its sheet rows come in reverse order.
func (w *World) move(dt float32, in *game.Input) bool {
	speed := smallSpeed
	if w.big {
		speed = bigSpeed
	}
	step := func(pos, sign int) int {
		return int(float32(pos) + float32(sign)*float32(float32(speed)*dt))
	}

	type heading struct {
		key, alt game.Key
		dx, dy   int
		row      int
		flipRow  int
		passable func() bool
	}
	headings := []heading{
		{key: game.KeyW, alt: game.KeyUp, dy: -1, row: faceUp, flipRow: faceRight, passable: func() bool {
			return !w.blocked(w.heroX+heroFrameW/2, w.heroY+heroFrameH-TileSize)
		}},
		{key: game.KeyS, alt: game.KeyDown, dy: 1, row: faceDown, flipRow: faceLeft, passable: func() bool {
			return !w.blocked(w.heroX+heroFrameW/2, w.heroY+TileSize)
		}},
		{key: game.KeyA, alt: game.KeyLeft, dx: -1, row: faceLeft, flipRow: faceUp, passable: func() bool {
			return !w.blocked(w.heroX+heroFrameW-TileSize, w.heroY+heroFrameH/2)
		}},
		{key: game.KeyD, alt: game.KeyRight, dx: 1, row: faceRight, flipRow: faceDown, passable: func() bool {
			return !w.blocked(w.heroX+TileSize, w.heroY+heroFrameH/2)
		}},
	}

	for _, h := range headings {
		if !in.Down(h.key) && !in.Down(h.alt) {
			continue
		}
		if !w.big && !h.passable() {
			return true
		}
		w.heroX = step(w.heroX, h.dx)
		w.heroY = step(w.heroY, h.dy)
		w.direction = h.row
		if w.big && w.flipped {
			w.direction = h.flipRow
		}
		return true
	}
	return false
}

func (w *World) advanceExplosion() {
	if w.boomHold > 0 {
		w.boomHold--
		return
	}
	w.boomCol++
	if w.boomCol == explosionCols {
		w.boomCol = 0
		w.boomRow = 1
	}
	w.boomHold = explosionStepFrames
}

func (w *World) compose() {
	cfg := w.opts.Blit
	copy(w.frame.Pix, w.art.backdrop.Pix)

	for y := range w.rows {
		for x := range w.cols {
			t := w.art.tiles[w.tiles[y][x]]
			cfg.DrawRaster(w.frame, t, x*TileSize, y*TileSize-t.Height+TileSize, w.tint)
		}
	}

	if w.exploding {
		w.tint = pixel.RGB(uint8(w.rnd.IntN(256)), uint8(w.rnd.IntN(256)), uint8(w.rnd.IntN(256)))
	} else {
		cfg.DrawRaster(w.frame, w.art.mushroom, w.mushX-mushroomW/2, w.mushY-mushroomH/2, w.tint)
	}

	w.sheet().Draw(w.frame, cfg, w.animFrame, w.direction, w.heroX, w.heroY)

	if w.exploding {
		w.art.explosion.Draw(w.frame, cfg, w.boomCol, w.boomRow, w.boomX-explosionFrameW/2, w.boomY-explosionFrameH/2)
		if w.boomRow == 1 && w.boomCol == explosionCols-1 {
			w.exploding = false
		}
	}

	if w.opts.Boxes {
		hw, hh := w.heroSize()
		raster.DrawRectangle(w.frame, w.heroX, w.heroY, hw, hh, pixel.White.Packed())
		raster.DrawRectangle(w.frame, w.mushX-mushroomW/2, w.mushY-mushroomH/2, mushroomW, mushroomH, pixel.White.Packed())
	}

	label := fmt.Sprintf("hits: %d", w.hits)
	raster.DrawText(w.frame, 9, 9, label, pixel.Black)
	raster.DrawText(w.frame, 8, 8, label, pixel.White)
}

func (w *World) Render(*game.Game) *raster.Raster {
	if w.showPoint {
		return w.art.backdropPoint
	}
	return w.frame
}

func (w *World) Cleanup(*game.Game) {
	if w.art != nil {
		w.art.cleanup()
		w.art = nil
	}
	w.frame.Cleanup()
}
