package demo

import (
	"fmt"
	"math/rand/v2"

	"rasterkit/pixel"
	"rasterkit/raster"
	"rasterkit/sprite"
)

const (
	TileSize = 64

	// Tiles 0..2 are grass, 3..5 are trees the small hero cannot walk
	// through.
	numGrass = 3
	numTiles = 6

	heroCols, heroRows = 10, 4
	heroFrameW         = 60
	heroFrameH         = 64

	mushroomW, mushroomH = 60, 80

	explosionCols, explosionRows = 4, 2
	explosionFrameW              = 78
	explosionFrameH              = 111

	backdropW, backdropH = 40, 24
)

// Hero sheet rows by walking direction.
const (
	faceDown = iota
	faceLeft
	faceUp
	faceRight
)

type assets struct {
	tiles [numTiles]*raster.Raster

	hero        *sprite.Sheet
	heroBig     *sprite.Sheet
	heroFlipped *sprite.Sheet
	explosion   *sprite.Sheet
	mushroom    *raster.Raster

	// backdrop is the bilinear upsample of a blurred noise texture;
	// backdropPoint samples the same texture with PointSample.
	backdrop      *raster.Raster
	backdropPoint *raster.Raster
}

func newRaster(w, h int, fill pixel.Pixel) (*raster.Raster, error) {
	r, err := raster.New(w, h)
	if err != nil {
		return nil, err
	}
	r.Fill(fill)
	return r, nil
}

func loadAssets(rnd *rand.Rand, cfg raster.BlitConfig, width, height int) (*assets, error) {
	a := &assets{}
	var err error

	for i := range numTiles {
		if i < numGrass {
			a.tiles[i], err = grassTile(rnd, i)
		} else {
			a.tiles[i], err = treeTile(rnd, cfg, i-numGrass)
		}
		if err != nil {
			return nil, fmt.Errorf("could not build tile %d: %w", i, err)
		}
	}

	if a.hero, err = heroSheet(cfg); err != nil {
		return nil, fmt.Errorf("could not build hero: %w", err)
	}
	if a.heroBig, err = a.hero.Resize(2*a.hero.Raster.Width, 2*a.hero.Raster.Height); err != nil {
		return nil, fmt.Errorf("could not enlarge hero: %w", err)
	}
	if a.heroFlipped, err = a.heroBig.FlipVertical(); err != nil {
		return nil, fmt.Errorf("could not flip hero: %w", err)
	}
	if a.explosion, err = explosionSheet(cfg); err != nil {
		return nil, fmt.Errorf("could not build explosion: %w", err)
	}
	if a.mushroom, err = mushroom(cfg); err != nil {
		return nil, fmt.Errorf("could not build mushroom: %w", err)
	}
	if a.backdrop, a.backdropPoint, err = backdrops(rnd, width, height); err != nil {
		return nil, fmt.Errorf("could not build backdrop: %w", err)
	}
	return a, nil
}

func (a *assets) cleanup() {
	for _, t := range a.tiles {
		t.Cleanup()
	}
	for _, s := range []*sprite.Sheet{a.hero, a.heroBig, a.heroFlipped, a.explosion} {
		s.Raster.Cleanup()
	}
	a.mushroom.Cleanup()
	a.backdrop.Cleanup()
	a.backdropPoint.Cleanup()
}

func grassTile(rnd *rand.Rand, variant int) (*raster.Raster, error) {
	base := pixel.RGB(40, uint8(120+20*variant), 40)
	t, err := newRaster(TileSize, TileSize, base)
	if err != nil {
		return nil, err
	}
	blade := pixel.RGB(90, uint8(170+20*variant), 60).Packed()
	for range 12 + 6*variant {
		x, y := rnd.IntN(TileSize), rnd.IntN(TileSize)
		raster.DrawLine(t, x, y, x+rnd.IntN(3)-1, y-3-rnd.IntN(4), blade)
	}
	return t, nil
}

// treeTile is taller than a tile; the part above the ground cell is keyed
// out so the tile above shows through. Foliage uses the marker colour and is
// tinted when drawn.
func treeTile(rnd *rand.Rand, cfg raster.BlitConfig, variant int) (*raster.Raster, error) {
	height := TileSize + TileSize/2
	t, err := newRaster(TileSize, height, cfg.Key)
	if err != nil {
		return nil, err
	}
	t.FillRect(0, height-TileSize, TileSize, TileSize, pixel.RGB(40, 120, 40))
	t.FillRect(TileSize/2-4, height-30, 8, 24, pixel.RGB(100, 60, 20))

	radius := 18 + 4*variant
	cx, cy := TileSize/2, height-30-radius/2
	fillDisc(t, cx, cy, radius, cfg.Marker)
	raster.DrawCircle(t, cx, cy, radius, pixel.RGB(10, 60, 10).Packed())
	for range 5 {
		fillDisc(t, cx+rnd.IntN(radius)-radius/2, cy+rnd.IntN(radius)-radius/2, 3, pixel.RGB(180, 30, 30))
	}
	return t, nil
}

func fillDisc(r *raster.Raster, cx, cy, radius int, p pixel.Pixel) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius && r.In(cx+dx, cy+dy) {
				r.SetPixelAt(cx+dx, cy+dy, p)
			}
		}
	}
}

func heroSheet(cfg raster.BlitConfig) (*sprite.Sheet, error) {
	r, err := newRaster(heroCols*heroFrameW, heroRows*heroFrameH, cfg.Key)
	if err != nil {
		return nil, err
	}

	skin := pixel.RGB(240, 200, 160)
	shirts := [heroRows]pixel.Pixel{
		faceDown:  pixel.RGB(40, 80, 200),
		faceLeft:  pixel.RGB(200, 80, 40),
		faceUp:    pixel.RGB(40, 160, 160),
		faceRight: pixel.RGB(160, 40, 160),
	}
	legs := pixel.RGB(30, 30, 30).Packed()

	for row := range heroRows {
		for col := range heroCols {
			ox, oy := col*heroFrameW, row*heroFrameH
			swing := (col%5 - 2) * 3
			if col >= 5 {
				swing = -swing
			}

			fillDisc(r, ox+30, oy+14, 10, skin)
			r.FillRect(ox+18, oy+26, 24, 22, shirts[row])
			raster.DrawLine(r, ox+24, oy+48, ox+24+swing, oy+62, legs)
			raster.DrawLine(r, ox+36, oy+48, ox+36-swing, oy+62, legs)

			eye := pixel.RGB(0, 0, 0)
			switch row {
			case faceDown:
				r.SetPixelAt(ox+26, oy+14, eye)
				r.SetPixelAt(ox+34, oy+14, eye)
			case faceLeft:
				r.SetPixelAt(ox+23, oy+14, eye)
			case faceRight:
				r.SetPixelAt(ox+37, oy+14, eye)
			}
		}
	}
	return sprite.NewSheet(r, heroCols, heroRows)
}

func explosionSheet(cfg raster.BlitConfig) (*sprite.Sheet, error) {
	r, err := newRaster(explosionCols*explosionFrameW, explosionRows*explosionFrameH, cfg.Key)
	if err != nil {
		return nil, err
	}

	hot, cold := pixel.RGB(255, 240, 80), pixel.RGB(160, 20, 0)
	frames := explosionCols * explosionRows
	for i := range frames {
		ox := i % explosionCols * explosionFrameW
		oy := i / explosionCols * explosionFrameH
		cx, cy := ox+explosionFrameW/2, oy+explosionFrameH/2
		outer := 6 + i*4
		for radius := 1; radius <= outer; radius++ {
			c := pixel.Lerp(hot, cold, float32(radius)/float32(outer))
			raster.DrawCircle(r, cx, cy, radius, c.Packed())
		}
		raster.DrawRectangle(r, ox, oy, explosionFrameW-1, explosionFrameH-1, cfg.Key.Packed())
	}
	return sprite.NewSheet(r, explosionCols, explosionRows)
}

// mushroom paints its cap in the marker colour so every blit recolours it.
func mushroom(cfg raster.BlitConfig) (*raster.Raster, error) {
	r, err := newRaster(mushroomW, mushroomH, cfg.Key)
	if err != nil {
		return nil, err
	}
	r.FillRect(mushroomW/2-9, 36, 18, 40, pixel.RGB(240, 230, 210))
	for dy := -28; dy <= 0; dy++ {
		for dx := -28; dx <= 28; dx++ {
			if dx*dx+dy*dy <= 28*28 {
				r.SetPixelAt(mushroomW/2+dx, 38+dy, cfg.Marker)
			}
		}
	}
	for _, spot := range [][2]int{{-14, -10}, {6, -18}, {14, -6}} {
		fillDisc(r, mushroomW/2+spot[0], 38+spot[1], 4, pixel.White)
	}
	return r, nil
}

func backdrops(rnd *rand.Rand, width, height int) (*raster.Raster, *raster.Raster, error) {
	noise, err := raster.New(backdropW, backdropH)
	if err != nil {
		return nil, nil, err
	}
	for i := range noise.Pix {
		noise.Pix[i] = pixel.RGB(uint8(60+rnd.IntN(80)), uint8(90+rnd.IntN(60)), uint8(150+rnd.IntN(100)))
	}

	tmp, err := raster.New(backdropW, backdropH)
	if err != nil {
		return nil, nil, err
	}
	soft, err := raster.New(backdropW, backdropH)
	if err != nil {
		return nil, nil, err
	}
	raster.BoxBlur(soft, tmp, noise, 2)

	smooth, err := raster.New(width, height)
	if err != nil {
		return nil, nil, err
	}
	raster.BilinearUpsample(smooth, soft)

	blocky, err := raster.New(width, height)
	if err != nil {
		return nil, nil, err
	}
	for y := range height {
		v := float32(y) / float32(height)
		for x := range width {
			blocky.SetPixelAt(x, y, raster.PointSample(soft, float32(x)/float32(width), v))
		}
	}
	return smooth, blocky, nil
}
