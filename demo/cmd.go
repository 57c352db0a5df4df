// Package demo is a small headless game built on the raster engine: a title
// screen and a tile world with an animated hero, rendered frame by frame
// and written out as a PNG sequence.
package demo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rasterkit/game"
	"rasterkit/parallel"
	"rasterkit/pixel"
	"rasterkit/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Dest      string        `help:"Destination folder for rendered frames" default:"frames"`
	Frames    int           `help:"Number of frames to run" default:"360"`
	Every     int           `help:"Save every Nth frame" default:"10"`
	Width     int           `help:"Raster width" default:"640" group:"raster"`
	Height    int           `help:"Raster height" default:"384" group:"raster"`
	FrameTime time.Duration `help:"Simulated time per frame" default:"16ms" group:"raster"`
	Seed      uint64        `help:"Seed for the tile map and mushroom placement" default:"1"`
	Script    string        `help:"Input script, FRAME:KEY+ FRAME:KEY- FRAME:click@X,Y" default:"${demo_script}"`
	Key       string        `help:"Colour key, pixels of this colour are transparent" default:"#ff00fe" group:"blit"`
	Marker    string        `help:"Marker colour, replaced by the tint when drawn" default:"#008000" group:"blit"`
	Boxes     bool          `help:"Outline hit boxes" default:"false"`

	Blit  raster.BlitConfig `kong:"-"`
	input *Script           `kong:"-"`
}

// Vars feeds the default script into the kong help text.
func Vars() kong.Vars {
	return kong.Vars{"demo_script": DefaultScript}
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.Dest, err = filepath.Abs(c.Dest); err != nil {
		return fmt.Errorf("invalid destination %q: %w", c.Dest, err)
	}

	switch {
	case c.Frames <= 0:
		return fmt.Errorf("invalid frame count: %d", c.Frames)
	case c.Every <= 0:
		return fmt.Errorf("invalid frame interval: %d", c.Every)
	case c.Width < TileSize || c.Height < TileSize:
		return fmt.Errorf("raster %dx%d smaller than one tile", c.Width, c.Height)
	case c.FrameTime <= 0:
		return fmt.Errorf("invalid frame time: %s", c.FrameTime)
	}

	if c.Blit.Key, err = pixel.ParseHex(c.Key); err != nil {
		return fmt.Errorf("invalid colour key: %w", err)
	}
	if c.Blit.Marker, err = pixel.ParseHex(c.Marker); err != nil {
		return fmt.Errorf("invalid marker: %w", err)
	}
	if c.Blit.Key == c.Blit.Marker {
		return fmt.Errorf("colour key and marker must differ")
	}

	if c.input, err = ParseScript(c.Script, c.Frames); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	logger := slog.Default().With("cmd", "demo")
	g := game.New(game.Config{
		Width:     c.Width,
		Height:    c.Height,
		FrameTime: c.FrameTime,
		MaxFrames: c.Frames,
	}, logger)

	world := NewWorld(Options{
		Width:  c.Width,
		Height: c.Height,
		Seed:   c.Seed,
		Blit:   c.Blit,
		Boxes:  c.Boxes,
	}, logger)
	g.AddState(NewTitle(c.Width, c.Height, 1))
	g.AddState(world)

	seq := NewSequence(c.Dest, c.Every, worker, logger)
	runErr := g.Run(context.Background(), c.input, seq, nil)
	wait(true)

	written, failed := seq.Stats()
	slog.Info("stats", "frames", g.Frame(), "written", written, "errors", failed, "hits", world.Hits())

	if runErr != nil {
		return runErr
	}
	if failed > 0 {
		return fmt.Errorf("error writing %d frames", failed)
	}
	return nil
}
