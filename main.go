package main

import (
	"log/slog"
	"os"

	"rasterkit/demo"
	"rasterkit/mangle"
	"rasterkit/palette"
	"rasterkit/parallel"
	"rasterkit/slice"

	"github.com/alecthomas/kong"
)

var cli struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Workers  int    `help:"Number of parallel workers, 0 uses every CPU" default:"0"`

	Mangle  mangle.CLICmd  `cmd:"" help:"Blur, resize, flip and repalette every image in a folder"`
	Slice   slice.CLICmd   `cmd:"" help:"Cut a sprite sheet into one image per frame"`
	Palette palette.CLICmd `cmd:"" help:"Extract a palette from images into PAL files"`
	Demo    demo.CLICmd    `cmd:"" help:"Run the scripted tile demo and write its frames"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("rasterkit"),
		kong.Description("Software raster toolkit"),
		kong.UsageOnError(),
		demo.Vars(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pool := parallel.Start(cli.Workers)
	defer pool.Cancel()

	kctx.FatalIfErrorf(kctx.Run(pool.Do, pool.Wait))
}
