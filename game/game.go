// Package game runs a frame-stepped loop over a set of states. It is
// headless: input comes from an InputSource and finished frames go to a
// Display.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rasterkit/list"
	"rasterkit/raster"
)

var (
	ErrNoStates     = errors.New("game: no states registered")
	ErrUnknownState = errors.New("game: unknown state")
)

// State is one screen of the game. Exactly one state is active; Init and
// Cleanup bracket its activity.
type State interface {
	Init(g *Game, args any) error
	Update(g *Game, dt float32, in *Input)
	// Render returns the frame to present.
	Render(g *Game) *raster.Raster
	Cleanup(g *Game)
}

// InputSource fills in the snapshot for the next frame. It returns false
// once the source is exhausted, which ends the loop.
type InputSource interface {
	Poll(frame int, in *Input) bool
}

type Display interface {
	Present(frame int, r *raster.Raster) error
}

type DisplayFunc func(frame int, r *raster.Raster) error

func (f DisplayFunc) Present(frame int, r *raster.Raster) error {
	return f(frame, r)
}

type Config struct {
	Width, Height int
	// FrameTime is the delta handed to Update every frame.
	FrameTime time.Duration
	// MaxFrames stops the loop after that many frames; 0 means no limit.
	MaxFrames int
}

type Game struct {
	cfg    Config
	logger *slog.Logger
	states list.List[State]

	current  int
	next     int
	nextArgs any
	frame    int
	quit     bool
}

func New(cfg Config, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		cfg:     cfg,
		logger:  logger,
		current: -1,
		next:    -1,
	}
}

func (g *Game) Config() Config {
	return g.cfg
}

// Frame is the index of the frame being processed.
func (g *Game) Frame() int {
	return g.frame
}

// Current is the index of the active state, -1 before Run.
func (g *Game) Current() int {
	return g.current
}

// AddState registers s and returns its index.
func (g *Game) AddState(s State) int {
	g.states.Append(s)
	return g.states.Len() - 1
}

// RequestStateChange switches to state index after the current frame has
// been presented. A later request in the same frame replaces an earlier one.
func (g *Game) RequestStateChange(index int, args any) {
	g.next = index
	g.nextArgs = args
}

// Quit ends Run once the current frame has been presented. A pending state
// change is dropped.
func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) state(index int) (State, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, index)
	}
	s, err := g.states.Get(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, index)
	}
	return *s, nil
}

// Run activates state 0 with args and steps frames until the input source
// closes, MaxFrames is reached, a state calls Quit or ctx is done. The active state is cleaned
// up on return.
func (g *Game) Run(ctx context.Context, src InputSource, dsp Display, args any) error {
	if g.states.Len() == 0 {
		return ErrNoStates
	}

	cur, err := g.state(0)
	if err != nil {
		return err
	}
	g.current = 0
	if err := cur.Init(g, args); err != nil {
		return fmt.Errorf("could not init state 0: %w", err)
	}
	defer func() {
		if cur != nil {
			cur.Cleanup(g)
		}
	}()

	g.quit = false
	dt := float32(g.cfg.FrameTime.Seconds())
	var in Input
	for g.frame = 0; g.cfg.MaxFrames == 0 || g.frame < g.cfg.MaxFrames; g.frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		in.BeginFrame()
		in.RasterWidth, in.RasterHeight = g.cfg.Width, g.cfg.Height
		if !src.Poll(g.frame, &in) {
			g.logger.Debug("input closed", "frame", g.frame)
			return nil
		}

		cur.Update(g, dt, &in)
		if err := dsp.Present(g.frame, cur.Render(g)); err != nil {
			return fmt.Errorf("could not present frame %d: %w", g.frame, err)
		}
		if g.quit {
			g.logger.Info("quit", "state", g.current, "frame", g.frame)
			return nil
		}

		if g.next == g.current {
			g.logger.Debug("already in that state", "state", g.current)
			g.next = -1
		}
		if g.next < 0 {
			continue
		}

		next, args := g.next, g.nextArgs
		g.next, g.nextArgs = -1, nil
		s, err := g.state(next)
		if err != nil {
			return err
		}

		g.logger.Info("changing state", "from", g.current, "to", next, "frame", g.frame)
		cur.Cleanup(g)
		cur, g.current = s, next
		if err := cur.Init(g, args); err != nil {
			cur = nil
			return fmt.Errorf("could not init state %d: %w", next, err)
		}
	}
	return nil
}
