package demo

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"rasterkit/game"
	"rasterkit/parallel"
	"rasterkit/raster"
)

// Sequence is a Display writing every Every-th frame as a numbered PNG in
// Dir. Encoding runs on the worker pool, so frames are cloned first.
type Sequence struct {
	Dir    string
	Every  int
	worker parallel.WorkerFunc
	logger *slog.Logger

	written, failed atomic.Uint64
}

var _ game.Display = (*Sequence)(nil)

func NewSequence(dir string, every int, worker parallel.WorkerFunc, logger *slog.Logger) *Sequence {
	return &Sequence{Dir: dir, Every: max(every, 1), worker: worker, logger: logger}
}

func (s *Sequence) Present(frame int, r *raster.Raster) error {
	if frame%s.Every != 0 {
		return nil
	}

	snapshot, err := r.Clone()
	if err != nil {
		return fmt.Errorf("could not copy frame %d: %w", frame, err)
	}

	s.worker(func() {
		path := filepath.Join(s.Dir, fmt.Sprintf("frame%05d.png", frame))
		if err := raster.Save(path, snapshot); err != nil {
			s.failed.Add(1)
			s.logger.Error("could not save frame", "file", path, "error", err)
			return
		}
		s.written.Add(1)
		s.logger.Debug("frame saved", "file", path)
	})
	return nil
}

// Stats reports how many frames were saved and how many failed. It is only
// final once the pool has been waited on.
func (s *Sequence) Stats() (written, failed uint64) {
	return s.written.Load(), s.failed.Load()
}
