package demo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"rasterkit/game"
)

// DefaultScript walks the hero around, toggles its size and flip, peeks at
// the point-sampled backdrop and returns to the title.
const DefaultScript = "2:enter+ 3:enter- " +
	"10:d+ 70:d- 71:s+ 100:s- 101:a+ 160:a- 161:w+ 190:w- " +
	"195:b+ 196:b- 200:d+ 260:d- 261:f+ 262:f- 263:w+ 300:w- 301:f+ 302:f- 303:b+ 304:b- " +
	"310:space+ 320:space- 330:escape+ 331:escape- 340:click@320,232"

type scriptEvent struct {
	frame int
	key   game.Key
	down  bool
	click bool
	x, y  float32
}

// Script is an InputSource replaying key and mouse events at fixed frames.
type Script struct {
	events []scriptEvent
	next   int
	// Length ends the script after that many frames; 0 runs forever.
	Length  int
	release bool
}

var _ game.InputSource = (*Script)(nil)

// ParseScript reads whitespace separated events of the form
// FRAME:KEY+ (press), FRAME:KEY- (release) or FRAME:click@X,Y (left click
// held for one frame).
func ParseScript(s string, length int) (*Script, error) {
	sc := &Script{Length: length}
	for _, tok := range strings.Fields(s) {
		ev, err := parseEvent(tok)
		if err != nil {
			return nil, err
		}
		sc.events = append(sc.events, ev)
	}
	slices.SortStableFunc(sc.events, func(a, b scriptEvent) int {
		return a.frame - b.frame
	})
	return sc, nil
}

func parseEvent(tok string) (scriptEvent, error) {
	frameStr, action, ok := strings.Cut(tok, ":")
	if !ok {
		return scriptEvent{}, fmt.Errorf("invalid script event %q: missing frame", tok)
	}
	frame, err := strconv.Atoi(frameStr)
	if err != nil || frame < 0 {
		return scriptEvent{}, fmt.Errorf("invalid script event %q: bad frame", tok)
	}
	ev := scriptEvent{frame: frame}

	if pos, ok := strings.CutPrefix(action, "click@"); ok {
		xs, ys, ok := strings.Cut(pos, ",")
		if !ok {
			return scriptEvent{}, fmt.Errorf("invalid script event %q: click needs X,Y", tok)
		}
		x, errX := strconv.ParseFloat(xs, 32)
		y, errY := strconv.ParseFloat(ys, 32)
		if errX != nil || errY != nil {
			return scriptEvent{}, fmt.Errorf("invalid script event %q: bad click position", tok)
		}
		ev.click, ev.x, ev.y = true, float32(x), float32(y)
		return ev, nil
	}

	if len(action) < 2 {
		return scriptEvent{}, fmt.Errorf("invalid script event %q", tok)
	}
	name, edge := action[:len(action)-1], action[len(action)-1]
	switch edge {
	case '+':
		ev.down = true
	case '-':
	default:
		return scriptEvent{}, fmt.Errorf("invalid script event %q: expected + or - suffix", tok)
	}
	if ev.key, ok = game.KeyByName(strings.ToLower(name)); !ok {
		return scriptEvent{}, fmt.Errorf("invalid script event %q: unknown key %q", tok, name)
	}
	return ev, nil
}

func (s *Script) Poll(frame int, in *game.Input) bool {
	if s.Length > 0 && frame >= s.Length {
		return false
	}

	if s.release {
		in.LMB = false
		s.release = false
	}
	for s.next < len(s.events) && s.events[s.next].frame <= frame {
		ev := s.events[s.next]
		s.next++
		if ev.click {
			in.MouseX, in.MouseY, in.LMB = ev.x, ev.y, true
			s.release = true
			continue
		}
		in.SetKey(ev.key, ev.down)
	}
	return true
}
