package game

// Key identifies a keyboard key. Values follow the GLFW key codes.
type Key int

const (
	KeySpace  Key = 32
	KeyA      Key = 65
	KeyB      Key = 66
	KeyD      Key = 68
	KeyF      Key = 70
	KeyQ      Key = 81
	KeyS      Key = 83
	KeyW      Key = 87
	KeyEscape Key = 256
	KeyEnter  Key = 257
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265

	NumKeys = 400
)

var keyNames = map[string]Key{
	"space":  KeySpace,
	"a":      KeyA,
	"b":      KeyB,
	"d":      KeyD,
	"f":      KeyF,
	"q":      KeyQ,
	"s":      KeyS,
	"w":      KeyW,
	"escape": KeyEscape,
	"enter":  KeyEnter,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
}

// KeyByName looks up a key by its lower case name ("w", "space", "escape").
func KeyByName(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

func (k Key) valid() bool {
	return k >= 0 && k < NumKeys
}

// Input is the per-frame snapshot handed to State.Update.
type Input struct {
	RasterWidth, RasterHeight int

	MouseX, MouseY float32
	LMB, RMB, MMB  bool

	down    [NumKeys]bool
	pressed [NumKeys]bool
}

// BeginFrame clears the pressed edges of the previous frame. Held keys stay
// down.
func (in *Input) BeginFrame() {
	clear(in.pressed[:])
}

// SetKey records a key event. A key is pressed during the frame in which it
// goes from up to down; any other event clears the edge.
func (in *Input) SetKey(k Key, down bool) {
	if !k.valid() {
		return
	}
	in.pressed[k] = !in.down[k] && down
	in.down[k] = down
}

func (in *Input) Down(k Key) bool {
	return k.valid() && in.down[k]
}

func (in *Input) Pressed(k Key) bool {
	return k.valid() && in.pressed[k]
}
