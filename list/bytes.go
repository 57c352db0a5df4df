package list

import (
	"errors"
	"fmt"
)

var ErrShortPayload = errors.New("list: payload shorter than element size")

// Bytes is a list of opaque byte payloads with a configured element size.
// Every append stores a private copy of the payload.
type Bytes struct {
	List[[]byte]
	elementSize int
}

func NewBytes(elementSize int) *Bytes {
	return &Bytes{elementSize: elementSize}
}

func (b *Bytes) ElementSize() int {
	return b.elementSize
}

// Append copies the first ElementSize bytes of data.
func (b *Bytes) Append(data []byte) error {
	return b.AppendSized(b.elementSize, data)
}

// AppendSized copies the first size bytes of data, overriding the element
// size for this element only.
func (b *Bytes) AppendSized(size int, data []byte) error {
	if size < 0 || len(data) < size {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrShortPayload, size, len(data))
	}

	payload := make([]byte, size)
	copy(payload, data)
	b.List.Append(payload)
	return nil
}

// Get returns the stored payload itself, not a copy.
func (b *Bytes) Get(index int) ([]byte, error) {
	p, err := b.List.Get(index)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// ForEach visits payloads head to tail.
func (b *Bytes) ForEach(fn func(data []byte, last bool)) {
	b.List.ForEach(func(v *[]byte, last bool) {
		fn(*v, last)
	})
}
