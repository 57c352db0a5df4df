// Package list implements a singly linked sequence with O(1) append, indexed
// access that counts negative indices from the end, and O(n) positional
// removal.
package list

import (
	"errors"
	"iter"
)

var ErrNotFound = errors.New("list: index out of range")

type node[T any] struct {
	next  *node[T]
	value T
}

// List owns its elements; the zero value is an empty list.
type List[T any] struct {
	head, tail *node[T]
	count      int
}

func New[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Len() int {
	return l.count
}

// Append adds v after the current tail.
func (l *List[T]) Append(v T) {
	n := &node[T]{value: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.count++
}

// resolve maps index in [-count, count) to [0, count).
func (l *List[T]) resolve(index int) (int, bool) {
	if index < 0 {
		index += l.count
	}
	return index, index >= 0 && index < l.count
}

// Get returns a pointer to the stored element; -1 is the last element.
func (l *List[T]) Get(index int) (*T, error) {
	i, ok := l.resolve(index)
	if !ok {
		return nil, ErrNotFound
	}

	n := l.head
	if i == l.count-1 {
		n = l.tail
	} else {
		for ; i > 0; i-- {
			n = n.next
		}
	}
	return &n.value, nil
}

// Remove unlinks the element at index, walking from the head.
func (l *List[T]) Remove(index int) error {
	i, ok := l.resolve(index)
	if !ok {
		return ErrNotFound
	}

	if i == 0 {
		l.head = l.head.next
		if l.head == nil {
			l.tail = nil
		}
		l.count--
		return nil
	}

	prev := l.head
	for ; i > 1; i-- {
		prev = prev.next
	}
	target := prev.next
	prev.next = target.next
	if target == l.tail {
		l.tail = prev
	}
	target.next = nil
	l.count--
	return nil
}

// Clear drops every element.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.next = nil
		n = next
	}
	l.head, l.tail, l.count = nil, nil, 0
}

// ForEach visits the elements head to tail; last is true for the final one.
func (l *List[T]) ForEach(fn func(v *T, last bool)) {
	for n := l.head; n != nil; n = n.next {
		fn(&n.value, n.next == nil)
	}
}

// All iterates index and element pointer pairs from the head.
func (l *List[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		i := 0
		for n := l.head; n != nil; n = n.next {
			if !yield(i, &n.value) {
				return
			}
			i++
		}
	}
}
