// Package gallery holds the presentation logic shared by the project and skill
// galleries: cursor cycling, skill bucketing, viewport classes and rotation.
package gallery

// Cursor is a zero-based position in a collection of fixed length.
// The zero value is a cursor over an empty collection.
type Cursor struct {
	index  int
	length int
}

// NewCursor returns a cursor over length items positioned at index.
// index is normalized modulo length, so -1 addresses the last item.
func NewCursor(length, index int) Cursor {
	if length <= 0 {
		return Cursor{}
	}
	return Cursor{index: wrap(index, length), length: length}
}

// Index is the focused position. It is 0 for an empty collection.
func (c Cursor) Index() int { return c.index }

// Len is the collection length.
func (c Cursor) Len() int { return c.length }

// Empty reports whether no item can be focused.
func (c Cursor) Empty() bool { return c.length == 0 }

// Next advances one item, wrapping from the last item to the first.
func (c Cursor) Next() Cursor {
	if c.length == 0 {
		return c
	}
	return Cursor{index: wrap(c.index+1, c.length), length: c.length}
}

// Prev retreats one item, wrapping from the first item to the last.
func (c Cursor) Prev() Cursor {
	if c.length == 0 {
		return c
	}
	return Cursor{index: wrap(c.index-1, c.length), length: c.length}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
