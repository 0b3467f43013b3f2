package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorWrap(t *testing.T) {
	c := NewCursor(3, 2)
	assert.Equal(t, 0, c.Next().Index(), "advancing past the last index returns to 0")

	c = NewCursor(3, 0)
	assert.Equal(t, 2, c.Prev().Index(), "retreating before 0 returns to the last index")
}

func TestCursorIsModular(t *testing.T) {
	const n = 5
	c := NewCursor(n, 0)
	for i := 1; i <= 2*n+1; i++ {
		c = c.Next()
		assert.Equal(t, i%n, c.Index())
	}

	c = NewCursor(n, 0)
	for i := 1; i <= 2*n+1; i++ {
		c = c.Prev()
		assert.Equal(t, ((-i%n)+n)%n, c.Index())
	}
}

func TestNewCursorNormalizesIndex(t *testing.T) {
	tests := []struct {
		name   string
		length int
		index  int
		want   int
	}{
		{"in range", 4, 2, 2},
		{"past end", 4, 9, 1},
		{"negative", 4, -1, 3},
		{"far negative", 4, -6, 2},
		{"single item", 1, 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCursor(tt.length, tt.index).Index())
		})
	}
}

func TestEmptyCursor(t *testing.T) {
	c := NewCursor(0, 3)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Next().Index())
	assert.Equal(t, 0, c.Prev().Index())

	var zero Cursor
	assert.True(t, zero.Next().Empty())
}

func TestSingleItemCursorStaysPut(t *testing.T) {
	c := NewCursor(1, 0)
	assert.Equal(t, 0, c.Next().Index())
	assert.Equal(t, 0, c.Prev().Index())
}
