package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewportBoundaries(t *testing.T) {
	tests := []struct {
		width          int
		narrowProjects bool
		narrowSkills   bool
	}{
		{320, true, true},
		{640, true, true},
		{641, true, false},
		{768, true, false},
		{769, false, false},
		{1440, false, false},
	}
	for _, tt := range tests {
		v := Viewport{Width: tt.width, Known: true}
		assert.Equal(t, tt.narrowProjects, v.NarrowProjects(), "projects at %d", tt.width)
		assert.Equal(t, tt.narrowSkills, v.NarrowSkills(), "skills at %d", tt.width)
	}
}

func TestUnknownViewportIsWide(t *testing.T) {
	var v Viewport
	assert.False(t, v.NarrowProjects())
	assert.False(t, v.NarrowSkills())
	assert.Equal(t, "", v.Query())
}

func TestParseViewport(t *testing.T) {
	assert.Equal(t, Viewport{Width: 640, Known: true}, ParseViewport("640", "1200"))
	assert.Equal(t, Viewport{Width: 1200, Known: true}, ParseViewport("", "1200"))
	assert.Equal(t, Viewport{Width: 412, Known: true}, ParseViewport("abc", "412.5"))
	assert.Equal(t, Viewport{}, ParseViewport("0", "-3", " "))
	assert.Equal(t, "768", ParseViewport("768").Query())
}

func TestParseViewportRejectsOutOfRange(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "+Inf", "-Inf", "1e300", "0.5", "40000"} {
		v := ParseViewport(raw)
		assert.Equal(t, Viewport{}, v, "width %q", raw)
		assert.False(t, v.NarrowProjects(), "width %q", raw)
		assert.Equal(t, "", v.Query(), "width %q", raw)
	}
	assert.Equal(t, Viewport{Width: 390, Known: true}, ParseViewport("NaN", "390"))
	assert.Equal(t, Viewport{Width: MaxViewportWidth, Known: true}, ParseViewport("32768"))
}

func TestRotationIntervals(t *testing.T) {
	r := DefaultRotation()
	assert.NoError(t, r.Validate())

	narrow := Viewport{Width: 640, Known: true}
	wide := Viewport{Width: 641, Known: true}
	assert.Greater(t, r.Interval(narrow), r.Interval(wide))
	assert.Equal(t, 5*time.Second, r.Interval(narrow))
	assert.Equal(t, r.Wide, r.Interval(Viewport{}))
}

func TestRotationValidate(t *testing.T) {
	assert.Error(t, Rotation{Narrow: time.Second, Wide: time.Second}.Validate())
	assert.Error(t, Rotation{Narrow: time.Second, Wide: 2 * time.Second}.Validate())
	assert.Error(t, Rotation{Narrow: 0, Wide: 0}.Validate())
	assert.NoError(t, Rotation{Narrow: 3 * time.Second, Wide: time.Second}.Validate())
}
