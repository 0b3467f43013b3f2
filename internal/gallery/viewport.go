package gallery

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Width thresholds, in CSS pixels, at or below which a gallery renders its
// narrow layout.
const (
	ProjectNarrowMaxWidth = 768
	SkillNarrowMaxWidth   = 640

	// MaxViewportWidth bounds the widths accepted from clients. Anything
	// larger is treated as unknown.
	MaxViewportWidth = 1 << 15
)

// Default rotation intervals for the skill gallery.
const (
	DefaultNarrowRotation = 5 * time.Second
	DefaultWideRotation   = 2 * time.Second
)

// Viewport is the browser width reported with a request.
type Viewport struct {
	Width int
	Known bool
}

// ParseViewport reads a width from the first candidate that holds a width
// between 1 and MaxViewportWidth, typically the "w" query parameter followed
// by the Sec-CH-Viewport-Width client hint. Client hints may carry a fraction.
func ParseViewport(candidates ...string) Viewport {
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || f < 1 || f > MaxViewportWidth {
			continue
		}
		return Viewport{Width: int(f), Known: true}
	}
	return Viewport{}
}

// NarrowProjects reports whether the project gallery shows a single card.
// An unknown width renders the wide grid.
func (v Viewport) NarrowProjects() bool {
	return v.Known && v.Width <= ProjectNarrowMaxWidth
}

// NarrowSkills reports whether the skill gallery shows one bucket at a time.
func (v Viewport) NarrowSkills() bool {
	return v.Known && v.Width <= SkillNarrowMaxWidth
}

// Query renders the width as a query parameter value, "" when unknown.
func (v Viewport) Query() string {
	if !v.Known {
		return ""
	}
	return strconv.Itoa(v.Width)
}
