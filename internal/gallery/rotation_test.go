package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/showcase/internal/models"
)

func TestAdvanceSkipsEmptyBuckets(t *testing.T) {
	// core (85), backend (55), others (10)
	b := Categorize([]models.Skill{
		{ID: "a", Proficiency: 85},
		{ID: "b", Proficiency: 55},
		{ID: "c", Proficiency: 10},
	}, nil)

	core := categoryIndex(CoreProgramming)
	backend := categoryIndex(Backend)
	others := categoryIndex(Others)

	assert.Equal(t, core, b.Active(0))
	assert.Equal(t, backend, b.Advance(core))
	assert.Equal(t, others, b.Advance(backend))
	assert.Equal(t, core, b.Advance(others), "wraps to the first non-empty bucket")
	assert.Equal(t, backend, b.Active(categoryIndex(IoT)), "empty request resolves forward")
	assert.Equal(t, others, b.Active(-1))
}

func TestActiveWithAllBucketsEmpty(t *testing.T) {
	b := Categorize(nil, nil)
	assert.Equal(t, -1, b.Active(0))
	assert.Equal(t, -1, b.Advance(3))

	assert.Equal(t, -1, Buckets{}.Active(0))
	assert.Equal(t, -1, Buckets{}.Advance(0))
}

func TestAdvanceVisitsEveryFullBucket(t *testing.T) {
	var skills []models.Skill
	for _, p := range []float64{85, 75, 65, 55, 45, 35, 5} {
		skills = append(skills, models.Skill{Proficiency: p})
	}
	b := Categorize(skills, nil)

	i := b.Active(0)
	for step := 1; step <= len(Categories); step++ {
		i = b.Advance(i)
		assert.Equal(t, step%len(Categories), i)
	}
}
