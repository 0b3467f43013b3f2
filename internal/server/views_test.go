package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/gallery"
	"github.com/Zachkp/showcase/internal/models"
	"github.com/Zachkp/showcase/internal/services"
)

func TestNewProjectsView(t *testing.T) {
	res := services.Result[models.Project]{Items: sampleProjects()}

	narrow := newProjectsView(res, gallery.Viewport{Width: 400, Known: true}, gallery.NewCursor(3, 4))
	assert.True(t, narrow.Narrow)
	require.NotNil(t, narrow.Focused)
	assert.Equal(t, "p2", narrow.Focused.ID)
	assert.Equal(t, 1, narrow.Cursor)
	assert.Equal(t, "400", narrow.Width)

	wide := newProjectsView(res, gallery.Viewport{}, gallery.NewCursor(3, 0))
	assert.False(t, wide.Narrow)
	assert.Nil(t, wide.Focused)
	assert.Len(t, wide.Projects, 3)
}

func TestNewProjectsViewEmpty(t *testing.T) {
	view := newProjectsView(services.Result[models.Project]{Items: []models.Project{}},
		gallery.Viewport{Width: 400, Known: true}, gallery.NewCursor(0, 5))
	assert.Nil(t, view.Focused)
	assert.Equal(t, 0, view.Cursor)
	assert.Equal(t, ProjectsEmpty, view.EmptyText)
}

func skillsResult(skills []models.Skill) services.SkillsResult {
	return services.SkillsResult{
		Result:  services.Result[models.Skill]{Items: skills},
		Buckets: gallery.Categorize(skills, nil),
	}
}

func TestNewSkillsViewNarrowShowsActiveBucket(t *testing.T) {
	rot := gallery.Rotation{Narrow: 5 * time.Second, Wide: 2 * time.Second}
	view := newSkillsView(skillsResult(sampleSkills()), gallery.Viewport{Width: 320, Known: true}, rot, 2)

	assert.True(t, view.Narrow)
	assert.True(t, view.Polling)
	assert.Equal(t, int64(5000), view.IntervalMS)
	// Bucket 2 (frontend) is empty, so the database bucket is shown.
	assert.Equal(t, 4, view.Active)
	require.Len(t, view.Buckets, 1)
	assert.Equal(t, gallery.Database, view.Buckets[0].Key)
	assert.True(t, view.Buckets[0].Active)
}

func TestNewSkillsViewWideStacksNonEmpty(t *testing.T) {
	view := newSkillsView(skillsResult(sampleSkills()), gallery.Viewport{Width: 1024, Known: true}, gallery.DefaultRotation(), 1)

	assert.False(t, view.Narrow)
	assert.Equal(t, int64(2000), view.IntervalMS)
	require.Len(t, view.Buckets, 3)
	var keys []string
	for _, b := range view.Buckets {
		keys = append(keys, b.Key)
		assert.Equal(t, b.Key == gallery.IoT, b.Active)
	}
	assert.Equal(t, []string{gallery.CoreProgramming, gallery.IoT, gallery.Database}, keys)
}

func TestNewSkillsViewEmpty(t *testing.T) {
	view := newSkillsView(skillsResult(nil), gallery.Viewport{Width: 320, Known: true}, gallery.DefaultRotation(), 0)
	assert.Equal(t, -1, view.Active)
	assert.False(t, view.Polling)
	assert.Empty(t, view.Buckets)
}

func TestErrorViewsKeepWidth(t *testing.T) {
	v := gallery.Viewport{Width: 700, Known: true}
	assert.Equal(t, "/projects?w=700", projectsErrorView(v).RetryPath)
	assert.Equal(t, "/skills?w=700", skillsErrorView(v).RetryPath)
	assert.Equal(t, "/skills", skillsErrorView(gallery.Viewport{}).RetryPath)
}
