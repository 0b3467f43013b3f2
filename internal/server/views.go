package server

import (
	"net/url"
	"time"

	"github.com/Zachkp/showcase/internal/gallery"
	"github.com/Zachkp/showcase/internal/models"
	"github.com/Zachkp/showcase/internal/services"
)

type projectsView struct {
	Narrow    bool
	Projects  []models.Project
	Focused   *models.Project
	Cursor    int
	Width     string
	Stale     bool
	FetchedAt time.Time
	EmptyText string
	Error     string
	RetryPath string
}

// newProjectsView lays out the project gallery. A narrow viewport focuses the
// item under the cursor; a wide one lists every project.
func newProjectsView(res services.Result[models.Project], v gallery.Viewport, cur gallery.Cursor) projectsView {
	view := projectsView{
		Narrow:    v.NarrowProjects(),
		Projects:  res.Items,
		Cursor:    cur.Index(),
		Width:     v.Query(),
		Stale:     res.Stale,
		FetchedAt: res.FetchedAt,
		EmptyText: ProjectsEmpty,
	}
	if view.Narrow && !cur.Empty() {
		view.Focused = &res.Items[cur.Index()]
	}
	return view
}

func projectsErrorView(v gallery.Viewport) projectsView {
	return projectsView{
		Narrow:    v.NarrowProjects(),
		Width:     v.Query(),
		Error:     ProjectsUnavailable,
		RetryPath: withWidth("/projects", v),
	}
}

type bucketView struct {
	gallery.Bucket
	Active bool
}

type skillsView struct {
	Narrow     bool
	Buckets    []bucketView
	Active     int
	Polling    bool
	IntervalMS int64
	Width      string
	Stale      bool
	FetchedAt  time.Time
	EmptyText  string
	Error      string
	RetryPath  string
}

// newSkillsView lays out the skill gallery around the requested active bucket.
// A narrow viewport shows only the active bucket; a wide one stacks every
// non-empty bucket and marks the active one.
func newSkillsView(res services.SkillsResult, v gallery.Viewport, rot gallery.Rotation, requested int) skillsView {
	active := res.Buckets.Active(requested)
	view := skillsView{
		Narrow:     v.NarrowSkills(),
		Active:     active,
		Polling:    active >= 0,
		IntervalMS: rot.Interval(v).Milliseconds(),
		Width:      v.Query(),
		Stale:      res.Stale,
		FetchedAt:  res.FetchedAt,
		EmptyText:  SkillsEmpty,
	}
	if active < 0 {
		return view
	}
	for i, b := range res.Buckets.Buckets {
		if b.Empty() {
			continue
		}
		if view.Narrow && i != active {
			continue
		}
		view.Buckets = append(view.Buckets, bucketView{Bucket: b, Active: i == active})
	}
	return view
}

func skillsErrorView(v gallery.Viewport) skillsView {
	return skillsView{
		Narrow:    v.NarrowSkills(),
		Active:    -1,
		Width:     v.Query(),
		Error:     SkillsUnavailable,
		RetryPath: withWidth("/skills", v),
	}
}

func withWidth(path string, v gallery.Viewport) string {
	if !v.Known {
		return path
	}
	return path + "?" + url.Values{"w": {v.Query()}}.Encode()
}
