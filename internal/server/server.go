// Package server renders the portfolio galleries over HTTP with gin and HTMX.
package server

import (
	"context"
	"html/template"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/showcase/internal/gallery"
	"github.com/Zachkp/showcase/internal/services"
	"github.com/Zachkp/showcase/internal/store"
	"github.com/Zachkp/showcase/web"
)

// viewportHint is the client hint carrying the layout viewport width.
const viewportHint = "Sec-CH-Viewport-Width"

// Options configures a Server.
type Options struct {
	Showcase      *services.Showcase
	Store         *store.Store
	Rotation      gallery.Rotation
	AdminUsername string
	AdminPassword string
	Logger        *log.Logger
}

// Server owns the HTTP routes and the background work they start.
type Server struct {
	showcase *services.Showcase
	store    *store.Store
	rotation gallery.Rotation
	logger   *log.Logger
	admin    *adminAuth

	// bg tracks visitor writes started by requests.
	bg sync.WaitGroup
}

// New creates a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	rot := opts.Rotation
	if rot.Validate() != nil {
		rot = gallery.DefaultRotation()
	}
	return &Server{
		showcase: opts.Showcase,
		store:    opts.Store,
		rotation: rot,
		logger:   logger,
		admin:    newAdminAuth(opts.AdminUsername, opts.AdminPassword, logger),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))
	r.Use(s.visitorTracking())

	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "*.html")))
	r.StaticFS("/static", http.FS(web.Static))

	r.GET("/", s.index)

	r.GET("/projects", s.projectsFragment)
	r.GET("/projects/step", s.projectsStep)
	r.GET("/project/:id", s.projectDetail)

	r.GET("/skills", s.skillsFragment)
	r.GET("/skills/rotate", s.skillsRotate)

	api := r.Group("/api")
	api.GET("/projects", s.apiProjects)
	api.GET("/skills", s.apiSkills)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"Message": "There is nothing at this address."})
	})
	return r
}

// Wait blocks until background work started by requests has finished.
func (s *Server) Wait() {
	s.bg.Wait()
}

type indexView struct {
	Title            string
	ProjectsHeading  string
	SkillsHeading    string
	ProjectNarrowMax int
	SkillNarrowMax   int
	Projects         projectsView
	Skills           skillsView
}

// index renders the full page. Both collections load concurrently and a
// failure in one does not hide the other.
func (s *Server) index(c *gin.Context) {
	v := viewport(c)
	c.Header("Accept-CH", viewportHint)
	c.Header("Vary", viewportHint)

	view := indexView{
		Title:            SiteTitle,
		ProjectsHeading:  ProjectsHeading,
		SkillsHeading:    SkillsHeading,
		ProjectNarrowMax: gallery.ProjectNarrowMaxWidth,
		SkillNarrowMax:   gallery.SkillNarrowMaxWidth,
	}

	var g errgroup.Group
	g.Go(func() error {
		view.Projects = s.loadProjects(c.Request.Context(), v, 0)
		return nil
	})
	g.Go(func() error {
		view.Skills = s.loadSkills(c.Request.Context(), v, 0, false)
		return nil
	})
	_ = g.Wait()

	c.HTML(http.StatusOK, "index.html", view)
}

// viewport reads the browser width from the "w" query parameter, falling back
// to the viewport client hint.
func viewport(c *gin.Context) gallery.Viewport {
	return gallery.ParseViewport(c.Query("w"), c.GetHeader(viewportHint))
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) loadProjects(ctx context.Context, v gallery.Viewport, cursor int) projectsView {
	res, err := s.showcase.Projects(ctx)
	if err != nil {
		return projectsErrorView(v)
	}
	return newProjectsView(res, v, gallery.NewCursor(len(res.Items), cursor))
}

// loadSkills renders the skill gallery. With advance set the active bucket
// moves one step past the requested one.
func (s *Server) loadSkills(ctx context.Context, v gallery.Viewport, active int, advance bool) skillsView {
	res, err := s.showcase.Skills(ctx)
	if err != nil {
		return skillsErrorView(v)
	}
	if advance {
		active = res.Buckets.Advance(active)
	}
	return newSkillsView(res, v, s.rotation, active)
}
