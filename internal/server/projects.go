package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/showcase/internal/gallery"
	"github.com/Zachkp/showcase/internal/services"
)

// projectsFragment handles GET /projects?w=&cursor=
func (s *Server) projectsFragment(c *gin.Context) {
	view := s.loadProjects(c.Request.Context(), viewport(c), queryInt(c, "cursor"))
	c.HTML(http.StatusOK, "projects", view)
}

// projectsStep handles GET /projects/step?dir=next|prev&cursor=&w=
func (s *Server) projectsStep(c *gin.Context) {
	v := viewport(c)
	res, err := s.showcase.Projects(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusOK, "projects", projectsErrorView(v))
		return
	}

	cur := gallery.NewCursor(len(res.Items), queryInt(c, "cursor"))
	switch c.Query("dir") {
	case "next":
		cur = cur.Next()
	case "prev":
		cur = cur.Prev()
	default:
		c.String(http.StatusBadRequest, "dir must be next or prev")
		return
	}
	c.HTML(http.StatusOK, "projects", newProjectsView(res, v, cur))
}

// projectDetail handles GET /project/:id
func (s *Server) projectDetail(c *gin.Context) {
	p, err := s.showcase.ProjectByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"Message": ProjectMissing})
		return
	}
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"error": ProjectsUnavailable})
		return
	}
	c.HTML(http.StatusOK, "project.html", gin.H{"Title": p.Title, "Project": p})
}

// apiProjects handles GET /api/projects
func (s *Server) apiProjects(c *gin.Context) {
	res, err := s.showcase.Projects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects":   res.Items,
		"fetched_at": res.FetchedAt,
		"stale":      res.Stale,
	})
}
