package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// skillsFragment handles GET /skills?w=&active=
func (s *Server) skillsFragment(c *gin.Context) {
	view := s.loadSkills(c.Request.Context(), viewport(c), queryInt(c, "active"), false)
	c.HTML(http.StatusOK, "skills", view)
}

// skillsRotate handles GET /skills/rotate?w=&active=, the gallery's timer tick.
func (s *Server) skillsRotate(c *gin.Context) {
	view := s.loadSkills(c.Request.Context(), viewport(c), queryInt(c, "active"), true)
	c.HTML(http.StatusOK, "skills", view)
}

// apiSkills handles GET /api/skills
func (s *Server) apiSkills(c *gin.Context) {
	res, err := s.showcase.Skills(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"skills":     res.Items,
		"buckets":    res.Buckets.Buckets,
		"inferred":   res.Buckets.Inferred,
		"fetched_at": res.FetchedAt,
		"stale":      res.Stale,
	})
}
