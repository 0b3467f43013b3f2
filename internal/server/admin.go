package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// visitorRetention is how long page views are kept.
const visitorRetention = 12 * 30 * 24 * time.Hour

const adminCookie = "admin_token"

// adminAuth holds the per-process admin session token and the salt used to
// hash visitor addresses.
type adminAuth struct {
	username string
	password string
	token    string
	salt     string
}

func newAdminAuth(username, password string, logger *log.Logger) *adminAuth {
	a := &adminAuth{
		username: username,
		password: password,
		token:    generateToken(),
		salt:     generateToken(),
	}

	// Default credentials for development only
	if gin.Mode() == gin.DebugMode {
		if a.username == "" {
			a.username = "admin"
			logger.Warn("using default admin username; set ADMIN_USERNAME")
		}
		if a.password == "" {
			a.password = "admin123"
			logger.Warn("using default admin password; set ADMIN_PASSWORD")
		}
		logger.WithField("token", a.token).Debug("admin token (dev only)")
	}
	if a.enabled() {
		logger.Info("admin access available at /admin/login")
	}
	return a
}

func (a *adminAuth) enabled() bool {
	return a.username != "" && a.password != ""
}

func (a *adminAuth) check(username, password string) bool {
	if !a.enabled() {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("generate admin token: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// hashIP hashes an address with the process salt. The digest is stable for
// the life of the process and truncated for storage.
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// adminAuthMiddleware redirects requests without a valid session cookie.
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.admin.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PruneVisitors deletes page views older than the retention period.
func (s *Server) PruneVisitors(ctx context.Context) {
	if s.store == nil {
		return
	}
	removed, err := s.store.CleanupVisitors(ctx, time.Now().Add(-visitorRetention))
	if err != nil {
		s.logger.WithError(err).Warn("privacy cleanup")
		return
	}
	if removed > 0 {
		s.logger.WithField("removed", removed).Info("privacy cleanup removed old visitor records")
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": "12 months",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
			s.logger.WithField("visitor", s.admin.hashIP(c.ClientIP())).Warn("failed admin login")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
		s.logger.WithField("visitor", s.admin.hashIP(c.ClientIP())).Info("admin login")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		s.renderDashboard(c, http.StatusOK, "")
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			s.logger.WithError(err).Error("load visitors")
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.POST("/refresh", func(c *gin.Context) {
		if err := s.showcase.ForceRefresh(c.Request.Context()); err != nil {
			s.logger.WithError(err).Warn("admin refresh")
			s.renderDashboard(c, http.StatusBadGateway, "Refresh failed: "+err.Error())
			return
		}
		s.renderDashboard(c, http.StatusOK, "Collections refreshed.")
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.PruneVisitors(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}

func (s *Server) renderDashboard(c *gin.Context, status int, flash string) {
	stats, err := s.store.Stats(c.Request.Context(), time.Now())
	if err != nil {
		s.logger.WithError(err).Error("load admin stats")
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load statistics"})
		return
	}
	c.HTML(status, "admin-dashboard.html", gin.H{"stats": stats, "flash": flash})
}
