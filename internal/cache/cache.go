// Package cache shares fetched collections between server instances through
// Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Zachkp/showcase/internal/backend"
	"github.com/Zachkp/showcase/internal/models"
)

const (
	projectsKey = "showcase:projects"
	skillsKey   = "showcase:skills"
)

// Cache wraps a backend.Source with Redis-backed caching. A nil Redis client
// turns it into a pass-through.
type Cache struct {
	base  backend.Source
	redis *redis.Client
	ttl   time.Duration
}

// New creates a caching Source using the provided Redis client and TTL.
func New(base backend.Source, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("cache.New: base source is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) FetchProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if load(ctx, c.redis, projectsKey, &projects) {
		return projects, nil
	}

	projects, err := c.base.FetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, projectsKey, projects)
	return projects, nil
}

func (c *Cache) FetchSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if load(ctx, c.redis, skillsKey, &skills) {
		return skills, nil
	}

	skills, err := c.base.FetchSkills(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, skillsKey, skills)
	return skills, nil
}

// Evict drops both cached collections so the next read goes to the backend.
func (c *Cache) Evict(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, projectsKey, skillsKey).Err()
}

func load(ctx context.Context, rc *redis.Client, key string, out any) bool {
	if rc == nil {
		return false
	}
	data, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// On redis errors fall back to the backend without failing.
			_ = rc.Del(ctx, key).Err()
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		_ = rc.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *Cache) store(ctx context.Context, key string, v any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}
