// Package backend talks to the portfolio backend that owns the project and
// skill collections.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zachkp/showcase/internal/models"
)

const (
	DefaultBaseURL      = "https://portfolio-backend-dun-two.vercel.app/api/v1"
	DefaultProjectsPath = "/projrct/getall"
	DefaultSkillsPath   = "/skill/getall"

	tracerName = "github.com/Zachkp/showcase/internal/backend"

	// maxErrorBody bounds how much of a failed response is kept for the error.
	maxErrorBody = 512
)

// Source provides the two remote collections.
type Source interface {
	FetchProjects(ctx context.Context) ([]models.Project, error)
	FetchSkills(ctx context.Context) ([]models.Skill, error)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	ProjectsPath string
	SkillsPath   string
	// Cookie is sent verbatim with every request when set.
	Cookie  string
	Timeout time.Duration
	// HTTPClient overrides the default client. Its Jar is left untouched.
	HTTPClient *http.Client
	Tracer     trace.Tracer
}

// Client fetches collections over HTTP. Requests carry credentials: a cookie
// jar keeps whatever session the backend sets, plus the configured cookie.
type Client struct {
	baseURL      string
	projectsPath string
	skillsPath   string
	cookie       string
	timeout      time.Duration
	http         *http.Client
	tracer       trace.Tracer
}

// NewClient builds a Client, filling unset options with defaults.
func NewClient(opts Options) (*Client, error) {
	c := &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		projectsPath: opts.ProjectsPath,
		skillsPath:   opts.SkillsPath,
		cookie:       opts.Cookie,
		timeout:      opts.Timeout,
		http:         opts.HTTPClient,
		tracer:       opts.Tracer,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.projectsPath == "" {
		c.projectsPath = DefaultProjectsPath
	}
	if c.skillsPath == "" {
		c.skillsPath = DefaultSkillsPath
	}
	if c.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http = &http.Client{Jar: jar}
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c, nil
}

// FetchProjects returns the full project collection.
func (c *Client) FetchProjects(ctx context.Context) ([]models.Project, error) {
	var out models.ProjectList
	if err := c.getJSON(ctx, "projects", c.projectsPath, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// FetchSkills returns the full skill collection.
func (c *Client) FetchSkills(ctx context.Context) ([]models.Skill, error) {
	var out models.SkillList
	if err := c.getJSON(ctx, "skills", c.skillsPath, &out); err != nil {
		return nil, err
	}
	return out.Skills, nil
}

func (c *Client) getJSON(ctx context.Context, kind, path string, out any) (err error) {
	endpoint := c.baseURL + path

	ctx, span := c.tracer.Start(ctx, "backend.fetch "+kind, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("http.method", http.MethodGet),
		attribute.String("http.url", endpoint),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s from %s: %w", kind, endpoint, err)
	}
	return nil
}
