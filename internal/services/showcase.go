// Package services loads the remote collections for the galleries, keeping a
// local copy that answers while it is fresh and stands in when the backend is
// unreachable.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Zachkp/showcase/internal/backend"
	"github.com/Zachkp/showcase/internal/gallery"
	"github.com/Zachkp/showcase/internal/models"
	"github.com/Zachkp/showcase/internal/store"
)

// Collection kinds, used as snapshot keys and in logs.
const (
	KindProjects = "projects"
	KindSkills   = "skills"
)

// ErrNotFound is returned when a project id is not in the collection.
var ErrNotFound = errors.New("not found")

// Origin tells where a result came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginSnapshot Origin = "snapshot"
)

// Snapshots is the persistence the Showcase needs. *store.Store implements it.
type Snapshots interface {
	SaveSnapshot(ctx context.Context, snap store.Snapshot) error
	LoadSnapshot(ctx context.Context, kind string) (store.Snapshot, error)
	RecordFetch(ctx context.Context, rec store.FetchRecord) error
}

// Evicter drops shared cached copies of the collections.
type Evicter interface {
	Evict(ctx context.Context) error
}

// Result is a loaded collection.
type Result[T any] struct {
	Items     []T
	FetchedAt time.Time
	Origin    Origin
	// Stale is set when the backend failed and a saved copy was served;
	// Cause holds the failure.
	Stale bool
	Cause error
}

// SkillsResult is the skill collection together with its buckets.
type SkillsResult struct {
	Result[models.Skill]
	Buckets gallery.Buckets
}

// Options configures a Showcase.
type Options struct {
	Source    backend.Source
	Snapshots Snapshots
	// Evicter is optional; it is called by ForceRefresh.
	Evicter Evicter
	// Overrides is optional; it supplies the current skill category overrides.
	Overrides func() *gallery.Overrides
	// TTL is how long a saved copy answers without asking the backend.
	TTL    time.Duration
	Logger *log.Logger
	Now    func() time.Time
}

// Showcase serves the project and skill collections.
type Showcase struct {
	source    backend.Source
	snapshots Snapshots
	evicter   Evicter
	overrides func() *gallery.Overrides
	ttl       time.Duration
	logger    *log.Logger
	now       func() time.Time

	flight singleflight.Group
}

// New creates a Showcase.
func New(opts Options) *Showcase {
	if opts.Source == nil || opts.Snapshots == nil {
		panic("services.New: source and snapshots are required")
	}
	s := &Showcase{
		source:    opts.Source,
		snapshots: opts.Snapshots,
		evicter:   opts.Evicter,
		overrides: opts.Overrides,
		ttl:       opts.TTL,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if s.logger == nil {
		s.logger = log.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.overrides == nil {
		s.overrides = func() *gallery.Overrides { return nil }
	}
	return s
}

// Projects returns the project collection.
func (s *Showcase) Projects(ctx context.Context) (Result[models.Project], error) {
	return load(ctx, s, KindProjects, false, s.source.FetchProjects)
}

// Skills returns the skill collection partitioned into buckets.
func (s *Showcase) Skills(ctx context.Context) (SkillsResult, error) {
	res, err := load(ctx, s, KindSkills, false, s.source.FetchSkills)
	if err != nil {
		return SkillsResult{}, err
	}
	return s.categorize(res), nil
}

func (s *Showcase) categorize(res Result[models.Skill]) SkillsResult {
	buckets := gallery.Categorize(res.Items, s.overrides())
	if res.Origin == OriginRemote && buckets.Inferred > 0 {
		s.logger.WithFields(log.Fields{
			"skills":   len(res.Items),
			"inferred": buckets.Inferred,
		}).Warn("skills without a category were grouped by proficiency")
	}
	return SkillsResult{Result: res, Buckets: buckets}
}

// ProjectByID looks a project up by its identifier.
func (s *Showcase) ProjectByID(ctx context.Context, id string) (models.Project, error) {
	res, err := s.Projects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range res.Items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// Refresh fetches both collections from the backend concurrently, ignoring
// the freshness of the saved copies. The fetches are independent: a failure
// in one does not cancel the other, and every failure is returned.
func (s *Showcase) Refresh(ctx context.Context) error {
	var projectsErr, skillsErr error
	var g errgroup.Group
	g.Go(func() error {
		projectsErr = refresh(ctx, s, KindProjects, s.source.FetchProjects)
		return nil
	})
	g.Go(func() error {
		skillsErr = refresh(ctx, s, KindSkills, s.source.FetchSkills)
		return nil
	})
	_ = g.Wait()
	return errors.Join(projectsErr, skillsErr)
}

func refresh[T any](ctx context.Context, s *Showcase, kind string, fetch func(context.Context) ([]T, error)) error {
	res, err := load(ctx, s, kind, true, fetch)
	if err == nil && res.Stale {
		err = res.Cause
	}
	return err
}

// ForceRefresh drops shared cached copies before refreshing.
func (s *Showcase) ForceRefresh(ctx context.Context) error {
	if s.evicter != nil {
		if err := s.evicter.Evict(ctx); err != nil {
			s.logger.WithError(err).Warn("evict shared cache")
		}
	}
	return s.Refresh(ctx)
}

func load[T any](ctx context.Context, s *Showcase, kind string, force bool, fetch func(context.Context) ([]T, error)) (Result[T], error) {
	logger := s.logger.WithField("kind", kind)

	snap, snapErr := s.snapshots.LoadSnapshot(ctx, kind)
	if snapErr != nil && !errors.Is(snapErr, store.ErrNoSnapshot) {
		logger.WithError(snapErr).Warn("load snapshot")
	}
	haveSnap := snapErr == nil

	if haveSnap && !force && s.ttl > 0 && s.now().Sub(snap.FetchedAt) < s.ttl {
		items, err := decodeSnapshot[T](snap)
		if err == nil {
			return Result[T]{Items: items, FetchedAt: snap.FetchedAt, Origin: OriginSnapshot}, nil
		}
		logger.WithError(err).Warn("discarding unreadable snapshot")
		haveSnap = false
	}

	// Concurrent loads of one kind share a single backend fetch. The fetch
	// outlives any one caller's cancellation; the client bounds it with its
	// own timeout.
	v, fetchErr, _ := s.flight.Do(kind, func() (any, error) {
		return fetchAndSave(context.WithoutCancel(ctx), s, kind, fetch)
	})
	if fetchErr == nil {
		f := v.(fetched[T])
		return Result[T]{Items: f.items, FetchedAt: f.at, Origin: OriginRemote}, nil
	}

	if haveSnap {
		if stale, err := decodeSnapshot[T](snap); err == nil {
			return Result[T]{Items: stale, FetchedAt: snap.FetchedAt, Origin: OriginSnapshot, Stale: true, Cause: fetchErr}, nil
		}
	}
	return Result[T]{}, fmt.Errorf("load %s: %w", kind, fetchErr)
}

type fetched[T any] struct {
	items []T
	at    time.Time
}

// fetchAndSave reads a collection from the backend, logs the outcome and
// saves a good result as the new snapshot.
func fetchAndSave[T any](ctx context.Context, s *Showcase, kind string, fetch func(context.Context) ([]T, error)) (fetched[T], error) {
	logger := s.logger.WithField("kind", kind)

	start := s.now()
	items, fetchErr := fetch(ctx)
	rec := store.FetchRecord{Kind: kind, OK: fetchErr == nil, Duration: s.now().Sub(start), Timestamp: start}
	if fetchErr != nil {
		rec.Error = fetchErr.Error()
	}
	if err := s.snapshots.RecordFetch(ctx, rec); err != nil {
		logger.WithError(err).Warn("record fetch")
	}
	if fetchErr != nil {
		logger.WithError(fetchErr).Error("fetch collection")
		return fetched[T]{}, fetchErr
	}

	if items == nil {
		items = []T{}
	}
	fetchedAt := s.now()
	if payload, err := json.Marshal(items); err != nil {
		logger.WithError(err).Warn("encode snapshot")
	} else if err := s.snapshots.SaveSnapshot(ctx, store.Snapshot{Kind: kind, Payload: payload, Items: len(items), FetchedAt: fetchedAt}); err != nil {
		logger.WithError(err).Warn("save snapshot")
	}
	logger.WithFields(log.Fields{"items": len(items), "took": rec.Duration}).Debug("fetched collection")
	return fetched[T]{items: items, at: fetchedAt}, nil
}

func decodeSnapshot[T any](snap store.Snapshot) ([]T, error) {
	var items []T
	if err := json.Unmarshal(snap.Payload, &items); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", snap.Kind, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
