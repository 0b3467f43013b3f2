package gallery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Overrides assigns skills to categories by title. A nil *Overrides is valid
// and assigns nothing.
type Overrides struct {
	byTitle map[string]string
}

type overridesFile struct {
	Categories map[string][]string `yaml:"categories"`
}

// ParseOverrides decodes a YAML document of the form
//
//	categories:
//	  coreProgramming: [Go, C++]
//	  frontend: [React]
func ParseOverrides(data []byte) (*Overrides, error) {
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse skill categories: %w", err)
	}

	o := &Overrides{byTitle: make(map[string]string)}
	for key, titles := range f.Categories {
		if !IsCategory(key) {
			return nil, fmt.Errorf("unknown skill category %q", key)
		}
		for _, title := range titles {
			norm := normalizeTitle(title)
			if norm == "" {
				continue
			}
			if prev, ok := o.byTitle[norm]; ok && prev != key {
				return nil, fmt.Errorf("skill %q listed under both %q and %q", title, prev, key)
			}
			o.byTitle[norm] = key
		}
	}
	return o, nil
}

// LoadOverrides reads and parses an overrides file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill categories: %w", err)
	}
	return ParseOverrides(data)
}

// Lookup returns the category configured for a skill title, or "".
func (o *Overrides) Lookup(title string) string {
	if o == nil {
		return ""
	}
	return o.byTitle[normalizeTitle(title)]
}

// Len is the number of titles with a configured category.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.byTitle)
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OverridesWatcher keeps an Overrides value in sync with a file on disk.
// A reload that fails to parse keeps the previous mapping.
type OverridesWatcher struct {
	path    string
	current atomic.Pointer[Overrides]
	watcher *fsnotify.Watcher
	logger  *log.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// WatchOverrides loads path and reloads it whenever it changes until ctx is
// cancelled or Close is called. The directory is watched rather than the file
// so that editors which replace the file on save are picked up.
func WatchOverrides(ctx context.Context, path string, logger *log.Logger) (*OverridesWatcher, error) {
	initial, err := LoadOverrides(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch skill categories: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch skill categories: %w", err)
	}

	w := &OverridesWatcher{
		path:    filepath.Clean(path),
		watcher: fw,
		logger:  logger,
		done:    make(chan struct{}),
	}
	w.current.Store(initial)
	go w.run(ctx)
	return w, nil
}

// Current returns the most recently loaded overrides. It is safe to call on a
// nil watcher.
func (w *OverridesWatcher) Current() *Overrides {
	if w == nil {
		return nil
	}
	return w.current.Load()
}

// Close stops watching and waits for the event loop to exit.
func (w *OverridesWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
	})
	<-w.done
	return err
}

func (w *OverridesWatcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.stopOnce.Do(func() { _ = w.watcher.Close() })
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("skill categories watcher error")
		}
	}
}

func (w *OverridesWatcher) reload() {
	next, err := LoadOverrides(w.path)
	if err != nil {
		w.logger.WithError(err).WithField("path", w.path).Warn("keeping previous skill categories")
		return
	}
	w.current.Store(next)
	w.logger.WithFields(log.Fields{"path": w.path, "titles": next.Len()}).Info("reloaded skill categories")
}
