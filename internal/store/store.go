package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/launchdash/launchdash/internal/launches"
)

// watchSettle coalesces the burst of events a non-atomic writer produces so
// a half-written file is not loaded.
const watchSettle = 100 * time.Millisecond

// Snapshot is a loaded table together with where and when it was read.
type Snapshot struct {
	Table    *launches.Table
	Path     string
	LoadedAt time.Time
}

// Store is a thread-safe holder of the current Snapshot.
type Store struct {
	path string
	load func(string) (*launches.Table, error) // injectable for tests
	now  func() time.Time

	// settle is how long Watch waits after the last change before reloading.
	settle time.Duration

	mu      sync.RWMutex
	current *Snapshot
	subs    []chan *Snapshot

	// OnReload, if set, is called after every reload attempt with its error.
	OnReload func(err error)
}

// Open loads the dataset at path and returns a Store serving it.
func Open(path string) (*Store, error) {
	s := &Store{path: path, load: launches.Load, now: time.Now, settle: watchSettle}
	t, err := s.load(path)
	if err != nil {
		return nil, err
	}
	s.current = &Snapshot{Table: t, Path: path, LoadedAt: s.now()}
	return s, nil
}

// New returns a Store serving t. Reload re-reads path.
func New(t *launches.Table, path string) *Store {
	s := &Store{path: path, load: launches.Load, now: time.Now, settle: watchSettle}
	s.current = &Snapshot{Table: t, Path: path, LoadedAt: s.now()}
	return s
}

// Current returns the snapshot being served.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Table is shorthand for Current().Table.
func (s *Store) Table() *launches.Table {
	return s.Current().Table
}

// Subscribe returns a channel that receives each new snapshot after a
// successful reload. The channel holds only the latest snapshot; a slow
// reader skips intermediate ones.
func (s *Store) Subscribe() <-chan *Snapshot {
	ch := make(chan *Snapshot, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Reload re-reads the dataset and swaps it in. On failure the previous
// snapshot stays current and the error is returned.
func (s *Store) Reload() error {
	t, err := s.load(s.path)
	if s.OnReload != nil {
		s.OnReload(err)
	}
	if err != nil {
		return err
	}

	snap := &Snapshot{Table: t, Path: s.path, LoadedAt: s.now()}
	s.mu.Lock()
	s.current = snap
	subs := append([]chan *Snapshot(nil), s.subs...)
	s.mu.Unlock()

	for _, ch := range subs {
		// Drop a stale pending snapshot so the newest one always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
	return nil
}

// Watch reloads the dataset whenever its file is written or replaced, until
// ctx is cancelled. The parent directory is watched so that editors and
// tools that replace the file by rename are picked up. A reload runs once
// the file has been quiet for the settle period; writers that replace the
// file atomically (write then rename) never expose a partial table.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	slog.Info("store: watching dataset for changes", "path", abs, "settle", s.settle)

	// pending fires settle after the most recent matching event.
	var pending *time.Timer
	var fire <-chan time.Time
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(s.settle)
			} else {
				pending.Reset(s.settle)
			}
			fire = pending.C

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				slog.Error("store: reload failed, keeping previous dataset",
					"path", abs, "err", err)
				continue
			}
			t := s.Table()
			slog.Info("store: dataset reloaded",
				"path", abs, "rows", t.Len(), "sites", len(t.Sites()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("store: watcher error", "err", err)
		}
	}
}
