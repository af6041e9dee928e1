package dictionary

import (
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Provider publishes the current dictionary snapshot. Single writer, many
// readers: Current is safe from any goroutine, reload swaps the pointer
// atomically so in-flight normalizations keep the snapshot they started
// with.
type Provider struct {
	dir     string
	current atomic.Pointer[Snapshot]
	watcher *fsnotify.Watcher
	done    chan struct{}
	log     *zap.Logger
}

// NewProvider loads the initial snapshot from dir (plus embedded defaults)
// and returns a provider. dir may be empty for defaults only.
func NewProvider(dir string, log *zap.Logger) (*Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	snap, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	p := &Provider{dir: dir, log: log}
	p.current.Store(snap)
	log.Info("dictionary loaded", zap.String("version", snap.Version()), zap.String("tables", snap.Stats()))
	return p, nil
}

// Current returns the live snapshot. Never nil.
func (p *Provider) Current() *Snapshot {
	return p.current.Load()
}

// Reload rebuilds the snapshot from disk and publishes it.
func (p *Provider) Reload() error {
	snap, err := LoadDir(p.dir)
	if err != nil {
		return fmt.Errorf("dictionary reload failed: %w", err)
	}
	p.current.Store(snap)
	p.log.Info("dictionary reloaded", zap.String("version", snap.Version()), zap.String("tables", snap.Stats()))
	return nil
}

// Watch starts hot reload on the overlay directory. A failed reload keeps
// the previous snapshot live. Call Close to stop watching.
func (p *Provider) Watch() error {
	if p.dir == "" {
		return fmt.Errorf("no dictionary directory configured")
	}
	if p.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create dictionary watcher: %w", err)
	}
	if err := w.Add(p.dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", p.dir, err)
	}
	p.watcher = w
	p.done = make(chan struct{})

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := p.Reload(); err != nil {
					p.log.Warn("dictionary reload failed, keeping previous snapshot",
						zap.String("event", ev.String()), zap.Error(err))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.log.Warn("dictionary watcher error", zap.Error(err))
			case <-p.done:
				return
			}
		}
	}()
	p.log.Info("dictionary hot reload enabled", zap.String("dir", p.dir))
	return nil
}

// Close stops the watcher if one is running.
func (p *Provider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.done)
	err := p.watcher.Close()
	p.watcher = nil
	return err
}
