package config

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Watcher polls a config file's modification time and hot-swaps the
// live Config when it changes. Reload is validate-then-swap: a config
// that fails to parse or validate is logged and the previous Config is
// kept in place. No watcher library is wired in the dependency set, so
// this polls os.Stat rather than using OS-level file events.
type Watcher struct {
	path     string
	interval time.Duration
	current  atomic.Pointer[Config]
	lastMod  time.Time
	stop     chan struct{}
	done     chan struct{}
}

// NewWatcher starts watching path, polling every interval. initial is
// the already-loaded config served until the first successful reload.
func NewWatcher(path string, interval time.Duration, initial Config) *Watcher {
	w := &Watcher{
		path:     path,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	w.current.Store(&initial)
	if info, err := os.Stat(path); err == nil {
		w.lastMod = info.ModTime()
	}
	go w.run()
	return w
}

// Current returns the presently active Config.
func (w *Watcher) Current() Config {
	return *w.current.Load()
}

// Stop halts the polling goroutine.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Watcher) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.checkReload()
		}
	}
}

func (w *Watcher) checkReload() {
	info, err := os.Stat(w.path)
	if err != nil {
		log.Warn().Err(err).Str("path", w.path).Msg("config: stat failed, keeping previous config")
		return
	}
	if !info.ModTime().After(w.lastMod) {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		log.Error().Err(err).Str("path", w.path).Msg("config: reload failed, keeping previous config")
		w.lastMod = info.ModTime()
		return
	}

	w.current.Store(&cfg)
	w.lastMod = info.ModTime()
	log.Info().Str("path", w.path).Msg("config: reloaded")
}
