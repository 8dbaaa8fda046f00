// Package session keeps one consult view per browser session, in memory.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/consult"
)

const minSweepInterval = time.Second

// Factory builds and initialises the view of a new session.
type Factory func(ctx context.Context) *consult.View

type Registry struct {
	logger  logger.Logger
	newView Factory
	maxIdle time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	view     *consult.View
	lastSeen time.Time
}

func New(logger logger.Logger, newView Factory, maxIdle time.Duration) *Registry {
	return &Registry{
		logger:   logger,
		newView:  newView,
		maxIdle:  maxIdle,
		now:      time.Now,
		sessions: map[string]*entry{},
	}
}

// Get returns the view of session id. Unknown or malformed ids get a fresh
// session; the returned id is the one to hand back to the client.
func (r *Registry) Get(ctx context.Context, id string) (string, *consult.View) {
	if _, err := uuid.Parse(id); err == nil {
		r.mu.Lock()
		if session, ok := r.sessions[id]; ok {
			session.lastSeen = r.now()
			r.mu.Unlock()
			return id, session.view
		}
		r.mu.Unlock()
	}

	view := r.newView(ctx)
	id = uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &entry{view: view, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Info("created consult session", "session_id", id)
	return id, view
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.maxIdle)
	dropped := 0
	for id, session := range r.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run sweeps idle sessions periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := max(r.maxIdle/2, minSweepInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if dropped := r.Sweep(); dropped > 0 {
				r.logger.Info("dropped idle consult sessions", "count", dropped)
			}
		case <-ctx.Done():
			r.logger.Info("session sweeper stopped", "reason", ctx.Err())
			return
		}
	}
}
