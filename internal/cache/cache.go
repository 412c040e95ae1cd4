// Package cache holds small in-process caches for derived read models.
package cache

import (
	"sync"
	"time"

	"fintrack/internal/log"
)

// Cache is a keyed store of computed values.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Clear()
	Size() int
}

// Cleaner is implemented by caches whose entries can expire.
type Cleaner interface {
	CleanExpired() int
}

// Manager sweeps expired entries from every registered cache on an interval.
type Manager struct {
	logger   *log.Logger
	mu       sync.Mutex
	cleaners []Cleaner
	stop     chan struct{}
	done     chan struct{}
}

func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger.WithComponent(log.ComponentCache)}
}

func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleaners = append(m.cleaners, c)
}

// Sweep cleans every registered cache once and returns how many entries it dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	cleaners := append([]Cleaner(nil), m.cleaners...)
	m.mu.Unlock()

	total := 0
	for _, c := range cleaners {
		total += c.CleanExpired()
	}
	if total > 0 {
		m.logger.Debug("Expired cache entries removed", "count", total)
	}
	return total
}

// Start runs Sweep every interval until Stop is called.
func (m *Manager) Start(interval time.Duration) {
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *Manager) Stop() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	<-m.done
	m.stop = nil
}
