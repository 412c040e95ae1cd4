// Package http exposes the data manager as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/analysis"
	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

const (
	defaultAnalysisTTL  = time.Minute
	analysisCacheSize   = 100
	cacheSweepInterval  = 10 * time.Minute
	upcomingHorizonDays = 30
)

// Options tunes a Server. Zero values select the defaults.
type Options struct {
	Logger           *log.Logger
	AnalysisCacheTTL time.Duration
}

// Server serves the JSON API over a DataManager.
type Server struct {
	http.Server

	dm       *services.DataManager
	logger   *log.Logger
	trace    *trace.Middleware
	analyses *cache.LRUCache[analysis.BudgetAnalysis]
	caches   *cache.Manager

	// analysesMu guards analysesGen, which bumps on every invalidation so a
	// computation that raced with a change is not cached.
	analysesMu  sync.Mutex
	analysesGen uint64

	unsubscribe  func()
	watcherDone  chan struct{}
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server. Budget
// analyses are cached and dropped whenever the data manager reports a change.
func NewServer(addr string, dm *services.DataManager, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	ttl := opts.AnalysisCacheTTL
	if ttl <= 0 {
		ttl = defaultAnalysisTTL
	}

	s := &Server{
		dm:          dm,
		logger:      logger,
		trace:       trace.NewMiddleware(logger),
		analyses:    cache.NewLRUCache[analysis.BudgetAnalysis](analysisCacheSize, ttl),
		caches:      cache.NewManager(logger),
		watcherDone: make(chan struct{}),
	}
	s.caches.Register(s.analyses)
	s.caches.Start(cacheSweepInterval)

	events, unsubscribe := dm.Subscribe()
	s.unsubscribe = unsubscribe
	go s.watchChanges(events)

	mux := http.NewServeMux()
	s.routes(mux)
	s.Server = http.Server{
		Addr:              addr,
		Handler:           log.Middleware(logger)(s.trace.Wrap(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/recent", s.handleRecentExpenses)
	mux.HandleFunc("GET /api/expenses/by-category", s.handleExpensesByCategory)
	mux.HandleFunc("GET /api/expenses/top", s.handleTopCategories)
	mux.HandleFunc("GET /api/expenses/upcoming", s.handleUpcomingExpenses)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/{id}/analysis", s.handleBudgetAnalysis)

	mux.HandleFunc("GET /api/reminders", s.handleListReminders)
	mux.HandleFunc("POST /api/reminders", s.handleCreateReminder)
	mux.HandleFunc("PUT /api/reminders/{id}", s.handleUpdateReminder)
	mux.HandleFunc("DELETE /api/reminders/{id}", s.handleDeleteReminder)
	mux.HandleFunc("POST /api/reminders/{id}/toggle", s.handleToggleReminder)

	mux.HandleFunc("GET /api/interest", s.handleListInterest)
	mux.HandleFunc("POST /api/interest", s.handleCreateInterest)
	mux.HandleFunc("POST /api/interest/preview", s.handlePreviewInterest)
	mux.HandleFunc("DELETE /api/interest/{id}", s.handleDeleteInterest)

	mux.HandleFunc("GET /api/total", s.handleGetTotal)
	mux.HandleFunc("PUT /api/total", s.handleSetTotal)
	mux.HandleFunc("DELETE /api/total", s.handleClearTotal)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/summary/can-cover", s.handleCanCover)
}

// watchChanges drops cached analyses on every data change until the
// subscription is closed.
func (s *Server) watchChanges(events <-chan services.ChangeEvent) {
	defer close(s.watcherDone)
	for ev := range events {
		if ev.Collection == services.KeyExpenses || ev.Collection == services.KeyBudgets {
			s.invalidateAnalyses()
			s.logger.Debug("Analysis cache invalidated",
				log.FieldCollection, ev.Collection, log.FieldOperation, string(ev.Op))
		}
	}
}

// Shutdown stops background work and then the HTTP server. Safe to call twice.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.unsubscribe()
		<-s.watcherDone
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) invalidateAnalyses() {
	s.analysesMu.Lock()
	s.analysesGen++
	s.analyses.Clear()
	s.analysesMu.Unlock()
}

func (s *Server) analysisGeneration() uint64 {
	s.analysesMu.Lock()
	defer s.analysesMu.Unlock()
	return s.analysesGen
}

// storeAnalysis caches a unless the data changed since gen was read.
func (s *Server) storeAnalysis(id string, gen uint64, a analysis.BudgetAnalysis) bool {
	s.analysesMu.Lock()
	defer s.analysesMu.Unlock()
	if gen != s.analysesGen {
		return false
	}
	s.analyses.Set(id, a)
	return true
}
