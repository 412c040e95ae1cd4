// Package services holds the data manager: the single owner of every persisted
// collection and the place derived queries are answered from.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/notify"
	"fintrack/internal/storage"
)

// Storage keys, one blob per collection.
const (
	KeyReminders            = "reminders"
	KeyExpenses             = "expenses"
	KeyBudgets              = "budgets"
	KeyInterestCalculations = "interest_calculations"
	KeyTotalAmount          = "total_amount"
)

// Collections lists every storage key in load order.
var Collections = []string{KeyReminders, KeyExpenses, KeyBudgets, KeyInterestCalculations, KeyTotalAmount}

// DataManager keeps an in-memory copy of every collection in sync with a BlobStore.
//
// Every mutation encodes the whole collection, writes it, and only then swaps the
// cache, so a failed write leaves the cache exactly as it was. Failures are logged
// and reported as "no change"; they are never returned to the caller. Writers hold
// the lock across encode, write and swap, so mutations are serialized.
type DataManager struct {
	mu sync.RWMutex
	// notifyMu is taken before mu and held by reminder writes until the notifier
	// call returns, so schedule and cancel reach the notifier in commit order.
	notifyMu sync.Mutex
	store    storage.BlobStore
	notifier notify.Notifier
	logger   *log.Logger
	now      func() time.Time
	newID    func() string

	reminders []core.Reminder
	expenses  []core.Expense
	budgets   []core.Budget
	interest  []core.InterestCalculation
	total     *core.TotalAmount

	subs subscribers
}

type Option func(*DataManager)

func WithLogger(logger *log.Logger) Option {
	return func(m *DataManager) { m.logger = logger.WithComponent(log.ComponentData) }
}

// WithClock replaces time.Now for overdue checks, timestamps and analyses.
func WithClock(now func() time.Time) Option {
	return func(m *DataManager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *DataManager) { m.newID = newID }
}

// NewDataManager wires the manager to its store and notifier. A nil notifier
// falls back to one that only logs. Call LoadAll before serving reads.
func NewDataManager(store storage.BlobStore, notifier notify.Notifier, opts ...Option) *DataManager {
	m := &DataManager{
		store:  store,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentData),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(m.logger)
	}
	m.notifier = notifier
	return m
}

// LoadAll replaces every cached collection with what the store holds. A missing
// or undecodable blob yields an empty collection; LoadAll itself never fails.
func (m *DataManager) LoadAll(ctx context.Context) {
	m.mu.Lock()
	m.reminders = loadCollection[[]core.Reminder](ctx, m, KeyReminders)
	m.expenses = loadCollection[[]core.Expense](ctx, m, KeyExpenses)
	m.budgets = loadCollection[[]core.Budget](ctx, m, KeyBudgets)
	m.interest = loadCollection[[]core.InterestCalculation](ctx, m, KeyInterestCalculations)
	m.total = loadCollection[*core.TotalAmount](ctx, m, KeyTotalAmount)
	counts := []any{
		KeyReminders, len(m.reminders),
		KeyExpenses, len(m.expenses),
		KeyBudgets, len(m.budgets),
		KeyInterestCalculations, len(m.interest),
		"has_total", m.total != nil,
	}
	unknown := 0
	for _, e := range m.expenses {
		if !e.Category.Valid() {
			unknown++
		}
	}
	m.mu.Unlock()

	if unknown > 0 {
		m.logger.WarnContext(ctx, "Expenses with unknown category are counted as other",
			log.FieldCollection, KeyExpenses, "count", unknown)
	}
	m.logger.InfoContext(ctx, "Data loaded", counts...)
	for _, key := range Collections {
		m.subs.publish(ChangeEvent{Collection: key, Op: OpLoaded})
	}
}

func loadCollection[T any](ctx context.Context, m *DataManager, key string) T {
	var value T
	data, err := m.store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		m.logger.DebugContext(ctx, "Collection not stored yet", log.FieldCollection, key)
		return value
	}
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to load collection, starting empty",
			log.NewFields().WithOperation(log.OpLoad).WithCollection(key).WithError(err).ToSlice()...)
		return value
	}
	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		m.logger.WarnContext(ctx, "Failed to decode collection, starting empty",
			log.NewFields().WithOperation(log.OpDecode).WithCollection(key).WithError(err).ToSlice()...)
		return zero
	}
	return value
}

// persist encodes value and writes it under key. The caller swaps its cache only
// when persist reports success. Must be called with m.mu held for writing.
func persist[T any](ctx context.Context, m *DataManager, key string, value T) bool {
	data, err := json.Marshal(value)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to encode collection",
			log.NewFields().WithOperation(log.OpEncode).WithCollection(key).WithError(err).ToSlice()...)
		return false
	}
	if err := m.store.Save(ctx, key, data); err != nil {
		m.logger.ErrorContext(ctx, "Failed to save collection",
			log.NewFields().WithOperation(log.OpSave).WithCollection(key).WithError(err).ToSlice()...)
		return false
	}
	m.logger.DebugContext(ctx, "Collection saved", log.FieldCollection, key, "size_bytes", len(data))
	return true
}

func (m *DataManager) changed(key string, op ChangeOp, id string) {
	m.subs.publish(ChangeEvent{Collection: key, Op: op, ID: id})
}

// Collection helpers. Each returns a fresh slice so the cached one is never
// modified before the write succeeds.

func withAppended[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func withReplaced[T any](items []T, item T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return items, false
	}
	out := slices.Clone(items)
	out[i] = item
	return out, true
}

func withRemoved[T any](items []T, match func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}

func cloneOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}
