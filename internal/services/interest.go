package services

import (
	"context"

	"fintrack/internal/core"
)

func interestID(id string) func(core.InterestCalculation) bool {
	return func(c core.InterestCalculation) bool { return c.ID == id }
}

func (m *DataManager) AddInterestCalculation(ctx context.Context, c core.InterestCalculation) (core.InterestCalculation, bool) {
	if c.ID == "" {
		c.ID = m.newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.now()
	}

	m.mu.Lock()
	next := withAppended(m.interest, c)
	ok := persist(ctx, m, KeyInterestCalculations, next)
	if ok {
		m.interest = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyInterestCalculations, OpCreated, c.ID)
	}
	return c, ok
}

func (m *DataManager) UpdateInterestCalculation(ctx context.Context, c core.InterestCalculation) bool {
	m.mu.Lock()
	next, found := withReplaced(m.interest, c, interestID(c.ID))
	ok := found && persist(ctx, m, KeyInterestCalculations, next)
	if ok {
		m.interest = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyInterestCalculations, OpUpdated, c.ID)
	}
	return ok
}

func (m *DataManager) DeleteInterestCalculation(ctx context.Context, id string) bool {
	m.mu.Lock()
	next, found := withRemoved(m.interest, interestID(id))
	ok := found && persist(ctx, m, KeyInterestCalculations, next)
	if ok {
		m.interest = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyInterestCalculations, OpDeleted, id)
	}
	return ok
}

func (m *DataManager) InterestCalculations() []core.InterestCalculation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.interest)
}

func (m *DataManager) FindInterestCalculation(id string) (core.InterestCalculation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return find(m.interest, interestID(id))
}
