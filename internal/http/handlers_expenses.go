package http

import (
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/analysis"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// queryLimit reads a positive ?limit= value, falling back to def.
func queryLimit(r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.dm.Expenses())
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !bind(w, r, &req) {
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, ok := s.dm.AddExpense(r.Context(), e)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "failed to save expense")
		return
	}
	s.invalidateAnalyses()
	log.FromContext(r.Context()).Info("Expense created",
		log.FieldExpenseID, created.ID, log.FieldAmount, created.Amount.String(), log.FieldCategory, string(created.Category))
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, found := s.dm.FindExpense(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "expense not found")
		return
	}
	var req expenseRequest
	if !bind(w, r, &req) {
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	if !s.dm.UpdateExpense(r.Context(), e) {
		writeError(w, r, http.StatusInternalServerError, "failed to update expense")
		return
	}
	s.invalidateAnalyses()
	writeJSON(w, r, http.StatusOK, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.dm.FindExpense(id); !found {
		writeError(w, r, http.StatusNotFound, "expense not found")
		return
	}
	if !s.dm.DeleteExpense(r.Context(), id) {
		writeError(w, r, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	s.invalidateAnalyses()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecentExpenses(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, services.DefaultRecentExpenses)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	writeJSON(w, r, http.StatusOK, s.dm.RecentExpenses(limit))
}

func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, analysis.Ranked(s.dm.ExpensesByCategory()))
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, analysis.DefaultTopCategories)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	writeJSON(w, r, http.StatusOK, s.dm.TopExpenseCategories(limit))
}

func (s *Server) handleUpcomingExpenses(w http.ResponseWriter, r *http.Request) {
	days := upcomingHorizonDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	writeJSON(w, r, http.StatusOK, s.dm.UpcomingRecurringExpenses(time.Duration(days)*24*time.Hour))
}
