package http

import (
	"net/http"

	"fintrack/internal/log"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.dm.Budgets())
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !bind(w, r, &req) {
		return
	}
	b, err := req.toBudget()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, ok := s.dm.AddBudget(r.Context(), b)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "failed to save budget")
		return
	}
	s.invalidateAnalyses()
	log.FromContext(r.Context()).Info("Budget created",
		log.FieldBudgetID, created.ID, log.FieldAmount, created.Amount.String())
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	existing, found := s.dm.FindBudget(r.PathValue("id"))
	if !found {
		writeError(w, r, http.StatusNotFound, "budget not found")
		return
	}
	var req budgetRequest
	if !bind(w, r, &req) {
		return
	}
	b, err := req.toBudget()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	if !s.dm.UpdateBudget(r.Context(), b) {
		writeError(w, r, http.StatusInternalServerError, "failed to update budget")
		return
	}
	s.invalidateAnalyses()
	writeJSON(w, r, http.StatusOK, b)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.dm.FindBudget(id); !found {
		writeError(w, r, http.StatusNotFound, "budget not found")
		return
	}
	if !s.dm.DeleteBudget(r.Context(), id) {
		writeError(w, r, http.StatusInternalServerError, "failed to delete budget")
		return
	}
	s.invalidateAnalyses()
	w.WriteHeader(http.StatusNoContent)
}

// handleBudgetAnalysis serves a cached analysis when one is fresh. The cache is
// cleared on any expense or budget change.
func (s *Server) handleBudgetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if a, ok := s.analyses.Get(id); ok {
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, r, http.StatusOK, a)
		return
	}
	gen := s.analysisGeneration()
	b, found := s.dm.FindBudget(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "budget not found")
		return
	}
	a := s.dm.BudgetAnalysis(b)
	s.storeAnalysis(id, gen, a)
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, r, http.StatusOK, a)
}
