package http

import (
	"net/http"
)

func (s *Server) handleListInterest(w http.ResponseWriter, r *http.Request) {
	calcs := s.dm.InterestCalculations()
	out := make([]interestResult, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, newInterestResult(c))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCreateInterest(w http.ResponseWriter, r *http.Request) {
	var req interestRequest
	if !bind(w, r, &req) {
		return
	}
	c, err := req.toCalculation()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, ok := s.dm.AddInterestCalculation(r.Context(), c)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "failed to save calculation")
		return
	}
	writeJSON(w, r, http.StatusCreated, newInterestResult(created))
}

// handlePreviewInterest computes a calculation without storing it.
func (s *Server) handlePreviewInterest(w http.ResponseWriter, r *http.Request) {
	var req interestRequest
	if !bind(w, r, &req) {
		return
	}
	c, err := req.toCalculation()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, newInterestResult(c))
}

func (s *Server) handleDeleteInterest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.dm.FindInterestCalculation(id); !found {
		writeError(w, r, http.StatusNotFound, "calculation not found")
		return
	}
	if !s.dm.DeleteInterestCalculation(r.Context(), id) {
		writeError(w, r, http.StatusInternalServerError, "failed to delete calculation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
