package http

import (
	"net/http"

	"fintrack/internal/core"
)

type canCoverResponse struct {
	Amount             core.Money `json:"amount"`
	TotalAfterExpenses core.Money `json:"total_after_expenses"`
	CanCover           bool       `json:"can_cover"`
}

func (s *Server) handleGetTotal(w http.ResponseWriter, r *http.Request) {
	t, ok := s.dm.TotalAmount()
	if !ok {
		writeError(w, r, http.StatusNotFound, "total amount not set")
		return
	}
	writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleSetTotal(w http.ResponseWriter, r *http.Request) {
	var req totalRequest
	if !bind(w, r, &req) {
		return
	}
	candidate := core.TotalAmount{Amount: req.Amount, Description: req.Description}
	if err := candidate.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	t, ok := s.dm.SetTotalAmount(r.Context(), req.Amount, req.Description)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "failed to save total amount")
		return
	}
	writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleClearTotal(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.dm.TotalAmount(); !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !s.dm.ClearTotalAmount(r.Context()) {
		writeError(w, r, http.StatusInternalServerError, "failed to clear total amount")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.dm.Summary())
}

func (s *Server) handleCanCover(w http.ResponseWriter, r *http.Request) {
	amount, err := core.ParseMoney(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "amount must be a non-negative decimal")
		return
	}
	writeJSON(w, r, http.StatusOK, canCoverResponse{
		Amount:             amount,
		TotalAfterExpenses: s.dm.TotalAfterExpenses(),
		CanCover:           s.dm.CanCoverExpense(amount),
	})
}
