package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	var reminders []core.Reminder
	switch status := r.URL.Query().Get("status"); status {
	case "":
		reminders = s.dm.Reminders()
	case "pending":
		reminders = s.dm.PendingReminders()
	case "overdue":
		reminders = s.dm.OverdueReminders()
	case "completed":
		reminders = s.dm.CompletedReminders()
	default:
		writeError(w, r, http.StatusBadRequest, "status must be pending, overdue or completed")
		return
	}
	writeJSON(w, r, http.StatusOK, reminders)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if !bind(w, r, &req) {
		return
	}
	rem, err := req.toReminder()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, ok := s.dm.AddReminder(r.Context(), rem)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "failed to save reminder")
		return
	}
	s.dm.ScheduleReminderNotification(r.Context(), created)
	log.FromContext(r.Context()).Info("Reminder created",
		log.FieldReminderID, created.ID, log.FieldTriggerAt, created.DueDate)
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	existing, found := s.dm.FindReminder(r.PathValue("id"))
	if !found {
		writeError(w, r, http.StatusNotFound, "reminder not found")
		return
	}
	var req reminderRequest
	if !bind(w, r, &req) {
		return
	}
	rem, err := req.toReminder()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rem.ID = existing.ID
	rem.CreatedAt = existing.CreatedAt
	if !s.dm.UpdateReminder(r.Context(), rem) {
		writeError(w, r, http.StatusInternalServerError, "failed to update reminder")
		return
	}
	updated, _ := s.dm.FindReminder(rem.ID)
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.dm.FindReminder(id); !found {
		writeError(w, r, http.StatusNotFound, "reminder not found")
		return
	}
	if !s.dm.DeleteReminder(r.Context(), id) {
		writeError(w, r, http.StatusInternalServerError, "failed to delete reminder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleReminder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.dm.FindReminder(id); !found {
		writeError(w, r, http.StatusNotFound, "reminder not found")
		return
	}
	toggled, ok := s.dm.ToggleReminderCompletion(r.Context(), id)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "failed to update reminder")
		return
	}
	writeJSON(w, r, http.StatusOK, toggled)
}
