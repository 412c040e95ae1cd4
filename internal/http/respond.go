package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fintrack/internal/log"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Warn("Failed writing response",
			log.FieldError, err, log.FieldPath, r.URL.Path)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// decodeJSON reads a bounded JSON body into dst and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

// bind decodes and validates a request DTO, answering the client itself on failure.
func bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	if err := validateStruct(dst); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}
