package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"yatube/internal/repository"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError - универсальная функция для отправки ошибок
func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404", map[string]any{"path": r.URL.Path})
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Ошибка обработки %s %s: %v", r.Method, r.URL.Path, err)
	h.render(w, r, http.StatusInternalServerError, "500", nil)
}

// handleError answers not found errors with 404 and everything else with 500.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	h.serverError(w, r, err)
}
