package handlers

import (
	"net/http"

	"imageprocessor/internal/domain"
)

// ProcessImage runs the pipeline synchronously. Pipeline failures are part of
// the response body; only an unreadable payload yields a non-200 status.
func (a *App) ProcessImage(w http.ResponseWriter, r *http.Request) {
	var req domain.ProcessingRequest
	if !a.decode(w, r, &req) {
		return
	}
	resp := a.Pipeline.Process(r.Context(), req)
	a.json(w, http.StatusOK, resp)
}
