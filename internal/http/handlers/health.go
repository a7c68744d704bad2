package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	Jobs    bool   `json:"jobs"`
	Uploads bool   `json:"uploads"`
}

// Health reports liveness and which optional features are mounted.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, healthResponse{Status: "ok", Jobs: a.Jobs != nil, Uploads: a.Uploads != nil})
}
