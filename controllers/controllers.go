package controllers

import (
	"errors"
	"net/http"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error with its mapped status.
func respondError(w http.ResponseWriter, err error) {
	helpers.WriteErrorResponse(w, statusForError(err), err.Error())
}

// Welcome is the root handler.
func Welcome(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"message": "SportMate API is running",
	})
}

// HealthController reports liveness and can trigger a maintenance sweep.
type HealthController struct {
	Reaper *services.Reaper
}

// NewHealthController creates a HealthController instance.
func NewHealthController(reaper *services.Reaper) *HealthController {
	return &HealthController{Reaper: reaper}
}

// HandleHealth reports service health.
func (hc *HealthController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSweep runs one maintenance pass on demand and reports its counts.
func (hc *HealthController) HandleSweep(w http.ResponseWriter, r *http.Request) {
	result, err := hc.Reaper.RunOnce(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, result)
}
