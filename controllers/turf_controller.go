package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// TurfController handles HTTP requests for venues and slot bookings.
type TurfController struct {
	TurfService *services.TurfService
}

// NewTurfController creates a new TurfController instance.
func NewTurfController(turfService *services.TurfService) *TurfController {
	return &TurfController{TurfService: turfService}
}

// HandleCreateTurf lists a new venue.
func (tc *TurfController) HandleCreateTurf(w http.ResponseWriter, r *http.Request) {
	var request services.CreateTurfRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	turf, err := tc.TurfService.CreateTurf(r.Context(), request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, turf)
}

// HandleGetTurf returns one turf.
func (tc *TurfController) HandleGetTurf(w http.ResponseWriter, r *http.Request) {
	turf, err := tc.TurfService.GetTurf(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, turf)
}

// HandleUpdateTurf applies partial updates. Owner only.
func (tc *TurfController) HandleUpdateTurf(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	var request services.UpdateTurfRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	turf, err := tc.TurfService.UpdateTurf(r.Context(), mux.Vars(r)["id"], ownerID, request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, turf)
}

// HandleDeleteTurf removes a turf. Owner only.
func (tc *TurfController) HandleDeleteTurf(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if err := tc.TurfService.DeleteTurf(r.Context(), mux.Vars(r)["id"], ownerID); err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Turf deleted successfully"})
}

// HandleOwnerTurfs lists an owner's venues.
func (tc *TurfController) HandleOwnerTurfs(w http.ResponseWriter, r *http.Request) {
	turfs, err := tc.TurfService.OwnerTurfs(r.Context(), mux.Vars(r)["ownerId"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"turfs": turfs})
}

// HandleNearbyTurfs lists active turfs around a point, closest first.
func (tc *TurfController) HandleNearbyTurfs(w http.ResponseWriter, r *http.Request) {
	lat, lng, radius, sport, err := geoQuery(r)
	if err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	turfs, err := tc.TurfService.NearbyTurfs(r.Context(), lat, lng, radius, sport)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"turfs": turfs})
}

// HandleAvailability lists the free hourly slots for a date.
func (tc *TurfController) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "date is required")
		return
	}
	slots, err := tc.TurfService.Availability(r.Context(), mux.Vars(r)["id"], date)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"date": date, "available_slots": slots})
}

// HandleBookSlot reserves an hourly slot.
func (tc *TurfController) HandleBookSlot(w http.ResponseWriter, r *http.Request) {
	var request services.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	booking, err := tc.TurfService.BookSlot(r.Context(), mux.Vars(r)["id"], request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, booking)
}

// HandleCancelBooking cancels a slot booking.
func (tc *TurfController) HandleCancelBooking(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	vars := mux.Vars(r)
	if err := tc.TurfService.CancelBooking(r.Context(), vars["id"], vars["bookingId"], request.UserID); err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}
