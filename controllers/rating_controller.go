package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// RatingController handles HTTP requests for player ratings.
type RatingController struct {
	RatingService *services.RatingService
}

// NewRatingController creates a new RatingController instance.
func NewRatingController(ratingService *services.RatingService) *RatingController {
	return &RatingController{RatingService: ratingService}
}

// HandleRatePlayer records a rating and returns the refreshed aggregate.
func (rc *RatingController) HandleRatePlayer(w http.ResponseWriter, r *http.Request) {
	var request services.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	rating, summary, err := rc.RatingService.RatePlayer(r.Context(), request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"rating":  rating,
		"summary": summary,
	})
}

// HandleUserRatings lists the ratings a user has received.
func (rc *RatingController) HandleUserRatings(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	ratings, err := rc.RatingService.RatingsFor(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	summary, err := rc.RatingService.Summary(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"ratings": ratings,
		"summary": summary,
	})
}
