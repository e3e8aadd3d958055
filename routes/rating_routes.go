package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterRatingRoutes sets up routes for player ratings under /api/ratings.
func RegisterRatingRoutes(r *mux.Router, ratingService *services.RatingService) {
	controller := controllers.NewRatingController(ratingService)

	ratingRouter := r.PathPrefix("/api/ratings").Subrouter()

	ratingRouter.HandleFunc("", controller.HandleRatePlayer).Methods("POST")
	ratingRouter.HandleFunc("/user/{userId}", controller.HandleUserRatings).Methods("GET")
}
