package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterTurfRoutes sets up routes for venue operations under /api/turfs.
func RegisterTurfRoutes(r *mux.Router, turfService *services.TurfService) {
	controller := controllers.NewTurfController(turfService)

	turfRouter := r.PathPrefix("/api/turfs").Subrouter()

	turfRouter.HandleFunc("", controller.HandleCreateTurf).Methods("POST")
	turfRouter.HandleFunc("/nearby", controller.HandleNearbyTurfs).Methods("GET")
	turfRouter.HandleFunc("/owner/{ownerId}", controller.HandleOwnerTurfs).Methods("GET")
	turfRouter.HandleFunc("/{id}", controller.HandleGetTurf).Methods("GET")
	turfRouter.HandleFunc("/{id}", controller.HandleUpdateTurf).Methods("PUT")
	turfRouter.HandleFunc("/{id}", controller.HandleDeleteTurf).Methods("DELETE")
	turfRouter.HandleFunc("/{id}/availability", controller.HandleAvailability).Methods("GET")
	turfRouter.HandleFunc("/{id}/book", controller.HandleBookSlot).Methods("POST")
	turfRouter.HandleFunc("/{id}/bookings/{bookingId}/cancel", controller.HandleCancelBooking).Methods("POST")
}
