package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for notifications under /api/notifications.
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()

	notificationRouter.HandleFunc("/user/{userId}", controller.HandleList).Methods("GET")
	notificationRouter.HandleFunc("/read-all", controller.HandleMarkAllRead).Methods("POST")
	notificationRouter.HandleFunc("/{id}/read", controller.HandleMarkRead).Methods("POST")
}
