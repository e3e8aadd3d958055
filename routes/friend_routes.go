package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterFriendRoutes sets up routes for friendship operations under /api/friends.
func RegisterFriendRoutes(r *mux.Router, friendService *services.FriendService) {
	controller := controllers.NewFriendController(friendService)

	friendRouter := r.PathPrefix("/api/friends").Subrouter()

	friendRouter.HandleFunc("/request", controller.HandleSendRequest).Methods("POST")
	friendRouter.HandleFunc("/requests/{id}/accept", controller.HandleAccept).Methods("POST")
	friendRouter.HandleFunc("/requests/pending/{userId}", controller.HandlePending).Methods("GET")
	friendRouter.HandleFunc("/{userId}", controller.HandleFriends).Methods("GET")
}
