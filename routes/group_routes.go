package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterGroupRoutes sets up routes for group operations under /api/groups.
func RegisterGroupRoutes(r *mux.Router, groupService *services.GroupService) {
	controller := controllers.NewGroupController(groupService)

	groupRouter := r.PathPrefix("/api/groups").Subrouter()

	groupRouter.HandleFunc("/merge", controller.HandleMerge).Methods("POST")
	groupRouter.HandleFunc("/user/{userId}", controller.HandleUserGroups).Methods("GET")
	groupRouter.HandleFunc("/{id}", controller.HandleGetGroup).Methods("GET")
	groupRouter.HandleFunc("/{id}/members", controller.HandleMembers).Methods("GET")
	groupRouter.HandleFunc("/{id}/book-turf", controller.HandleBookTurf).Methods("POST")
	groupRouter.HandleFunc("/{id}/remove-member", controller.HandleRemoveMember).Methods("POST")
}
