package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for messaging under /api/messages.
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/messages").Subrouter()

	chatRouter.HandleFunc("/direct", controller.HandleSendDirectMessage).Methods("POST")
	chatRouter.HandleFunc("/direct", controller.HandleDirectMessages).Methods("GET")
	chatRouter.HandleFunc("/group/{id}", controller.HandleSendGroupMessage).Methods("POST")
	chatRouter.HandleFunc("/group/{id}", controller.HandleGroupMessages).Methods("GET")
}
