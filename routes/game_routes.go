package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterGameRoutes sets up routes for game operations under /api/games.
func RegisterGameRoutes(r *mux.Router, gameService *services.GameService) {
	controller := controllers.NewGameController(gameService)

	gameRouter := r.PathPrefix("/api/games").Subrouter()

	gameRouter.HandleFunc("", controller.HandleCreateGame).Methods("POST")
	gameRouter.HandleFunc("/nearby", controller.HandleNearbyGames).Methods("GET")
	gameRouter.HandleFunc("/nearby-with-turfs", controller.HandleNearbyGamesWithTurfs).Methods("GET")
	gameRouter.HandleFunc("/user/{userId}", controller.HandleUserGames).Methods("GET")
	gameRouter.HandleFunc("/{id}", controller.HandleGetGame).Methods("GET")
	gameRouter.HandleFunc("/{id}", controller.HandleDeleteGame).Methods("DELETE")
	gameRouter.HandleFunc("/{id}/join", controller.HandleJoinGame).Methods("POST")
	gameRouter.HandleFunc("/{id}/request", controller.HandleRequestJoin).Methods("POST")
	gameRouter.HandleFunc("/{id}/accept", controller.HandleAcceptRequest).Methods("POST")
	gameRouter.HandleFunc("/{id}/deny", controller.HandleDenyRequest).Methods("POST")
	gameRouter.HandleFunc("/{id}/leave", controller.HandleLeaveGame).Methods("POST")
	gameRouter.HandleFunc("/{id}/kick", controller.HandleKickPlayer).Methods("POST")
}
