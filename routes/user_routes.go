package routes

import (
	"sportmate_server/controllers"
	"sportmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for account operations under /api/users.
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	userRouter := r.PathPrefix("/api/users").Subrouter()

	userRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	userRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	userRouter.HandleFunc("/{id}", controller.HandleGetUser).Methods("GET")
	userRouter.HandleFunc("/{id}/profile", controller.HandleUpdateProfile).Methods("PUT")
}
