package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// UserController handles HTTP requests for accounts and profiles.
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// HandleRegister creates a player or turf-owner account.
func (uc *UserController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	user, err := uc.UserService.Register(r.Context(), request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, user)
}

// HandleLogin checks credentials and returns the account.
func (uc *UserController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	user, err := uc.UserService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, user)
}

// HandleGetUser returns one account.
func (uc *UserController) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := uc.UserService.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, user)
}

// HandleUpdateProfile applies partial profile updates.
func (uc *UserController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var request services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	user, err := uc.UserService.UpdateProfile(r.Context(), mux.Vars(r)["id"], request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, user)
}
