package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// FriendController handles HTTP requests for friendships.
type FriendController struct {
	FriendService *services.FriendService
}

// NewFriendController creates a new FriendController instance.
func NewFriendController(friendService *services.FriendService) *FriendController {
	return &FriendController{FriendService: friendService}
}

// HandleSendRequest files a friend request.
func (fc *FriendController) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID string `json:"from_user_id"`
		ToUserID   string `json:"to_user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	fr, err := fc.FriendService.SendRequest(r.Context(), request.FromUserID, request.ToUserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, fr)
}

// HandleAccept accepts a pending friend request. Recipient only.
func (fc *FriendController) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	fr, err := fc.FriendService.Accept(r.Context(), mux.Vars(r)["id"], request.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, fr)
}

// HandlePending lists requests awaiting the user's decision.
func (fc *FriendController) HandlePending(w http.ResponseWriter, r *http.Request) {
	requests, err := fc.FriendService.PendingFor(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// HandleFriends lists the user's accepted friendships.
func (fc *FriendController) HandleFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := fc.FriendService.FriendsOf(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"friends": friends})
}
