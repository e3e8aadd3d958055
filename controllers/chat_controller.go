package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// ChatController handles HTTP requests for group and direct messages.
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController creates a new ChatController instance.
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// HandleSendGroupMessage appends a message to a group's history.
func (cc *ChatController) HandleSendGroupMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"user_id"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	message, err := cc.ChatService.SendGroupMessage(r.Context(), mux.Vars(r)["id"], request.UserID, request.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, message)
}

// HandleGroupMessages returns a group's history, oldest first.
func (cc *ChatController) HandleGroupMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	messages, err := cc.ChatService.GroupMessages(r.Context(), mux.Vars(r)["id"], userID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// HandleSendDirectMessage delivers a message between two friends.
func (cc *ChatController) HandleSendDirectMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID   string `json:"from_user_id"`
		FromUserName string `json:"from_user_name"`
		ToUserID     string `json:"to_user_id"`
		Content      string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	message, err := cc.ChatService.SendDirectMessage(r.Context(), request.FromUserID, request.FromUserName, request.ToUserID, request.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, message)
}

// HandleDirectMessages returns the conversation between two friends.
func (cc *ChatController) HandleDirectMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	messages, err := cc.ChatService.DirectMessages(r.Context(), q.Get("user_id"), q.Get("friend_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
