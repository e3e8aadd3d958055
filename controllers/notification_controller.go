package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// NotificationController handles HTTP requests for notifications.
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance.
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// HandleList returns the user's notifications, newest first.
func (nc *NotificationController) HandleList(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := nc.NotificationService.List(r.Context(), mux.Vars(r)["userId"], unreadOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// HandleMarkRead marks one notification as read.
func (nc *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	notification, err := nc.NotificationService.MarkRead(r.Context(), mux.Vars(r)["id"], request.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, notification)
}

// HandleMarkAllRead marks every notification of the user as read.
func (nc *NotificationController) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := nc.NotificationService.MarkAllRead(r.Context(), request.UserID); err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "All notifications marked read"})
}
