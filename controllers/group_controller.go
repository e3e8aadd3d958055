package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// GroupController handles HTTP requests for groups.
type GroupController struct {
	GroupService *services.GroupService
}

// NewGroupController creates a new GroupController instance.
func NewGroupController(groupService *services.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

// HandleGetGroup returns one group.
func (gc *GroupController) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := gc.GroupService.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, group)
}

// HandleUserGroups lists the groups a user owns or belongs to.
func (gc *GroupController) HandleUserGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := gc.GroupService.UserGroups(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// HandleMembers returns the group roster with contact details.
func (gc *GroupController) HandleMembers(w http.ResponseWriter, r *http.Request) {
	group, members, err := gc.GroupService.MemberRoster(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"group_id": group.ID,
		"name":     group.Name,
		"members":  members,
	})
}

// HandleBookTurf records a turf booking on the group and arms the expiry.
func (gc *GroupController) HandleBookTurf(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"user_id"`
		TurfName    string `json:"turf_name"`
		TurfAddress string `json:"turf_address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	group, err := gc.GroupService.BookTurf(r.Context(), mux.Vars(r)["id"], request.UserID, request.TurfName, request.TurfAddress)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, group)
}

// HandleRemoveMember takes a non-owner member out of the group.
func (gc *GroupController) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	group, err := gc.GroupService.RemoveMember(r.Context(), mux.Vars(r)["id"], request.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, group)
}

// HandleMerge runs a merge pass across all compatible groups.
func (gc *GroupController) HandleMerge(w http.ResponseWriter, r *http.Request) {
	merged, err := gc.GroupService.MergeCompatible(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"merged": merged})
}
