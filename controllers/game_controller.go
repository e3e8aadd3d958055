package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sportmate_server/helpers"
	"sportmate_server/services"
)

// GameController handles HTTP requests for games.
type GameController struct {
	GameService *services.GameService
}

// NewGameController creates a new GameController instance.
func NewGameController(gameService *services.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// HandleCreateGame creates a game and its chat group.
func (gc *GameController) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var request services.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	game, group, err := gc.GameService.CreateGame(r.Context(), request)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"game":  game,
		"group": group,
	})
}

// HandleGetGame returns one game.
func (gc *GameController) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := gc.GameService.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleUserGames lists the games a user created or joined.
func (gc *GameController) HandleUserGames(w http.ResponseWriter, r *http.Request) {
	games, err := gc.GameService.UserGames(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"games": games})
}

// geoQuery parses lat/lng/radius/sport query parameters.
func geoQuery(r *http.Request) (lat, lng, radius float64, sport string, err error) {
	q := r.URL.Query()
	lat, err = strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return 0, 0, 0, "", fmt.Errorf("lat is required and must be a number")
	}
	lng, err = strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return 0, 0, 0, "", fmt.Errorf("lng is required and must be a number")
	}
	radius = 10
	if v := q.Get("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, 0, "", fmt.Errorf("radius must be a number")
		}
	}
	return lat, lng, radius, q.Get("sport"), nil
}

// HandleNearbyGames lists open games around a point, closest first.
func (gc *GameController) HandleNearbyGames(w http.ResponseWriter, r *http.Request) {
	lat, lng, radius, sport, err := geoQuery(r)
	if err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	games, err := gc.GameService.NearbyGames(r.Context(), lat, lng, radius, sport)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"games": games})
}

// HandleNearbyGamesWithTurfs lists nearby games with turfs close to each venue.
func (gc *GameController) HandleNearbyGamesWithTurfs(w http.ResponseWriter, r *http.Request) {
	lat, lng, radius, sport, err := geoQuery(r)
	if err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	games, err := gc.GameService.NearbyGamesWithTurfs(r.Context(), lat, lng, radius, sport)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"games": games})
}

// HandleJoinGame joins the caller into an open game.
func (gc *GameController) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	game, err := gc.GameService.JoinGame(r.Context(), mux.Vars(r)["id"], request.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleRequestJoin files a join request.
func (gc *GameController) HandleRequestJoin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	game, err := gc.GameService.RequestJoin(r.Context(), mux.Vars(r)["id"], request.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleAcceptRequest moves a pending request into the roster.
func (gc *GameController) HandleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"user_id"`
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	game, err := gc.GameService.AcceptRequest(r.Context(), mux.Vars(r)["id"], request.UserID, request.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleDenyRequest rejects a pending request or evicts an accepted player.
func (gc *GameController) HandleDenyRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"user_id"`
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	game, err := gc.GameService.DenyRequest(r.Context(), mux.Vars(r)["id"], request.UserID, request.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleLeaveGame removes the caller from the roster.
func (gc *GameController) HandleLeaveGame(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	game, err := gc.GameService.LeaveGame(r.Context(), mux.Vars(r)["id"], request.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleKickPlayer evicts an accepted player. Creator only.
func (gc *GameController) HandleKickPlayer(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"user_id"`
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	game, err := gc.GameService.KickPlayer(r.Context(), mux.Vars(r)["id"], request.UserID, request.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, game)
}

// HandleDeleteGame cancels a game. Creator only.
func (gc *GameController) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := gc.GameService.DeleteGame(r.Context(), mux.Vars(r)["id"], request.UserID); err != nil {
		respondError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Game deleted successfully"})
}
