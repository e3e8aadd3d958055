package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sportmate_server/models"
	"sportmate_server/utils"
)

// MaxActiveGroups caps how many groups a player may belong to at once,
// counting owned and joined groups alike. Enforced when joining or being
// accepted into a game, never retroactively.
const MaxActiveGroups = 3

// GameService owns the game side of the lifecycle. Every roster mutation is
// serialized on the game's lock, and the game and its bound group are always
// written together so the rosters never drift apart.
type GameService struct {
	Games         GameStore
	Groups        GroupStore
	Turfs         TurfStore
	Users         *UserService
	GroupSvc      *GroupService
	Notifications *NotificationService

	locks *KeyedMutex
}

// NewGameService wires the stores and the shared lock table.
func NewGameService(games GameStore, groups GroupStore, turfs TurfStore, users *UserService, groupSvc *GroupService, notifications *NotificationService, locks *KeyedMutex) *GameService {
	return &GameService{
		Games:         games,
		Groups:        groups,
		Turfs:         turfs,
		Users:         users,
		GroupSvc:      groupSvc,
		Notifications: notifications,
		locks:         locks,
	}
}

// CreateGameRequest carries the fields accepted when posting a game.
type CreateGameRequest struct {
	UserID        string          `json:"user_id"`
	Sport         string          `json:"sport"`
	PlayersNeeded int             `json:"players_needed"`
	Location      models.Location `json:"location"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
}

// CreateGame posts a new game and its bound chat group. The creator is
// auto-accepted and owns the group; a game needing one player is born full.
func (s *GameService) CreateGame(ctx context.Context, req CreateGameRequest) (*models.Game, *models.Group, error) {
	if req.Sport == "" {
		return nil, nil, fmt.Errorf("sport is required: %w", ErrValidation)
	}
	if req.PlayersNeeded < 1 {
		return nil, nil, fmt.Errorf("players_needed must be at least 1: %w", ErrValidation)
	}
	if req.Location.Lat == 0 && req.Location.Lng == 0 {
		return nil, nil, fmt.Errorf("location must include lat and lng: %w", ErrValidation)
	}

	creator, err := s.Users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}

	// The active-group cap applies when joining or being accepted, not when
	// organizing.
	now := time.Now()
	game := &models.Game{
		ID:            uuid.New().String(),
		UserID:        creator.ID,
		UserName:      creator.Name,
		Sport:         req.Sport,
		PlayersNeeded: req.PlayersNeeded,
		AcceptedPlayers: []models.AcceptedPlayer{
			{UserID: creator.ID, UserName: creator.Name, AcceptedAt: now},
		},
		Location:    req.Location,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		CreatedAt:   now,
	}
	game.RecomputeStatus()

	group := &models.Group{
		ID:        uuid.New().String(),
		GameID:    game.ID,
		Name:      fmt.Sprintf("%s Squad", req.Sport),
		OwnerID:   creator.ID,
		OwnerName: creator.Name,
		Members:   []models.GroupMember{},
		CreatedAt: now,
	}
	game.GroupID = group.ID

	if err := s.Groups.PutGroup(ctx, group); err != nil {
		return nil, nil, fmt.Errorf("failed to store group: %w", err)
	}
	if err := s.Games.PutGame(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to store game: %w", err)
	}

	s.Users.RecordGameOrganized(ctx, creator.ID)
	log.Printf("🎮 %s created %s game %s (needs %d)", creator.Name, game.Sport, game.ID, game.PlayersNeeded)
	return game, group, nil
}

// GetGame returns a game or ErrNotFound.
func (s *GameService) GetGame(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.Games.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return game, nil
}

// UserGames lists games the user created or was accepted into.
func (s *GameService) UserGames(ctx context.Context, userID string) ([]models.Game, error) {
	games, err := s.Games.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	mine := games[:0]
	for _, g := range games {
		if g.UserID == userID || g.IsAccepted(userID) {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

// NearbyGame is a game annotated with its distance from a query origin.
type NearbyGame struct {
	models.Game
	DistanceKm float64 `json:"distance_km"`
}

// NearbyGames returns open games within radiusKm of the origin, closest
// first, optionally filtered to one sport (case-insensitive).
func (s *GameService) NearbyGames(ctx context.Context, lat, lng, radiusKm float64, sport string) ([]NearbyGame, error) {
	games, err := s.Games.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	open := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.Status == models.GameStatusOpen {
			open = append(open, g)
		}
	}

	candidates := make([]utils.GeoCandidate, len(open))
	for i, g := range open {
		candidates[i] = utils.GeoCandidate{Lat: g.Location.Lat, Lng: g.Location.Lng, Category: g.Sport}
	}

	matches := utils.Nearby(lat, lng, candidates, radiusKm, sport)
	nearby := make([]NearbyGame, 0, len(matches))
	for _, m := range matches {
		nearby = append(nearby, NearbyGame{
			Game:       open[m.Index],
			DistanceKm: utils.RoundKm(m.DistanceKm),
		})
	}
	return nearby, nil
}

// GameWithTurfs is a nearby game bundled with turfs close to its venue.
type GameWithTurfs struct {
	NearbyGame
	NearbyTurfs []NearbyTurf `json:"nearby_turfs"`
}

// turfSearchRadiusKm bounds the turf lookup around each game's location.
const turfSearchRadiusKm = 5.0

// NearbyGamesWithTurfs returns nearby open games, each annotated with active
// turfs within five kilometres of the game's own location.
func (s *GameService) NearbyGamesWithTurfs(ctx context.Context, lat, lng, radiusKm float64, sport string) ([]GameWithTurfs, error) {
	games, err := s.NearbyGames(ctx, lat, lng, radiusKm, sport)
	if err != nil {
		return nil, err
	}
	turfs, err := s.Turfs.ListTurfs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list turfs: %w", err)
	}

	active := make([]models.Turf, 0, len(turfs))
	for _, t := range turfs {
		if t.Status == "active" {
			active = append(active, t)
		}
	}
	candidates := make([]utils.GeoCandidate, len(active))
	for i, t := range active {
		candidates[i] = utils.GeoCandidate{Lat: t.Location.Lat, Lng: t.Location.Lng}
	}

	result := make([]GameWithTurfs, 0, len(games))
	for _, g := range games {
		matches := utils.Nearby(g.Location.Lat, g.Location.Lng, candidates, turfSearchRadiusKm, "")
		near := make([]NearbyTurf, 0, len(matches))
		for _, m := range matches {
			near = append(near, NearbyTurf{
				Turf:       active[m.Index],
				DistanceKm: utils.RoundKm(m.DistanceKm),
			})
		}
		result = append(result, GameWithTurfs{NearbyGame: g, NearbyTurfs: near})
	}
	return result, nil
}

// lockedGame loads the game under its lock. Caller holds the lock already.
func (s *GameService) lockedGame(ctx context.Context, gameID string) (*models.Game, error) {
	return s.GetGame(ctx, gameID)
}

// boundGroup loads the game's chat group; a missing binding is tolerated
// (the group may have expired) and reported as nil.
func (s *GameService) boundGroup(ctx context.Context, game *models.Game) (*models.Group, error) {
	if game.GroupID == "" {
		return nil, nil
	}
	group, err := s.Groups.GetGroup(ctx, game.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	return group, nil
}

// addMember mirrors an accepted player into the chat group.
func (s *GameService) addMember(ctx context.Context, game *models.Game, userID, userName string) error {
	group, err := s.boundGroup(ctx, game)
	if err != nil || group == nil {
		return err
	}
	if group.HasMember(userID) {
		return nil
	}
	group.Members = append(group.Members, models.GroupMember{UserID: userID, UserName: userName})
	if err := s.Groups.PutGroup(ctx, group); err != nil {
		return fmt.Errorf("failed to store group: %w", err)
	}
	return nil
}

// commitRoster persists a roster mutation: the game record (the source of
// truth) first, then the group mirror. When the mirror write fails the game
// is reverted to prev so the pair never drifts apart.
func (s *GameService) commitRoster(ctx context.Context, game, prev *models.Game, mirror func() error) error {
	if err := s.Games.PutGame(ctx, game); err != nil {
		return fmt.Errorf("failed to store game: %w", err)
	}
	if err := mirror(); err != nil {
		if rerr := s.Games.PutGame(ctx, prev); rerr != nil {
			log.Printf("⚠️ Failed to revert game %s after group write failure: %v", game.ID, rerr)
		}
		return err
	}
	return nil
}

// dropMember mirrors a removal into the chat group.
func (s *GameService) dropMember(ctx context.Context, game *models.Game, userID string) error {
	group, err := s.boundGroup(ctx, game)
	if err != nil || group == nil {
		return err
	}
	for i, m := range group.Members {
		if m.UserID == userID {
			group.Members = append(group.Members[:i], group.Members[i+1:]...)
			break
		}
	}
	if err := s.Groups.PutGroup(ctx, group); err != nil {
		return fmt.Errorf("failed to store group: %w", err)
	}
	return nil
}

// JoinGame adds the player straight into the roster of an open game.
func (s *GameService) JoinGame(ctx context.Context, gameID, userID string) (*models.Game, error) {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))
	s.locks.Lock(userKey(userID))
	defer s.locks.Unlock(userKey(userID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status == models.GameStatusFull {
		return nil, fmt.Errorf("game is already full: %w", ErrConflict)
	}
	if game.IsAccepted(userID) {
		return nil, fmt.Errorf("you have already joined this game: %w", ErrConflict)
	}

	count, err := s.GroupSvc.CountActiveGroups(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxActiveGroups {
		return nil, fmt.Errorf("you can be in at most %d active groups: %w", MaxActiveGroups, ErrConflict)
	}

	prev := copyGame(*game)
	// A direct join supersedes any pending request by the same player.
	for i, r := range game.PendingRequests {
		if r.UserID == userID {
			game.PendingRequests = append(game.PendingRequests[:i], game.PendingRequests[i+1:]...)
			break
		}
	}
	game.AcceptedPlayers = append(game.AcceptedPlayers, models.AcceptedPlayer{
		UserID:     userID,
		UserName:   user.Name,
		AcceptedAt: time.Now(),
	})
	game.RecomputeStatus()

	if err := s.commitRoster(ctx, game, &prev, func() error {
		return s.addMember(ctx, game, userID, user.Name)
	}); err != nil {
		return nil, err
	}

	s.Users.RecordGamePlayed(ctx, userID)
	s.Notifications.Notify(ctx, game.UserID, models.NotificationPlayerJoined,
		"New Player Joined! ⚽",
		fmt.Sprintf("%s joined your %s game", user.Name, game.Sport),
		map[string]string{"post_id": game.ID, "user_id": userID})
	s.Notifications.Notify(ctx, userID, models.NotificationJoinedGame,
		"You're In! 🎉",
		fmt.Sprintf("You joined %s's %s game", game.UserName, game.Sport),
		map[string]string{"post_id": game.ID})
	return game, nil
}

// RequestJoin files a join request for the creator to review.
func (s *GameService) RequestJoin(ctx context.Context, gameID, userID string) (*models.Game, error) {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsAccepted(userID) {
		return nil, fmt.Errorf("you have already joined this game: %w", ErrConflict)
	}
	if game.HasPendingRequest(userID) {
		return nil, fmt.Errorf("you have already requested to join this game: %w", ErrConflict)
	}
	if game.Status == models.GameStatusFull {
		return nil, fmt.Errorf("game is already full: %w", ErrConflict)
	}

	game.PendingRequests = append(game.PendingRequests, models.PendingRequest{
		UserID:      userID,
		UserName:    user.Name,
		RequestedAt: time.Now(),
	})
	if err := s.Games.PutGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	s.Notifications.Notify(ctx, game.UserID, models.NotificationJoinRequested,
		"Join Request 📨",
		fmt.Sprintf("%s wants to join your %s game", user.Name, game.Sport),
		map[string]string{"post_id": game.ID, "user_id": userID})
	return game, nil
}

// AcceptRequest moves a pending request into the roster. Creator only.
func (s *GameService) AcceptRequest(ctx context.Context, gameID, creatorID, playerID string) (*models.Game, error) {
	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))
	s.locks.Lock(userKey(playerID))
	defer s.locks.Unlock(userKey(playerID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != creatorID {
		return nil, fmt.Errorf("only the game creator can accept requests: %w", ErrForbidden)
	}

	idx := -1
	for i, r := range game.PendingRequests {
		if r.UserID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no pending request from user %s: %w", playerID, ErrNotFound)
	}
	if game.Status == models.GameStatusFull {
		return nil, fmt.Errorf("game is already full: %w", ErrConflict)
	}

	count, err := s.GroupSvc.CountActiveGroups(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if count >= MaxActiveGroups {
		return nil, fmt.Errorf("player is already in %d active groups: %w", MaxActiveGroups, ErrConflict)
	}

	prev := copyGame(*game)
	req := game.PendingRequests[idx]
	game.PendingRequests = append(game.PendingRequests[:idx], game.PendingRequests[idx+1:]...)
	game.AcceptedPlayers = append(game.AcceptedPlayers, models.AcceptedPlayer{
		UserID:     req.UserID,
		UserName:   req.UserName,
		AcceptedAt: time.Now(),
	})
	game.RecomputeStatus()

	if err := s.commitRoster(ctx, game, &prev, func() error {
		return s.addMember(ctx, game, req.UserID, req.UserName)
	}); err != nil {
		return nil, err
	}

	s.Users.RecordGamePlayed(ctx, playerID)
	s.Notifications.Notify(ctx, playerID, models.NotificationRequestAccepted,
		"Request Accepted! 🎉",
		fmt.Sprintf("%s accepted you into the %s game", game.UserName, game.Sport),
		map[string]string{"post_id": game.ID})
	return game, nil
}

// DenyRequest rejects a pending request, or force-removes an already
// accepted player when no request is pending. Creator only.
func (s *GameService) DenyRequest(ctx context.Context, gameID, creatorID, playerID string) (*models.Game, error) {
	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != creatorID {
		return nil, fmt.Errorf("only the game creator can deny requests: %w", ErrForbidden)
	}

	for i, r := range game.PendingRequests {
		if r.UserID == playerID {
			game.PendingRequests = append(game.PendingRequests[:i], game.PendingRequests[i+1:]...)
			if err := s.Games.PutGame(ctx, game); err != nil {
				return nil, fmt.Errorf("failed to store game: %w", err)
			}
			s.Notifications.Notify(ctx, playerID, models.NotificationRequestDenied,
				"Request Declined",
				fmt.Sprintf("Your request to join the %s game was declined", game.Sport),
				map[string]string{"post_id": game.ID})
			return game, nil
		}
	}

	// No pending request; denying an accepted player evicts them.
	if game.IsAccepted(playerID) && playerID != game.UserID {
		if err := s.removePlayer(ctx, game, playerID); err != nil {
			return nil, err
		}
		s.Users.RecordGameLeft(ctx, playerID)
		s.Notifications.Notify(ctx, playerID, models.NotificationRemovedFromGame,
			"Removed from Game",
			fmt.Sprintf("You were removed from the %s game", game.Sport),
			map[string]string{"post_id": game.ID})
		return game, nil
	}
	return nil, fmt.Errorf("no pending request from user %s: %w", playerID, ErrNotFound)
}

// removePlayer drops an accepted player from the roster and mirrors the
// change into the group, reopening the game if it was full.
func (s *GameService) removePlayer(ctx context.Context, game *models.Game, playerID string) error {
	prev := copyGame(*game)
	for i, p := range game.AcceptedPlayers {
		if p.UserID == playerID {
			game.AcceptedPlayers = append(game.AcceptedPlayers[:i], game.AcceptedPlayers[i+1:]...)
			break
		}
	}
	game.RecomputeStatus()
	return s.commitRoster(ctx, game, &prev, func() error {
		return s.dropMember(ctx, game, playerID)
	})
}

// LeaveGame removes the caller from a game they joined. The creator cannot
// leave their own game; they must delete it instead.
func (s *GameService) LeaveGame(ctx context.Context, gameID, userID string) (*models.Game, error) {
	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID == userID {
		return nil, fmt.Errorf("the creator cannot leave; delete the game instead: %w", ErrForbidden)
	}
	if !game.IsAccepted(userID) {
		return nil, fmt.Errorf("you have not joined this game: %w", ErrConflict)
	}

	var leaverName string
	for _, p := range game.AcceptedPlayers {
		if p.UserID == userID {
			leaverName = p.UserName
			break
		}
	}
	if err := s.removePlayer(ctx, game, userID); err != nil {
		return nil, err
	}

	s.Users.RecordGameLeft(ctx, userID)
	s.Notifications.Notify(ctx, game.UserID, models.NotificationPlayerLeft,
		"Player Left",
		fmt.Sprintf("%s left your %s game", leaverName, game.Sport),
		map[string]string{"post_id": game.ID, "user_id": userID})
	return game, nil
}

// KickPlayer evicts an accepted player. Creator only; the creator cannot
// kick themselves.
func (s *GameService) KickPlayer(ctx context.Context, gameID, creatorID, playerID string) (*models.Game, error) {
	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != creatorID {
		return nil, fmt.Errorf("only the game creator can kick players: %w", ErrForbidden)
	}
	if playerID == game.UserID {
		return nil, fmt.Errorf("the creator cannot be kicked: %w", ErrValidation)
	}
	if !game.IsAccepted(playerID) {
		return nil, fmt.Errorf("user %s is not in this game: %w", playerID, ErrNotFound)
	}

	if err := s.removePlayer(ctx, game, playerID); err != nil {
		return nil, err
	}

	s.Users.RecordGameLeft(ctx, playerID)
	s.Notifications.Notify(ctx, playerID, models.NotificationKickedFromGame,
		"Removed from Game",
		fmt.Sprintf("You were removed from the %s game by the organizer", game.Sport),
		map[string]string{"post_id": game.ID})
	return game, nil
}

// DeleteGame cancels a game, notifies the roster and removes the bound
// group. Creator only.
func (s *GameService) DeleteGame(ctx context.Context, gameID, userID string) error {
	s.locks.Lock(gameKey(gameID))
	defer s.locks.Unlock(gameKey(gameID))

	game, err := s.lockedGame(ctx, gameID)
	if err != nil {
		return err
	}
	if game.UserID != userID {
		return fmt.Errorf("only the game creator can delete the game: %w", ErrForbidden)
	}

	for _, p := range game.AcceptedPlayers {
		if p.UserID == game.UserID {
			continue
		}
		s.Notifications.Notify(ctx, p.UserID, models.NotificationGameCancelled,
			"Game Cancelled",
			fmt.Sprintf("The %s game on %s was cancelled", game.Sport, game.Date),
			map[string]string{"post_id": game.ID})
	}

	if game.GroupID != "" {
		if err := s.Groups.DeleteGroup(ctx, game.GroupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
	}
	if err := s.Games.DeleteGame(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	log.Printf("🗑️ Deleted game %s and its group", game.ID)
	return nil
}
