package models

import "time"

// Game statuses. Status is always derived from the accepted count and
// players_needed, never toggled on its own.
const (
	GameStatusOpen = "open"
	GameStatusFull = "full"
)

// Location is a point with an optional human-readable address.
type Location struct {
	Lat     float64 `dynamodbav:"lat" json:"lat"`
	Lng     float64 `dynamodbav:"lng" json:"lng"`
	Address string  `dynamodbav:"address" json:"address"`
}

// AcceptedPlayer is an entry in a game's accepted roster.
type AcceptedPlayer struct {
	UserID     string    `dynamodbav:"userId" json:"user_id"`
	UserName   string    `dynamodbav:"userName" json:"user_name"`
	AcceptedAt time.Time `dynamodbav:"acceptedAt" json:"accepted_at"`
}

// PendingRequest is a join request waiting for the creator's decision.
type PendingRequest struct {
	UserID      string    `dynamodbav:"userId" json:"user_id"`
	UserName    string    `dynamodbav:"userName" json:"user_name"`
	RequestedAt time.Time `dynamodbav:"requestedAt" json:"requested_at"`
}

// Game is a recruitment post for a sport session. It is bound 1:1 to a Group
// via GroupID; every roster mutation is mirrored into that group within the
// same operation.
type Game struct {
	ID              string           `dynamodbav:"id" json:"id"`
	UserID          string           `dynamodbav:"userId" json:"user_id"`
	UserName        string           `dynamodbav:"userName" json:"user_name"`
	Sport           string           `dynamodbav:"sport" json:"sport"`
	PlayersNeeded   int              `dynamodbav:"playersNeeded" json:"players_needed"`
	AcceptedPlayers []AcceptedPlayer `dynamodbav:"acceptedPlayers" json:"accepted_players"`
	PendingRequests []PendingRequest `dynamodbav:"pendingRequests" json:"pending_requests"`
	Location        Location         `dynamodbav:"location" json:"location"`
	Description     string           `dynamodbav:"description" json:"description"`
	Date            string           `dynamodbav:"date" json:"date"`
	Time            string           `dynamodbav:"time" json:"time"`
	Status          string           `dynamodbav:"status" json:"status"`
	GroupID         string           `dynamodbav:"groupId" json:"group_id"`
	CreatedAt       time.Time        `dynamodbav:"createdAt" json:"created_at"`
}

// RecomputeStatus derives the status from the roster. Called unconditionally
// after every roster mutation.
func (g *Game) RecomputeStatus() {
	if len(g.AcceptedPlayers) >= g.PlayersNeeded {
		g.Status = GameStatusFull
	} else {
		g.Status = GameStatusOpen
	}
}

// IsAccepted reports whether the user is on the accepted roster.
func (g *Game) IsAccepted(userID string) bool {
	for _, p := range g.AcceptedPlayers {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// HasPendingRequest reports whether the user has a pending join request.
func (g *Game) HasPendingRequest(userID string) bool {
	for _, r := range g.PendingRequests {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// GamesTable is the DynamoDB table name for games.
const GamesTable = "Games"
