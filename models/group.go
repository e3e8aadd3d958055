package models

import "time"

// GroupMember is a non-owner participant of a group chat.
type GroupMember struct {
	UserID   string `dynamodbav:"userId" json:"user_id"`
	UserName string `dynamodbav:"userName" json:"user_name"`
}

// Group is the chat/coordination entity bound 1:1 to a Game. Members mirrors
// the game's accepted roster minus the owner. A booked turf arms the six-hour
// expiry timer; an unbooked group never expires on its own.
type Group struct {
	ID          string        `dynamodbav:"id" json:"id"`
	GameID      string        `dynamodbav:"gameId" json:"game_id"`
	Name        string        `dynamodbav:"name" json:"name"`
	OwnerID     string        `dynamodbav:"ownerId" json:"owner_id"`
	OwnerName   string        `dynamodbav:"ownerName" json:"owner_name"`
	Members     []GroupMember `dynamodbav:"members" json:"members"`
	TurfName    string        `dynamodbav:"turfName,omitempty" json:"turf_name,omitempty"`
	TurfAddress string        `dynamodbav:"turfAddress,omitempty" json:"turf_address,omitempty"`
	BookedAt    *time.Time    `dynamodbav:"bookedAt,omitempty" json:"booked_at,omitempty"`
	ExpiresAt   *time.Time    `dynamodbav:"expiresAt,omitempty" json:"expires_at,omitempty"`
	CreatedAt   time.Time     `dynamodbav:"createdAt" json:"created_at"`
}

// HasMember reports whether the user is the owner or a member.
func (g *Group) HasMember(userID string) bool {
	if g.OwnerID == userID {
		return true
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberCount counts everyone in the group, owner included.
func (g *Group) MemberCount() int {
	return len(g.Members) + 1
}

// GroupsTable is the DynamoDB table name for groups.
const GroupsTable = "Groups"
