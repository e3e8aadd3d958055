package models

import "time"

// User roles.
const (
	RolePlayer    = "player"
	RoleTurfOwner = "turf_owner"
)

// PlayerProfile holds the optional profile fields of a player account.
type PlayerProfile struct {
	Avatar            string `dynamodbav:"avatar" json:"avatar"`
	Bio               string `dynamodbav:"bio" json:"bio"`
	SkillLevel        string `dynamodbav:"skillLevel" json:"skill_level"`
	PreferredPosition string `dynamodbav:"preferredPosition" json:"preferred_position"`
	Age               int    `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender            string `dynamodbav:"gender" json:"gender"`
}

// PlayerStats are the counters maintained as a side effect of lifecycle and
// rating operations.
type PlayerStats struct {
	GamesPlayed    int     `dynamodbav:"gamesPlayed" json:"games_played"`
	GamesOrganized int     `dynamodbav:"gamesOrganized" json:"games_organized"`
	AverageRating  float64 `dynamodbav:"averageRating" json:"average_rating"`
	TotalRatings   int     `dynamodbav:"totalRatings" json:"total_ratings"`
}

// Business holds the turf-owner specific fields.
type Business struct {
	BusinessName    string `dynamodbav:"businessName" json:"business_name"`
	BusinessAddress string `dynamodbav:"businessAddress" json:"business_address"`
	ContactPerson   string `dynamodbav:"contactPerson" json:"contact_person"`
	TotalTurfs      int    `dynamodbav:"totalTurfs" json:"total_turfs"`
}

// User is a registered account, either a player or a turf owner.
// The password hash never leaves the server.
type User struct {
	ID           string         `dynamodbav:"id" json:"id"`
	Name         string         `dynamodbav:"name" json:"name"`
	Email        string         `dynamodbav:"email" json:"email"`
	Phone        string         `dynamodbav:"phone" json:"phone"`
	PasswordHash string         `dynamodbav:"passwordHash" json:"-"`
	Role         string         `dynamodbav:"role" json:"role"`
	Profile      *PlayerProfile `dynamodbav:"profile,omitempty" json:"profile,omitempty"`
	Stats        *PlayerStats   `dynamodbav:"stats,omitempty" json:"stats,omitempty"`
	Business     *Business      `dynamodbav:"business,omitempty" json:"business,omitempty"`
	CreatedAt    time.Time      `dynamodbav:"createdAt" json:"created_at"`
}

// UsersTable is the DynamoDB table name for users.
const UsersTable = "Users"
