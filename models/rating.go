package models

import "time"

// Rating is a post-game review of one player by another. One rating per
// rater per game per rated player.
type Rating struct {
	ID            string    `dynamodbav:"id" json:"id"`
	GameID        string    `dynamodbav:"gameId" json:"game_id"`
	RaterID       string    `dynamodbav:"raterId" json:"rater_id"`
	RaterName     string    `dynamodbav:"raterName" json:"rater_name"`
	RatedUserID   string    `dynamodbav:"ratedUserId" json:"rated_user_id"`
	RatedUserName string    `dynamodbav:"ratedUserName" json:"rated_user_name"`
	Overall       int       `dynamodbav:"overall" json:"overall_rating"`
	Punctuality   int       `dynamodbav:"punctuality" json:"punctuality"`
	Skill         int       `dynamodbav:"skill" json:"skill"`
	Teamwork      int       `dynamodbav:"teamwork" json:"teamwork"`
	Sportsmanship int       `dynamodbav:"sportsmanship" json:"sportsmanship"`
	Review        string    `dynamodbav:"review" json:"review"`
	CreatedAt     time.Time `dynamodbav:"createdAt" json:"created_at"`
}

// RatingsTable is the DynamoDB table name for ratings.
const RatingsTable = "Ratings"
