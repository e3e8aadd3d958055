package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sportmate_server/models"
)

// RatingService records post-game player ratings and maintains the rated
// user's average.
type RatingService struct {
	Ratings       RatingStore
	Users         UserStore
	Games         GameStore
	Notifications *NotificationService
}

// NewRatingService wires the stores.
func NewRatingService(ratings RatingStore, users UserStore, games GameStore, notifications *NotificationService) *RatingService {
	return &RatingService{Ratings: ratings, Users: users, Games: games, Notifications: notifications}
}

// RateRequest carries one rating submission. Sub-scores default to the
// overall score when omitted.
type RateRequest struct {
	GameID        string `json:"post_id"`
	RaterID       string `json:"rater_id"`
	RatedUserID   string `json:"rated_user_id"`
	Overall       int    `json:"overall_rating"`
	Punctuality   int    `json:"punctuality"`
	Skill         int    `json:"skill"`
	Teamwork      int    `json:"teamwork"`
	Sportsmanship int    `json:"sportsmanship"`
	Review        string `json:"review"`
}

// RatingSummary is the recomputed aggregate for a user.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// RatePlayer validates and stores a rating, then refreshes the rated user's
// average. One rating per rater per game per player.
func (s *RatingService) RatePlayer(ctx context.Context, req RateRequest) (*models.Rating, *RatingSummary, error) {
	if req.RaterID == req.RatedUserID {
		return nil, nil, fmt.Errorf("cannot rate yourself: %w", ErrValidation)
	}
	if req.Overall < 1 || req.Overall > 5 {
		return nil, nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	rater, err := s.Users.GetUser(ctx, req.RaterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up rater: %w", err)
	}
	if rater == nil {
		return nil, nil, fmt.Errorf("rater %s: %w", req.RaterID, ErrNotFound)
	}
	rated, err := s.Users.GetUser(ctx, req.RatedUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up rated user: %w", err)
	}
	if rated == nil {
		return nil, nil, fmt.Errorf("rated user %s: %w", req.RatedUserID, ErrNotFound)
	}
	game, err := s.Games.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up game: %w", err)
	}
	if game == nil {
		return nil, nil, fmt.Errorf("game %s: %w", req.GameID, ErrNotFound)
	}

	existing, err := s.Ratings.GetRating(ctx, req.GameID, req.RaterID, req.RatedUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing rating: %w", err)
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("you have already rated this player for this game: %w", ErrConflict)
	}

	rating := &models.Rating{
		ID:            uuid.New().String(),
		GameID:        req.GameID,
		RaterID:       rater.ID,
		RaterName:     rater.Name,
		RatedUserID:   rated.ID,
		RatedUserName: rated.Name,
		Overall:       req.Overall,
		Punctuality:   defaultScore(req.Punctuality, req.Overall),
		Skill:         defaultScore(req.Skill, req.Overall),
		Teamwork:      defaultScore(req.Teamwork, req.Overall),
		Sportsmanship: defaultScore(req.Sportsmanship, req.Overall),
		Review:        req.Review,
		CreatedAt:     time.Now(),
	}
	if err := s.Ratings.PutRating(ctx, rating); err != nil {
		return nil, nil, fmt.Errorf("failed to store rating: %w", err)
	}

	summary, err := s.Summary(ctx, rated.ID)
	if err != nil {
		return nil, nil, err
	}
	if rated.Stats == nil {
		rated.Stats = &models.PlayerStats{}
	}
	rated.Stats.AverageRating = summary.AverageRating
	rated.Stats.TotalRatings = summary.TotalRatings
	if err := s.Users.PutUser(ctx, rated); err != nil {
		return nil, nil, fmt.Errorf("failed to update rated user: %w", err)
	}

	s.Notifications.Notify(ctx, rated.ID, models.NotificationNewRating,
		"New Rating Received",
		fmt.Sprintf("%s rated you %d stars", rater.Name, req.Overall),
		map[string]string{"rating_id": rating.ID, "post_id": req.GameID})

	return rating, summary, nil
}

// RatingsFor returns all ratings of a user.
func (s *RatingService) RatingsFor(ctx context.Context, userID string) ([]models.Rating, error) {
	ratings, err := s.Ratings.ListRatingsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

// Summary recomputes a user's aggregate from stored ratings.
func (s *RatingService) Summary(ctx context.Context, userID string) (*RatingSummary, error) {
	ratings, err := s.Ratings.ListRatingsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	summary := &RatingSummary{TotalRatings: len(ratings)}
	if len(ratings) == 0 {
		return summary, nil
	}
	total := 0
	for _, r := range ratings {
		total += r.Overall
	}
	summary.AverageRating = float64(total) / float64(len(ratings))
	return summary, nil
}

func defaultScore(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
