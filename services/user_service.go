package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"sportmate_server/models"
)

// UserService handles registration, login and profile maintenance.
type UserService struct {
	Store UserStore
}

// NewUserService wires the store.
func NewUserService(store UserStore) *UserService {
	return &UserService{Store: store}
}

// RegisterRequest carries the fields accepted at registration.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Avatar          string `json:"avatar"`
	Bio             string `json:"bio"`
	SkillLevel      string `json:"skill_level"`
	Position        string `json:"preferred_position"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	ContactPerson   string `json:"contact_person"`
}

// Register creates a player or turf-owner account with a bcrypt-hashed
// password and a unique email.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return nil, fmt.Errorf("name, email and phone are required: %w", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters long: %w", ErrValidation)
	}

	existing, err := s.Store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	role := req.Role
	if role == "" {
		role = models.RolePlayer
	}
	if role != models.RolePlayer && role != models.RoleTurfOwner {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}

	switch role {
	case models.RolePlayer:
		user.Profile = &models.PlayerProfile{
			Avatar:            req.Avatar,
			Bio:               req.Bio,
			SkillLevel:        defaultString(req.SkillLevel, "beginner"),
			PreferredPosition: req.Position,
			Age:               req.Age,
			Gender:            req.Gender,
		}
		user.Stats = &models.PlayerStats{}
	case models.RoleTurfOwner:
		if req.BusinessName == "" {
			return nil, fmt.Errorf("business name is required for turf owners: %w", ErrValidation)
		}
		if req.BusinessAddress == "" {
			return nil, fmt.Errorf("business address is required for turf owners: %w", ErrValidation)
		}
		user.Business = &models.Business{
			BusinessName:    req.BusinessName,
			BusinessAddress: req.BusinessAddress,
			ContactPerson:   defaultString(req.ContactPerson, req.Name),
		}
	}

	if err := s.Store.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	log.Printf("✅ Registered %s %s (%s)", role, user.Name, user.ID)
	return user, nil
}

// Login checks the email/password pair and returns the account.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}
	user, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrForbidden)
	}
	return user, nil
}

// GetUser returns the account or ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

// ProfileUpdate carries the optional profile fields; nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Avatar     *string `json:"avatar"`
	Bio        *string `json:"bio"`
	SkillLevel *string `json:"skill_level"`
	Position   *string `json:"preferred_position"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
}

// UpdateProfile applies the non-nil fields to a player profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		user.Profile = &models.PlayerProfile{}
	}
	if update.Avatar != nil {
		user.Profile.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		user.Profile.Bio = *update.Bio
	}
	if update.SkillLevel != nil {
		user.Profile.SkillLevel = *update.SkillLevel
	}
	if update.Position != nil {
		user.Profile.PreferredPosition = *update.Position
	}
	if update.Age != nil {
		user.Profile.Age = *update.Age
	}
	if update.Gender != nil {
		user.Profile.Gender = *update.Gender
	}
	if err := s.Store.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	return user, nil
}

// adjustStats applies fn to the user's stats, fire-and-forget. Lifecycle
// operations never fail because a counter could not be bumped.
func (s *UserService) adjustStats(ctx context.Context, userID string, fn func(*models.PlayerStats)) {
	user, err := s.Store.GetUser(ctx, userID)
	if err != nil || user == nil {
		return
	}
	if user.Stats == nil {
		user.Stats = &models.PlayerStats{}
	}
	fn(user.Stats)
	if err := s.Store.PutUser(ctx, user); err != nil {
		log.Printf("⚠️ Failed to update stats for user %s: %v", userID, err)
	}
}

// RecordGamePlayed bumps the games-played counter.
func (s *UserService) RecordGamePlayed(ctx context.Context, userID string) {
	s.adjustStats(ctx, userID, func(st *models.PlayerStats) { st.GamesPlayed++ })
}

// RecordGameOrganized bumps both counters for a creator.
func (s *UserService) RecordGameOrganized(ctx context.Context, userID string) {
	s.adjustStats(ctx, userID, func(st *models.PlayerStats) {
		st.GamesOrganized++
		st.GamesPlayed++
	})
}

// RecordGameLeft decrements the games-played counter, never below zero.
func (s *UserService) RecordGameLeft(ctx context.Context, userID string) {
	s.adjustStats(ctx, userID, func(st *models.PlayerStats) {
		if st.GamesPlayed > 0 {
			st.GamesPlayed--
		}
	})
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
