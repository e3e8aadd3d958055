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

// TurfService manages bookable venues and their hourly slots.
type TurfService struct {
	Turfs         TurfStore
	Users         UserStore
	Notifications *NotificationService
}

// NewTurfService wires the stores.
func NewTurfService(turfs TurfStore, users UserStore, notifications *NotificationService) *TurfService {
	return &TurfService{Turfs: turfs, Users: users, Notifications: notifications}
}

// CreateTurfRequest carries the fields accepted when listing a turf.
type CreateTurfRequest struct {
	OwnerID    string             `json:"owner_id"`
	Name       string             `json:"name"`
	Location   models.Location    `json:"location"`
	Sports     []string           `json:"sports"`
	Facilities []string           `json:"facilities"`
	Pricing    models.TurfPricing `json:"pricing"`
	Timings    models.TurfTimings `json:"timings"`
}

// CreateTurf lists a new venue. Only turf-owner accounts may create turfs.
func (s *TurfService) CreateTurf(ctx context.Context, req CreateTurfRequest) (*models.Turf, error) {
	if req.Name == "" || len(req.Sports) == 0 {
		return nil, fmt.Errorf("name and sports are required: %w", ErrValidation)
	}
	if req.Location.Lat == 0 && req.Location.Lng == 0 {
		return nil, fmt.Errorf("location must include lat and lng: %w", ErrValidation)
	}
	if req.Pricing.PerHour <= 0 {
		return nil, fmt.Errorf("pricing must include per_hour rate: %w", ErrValidation)
	}
	if req.Timings.Opening == "" || req.Timings.Closing == "" {
		return nil, fmt.Errorf("timings must include opening and closing times: %w", ErrValidation)
	}

	owner, err := s.Users.GetUser(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %s: %w", req.OwnerID, ErrNotFound)
	}
	if owner.Role != models.RoleTurfOwner {
		return nil, fmt.Errorf("only turf owners can create turfs: %w", ErrForbidden)
	}

	turf := &models.Turf{
		ID:         uuid.New().String(),
		OwnerID:    owner.ID,
		OwnerName:  owner.Name,
		Name:       req.Name,
		Location:   req.Location,
		Sports:     req.Sports,
		Facilities: req.Facilities,
		Pricing:    req.Pricing,
		Timings:    req.Timings,
		Status:     "active",
		CreatedAt:  time.Now(),
	}
	if turf.Pricing.Currency == "" {
		turf.Pricing.Currency = "INR"
	}
	if err := s.Turfs.PutTurf(ctx, turf); err != nil {
		return nil, fmt.Errorf("failed to store turf: %w", err)
	}

	if owner.Business != nil {
		owner.Business.TotalTurfs++
		if err := s.Users.PutUser(ctx, owner); err != nil {
			log.Printf("⚠️ Failed to update owner stats for %s: %v", owner.ID, err)
		}
	}
	return turf, nil
}

// GetTurf returns a turf or ErrNotFound.
func (s *TurfService) GetTurf(ctx context.Context, id string) (*models.Turf, error) {
	turf, err := s.Turfs.GetTurf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up turf: %w", err)
	}
	if turf == nil {
		return nil, fmt.Errorf("turf %s: %w", id, ErrNotFound)
	}
	return turf, nil
}

// ownedTurf loads the turf and verifies ownership.
func (s *TurfService) ownedTurf(ctx context.Context, turfID, ownerID string) (*models.Turf, error) {
	turf, err := s.GetTurf(ctx, turfID)
	if err != nil {
		return nil, err
	}
	if turf.OwnerID != ownerID {
		return nil, fmt.Errorf("only the owner can modify this turf: %w", ErrForbidden)
	}
	return turf, nil
}

// UpdateTurfRequest carries the optional update fields.
type UpdateTurfRequest struct {
	Name       *string             `json:"name"`
	Location   *models.Location    `json:"location"`
	Sports     []string            `json:"sports"`
	Facilities []string            `json:"facilities"`
	Pricing    *models.TurfPricing `json:"pricing"`
	Timings    *models.TurfTimings `json:"timings"`
	Status     *string             `json:"status"`
}

// UpdateTurf applies the non-nil fields. Owner only.
func (s *TurfService) UpdateTurf(ctx context.Context, turfID, ownerID string, req UpdateTurfRequest) (*models.Turf, error) {
	turf, err := s.ownedTurf(ctx, turfID, ownerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		turf.Name = *req.Name
	}
	if req.Location != nil {
		turf.Location = *req.Location
	}
	if req.Sports != nil {
		turf.Sports = req.Sports
	}
	if req.Facilities != nil {
		turf.Facilities = req.Facilities
	}
	if req.Pricing != nil {
		turf.Pricing = *req.Pricing
	}
	if req.Timings != nil {
		turf.Timings = *req.Timings
	}
	if req.Status != nil {
		turf.Status = *req.Status
	}
	if err := s.Turfs.PutTurf(ctx, turf); err != nil {
		return nil, fmt.Errorf("failed to store turf: %w", err)
	}
	return turf, nil
}

// DeleteTurf removes a turf. Owner only.
func (s *TurfService) DeleteTurf(ctx context.Context, turfID, ownerID string) error {
	turf, err := s.ownedTurf(ctx, turfID, ownerID)
	if err != nil {
		return err
	}
	if err := s.Turfs.DeleteTurf(ctx, turf.ID); err != nil {
		return fmt.Errorf("failed to delete turf: %w", err)
	}

	owner, err := s.Users.GetUser(ctx, ownerID)
	if err == nil && owner != nil && owner.Business != nil && owner.Business.TotalTurfs > 0 {
		owner.Business.TotalTurfs--
		if err := s.Users.PutUser(ctx, owner); err != nil {
			log.Printf("⚠️ Failed to update owner stats for %s: %v", owner.ID, err)
		}
	}
	return nil
}

// OwnerTurfs lists a turf owner's venues.
func (s *TurfService) OwnerTurfs(ctx context.Context, ownerID string) ([]models.Turf, error) {
	turfs, err := s.Turfs.ListTurfs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list turfs: %w", err)
	}
	owned := turfs[:0]
	for _, t := range turfs {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// NearbyTurf is a turf annotated with its distance from a query origin.
type NearbyTurf struct {
	models.Turf
	DistanceKm float64 `json:"distance_km"`
}

// NearbyTurfs returns active turfs within radiusKm of the origin, closest
// first, optionally restricted to turfs listing the sport.
func (s *TurfService) NearbyTurfs(ctx context.Context, lat, lng, radiusKm float64, sport string) ([]NearbyTurf, error) {
	turfs, err := s.Turfs.ListTurfs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list turfs: %w", err)
	}

	eligible := make([]models.Turf, 0, len(turfs))
	for _, t := range turfs {
		if t.Status != "active" {
			continue
		}
		if sport != "" && !t.SupportsSport(sport) {
			continue
		}
		eligible = append(eligible, t)
	}

	candidates := make([]utils.GeoCandidate, len(eligible))
	for i, t := range eligible {
		candidates[i] = utils.GeoCandidate{Lat: t.Location.Lat, Lng: t.Location.Lng}
	}

	matches := utils.Nearby(lat, lng, candidates, radiusKm, "")
	nearby := make([]NearbyTurf, 0, len(matches))
	for _, m := range matches {
		nearby = append(nearby, NearbyTurf{
			Turf:       eligible[m.Index],
			DistanceKm: utils.RoundKm(m.DistanceKm),
		})
	}
	return nearby, nil
}

// Availability returns the free hourly slots of a turf for a date.
func (s *TurfService) Availability(ctx context.Context, turfID, date string) ([]string, error) {
	turf, err := s.GetTurf(ctx, turfID)
	if err != nil {
		return nil, err
	}

	open, err := parseHour(turf.Timings.Opening)
	if err != nil {
		return nil, fmt.Errorf("bad opening time %q: %w", turf.Timings.Opening, ErrValidation)
	}
	closing, err := parseHour(turf.Timings.Closing)
	if err != nil {
		return nil, fmt.Errorf("bad closing time %q: %w", turf.Timings.Closing, ErrValidation)
	}

	booked := make(map[string]bool)
	for _, b := range turf.Bookings {
		if b.Date == date {
			booked[b.TimeSlot] = true
		}
	}

	var slots []string
	for h := open; h < closing; h++ {
		slot := fmt.Sprintf("%02d:00-%02d:00", h, h+1)
		if !booked[slot] {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// BookSlotRequest carries a slot booking.
type BookSlotRequest struct {
	UserID   string `json:"user_id"`
	GroupID  string `json:"group_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// BookSlot reserves an hourly slot. A slot already taken for that date is a
// Conflict.
func (s *TurfService) BookSlot(ctx context.Context, turfID string, req BookSlotRequest) (*models.TurfBooking, error) {
	if req.Date == "" || req.TimeSlot == "" {
		return nil, fmt.Errorf("date and time_slot are required: %w", ErrValidation)
	}
	user, err := s.Users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, ErrNotFound)
	}
	turf, err := s.GetTurf(ctx, turfID)
	if err != nil {
		return nil, err
	}

	for _, b := range turf.Bookings {
		if b.Date == req.Date && b.TimeSlot == req.TimeSlot {
			return nil, fmt.Errorf("time slot already booked: %w", ErrConflict)
		}
	}

	booking := models.TurfBooking{
		ID:       uuid.New().String(),
		GroupID:  req.GroupID,
		UserID:   user.ID,
		UserName: user.Name,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		BookedAt: time.Now(),
	}
	turf.Bookings = append(turf.Bookings, booking)
	if err := s.Turfs.PutTurf(ctx, turf); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	s.Notifications.Notify(ctx, user.ID, models.NotificationTurfBooked,
		"Turf Booked! 🏟️",
		fmt.Sprintf("Your turf booking is confirmed for %s at %s", req.Date, req.TimeSlot),
		map[string]string{"turf_id": turfID, "booking_id": booking.ID})

	return &booking, nil
}

// CancelBooking removes a booking. Only the booker or the turf owner may
// cancel.
func (s *TurfService) CancelBooking(ctx context.Context, turfID, bookingID, userID string) error {
	turf, err := s.GetTurf(ctx, turfID)
	if err != nil {
		return err
	}

	for i, b := range turf.Bookings {
		if b.ID != bookingID {
			continue
		}
		if b.UserID != userID && turf.OwnerID != userID {
			return fmt.Errorf("only the booker or turf owner can cancel: %w", ErrForbidden)
		}
		turf.Bookings = append(turf.Bookings[:i], turf.Bookings[i+1:]...)
		if err := s.Turfs.PutTurf(ctx, turf); err != nil {
			return fmt.Errorf("failed to store turf: %w", err)
		}
		return nil
	}
	return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
}

func parseHour(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}
