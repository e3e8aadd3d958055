package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportmate_server/models"
)

func (f *fixture) turf(t *testing.T, owner *models.User, name string, lat, lng float64, sports ...string) *models.Turf {
	t.Helper()
	turf, err := f.turfs.CreateTurf(context.Background(), CreateTurfRequest{
		OwnerID:  owner.ID,
		Name:     name,
		Location: models.Location{Lat: lat, Lng: lng},
		Sports:   sports,
		Pricing:  models.TurfPricing{PerHour: 800},
		Timings:  models.TurfTimings{Opening: "06:00", Closing: "10:00"},
	})
	require.NoError(t, err)
	return turf
}

func TestCreateTurfOwnersOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	player := f.player(t, "alice")
	owner := f.turfOwner(t, "owner")

	_, err := f.turfs.CreateTurf(ctx, CreateTurfRequest{
		OwnerID:  player.ID,
		Name:     "Arena",
		Location: models.Location{Lat: 1, Lng: 1},
		Sports:   []string{"football"},
		Pricing:  models.TurfPricing{PerHour: 800},
		Timings:  models.TurfTimings{Opening: "06:00", Closing: "22:00"},
	})
	assert.ErrorIs(t, err, ErrForbidden)

	turf := f.turf(t, owner, "Arena", 1, 1, "football")
	assert.Equal(t, "active", turf.Status)
	assert.Equal(t, "INR", turf.Pricing.Currency)

	refreshed, err := f.users.GetUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.Business.TotalTurfs)
}

func TestUpdateAndDeleteTurf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.turfOwner(t, "owner")
	other := f.turfOwner(t, "rivalowner")
	turf := f.turf(t, owner, "Arena", 1, 1, "football")

	name := "Arena Prime"
	_, err := f.turfs.UpdateTurf(ctx, turf.ID, other.ID, UpdateTurfRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.turfs.UpdateTurf(ctx, turf.ID, owner.ID, UpdateTurfRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Arena Prime", updated.Name)

	require.NoError(t, f.turfs.DeleteTurf(ctx, turf.ID, owner.ID))
	_, err = f.turfs.GetTurf(ctx, turf.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNearbyTurfsFiltersSportAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.turfOwner(t, "owner")
	f.turf(t, owner, "Football Near", 0, 0.02, "Football")
	f.turf(t, owner, "Cricket Near", 0, 0.03, "cricket")
	f.turf(t, owner, "Football Far", 0, 0.5, "football")
	inactive := f.turf(t, owner, "Closed", 0, 0.01, "football")

	status := "inactive"
	_, err := f.turfs.UpdateTurf(ctx, inactive.ID, owner.ID, UpdateTurfRequest{Status: &status})
	require.NoError(t, err)

	turfs, err := f.turfs.NearbyTurfs(ctx, 0, 0, 10, "football")
	require.NoError(t, err)
	require.Len(t, turfs, 1)
	assert.Equal(t, "Football Near", turfs[0].Name)

	all, err := f.turfs.NearbyTurfs(ctx, 0, 0, 10, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAvailabilityAndBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.turfOwner(t, "owner")
	alice := f.player(t, "alice")
	turf := f.turf(t, owner, "Arena", 1, 1, "football")

	slots, err := f.turfs.Availability(ctx, turf.ID, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"06:00-07:00", "07:00-08:00", "08:00-09:00", "09:00-10:00"}, slots)

	booking, err := f.turfs.BookSlot(ctx, turf.ID, BookSlotRequest{
		UserID: alice.ID, Date: "2026-09-01", TimeSlot: "07:00-08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", booking.UserName)

	// The slot disappears from availability for that date only.
	slots, err = f.turfs.Availability(ctx, turf.ID, "2026-09-01")
	require.NoError(t, err)
	assert.NotContains(t, slots, "07:00-08:00")
	slots, err = f.turfs.Availability(ctx, turf.ID, "2026-09-02")
	require.NoError(t, err)
	assert.Contains(t, slots, "07:00-08:00")

	// Double booking the same slot is a conflict.
	bob := f.player(t, "bob")
	_, err = f.turfs.BookSlot(ctx, turf.ID, BookSlotRequest{
		UserID: bob.ID, Date: "2026-09-01", TimeSlot: "07:00-08:00",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.turfOwner(t, "owner")
	alice := f.player(t, "alice")
	mallory := f.player(t, "mallory")
	turf := f.turf(t, owner, "Arena", 1, 1, "football")

	booking, err := f.turfs.BookSlot(ctx, turf.ID, BookSlotRequest{
		UserID: alice.ID, Date: "2026-09-01", TimeSlot: "08:00-09:00",
	})
	require.NoError(t, err)

	// Only the booker or the turf owner may cancel.
	err = f.turfs.CancelBooking(ctx, turf.ID, booking.ID, mallory.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.turfs.CancelBooking(ctx, turf.ID, booking.ID, alice.ID))

	err = f.turfs.CancelBooking(ctx, turf.ID, booking.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
