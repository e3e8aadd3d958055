package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportmate_server/models"
)

func TestRegisterPlayer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "5550001",
		Password: "secret123",
		Bio:      "weekend striker",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RolePlayer, user.Role)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "beginner", user.Profile.SkillLevel)
	require.NotNil(t, user.Stats)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// Duplicate email bounces.
	_, err = f.users.Register(ctx, RegisterRequest{
		Name: "Alice2", Email: "alice@example.com", Phone: "5550009", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterTurfOwnerNeedsBusiness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, RegisterRequest{
		Name: "Owner", Email: "owner@example.com", Phone: "5550002",
		Password: "secret123", Role: models.RoleTurfOwner,
	})
	assert.ErrorIs(t, err, ErrValidation)

	owner, err := f.users.Register(ctx, RegisterRequest{
		Name: "Owner", Email: "owner@example.com", Phone: "5550002",
		Password: "secret123", Role: models.RoleTurfOwner,
		BusinessName: "Owner Sports", BusinessAddress: "12 Stadium Road",
	})
	require.NoError(t, err)
	require.NotNil(t, owner.Business)
	assert.Equal(t, "Owner", owner.Business.ContactPerson)
	assert.Nil(t, owner.Profile)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, RegisterRequest{Name: "x", Email: "x@example.com", Phone: "1", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.users.Register(ctx, RegisterRequest{Email: "x@example.com", Phone: "1", Password: "secret123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.users.Register(ctx, RegisterRequest{Name: "x", Email: "x@example.com", Phone: "1", Password: "secret123", Role: "admin"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.player(t, "alice")

	user, err := f.users.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)

	_, err = f.users.Login(ctx, "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.users.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")

	bio := "midfielder"
	skill := "advanced"
	updated, err := f.users.UpdateProfile(ctx, alice.ID, ProfileUpdate{Bio: &bio, SkillLevel: &skill})
	require.NoError(t, err)
	assert.Equal(t, "midfielder", updated.Profile.Bio)
	assert.Equal(t, "advanced", updated.Profile.SkillLevel)

	_, err = f.users.UpdateProfile(ctx, "missing", ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.player(t, "alice")

	f.users.RecordGamePlayed(ctx, alice.ID)
	f.users.RecordGameOrganized(ctx, alice.ID)
	f.users.RecordGameLeft(ctx, alice.ID)

	user, err := f.users.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.Stats.GamesPlayed)
	assert.Equal(t, 1, user.Stats.GamesOrganized)

	// Never below zero.
	f.users.RecordGameLeft(ctx, alice.ID)
	f.users.RecordGameLeft(ctx, alice.ID)
	user, err = f.users.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, user.Stats.GamesPlayed)
}
