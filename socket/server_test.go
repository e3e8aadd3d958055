package socket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportmate_server/models"
	"sportmate_server/services"
)

func TestIsMemberGatesRoomEvents(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	groupService := services.NewGroupService(store, store, store,
		services.NewNotificationService(store), services.NewKeyedMutex())

	require.NoError(t, store.PutGroup(ctx, &models.Group{
		ID:        "g1",
		OwnerID:   "owner",
		OwnerName: "Owner",
		Members:   []models.GroupMember{{UserID: "member", UserName: "Member"}},
	}))

	assert.True(t, isMember(groupService, "g1", "owner"))
	assert.True(t, isMember(groupService, "g1", "member"))
	assert.False(t, isMember(groupService, "g1", "stranger"))
	assert.False(t, isMember(groupService, "missing", "owner"))
}
