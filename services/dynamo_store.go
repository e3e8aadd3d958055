package services

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"sportmate_server/models"
	"sportmate_server/utils"
)

// DynamoStore implements Store on DynamoDB, one table per entity.
type DynamoStore struct {
	Dynamo *DynamoService
}

// NewDynamoStore wraps a DynamoService as a Store.
func NewDynamoStore(dynamo *DynamoService) *DynamoStore {
	return &DynamoStore{Dynamo: dynamo}
}

// ---- users ----

func (s *DynamoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	found, err := s.Dynamo.GetItemByID(ctx, models.UsersTable, id, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (s *DynamoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	err := s.Dynamo.ScanWithFilter(ctx, models.UsersTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "email") == email
	}, &users)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func (s *DynamoStore) PutUser(ctx context.Context, user *models.User) error {
	return s.Dynamo.PutItem(ctx, models.UsersTable, user)
}

// ---- games ----

func (s *DynamoStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	found, err := s.Dynamo.GetItemByID(ctx, models.GamesTable, id, &game)
	if err != nil || !found {
		return nil, err
	}
	return &game, nil
}

func (s *DynamoStore) PutGame(ctx context.Context, game *models.Game) error {
	return s.Dynamo.PutItem(ctx, models.GamesTable, game)
}

func (s *DynamoStore) DeleteGame(ctx context.Context, id string) error {
	return s.Dynamo.DeleteItemByID(ctx, models.GamesTable, id)
}

func (s *DynamoStore) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.Dynamo.ScanAll(ctx, models.GamesTable, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ---- groups ----

func (s *DynamoStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	found, err := s.Dynamo.GetItemByID(ctx, models.GroupsTable, id, &group)
	if err != nil || !found {
		return nil, err
	}
	return &group, nil
}

func (s *DynamoStore) PutGroup(ctx context.Context, group *models.Group) error {
	return s.Dynamo.PutItem(ctx, models.GroupsTable, group)
}

func (s *DynamoStore) DeleteGroup(ctx context.Context, id string) error {
	return s.Dynamo.DeleteItemByID(ctx, models.GroupsTable, id)
}

func (s *DynamoStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := s.Dynamo.ScanAll(ctx, models.GroupsTable, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ---- turfs ----

func (s *DynamoStore) GetTurf(ctx context.Context, id string) (*models.Turf, error) {
	var turf models.Turf
	found, err := s.Dynamo.GetItemByID(ctx, models.TurfsTable, id, &turf)
	if err != nil || !found {
		return nil, err
	}
	return &turf, nil
}

func (s *DynamoStore) PutTurf(ctx context.Context, turf *models.Turf) error {
	return s.Dynamo.PutItem(ctx, models.TurfsTable, turf)
}

func (s *DynamoStore) DeleteTurf(ctx context.Context, id string) error {
	return s.Dynamo.DeleteItemByID(ctx, models.TurfsTable, id)
}

func (s *DynamoStore) ListTurfs(ctx context.Context) ([]models.Turf, error) {
	var turfs []models.Turf
	if err := s.Dynamo.ScanAll(ctx, models.TurfsTable, &turfs); err != nil {
		return nil, err
	}
	return turfs, nil
}

// ---- friends ----

func (s *DynamoStore) GetFriendRequest(ctx context.Context, id string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	found, err := s.Dynamo.GetItemByID(ctx, models.FriendRequestsTable, id, &request)
	if err != nil || !found {
		return nil, err
	}
	return &request, nil
}

func (s *DynamoStore) GetFriendRequestBetween(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.Dynamo.ScanWithFilter(ctx, models.FriendRequestsTable, func(item map[string]types.AttributeValue) bool {
		from := utils.ExtractString(item, "fromUserId")
		to := utils.ExtractString(item, "toUserId")
		return (from == a && to == b) || (from == b && to == a)
	}, &requests)
	if err != nil || len(requests) == 0 {
		return nil, err
	}
	return &requests[0], nil
}

func (s *DynamoStore) PutFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.Dynamo.PutItem(ctx, models.FriendRequestsTable, request)
}

func (s *DynamoStore) ListFriendRequestsFor(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.Dynamo.ScanWithFilter(ctx, models.FriendRequestsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "fromUserId") == userID ||
			utils.ExtractString(item, "toUserId") == userID
	}, &requests)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ---- ratings ----

func (s *DynamoStore) PutRating(ctx context.Context, rating *models.Rating) error {
	return s.Dynamo.PutItem(ctx, models.RatingsTable, rating)
}

func (s *DynamoStore) ListRatingsFor(ctx context.Context, ratedUserID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.Dynamo.ScanWithFilter(ctx, models.RatingsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "ratedUserId") == ratedUserID
	}, &ratings)
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *DynamoStore) GetRating(ctx context.Context, gameID, raterID, ratedUserID string) (*models.Rating, error) {
	var ratings []models.Rating
	err := s.Dynamo.ScanWithFilter(ctx, models.RatingsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "gameId") == gameID &&
			utils.ExtractString(item, "raterId") == raterID &&
			utils.ExtractString(item, "ratedUserId") == ratedUserID
	}, &ratings)
	if err != nil || len(ratings) == 0 {
		return nil, err
	}
	return &ratings[0], nil
}

// ---- notifications ----

func (s *DynamoStore) PutNotification(ctx context.Context, notification *models.Notification) error {
	return s.Dynamo.PutItem(ctx, models.NotificationsTable, notification)
}

func (s *DynamoStore) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	found, err := s.Dynamo.GetItemByID(ctx, models.NotificationsTable, id, &notification)
	if err != nil || !found {
		return nil, err
	}
	return &notification, nil
}

func (s *DynamoStore) ListNotificationsFor(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.Dynamo.ScanWithFilter(ctx, models.NotificationsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "userId") == userID
	}, &notifications)
	if err != nil {
		return nil, err
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// ---- messages ----

func (s *DynamoStore) PutMessage(ctx context.Context, message *models.ChatMessage) error {
	return s.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

func (s *DynamoStore) ListGroupMessages(ctx context.Context, groupID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.Dynamo.ScanWithFilter(ctx, models.MessagesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "groupId") == groupID
	}, &messages)
	if err != nil {
		return nil, err
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

func (s *DynamoStore) ListDirectMessages(ctx context.Context, userA, userB string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.Dynamo.ScanWithFilter(ctx, models.MessagesTable, func(item map[string]types.AttributeValue) bool {
		sender := utils.ExtractString(item, "senderId")
		recipient := utils.ExtractString(item, "recipientId")
		return (sender == userA && recipient == userB) || (sender == userB && recipient == userA)
	}, &messages)
	if err != nil {
		return nil, err
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
