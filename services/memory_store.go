package services

import (
	"context"
	"sort"
	"sync"

	"sportmate_server/models"
)

// MemoryStore implements Store on in-process maps. It backs STORAGE=memory
// for local development and the test suite. Every read hands out a copy so a
// caller can never mutate a stored record without going through Put.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]models.User
	games         map[string]models.Game
	groups        map[string]models.Group
	turfs         map[string]models.Turf
	friends       map[string]models.FriendRequest
	ratings       map[string]models.Rating
	notifications map[string]models.Notification
	messages      map[string]models.ChatMessage
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]models.User),
		games:         make(map[string]models.Game),
		groups:        make(map[string]models.Group),
		turfs:         make(map[string]models.Turf),
		friends:       make(map[string]models.FriendRequest),
		ratings:       make(map[string]models.Rating),
		notifications: make(map[string]models.Notification),
		messages:      make(map[string]models.ChatMessage),
	}
}

func copyGame(g models.Game) models.Game {
	out := g
	out.AcceptedPlayers = append([]models.AcceptedPlayer(nil), g.AcceptedPlayers...)
	out.PendingRequests = append([]models.PendingRequest(nil), g.PendingRequests...)
	return out
}

func copyGroup(g models.Group) models.Group {
	out := g
	out.Members = append([]models.GroupMember(nil), g.Members...)
	if g.BookedAt != nil {
		t := *g.BookedAt
		out.BookedAt = &t
	}
	if g.ExpiresAt != nil {
		t := *g.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}

func copyTurf(t models.Turf) models.Turf {
	out := t
	out.Sports = append([]string(nil), t.Sports...)
	out.Facilities = append([]string(nil), t.Facilities...)
	out.Bookings = append([]models.TurfBooking(nil), t.Bookings...)
	return out
}

func copyUser(u models.User) models.User {
	out := u
	if u.Profile != nil {
		p := *u.Profile
		out.Profile = &p
	}
	if u.Stats != nil {
		s := *u.Stats
		out.Stats = &s
	}
	if u.Business != nil {
		b := *u.Business
		out.Business = &b
	}
	return out
}

func copyNotification(n models.Notification) models.Notification {
	out := n
	if n.Data != nil {
		out.Data = make(map[string]string, len(n.Data))
		for k, v := range n.Data {
			out.Data[k] = v
		}
	}
	return out
}

// ---- users ----

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := copyUser(u)
	return &out, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := copyUser(u)
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) PutUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = copyUser(*user)
	return nil
}

// ---- games ----

func (s *MemoryStore) GetGame(_ context.Context, id string) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	out := copyGame(g)
	return &out, nil
}

func (s *MemoryStore) PutGame(_ context.Context, game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = copyGame(*game)
	return nil
}

func (s *MemoryStore) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *MemoryStore) ListGames(_ context.Context) ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]models.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, copyGame(g))
	}
	sort.Slice(games, func(i, j int) bool { return games[i].CreatedAt.Before(games[j].CreatedAt) })
	return games, nil
}

// ---- groups ----

func (s *MemoryStore) GetGroup(_ context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	out := copyGroup(g)
	return &out, nil
}

func (s *MemoryStore) PutGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.ID] = copyGroup(*group)
	return nil
}

func (s *MemoryStore) DeleteGroup(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.groups, id)
	return nil
}

func (s *MemoryStore) ListGroups(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, copyGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.Before(groups[j].CreatedAt) })
	return groups, nil
}

// ---- turfs ----

func (s *MemoryStore) GetTurf(_ context.Context, id string) (*models.Turf, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.turfs[id]
	if !ok {
		return nil, nil
	}
	out := copyTurf(t)
	return &out, nil
}

func (s *MemoryStore) PutTurf(_ context.Context, turf *models.Turf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turfs[turf.ID] = copyTurf(*turf)
	return nil
}

func (s *MemoryStore) DeleteTurf(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turfs, id)
	return nil
}

func (s *MemoryStore) ListTurfs(_ context.Context) ([]models.Turf, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turfs := make([]models.Turf, 0, len(s.turfs))
	for _, t := range s.turfs {
		turfs = append(turfs, copyTurf(t))
	}
	sort.Slice(turfs, func(i, j int) bool { return turfs[i].CreatedAt.Before(turfs[j].CreatedAt) })
	return turfs, nil
}

// ---- friends ----

func (s *MemoryStore) GetFriendRequest(_ context.Context, id string) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.friends[id]
	if !ok {
		return nil, nil
	}
	out := r
	return &out, nil
}

func (s *MemoryStore) GetFriendRequestBetween(_ context.Context, a, b string) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.friends {
		if (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a) {
			out := r
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) PutFriendRequest(_ context.Context, request *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.friends[request.ID] = *request
	return nil
}

func (s *MemoryStore) ListFriendRequestsFor(_ context.Context, userID string) ([]models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var requests []models.FriendRequest
	for _, r := range s.friends {
		if r.FromUserID == userID || r.ToUserID == userID {
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.Before(requests[j].CreatedAt) })
	return requests, nil
}

// ---- ratings ----

func (s *MemoryStore) PutRating(_ context.Context, rating *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[rating.ID] = *rating
	return nil
}

func (s *MemoryStore) ListRatingsFor(_ context.Context, ratedUserID string) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ratings []models.Rating
	for _, r := range s.ratings {
		if r.RatedUserID == ratedUserID {
			ratings = append(ratings, r)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].CreatedAt.Before(ratings[j].CreatedAt) })
	return ratings, nil
}

func (s *MemoryStore) GetRating(_ context.Context, gameID, raterID, ratedUserID string) (*models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.ratings {
		if r.GameID == gameID && r.RaterID == raterID && r.RatedUserID == ratedUserID {
			out := r
			return &out, nil
		}
	}
	return nil, nil
}

// ---- notifications ----

func (s *MemoryStore) PutNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.ID] = copyNotification(*notification)
	return nil
}

func (s *MemoryStore) GetNotification(_ context.Context, id string) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, nil
	}
	out := copyNotification(n)
	return &out, nil
}

func (s *MemoryStore) ListNotificationsFor(_ context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var notifications []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, copyNotification(n))
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// ---- messages ----

func (s *MemoryStore) PutMessage(_ context.Context, message *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[message.ID] = *message
	return nil
}

func (s *MemoryStore) ListGroupMessages(_ context.Context, groupID string, limit int) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []models.ChatMessage
	for _, m := range s.messages {
		if m.GroupID == groupID {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

func (s *MemoryStore) ListDirectMessages(_ context.Context, userA, userB string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []models.ChatMessage
	for _, m := range s.messages {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	return messages, nil
}
