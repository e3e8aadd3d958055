package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"sportmate_server/models"
	"sportmate_server/utils"
)

// BookingTTL is how long a group survives after its turf is booked.
const BookingTTL = 6 * time.Hour

// Merge policy: two unbooked groups merge when their games carry the same
// sport, the game locations are within MergeRadiusKm, and each side counts at
// least MergeMinMembers people including the owner. The group whose game was
// created earlier absorbs the other.
const (
	MergeRadiusKm   = 10.0
	MergeMinMembers = 9
)

// GroupService owns the group side of the lifecycle: venue booking, member
// removal, expiry sweeps and compatible-group merging. It shares the keyed
// lock table with GameService so that every mutation of a game/group pair is
// serialized on the game id.
type GroupService struct {
	Groups        GroupStore
	Games         GameStore
	Users         UserStore
	Notifications *NotificationService

	locks *KeyedMutex
	// Now is the clock used for booking and expiry; tests override it.
	Now func() time.Time
}

// NewGroupService wires the stores and the shared lock table.
func NewGroupService(groups GroupStore, games GameStore, users UserStore, notifications *NotificationService, locks *KeyedMutex) *GroupService {
	return &GroupService{
		Groups:        groups,
		Games:         games,
		Users:         users,
		Notifications: notifications,
		locks:         locks,
		Now:           time.Now,
	}
}

// GetGroup returns a group or ErrNotFound.
func (s *GroupService) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.Groups.GetGroup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	return group, nil
}

// UserGroups lists the groups the user owns or belongs to.
func (s *GroupService) UserGroups(ctx context.Context, userID string) ([]models.Group, error) {
	groups, err := s.Groups.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	mine := groups[:0]
	for _, g := range groups {
		if g.HasMember(userID) {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

// CountActiveGroups counts the groups the user owns or belongs to. Callers
// enforcing the 3-group cap must hold the user's lock around the count and
// the subsequent write.
func (s *GroupService) CountActiveGroups(ctx context.Context, userID string) (int, error) {
	groups, err := s.UserGroups(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(groups), nil
}

// lockKeyFor picks the serialization key for a group: the bound game id, or
// the group id for a group whose game is already gone.
func lockKeyFor(group *models.Group) string {
	if group.GameID != "" {
		return gameKey(group.GameID)
	}
	return "group:" + group.ID
}

// BookTurf records a venue booking on the group and arms the six-hour expiry
// timer. Owner only. Rebooking replaces the previous booking and restarts
// the timer.
func (s *GroupService) BookTurf(ctx context.Context, groupID, userID, turfName, turfAddress string) (*models.Group, error) {
	if turfName == "" || turfAddress == "" {
		return nil, fmt.Errorf("turf_name and turf_address are required: %w", ErrValidation)
	}

	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	key := lockKeyFor(group)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	// Reload under the lock; the snapshot above only located the key.
	group, err = s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, fmt.Errorf("only the group owner can book a turf: %w", ErrForbidden)
	}

	now := s.Now()
	expires := now.Add(BookingTTL)
	group.TurfName = turfName
	group.TurfAddress = turfAddress
	group.BookedAt = &now
	group.ExpiresAt = &expires

	if err := s.Groups.PutGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to store group: %w", err)
	}

	for _, m := range group.Members {
		s.Notifications.Notify(ctx, m.UserID, models.NotificationTurfBooked,
			"Turf Booked! 🏟️",
			fmt.Sprintf("%s booked %s for your group", group.OwnerName, turfName),
			map[string]string{"group_id": group.ID})
	}
	log.Printf("📅 Group %s booked %s, expires at %s", group.ID, turfName, expires.Format(time.RFC3339))
	return group, nil
}

// RemoveMember takes a non-owner member out of the group and mirrors the
// removal into the bound game's accepted roster. The owner cannot be removed
// through this path, and an emptied group is not auto-deleted here; only the
// game-driven removal path deletes on emptiness.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	key := lockKeyFor(group)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	group, err = s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID == userID {
		return nil, fmt.Errorf("group owner cannot leave; the group is removed on game deletion or booking expiry: %w", ErrForbidden)
	}

	found := false
	for i, m := range group.Members {
		if m.UserID == userID {
			group.Members = append(group.Members[:i], group.Members[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("user %s is not a member of group %s: %w", userID, groupID, ErrNotFound)
	}
	if err := s.Groups.PutGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to store group: %w", err)
	}

	// Keep the game's roster in lockstep.
	if group.GameID != "" {
		game, err := s.Games.GetGame(ctx, group.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up bound game: %w", err)
		}
		if game != nil {
			for i, p := range game.AcceptedPlayers {
				if p.UserID == userID {
					game.AcceptedPlayers = append(game.AcceptedPlayers[:i], game.AcceptedPlayers[i+1:]...)
					break
				}
			}
			game.RecomputeStatus()
			if err := s.Games.PutGame(ctx, game); err != nil {
				return nil, fmt.Errorf("failed to store bound game: %w", err)
			}
		}
	}
	return group, nil
}

// ExpireSweep deletes every booked group whose deadline has elapsed and
// clears the binding on the game, which stays in the live set. A failure on
// one group never aborts the rest; failures are collected into the returned
// error.
func (s *GroupService) ExpireSweep(ctx context.Context) (int, error) {
	groups, err := s.Groups.ListGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list groups: %w", err)
	}

	now := s.Now()
	removed := 0
	var errs error
	for i := range groups {
		g := &groups[i]
		if g.ExpiresAt == nil || g.ExpiresAt.After(now) {
			continue
		}
		if err := s.expireOne(ctx, g.ID); err != nil {
			log.Printf("⚠️ Failed to expire group %s: %v", g.ID, err)
			errs = multierr.Append(errs, err)
			continue
		}
		removed++
	}
	return removed, errs
}

func (s *GroupService) expireOne(ctx context.Context, groupID string) error {
	group, err := s.Groups.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return nil
	}
	key := lockKeyFor(group)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	group, err = s.Groups.GetGroup(ctx, groupID)
	if err != nil || group == nil {
		return err
	}
	// Re-check under the lock; a rebooking may have pushed the deadline.
	if group.ExpiresAt == nil || group.ExpiresAt.After(s.Now()) {
		return nil
	}

	if err := s.Groups.DeleteGroup(ctx, group.ID); err != nil {
		return err
	}
	if group.GameID != "" {
		game, err := s.Games.GetGame(ctx, group.GameID)
		if err == nil && game != nil {
			game.GroupID = ""
			if err := s.Games.PutGame(ctx, game); err != nil {
				log.Printf("⚠️ Failed to unbind game %s from expired group: %v", game.ID, err)
			}
		}
	}
	log.Printf("🧹 Expired group %s (booked turf %s)", group.ID, group.TurfName)
	return nil
}

// MergedPair records one completed merge.
type MergedPair struct {
	WinnerGroupID string `json:"winner_group_id"`
	LoserGroupID  string `json:"loser_group_id"`
	Sport         string `json:"sport"`
	TotalMembers  int    `json:"total_members"`
}

// MergeCompatible scans for compatible group pairs and merges each pair into
// the group whose game is older. See the constants above for the
// compatibility predicate. Each group participates in at most one merge per
// sweep.
func (s *GroupService) MergeCompatible(ctx context.Context) ([]MergedPair, error) {
	groups, err := s.Groups.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	games := make(map[string]*models.Game)
	list, err := s.Games.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	for i := range list {
		games[list[i].ID] = &list[i]
	}

	// Only unbooked groups still bound to a live game are merge candidates.
	var candidates []*models.Group
	for i := range groups {
		g := &groups[i]
		if g.BookedAt != nil || g.GameID == "" {
			continue
		}
		if _, ok := games[g.GameID]; !ok {
			continue
		}
		candidates = append(candidates, g)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	var merged []MergedPair
	var errs error
	used := make(map[string]bool)
	for i := 0; i < len(candidates); i++ {
		if used[candidates[i].ID] {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			if used[candidates[j].ID] {
				continue
			}
			a, b := candidates[i], candidates[j]
			ga, gb := games[a.GameID], games[b.GameID]
			if !compatible(a, b, ga, gb) {
				continue
			}
			pair, err := s.mergePair(ctx, a.ID, b.ID)
			if err != nil {
				log.Printf("⚠️ Failed to merge groups %s and %s: %v", a.ID, b.ID, err)
				errs = multierr.Append(errs, err)
				continue
			}
			if pair != nil {
				merged = append(merged, *pair)
				used[a.ID] = true
				used[b.ID] = true
				break
			}
		}
	}
	return merged, errs
}

func compatible(a, b *models.Group, ga, gb *models.Game) bool {
	if !strings.EqualFold(ga.Sport, gb.Sport) {
		return false
	}
	if a.MemberCount() < MergeMinMembers || b.MemberCount() < MergeMinMembers {
		return false
	}
	d := utils.HaversineKm(ga.Location.Lat, ga.Location.Lng, gb.Location.Lat, gb.Location.Lng)
	return d <= MergeRadiusKm
}

// mergePair locks both games in id order, revalidates, and folds the younger
// game's group into the older one. Returns nil without error when the pair
// stopped being compatible between the scan and the lock.
func (s *GroupService) mergePair(ctx context.Context, groupAID, groupBID string) (*MergedPair, error) {
	a, err := s.Groups.GetGroup(ctx, groupAID)
	if err != nil || a == nil {
		return nil, err
	}
	b, err := s.Groups.GetGroup(ctx, groupBID)
	if err != nil || b == nil {
		return nil, err
	}

	keyA, keyB := lockKeyFor(a), lockKeyFor(b)
	if keyA > keyB {
		keyA, keyB = keyB, keyA
	}
	s.locks.Lock(keyA)
	defer s.locks.Unlock(keyA)
	s.locks.Lock(keyB)
	defer s.locks.Unlock(keyB)

	// Reload everything under both locks.
	a, err = s.Groups.GetGroup(ctx, groupAID)
	if err != nil || a == nil {
		return nil, err
	}
	b, err = s.Groups.GetGroup(ctx, groupBID)
	if err != nil || b == nil {
		return nil, err
	}
	ga, err := s.Games.GetGame(ctx, a.GameID)
	if err != nil || ga == nil {
		return nil, err
	}
	gb, err := s.Games.GetGame(ctx, b.GameID)
	if err != nil || gb == nil {
		return nil, err
	}
	if a.BookedAt != nil || b.BookedAt != nil || !compatible(a, b, ga, gb) {
		return nil, nil
	}

	// The older game wins; ties break on the smaller game id.
	winner, loser := a, b
	gw, gl := ga, gb
	if gb.CreatedAt.Before(ga.CreatedAt) || (gb.CreatedAt.Equal(ga.CreatedAt) && gb.ID < ga.ID) {
		winner, loser = b, a
		gw, gl = gb, ga
	}

	// Fold the losing roster into the winner, deduplicated by user id. The
	// losing owner becomes a regular member.
	present := map[string]bool{winner.OwnerID: true}
	for _, m := range winner.Members {
		present[m.UserID] = true
	}
	absorb := append([]models.GroupMember{{UserID: loser.OwnerID, UserName: loser.OwnerName}}, loser.Members...)
	for _, m := range absorb {
		if !present[m.UserID] {
			winner.Members = append(winner.Members, m)
			present[m.UserID] = true
		}
	}

	accepted := map[string]bool{}
	for _, p := range gw.AcceptedPlayers {
		accepted[p.UserID] = true
	}
	for _, p := range gl.AcceptedPlayers {
		if !accepted[p.UserID] {
			gw.AcceptedPlayers = append(gw.AcceptedPlayers, p)
			accepted[p.UserID] = true
		}
	}
	gw.PlayersNeeded += gl.PlayersNeeded
	gw.RecomputeStatus()

	if err := s.Groups.PutGroup(ctx, winner); err != nil {
		return nil, fmt.Errorf("failed to store merged group: %w", err)
	}
	if err := s.Games.PutGame(ctx, gw); err != nil {
		return nil, fmt.Errorf("failed to store merged game: %w", err)
	}
	if err := s.Groups.DeleteGroup(ctx, loser.ID); err != nil {
		return nil, fmt.Errorf("failed to delete absorbed group: %w", err)
	}
	if err := s.Games.DeleteGame(ctx, gl.ID); err != nil {
		return nil, fmt.Errorf("failed to delete absorbed game: %w", err)
	}

	for id := range present {
		s.Notifications.Notify(ctx, id, models.NotificationGroupsMerged,
			"Groups Merged! 🤝",
			fmt.Sprintf("Your %s groups were combined into one squad of %d", gw.Sport, winner.MemberCount()),
			map[string]string{"group_id": winner.ID, "post_id": gw.ID})
	}
	log.Printf("🤝 Merged group %s into %s (%d members)", loser.ID, winner.ID, winner.MemberCount())

	return &MergedPair{
		WinnerGroupID: winner.ID,
		LoserGroupID:  loser.ID,
		Sport:         gw.Sport,
		TotalMembers:  winner.MemberCount(),
	}, nil
}

// MemberDetail is one roster entry with contact info for the members list.
type MemberDetail struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}

// MemberRoster resolves the group roster against the user store.
func (s *GroupService) MemberRoster(ctx context.Context, groupID string) (*models.Group, []MemberDetail, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	details := make([]MemberDetail, 0, group.MemberCount())
	appendUser := func(userID, fallbackName, role string) {
		detail := MemberDetail{UserID: userID, Name: fallbackName, Phone: "N/A", Role: role}
		if user, err := s.Users.GetUser(ctx, userID); err == nil && user != nil {
			detail.Name = user.Name
			if user.Phone != "" {
				detail.Phone = user.Phone
			}
		}
		details = append(details, detail)
	}
	appendUser(group.OwnerID, group.OwnerName, "owner")
	for _, m := range group.Members {
		appendUser(m.UserID, m.UserName, "member")
	}
	return group, details, nil
}
