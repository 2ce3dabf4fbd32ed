package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// memStore общее in-memory хранилище для тестов; репозитории над ним
// повторяют контракты postgres-реализаций
type memStore struct {
	mu sync.Mutex

	users       map[int64]*entity.User
	listings    map[int64]*entity.Listing
	teams       map[int64]*entity.Team
	memberships map[int64]*entity.TeamMembership
	messages    map[int64]*entity.TeamMessage
	favorites   map[int64]*entity.Favorite

	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]*entity.User),
		listings:    make(map[int64]*entity.Listing),
		teams:       make(map[int64]*entity.Team),
		memberships: make(map[int64]*entity.TeamMembership),
		messages:    make(map[int64]*entity.TeamMessage),
		favorites:   make(map[int64]*entity.Favorite),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(u entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users[u.ID] = &u
	return &u
}

func (s *memStore) addListing(l entity.Listing) *entity.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.id()
	}
	if l.Status == "" {
		l.Status = entity.ListingStatusAvailable
	}
	s.listings[l.ID] = &l
	return &l
}

// memTxManager сериализует транзакции одним мьютексом — модель строчных
// и advisory-блокировок, которые в бою держит PostgreSQL
type memTxManager struct {
	mu sync.Mutex
}

func (tm *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return fn(ctx)
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.id()
	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userID int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByOpenID(ctx context.Context, openID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.OpenID == openID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memUserRepo) GetProfiles(ctx context.Context, userIDs []int64) (map[int64]entity.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	profiles := make(map[int64]entity.UserProfile, len(userIDs))
	for _, id := range userIDs {
		if u, ok := r.s.users[id]; ok {
			profiles[id] = u.Profile()
		}
	}
	return profiles, nil
}

type memListingRepo struct{ s *memStore }

func (r *memListingRepo) GetByID(ctx context.Context, listingID int64) (*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[listingID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *memListingRepo) Search(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*entity.Listing
	for _, l := range r.s.listings {
		if l.Status != entity.ListingStatusAvailable {
			continue
		}
		if filter.Type != "" && filter.Type != "all" && l.Type != filter.Type {
			continue
		}
		if filter.MinPrice > 0 && l.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && l.Price > filter.MaxPrice {
			continue
		}
		if filter.Bedrooms > 0 && l.Bedrooms != filter.Bedrooms {
			continue
		}
		clone := *l
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	return paginate(matched, filter.Offset, filter.Limit), total, nil
}

type memTeamRepo struct{ s *memStore }

func (r *memTeamRepo) Create(ctx context.Context, team *entity.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	team.ID = r.s.id()
	clone := *team
	r.s.teams[team.ID] = &clone
	return nil
}

func (r *memTeamRepo) GetByID(ctx context.Context, teamID int64) (*entity.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[teamID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTeamRepo) GetByIDForUpdate(ctx context.Context, teamID int64) (*entity.Team, error) {
	// Транзакции уже сериализованы memTxManager
	return r.GetByID(ctx, teamID)
}

func (r *memTeamRepo) UpdateStatus(ctx context.Context, teamID int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[teamID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *memTeamRepo) List(ctx context.Context, filter repository.TeamFilter) ([]*entity.Team, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*entity.Team
	for _, t := range r.s.teams {
		if filter.Status != "" && filter.Status != "all" && t.Status != filter.Status {
			continue
		}
		if filter.MemberID != 0 && !r.isMemberLocked(t.ID, filter.MemberID) {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	return paginate(matched, filter.Offset, filter.Limit), total, nil
}

func (r *memTeamRepo) isMemberLocked(teamID, userID int64) bool {
	for _, m := range r.s.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			return true
		}
	}
	return false
}

type memMembershipRepo struct{ s *memStore }

func (r *memMembershipRepo) Create(ctx context.Context, m *entity.TeamMembership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	clone := *m
	r.s.memberships[m.ID] = &clone
	return nil
}

func (r *memMembershipRepo) Get(ctx context.Context, teamID, userID int64) (*entity.TeamMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memMembershipRepo) GetByTeam(ctx context.Context, teamID int64) ([]*entity.TeamMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var members []*entity.TeamMembership
	for _, m := range r.s.memberships {
		if m.TeamID == teamID {
			clone := *m
			members = append(members, &clone)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].ID < members[j].ID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}

func (r *memMembershipRepo) CountByTeam(ctx context.Context, teamID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, m := range r.s.memberships {
		if m.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (r *memMembershipRepo) Delete(ctx context.Context, teamID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, m := range r.s.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			delete(r.s.memberships, id)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (r *memMembershipRepo) DeleteByTeam(ctx context.Context, teamID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, m := range r.s.memberships {
		if m.TeamID == teamID {
			delete(r.s.memberships, id)
		}
	}
	return nil
}

func (r *memMembershipRepo) UpdateNote(ctx context.Context, teamID, userID int64, note string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			m.Note = note
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (r *memMembershipRepo) LockUser(ctx context.Context, userID int64) error {
	// Транзакции уже сериализованы memTxManager
	return nil
}

func (r *memMembershipRepo) ActiveTeamID(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.UserID != userID {
			continue
		}
		if t, ok := r.s.teams[m.TeamID]; ok && t.Status != entity.TeamStatusClosed {
			return t.ID, nil
		}
	}
	return 0, nil
}

type memMessageRepo struct{ s *memStore }

func (r *memMessageRepo) Create(ctx context.Context, msg *entity.TeamMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg.ID = r.s.id()
	clone := *msg
	r.s.messages[msg.ID] = &clone
	return nil
}

func (r *memMessageRepo) GetByTeam(ctx context.Context, teamID int64, filter repository.MessageFilter) ([]*entity.TeamMessage, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*entity.TeamMessage
	for _, m := range r.s.messages {
		if m.TeamID != teamID {
			continue
		}
		if filter.SinceID > 0 && m.ID <= filter.SinceID {
			continue
		}
		clone := *m
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	return paginate(matched, filter.Offset, filter.Limit), total, nil
}

type memFavoriteRepo struct{ s *memStore }

func (r *memFavoriteRepo) Create(ctx context.Context, fav *entity.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fav.ID = r.s.id()
	clone := *fav
	r.s.favorites[fav.ID] = &clone
	return nil
}

func (r *memFavoriteRepo) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.favorites {
		if f.UserID == userID && f.PropertyID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFavoriteRepo) Delete(ctx context.Context, userID, listingID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, f := range r.s.favorites {
		if f.UserID == userID && f.PropertyID == listingID {
			delete(r.s.favorites, id)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (r *memFavoriteRepo) GetListingsByUser(ctx context.Context, userID int64) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var favs []*entity.Favorite
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].ID > favs[j].ID })

	var listings []*entity.Listing
	for _, f := range favs {
		if l, ok := r.s.listings[f.PropertyID]; ok {
			clone := *l
			listings = append(listings, &clone)
		}
	}
	return listings, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// testEnv собирает usecases над общим in-memory хранилищем
type testEnv struct {
	store     *memStore
	teams     *TeamUseCase
	query     *TeamQueryUseCase
	messages  *MessageUseCase
	favorites *FavoriteUseCase
	listings  *ListingUseCase
}

func newTestEnv() *testEnv {
	store := newMemStore()
	userRepo := &memUserRepo{s: store}
	listingRepo := &memListingRepo{s: store}
	teamRepo := &memTeamRepo{s: store}
	membershipRepo := &memMembershipRepo{s: store}
	messageRepo := &memMessageRepo{s: store}
	favoriteRepo := &memFavoriteRepo{s: store}
	txManager := &memTxManager{}

	query := NewTeamQueryUseCase(teamRepo, membershipRepo, listingRepo, userRepo)

	return &testEnv{
		store:     store,
		teams:     NewTeamUseCase(teamRepo, membershipRepo, listingRepo, txManager, query),
		query:     query,
		messages:  NewMessageUseCase(messageRepo, membershipRepo, userRepo),
		favorites: NewFavoriteUseCase(favoriteRepo, listingRepo),
		listings:  NewListingUseCase(listingRepo),
	}
}
