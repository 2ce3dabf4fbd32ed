package repository

import (
	"context"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, userID int64) (*entity.User, error)
	GetByOpenID(ctx context.Context, openID string) (*entity.User, error)
	GetProfiles(ctx context.Context, userIDs []int64) (map[int64]entity.UserProfile, error)
}

// ListingFilter параметры поиска объявлений
type ListingFilter struct {
	Type     string
	MinPrice float64
	MaxPrice float64
	Bedrooms int
	Location string
	Offset   int
	Limit    int
}

type ListingRepository interface {
	GetByID(ctx context.Context, listingID int64) (*entity.Listing, error)
	Search(ctx context.Context, filter ListingFilter) ([]*entity.Listing, int, error)
}

// TeamFilter параметры выборки команд
type TeamFilter struct {
	Status   string
	MemberID int64
	Offset   int
	Limit    int
}

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, teamID int64) (*entity.Team, error)
	// GetByIDForUpdate читает команду с блокировкой строки до конца
	// транзакции, сериализуя join/leave внутри одной команды
	GetByIDForUpdate(ctx context.Context, teamID int64) (*entity.Team, error)
	UpdateStatus(ctx context.Context, teamID int64, status string) error
	List(ctx context.Context, filter TeamFilter) ([]*entity.Team, int, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, m *entity.TeamMembership) error
	Get(ctx context.Context, teamID, userID int64) (*entity.TeamMembership, error)
	GetByTeam(ctx context.Context, teamID int64) ([]*entity.TeamMembership, error)
	CountByTeam(ctx context.Context, teamID int64) (int, error)
	Delete(ctx context.Context, teamID, userID int64) error
	DeleteByTeam(ctx context.Context, teamID int64) error
	UpdateNote(ctx context.Context, teamID, userID int64, note string) error
	// LockUser берет транзакционную advisory-блокировку на пользователя,
	// сериализуя его create/join между командами
	LockUser(ctx context.Context, userID int64) error
	// ActiveTeamID возвращает id незакрытой команды пользователя, 0 если её нет
	ActiveTeamID(ctx context.Context, userID int64) (int64, error)
}

// MessageFilter параметры выборки сообщений команды
type MessageFilter struct {
	SinceID int64
	Offset  int
	Limit   int
}

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.TeamMessage) error
	GetByTeam(ctx context.Context, teamID int64, filter MessageFilter) ([]*entity.TeamMessage, int, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, fav *entity.Favorite) error
	Exists(ctx context.Context, userID, listingID int64) (bool, error)
	Delete(ctx context.Context, userID, listingID int64) error
	GetListingsByUser(ctx context.Context, userID int64) ([]*entity.Listing, error)
}

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type StatisticsRepository interface {
	GetStatistics(ctx context.Context) (*entity.Statistics, error)
}
