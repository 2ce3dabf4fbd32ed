package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
)

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя и заполняет его ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO users (open_id, nickname, avatar, campus, motto, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		user.OpenID,
		user.Nickname,
		user.Avatar,
		user.Campus,
		user.Motto,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update обновляет профиль пользователя
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE users
		SET nickname = $2, avatar = $3, campus = $4, motto = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		user.ID,
		user.Nickname,
		user.Avatar,
		user.Campus,
		user.Motto,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entity.User, error) {
	return r.getByField(ctx, "id", userID)
}

// GetByOpenID возвращает пользователя по openId
func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*entity.User, error) {
	return r.getByField(ctx, "open_id", openID)
}

func (r *UserRepository) getByField(ctx context.Context, field string, value interface{}) (*entity.User, error) {
	conn := getConn(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT id, open_id, nickname, avatar, campus, motto, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, field)

	var user entity.User
	err := conn.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.OpenID,
		&user.Nickname,
		&user.Avatar,
		&user.Campus,
		&user.Motto,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetProfiles возвращает публичные профили пользователей по списку ID
func (r *UserRepository) GetProfiles(ctx context.Context, userIDs []int64) (map[int64]entity.UserProfile, error) {
	profiles := make(map[int64]entity.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, nickname, avatar, campus
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := conn.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.UserProfile
		if err := rows.Scan(&p.ID, &p.Nickname, &p.Avatar, &p.Campus); err != nil {
			return nil, fmt.Errorf("failed to scan user profile: %w", err)
		}
		profiles[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user profiles: %w", err)
	}

	return profiles, nil
}
