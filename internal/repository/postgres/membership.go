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

// MembershipRepository реализует repository.MembershipRepository для PostgreSQL
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository создает новый репозиторий членств
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// Create создает строку членства
func (r *MembershipRepository) Create(ctx context.Context, m *entity.TeamMembership) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO team_members (team_id, user_id, note, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query, m.TeamID, m.UserID, m.Note, m.JoinedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// Get возвращает членство пользователя в команде
func (r *MembershipRepository) Get(ctx context.Context, teamID, userID int64) (*entity.TeamMembership, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, team_id, user_id, note, joined_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`

	var m entity.TeamMembership
	err := conn.QueryRow(ctx, query, teamID, userID).Scan(
		&m.ID,
		&m.TeamID,
		&m.UserID,
		&m.Note,
		&m.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

// GetByTeam возвращает членства команды в порядке вступления
func (r *MembershipRepository) GetByTeam(ctx context.Context, teamID int64) ([]*entity.TeamMembership, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, team_id, user_id, note, joined_at
		FROM team_members
		WHERE team_id = $1
		ORDER BY joined_at ASC, id ASC
	`

	rows, err := conn.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	var members []*entity.TeamMembership
	for rows.Next() {
		var m entity.TeamMembership
		err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Note, &m.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return members, nil
}

// CountByTeam возвращает число участников команды
func (r *MembershipRepository) CountByTeam(ctx context.Context, teamID int64) (int, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT COUNT(*) FROM team_members WHERE team_id = $1`

	var count int
	if err := conn.QueryRow(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}

	return count, nil
}

// Delete удаляет членство пользователя в команде
func (r *MembershipRepository) Delete(ctx context.Context, teamID, userID int64) error {
	conn := getConn(ctx, r.pool)

	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	result, err := conn.Exec(ctx, query, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// DeleteByTeam удаляет все членства команды
func (r *MembershipRepository) DeleteByTeam(ctx context.Context, teamID int64) error {
	conn := getConn(ctx, r.pool)

	query := `DELETE FROM team_members WHERE team_id = $1`

	if _, err := conn.Exec(ctx, query, teamID); err != nil {
		return fmt.Errorf("failed to delete team members: %w", err)
	}

	return nil
}

// UpdateNote обновляет личную заметку участника
func (r *MembershipRepository) UpdateNote(ctx context.Context, teamID, userID int64, note string) error {
	conn := getConn(ctx, r.pool)

	query := `UPDATE team_members SET note = $3 WHERE team_id = $1 AND user_id = $2`

	result, err := conn.Exec(ctx, query, teamID, userID, note)
	if err != nil {
		return fmt.Errorf("failed to update member note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// LockUser берет транзакционную advisory-блокировку по ID пользователя.
// Блокировка держится базой до конца транзакции, поэтому одновременные
// create/join одного пользователя в разные команды сериализуются даже
// между процессами.
func (r *MembershipRepository) LockUser(ctx context.Context, userID int64) error {
	conn := getConn(ctx, r.pool)

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return fmt.Errorf("failed to lock user %d: %w", userID, err)
	}

	return nil
}

// ActiveTeamID возвращает ID незакрытой команды пользователя или 0
func (r *MembershipRepository) ActiveTeamID(ctx context.Context, userID int64) (int64, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT m.team_id
		FROM team_members m
		JOIN teams t ON t.id = m.team_id
		WHERE m.user_id = $1 AND t.status IN ('active', 'full')
		LIMIT 1
	`

	var teamID int64
	err := conn.QueryRow(ctx, query, userID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get active membership: %w", err)
	}

	return teamID, nil
}
