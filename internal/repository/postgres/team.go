package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository создает новый репозиторий команд
func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

const teamColumns = `
	id, property_id, property_title, creator_id, max_members,
	description, status, created_at, updated_at
`

func scanTeam(row pgx.Row) (*entity.Team, error) {
	var t entity.Team
	err := row.Scan(
		&t.ID,
		&t.PropertyID,
		&t.PropertyTitle,
		&t.CreatorID,
		&t.MaxMembers,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create создает новую команду и заполняет её ID
func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO teams (property_id, property_title, creator_id, max_members,
			description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		team.PropertyID,
		team.PropertyTitle,
		team.CreatorID,
		team.MaxMembers,
		team.Description,
		team.Status,
		team.CreatedAt,
		team.UpdatedAt,
	).Scan(&team.ID)

	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// GetByID возвращает команду по ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (*entity.Team, error) {
	return r.get(ctx, teamID, "")
}

// GetByIDForUpdate возвращает команду, блокируя её строку до конца транзакции.
// Все join/leave одной команды сериализуются на этой блокировке, поэтому
// проверка вместимости и вставка участника атомарны.
func (r *TeamRepository) GetByIDForUpdate(ctx context.Context, teamID int64) (*entity.Team, error) {
	return r.get(ctx, teamID, " FOR UPDATE")
}

func (r *TeamRepository) get(ctx context.Context, teamID int64, suffix string) (*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1` + suffix

	team, err := scanTeam(conn.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// UpdateStatus обновляет статус команды
func (r *TeamRepository) UpdateStatus(ctx context.Context, teamID int64, status string) error {
	conn := getConn(ctx, r.pool)

	query := `UPDATE teams SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := conn.Exec(ctx, query, teamID, status)
	if err != nil {
		return fmt.Errorf("failed to update team status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// List возвращает команды по фильтру (новые первыми) и их общее количество
func (r *TeamRepository) List(ctx context.Context, filter repository.TeamFilter) ([]*entity.Team, int, error) {
	conn := getConn(ctx, r.pool)

	where := `WHERE 1=1`
	args := []interface{}{}
	argn := 0

	if filter.Status != "" && filter.Status != "all" {
		argn++
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND t.status = $%d", argn)
	}
	if filter.MemberID != 0 {
		argn++
		args = append(args, filter.MemberID)
		where += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM team_members m WHERE m.team_id = t.id AND m.user_id = $%d)",
			argn,
		)
	}

	countQuery := `SELECT COUNT(*) FROM teams t ` + where

	var total int
	if err := conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count teams: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM teams t %s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`,
		teamColumnsAliased("t"), where, argn+1, argn+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*entity.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, total, nil
}

func teamColumnsAliased(alias string) string {
	return fmt.Sprintf(`
		%[1]s.id, %[1]s.property_id, %[1]s.property_title, %[1]s.creator_id, %[1]s.max_members,
		%[1]s.description, %[1]s.status, %[1]s.created_at, %[1]s.updated_at
	`, alias)
}
