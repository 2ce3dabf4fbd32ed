package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// MessageRepository реализует repository.MessageRepository для PostgreSQL
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository создает новый репозиторий сообщений
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create добавляет сообщение; BIGSERIAL id строго растет и служит курсором
func (r *MessageRepository) Create(ctx context.Context, msg *entity.TeamMessage) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO team_messages (team_id, user_id, content, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		msg.TeamID,
		msg.SenderID,
		msg.Content,
		msg.Type,
		msg.CreatedAt,
	).Scan(&msg.ID)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByTeam возвращает сообщения команды (старые первыми) и их количество.
// SinceID — исключающая нижняя граница курсора для инкрементального опроса.
func (r *MessageRepository) GetByTeam(ctx context.Context, teamID int64, filter repository.MessageFilter) ([]*entity.TeamMessage, int, error) {
	conn := getConn(ctx, r.pool)

	where := `WHERE team_id = $1`
	args := []interface{}{teamID}

	if filter.SinceID > 0 {
		args = append(args, filter.SinceID)
		where += fmt.Sprintf(" AND id > $%d", len(args))
	}

	countQuery := `SELECT COUNT(*) FROM team_messages ` + where

	var total int
	if err := conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, team_id, user_id, content, type, created_at
		FROM team_messages
		%s
		ORDER BY id ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	var messages []*entity.TeamMessage
	for rows.Next() {
		var m entity.TeamMessage
		err := rows.Scan(&m.ID, &m.TeamID, &m.SenderID, &m.Content, &m.Type, &m.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, total, nil
}
