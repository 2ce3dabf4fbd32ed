package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
)

// StatisticsRepository реализует repository.StatisticsRepository для PostgreSQL
type StatisticsRepository struct {
	pool *pgxpool.Pool
}

// NewStatisticsRepository создает новый репозиторий статистики
func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{pool: pool}
}

// GetStatistics возвращает общую статистику системы
func (r *StatisticsRepository) GetStatistics(ctx context.Context) (*entity.Statistics, error) {
	var stats entity.Statistics

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM users`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM properties`, &stats.TotalListings},
		{`SELECT COUNT(*) FROM teams`, &stats.TotalTeams},
		{`SELECT COUNT(*) FROM teams WHERE status = 'active'`, &stats.ActiveTeams},
		{`SELECT COUNT(*) FROM teams WHERE status = 'full'`, &stats.FullTeams},
		{`SELECT COUNT(*) FROM teams WHERE status = 'closed'`, &stats.ClosedTeams},
		{`SELECT COUNT(*) FROM team_members`, &stats.TotalMemberships},
		{`SELECT COUNT(*) FROM team_messages`, &stats.TotalMessages},
	}

	for _, c := range counts {
		if err := r.pool.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to get statistics: %w", err)
		}
	}

	return &stats, nil
}
