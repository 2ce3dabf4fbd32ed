package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
)

// FavoriteRepository реализует repository.FavoriteRepository для PostgreSQL
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository создает новый репозиторий избранного
func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Create создает запись избранного
func (r *FavoriteRepository) Create(ctx context.Context, fav *entity.Favorite) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO favorites (user_id, property_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query, fav.UserID, fav.PropertyID, fav.CreatedAt).Scan(&fav.ID)
	if err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// Exists проверяет, есть ли объявление в избранном пользователя
func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2)`

	var exists bool
	if err := conn.QueryRow(ctx, query, userID, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}

	return exists, nil
}

// Delete удаляет объявление из избранного пользователя
func (r *FavoriteRepository) Delete(ctx context.Context, userID, listingID int64) error {
	conn := getConn(ctx, r.pool)

	query := `DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`

	result, err := conn.Exec(ctx, query, userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetListingsByUser возвращает объявления из избранного (новые первыми)
func (r *FavoriteRepository) GetListingsByUser(ctx context.Context, userID int64) ([]*entity.Listing, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT ` + listingColumnsAliased("p") + `
		FROM favorites f
		JOIN properties p ON p.id = f.property_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return listings, nil
}

func listingColumnsAliased(alias string) string {
	return fmt.Sprintf(`
		%[1]s.id, %[1]s.title, %[1]s.description, %[1]s.type, %[1]s.price, %[1]s.deposit,
		%[1]s.location, %[1]s.address, %[1]s.bedrooms, %[1]s.bathrooms, %[1]s.area,
		%[1]s.floor, %[1]s.total_floors, %[1]s.images, %[1]s.tags, %[1]s.facilities,
		%[1]s.contact_name, %[1]s.contact_phone, %[1]s.contact_qr_code, %[1]s.status,
		%[1]s.created_at, %[1]s.updated_at
	`, alias)
}
