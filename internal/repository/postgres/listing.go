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

// ListingRepository реализует repository.ListingRepository для PostgreSQL
type ListingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository создает новый репозиторий объявлений
func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

const listingColumns = `
	id, title, description, type, price, deposit, location, address,
	bedrooms, bathrooms, area, floor, total_floors, images, tags, facilities,
	contact_name, contact_phone, contact_qr_code, status, created_at, updated_at
`

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var l entity.Listing
	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.Type,
		&l.Price,
		&l.Deposit,
		&l.Location,
		&l.Address,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.Area,
		&l.Floor,
		&l.TotalFloors,
		&l.Images,
		&l.Tags,
		&l.Facilities,
		&l.ContactName,
		&l.ContactPhone,
		&l.ContactQRCode,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID возвращает объявление по ID
func (r *ListingRepository) GetByID(ctx context.Context, listingID int64) (*entity.Listing, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + listingColumns + ` FROM properties WHERE id = $1`

	listing, err := scanListing(conn.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

// Search возвращает доступные объявления по фильтру и их общее количество
func (r *ListingRepository) Search(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	conn := getConn(ctx, r.pool)

	where := `WHERE status = 'available'`
	args := []interface{}{}
	argn := 0

	addArg := func(clause string, value interface{}) {
		argn++
		args = append(args, value)
		where += fmt.Sprintf(" AND "+clause, argn)
	}

	if filter.Type != "" && filter.Type != "all" {
		addArg("type = $%d", filter.Type)
	}
	if filter.MinPrice > 0 {
		addArg("price >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		addArg("price <= $%d", filter.MaxPrice)
	}
	if filter.Bedrooms > 0 {
		addArg("bedrooms = $%d", filter.Bedrooms)
	}
	if filter.Location != "" {
		addArg("location ILIKE '%%' || $%d || '%%'", filter.Location)
	}

	countQuery := `SELECT COUNT(*) FROM properties ` + where

	var total int
	if err := conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM properties %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		listingColumns, where, argn+1, argn+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return listings, total, nil
}
