package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// ListingUseCase реализует чтение каталога объявлений
type ListingUseCase struct {
	listingRepo repository.ListingRepository
}

// NewListingUseCase создает новый usecase для объявлений
func NewListingUseCase(listingRepo repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{listingRepo: listingRepo}
}

// ListingSearchParams параметры поиска объявлений
type ListingSearchParams struct {
	Type     string
	MinPrice float64
	MaxPrice float64
	Bedrooms int
	Location string
	Page     int
	Limit    int
}

// ListingListResult страница объявлений
type ListingListResult struct {
	List  []*entity.Listing
	Total int
}

// SearchListings возвращает страницу доступных объявлений по фильтру
func (uc *ListingUseCase) SearchListings(ctx context.Context, params ListingSearchParams) (*ListingListResult, error) {
	offset, limit := normalizePage(params.Page, params.Limit, 10)

	listings, total, err := uc.listingRepo.Search(ctx, repository.ListingFilter{
		Type:     params.Type,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		Bedrooms: params.Bedrooms,
		Location: params.Location,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	return &ListingListResult{List: listings, Total: total}, nil
}

// GetListing возвращает объявление по ID
func (uc *ListingUseCase) GetListing(ctx context.Context, listingID int64) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NewDomainError(
				"LISTING_NOT_FOUND",
				"listing not found",
				domainErrors.ErrNotFound,
			)
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}
