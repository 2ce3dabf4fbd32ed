package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// FavoriteUseCase реализует избранные объявления пользователя
type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

// NewFavoriteUseCase создает новый usecase для избранного
func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	listingRepo repository.ListingRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

// GetFavorites возвращает избранные объявления пользователя (новые первыми)
func (uc *FavoriteUseCase) GetFavorites(ctx context.Context, userID int64) ([]*entity.Listing, error) {
	listings, err := uc.favoriteRepo.GetListingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	if listings == nil {
		listings = []*entity.Listing{}
	}

	return listings, nil
}

// AddFavorite добавляет объявление в избранное
func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, listingID int64) error {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NewDomainError(
				"LISTING_NOT_FOUND",
				"listing not found",
				domainErrors.ErrNotFound,
			)
		}
		return fmt.Errorf("failed to get listing: %w", err)
	}

	exists, err := uc.favoriteRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return domainErrors.NewDomainError(
			"ALREADY_FAVORITED",
			"listing is already in favorites",
			domainErrors.ErrAlreadyFavorited,
		)
	}

	fav := &entity.Favorite{
		UserID:     userID,
		PropertyID: listingID,
		CreatedAt:  time.Now(),
	}
	if err := uc.favoriteRepo.Create(ctx, fav); err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// RemoveFavorite убирает объявление из избранного
func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, listingID int64) error {
	if err := uc.favoriteRepo.Delete(ctx, userID, listingID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NewDomainError(
				"NOT_FOUND",
				"listing is not in favorites",
				domainErrors.ErrNotFound,
			)
		}
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	return nil
}
