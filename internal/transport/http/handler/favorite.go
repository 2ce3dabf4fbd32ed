package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Markus2025/nottinghamdemo/internal/transport/http/dto"
	"github.com/Markus2025/nottinghamdemo/internal/usecase"
)

// FavoriteHandler обрабатывает запросы избранного
type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

// NewFavoriteHandler создает новый handler для избранного
func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{favoriteUseCase: favoriteUseCase}
}

// GetFavorites обрабатывает GET /api/favorites
func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	listings, err := h.favoriteUseCase.GetFavorites(r.Context(), userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	list := make([]dto.ListingDTO, 0, len(listings))
	for _, listing := range listings {
		list = append(list, dto.ToListingDTO(listing))
	}

	respondJSON(w, http.StatusOK, list)
}

// AddFavorite обрабатывает POST /api/favorites
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.PropertyID < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "property_id is required")
		return
	}

	if err := h.favoriteUseCase.AddFavorite(r.Context(), userID, req.PropertyID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "favorite added"})
}

// RemoveFavorite обрабатывает DELETE /api/favorites/{propertyID}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	listingID, ok := pathID(w, r, "propertyID")
	if !ok {
		return
	}

	if err := h.favoriteUseCase.RemoveFavorite(r.Context(), userID, listingID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "favorite removed"})
}
