package handler

import (
	"net/http"

	"github.com/Markus2025/nottinghamdemo/internal/transport/http/dto"
	"github.com/Markus2025/nottinghamdemo/internal/usecase"
)

// ListingHandler обрабатывает запросы каталога объявлений
type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

// NewListingHandler создает новый handler для объявлений
func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{listingUseCase: listingUseCase}
}

// ListListings обрабатывает GET /api/properties
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	params := usecase.ListingSearchParams{
		Type:     r.URL.Query().Get("type"),
		MinPrice: queryFloat(r, "min_price"),
		MaxPrice: queryFloat(r, "max_price"),
		Bedrooms: queryInt(r, "bedrooms", 0),
		Location: r.URL.Query().Get("location"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}

	result, err := h.listingUseCase.SearchListings(r.Context(), params)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	list := make([]dto.ListingDTO, 0, len(result.List))
	for _, listing := range result.List {
		list = append(list, dto.ToListingDTO(listing))
	}

	respondJSON(w, http.StatusOK, dto.ListingListResponse{List: list, Total: result.Total})
}

// GetListing обрабатывает GET /api/properties/{propertyID}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := pathID(w, r, "propertyID")
	if !ok {
		return
	}

	listing, err := h.listingUseCase.GetListing(r.Context(), listingID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToListingDTO(listing))
}
