package query

import (
	"context"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
)

// Paging bounds shared by the favorite list queries
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListFavoritesQuery represents the query for one user's paged favorites
type ListFavoritesQuery struct {
	UserID  uint
	Page    int
	PerPage int
}

// FavoritesPage is a page of one user's favorites plus count metadata
type FavoritesPage struct {
	Items   []domain.FavoritedProduct
	Total   int64
	Page    int
	PerPage int
}

// ListFavoritesHandler handles the list favorites query
type ListFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(favorites domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{favorites: favorites}
}

// Handle executes the list favorites query
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) (*FavoritesPage, error) {
	page, perPage := NormalizePaging(q.Page, q.PerPage)

	items, total, err := h.favorites.PageForUser(q.UserID, page, perPage)
	if err != nil {
		return nil, err
	}

	return &FavoritesPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// NormalizePaging clamps paging parameters to sane bounds
func NormalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}
