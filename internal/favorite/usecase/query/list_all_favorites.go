package query

import (
	"context"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
)

// ListAllFavoritesQuery represents the admin query over every user's
// favorites. The admin role is enforced at the HTTP boundary, not here.
type ListAllFavoritesQuery struct {
	Page    int
	PerPage int
}

// AllFavoritesPage is a page of users-with-favorites plus count metadata
type AllFavoritesPage struct {
	Items   []domain.UserWithFavorites
	Total   int64
	Page    int
	PerPage int
}

// ListAllFavoritesHandler handles the list all favorites query
type ListAllFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewListAllFavoritesHandler creates a new list all favorites handler
func NewListAllFavoritesHandler(favorites domain.FavoriteRepository) *ListAllFavoritesHandler {
	return &ListAllFavoritesHandler{favorites: favorites}
}

// Handle executes the list all favorites query
func (h *ListAllFavoritesHandler) Handle(ctx context.Context, q ListAllFavoritesQuery) (*AllFavoritesPage, error) {
	page, perPage := NormalizePaging(q.Page, q.PerPage)

	items, total, err := h.favorites.PageUsersWithFavorites(page, perPage)
	if err != nil {
		return nil, err
	}

	return &AllFavoritesPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}
