package query

import (
	"context"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
)

// GetUserFavoritesQuery represents the single-user detail query (no paging).
// Whether the caller may see this user (self or admin) is decided at the
// boundary before this query runs.
type GetUserFavoritesQuery struct {
	UserID uint
}

// GetUserFavoritesHandler handles the user favorites detail query
type GetUserFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewGetUserFavoritesHandler creates a new user favorites detail handler
func NewGetUserFavoritesHandler(favorites domain.FavoriteRepository) *GetUserFavoritesHandler {
	return &GetUserFavoritesHandler{favorites: favorites}
}

// Handle executes the user favorites detail query
func (h *GetUserFavoritesHandler) Handle(ctx context.Context, q GetUserFavoritesQuery) (*domain.UserWithFavorites, error) {
	if q.UserID == 0 {
		return nil, domain.ErrUserNotFound
	}
	return h.favorites.UserWithFavorites(q.UserID)
}
