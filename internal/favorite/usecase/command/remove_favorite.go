package command

import (
	"context"
	"fmt"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
	"github.com/favoritesapp/favorites-api/pkg/logger"
)

// RemoveFavoriteCommand represents the command to unfavorite a product.
// ProductID is the local mirror id, not the external catalog id.
type RemoveFavoriteCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveFavoriteHandler handles the remove favorite command
type RemoveFavoriteHandler struct {
	favorites domain.FavoriteRepository
	events    domain.EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(favorites domain.FavoriteRepository, events domain.EventPublisher) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favorites: favorites, events: events}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if cmd.ProductID == 0 {
		return domain.ErrInvalidProductID
	}

	// Ownership check: the pair must exist for this user
	if _, err := h.favorites.FavoriteProduct(cmd.UserID, cmd.ProductID); err != nil {
		return err
	}

	removed, err := h.favorites.RemoveFavorite(cmd.UserID, cmd.ProductID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return domain.ErrNotFavorited
	}

	if h.events != nil {
		if err := h.events.PublishFavoriteRemoved(ctx, cmd.UserID, cmd.ProductID); err != nil {
			logger.Warn(ctx).Err(err).
				Uint("user_id", cmd.UserID).
				Uint("product_id", cmd.ProductID).
				Msg("Failed to publish favorite removed event")
		}
	}

	return nil
}
