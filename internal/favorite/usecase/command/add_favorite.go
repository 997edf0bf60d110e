package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/favoritesapp/favorites-api/internal/catalog"
	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
	"github.com/favoritesapp/favorites-api/pkg/logger"
)

// AddFavoriteCommand represents the command to favorite a catalog product.
// ExternalProductID is the upstream catalog id, not the local mirror id.
type AddFavoriteCommand struct {
	UserID            uint
	ExternalProductID uint
}

// EnrichedProduct is the mirror product plus the live fields from the catalog
// fetch performed while resolving the add. No second round trip is made.
type EnrichedProduct struct {
	ID         uint            `json:"id"`
	ExternalID uint            `json:"external_id"`
	Title      string          `json:"title"`
	Image      string          `json:"image"`
	Price      *float64        `json:"price"`
	Rating     *catalog.Rating `json:"rating"`
}

// AddFavoriteHandler handles the add favorite command
type AddFavoriteHandler struct {
	favorites domain.FavoriteRepository
	products  domain.ProductRepository
	catalog   domain.CatalogGateway
	events    domain.EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(
	favorites domain.FavoriteRepository,
	products domain.ProductRepository,
	catalog domain.CatalogGateway,
	events domain.EventPublisher,
) *AddFavoriteHandler {
	return &AddFavoriteHandler{
		favorites: favorites,
		products:  products,
		catalog:   catalog,
		events:    events,
	}
}

// Handle executes the add favorite command
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*EnrichedProduct, error) {
	if cmd.ExternalProductID == 0 {
		return nil, domain.ErrInvalidProductID
	}

	// Optimistic pre-check for fast feedback; the unique constraint below is
	// the authoritative guard
	if mirror, err := h.products.FindByExternalID(cmd.ExternalProductID); err == nil {
		favorited, err := h.favorites.IsFavorited(cmd.UserID, mirror.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		if favorited {
			return nil, domain.ErrAlreadyFavorited
		}
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	// Any catalog failure (timeout, non-success, unknown id) means the
	// product cannot be favorited
	catalogProduct, err := h.catalog.GetProductByID(ctx, cmd.ExternalProductID)
	if err != nil || catalogProduct == nil {
		return nil, domain.ErrProductNotFound
	}

	mirror, err := h.products.Upsert(catalogProduct.ID, catalogProduct.Title, catalogProduct.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror product: %w", err)
	}

	if _, err := h.favorites.AddFavorite(cmd.UserID, mirror.ID); err != nil {
		// A race loss on the unique constraint surfaces as the same
		// conflict as the pre-check
		return nil, err
	}

	if h.events != nil {
		if err := h.events.PublishFavoriteAdded(ctx, cmd.UserID, mirror.ID, mirror.ExternalID, mirror.Title); err != nil {
			logger.Warn(ctx).Err(err).
				Uint("user_id", cmd.UserID).
				Uint("product_id", mirror.ID).
				Msg("Failed to publish favorite added event")
		}
	}

	price := catalogProduct.Price
	rating := catalogProduct.Rating
	return &EnrichedProduct{
		ID:         mirror.ID,
		ExternalID: mirror.ExternalID,
		Title:      mirror.Title,
		Image:      mirror.Image,
		Price:      &price,
		Rating:     &rating,
	}, nil
}
