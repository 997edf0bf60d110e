package domain

import (
	"context"
	"time"

	"github.com/favoritesapp/favorites-api/internal/catalog"
)

// Favorite is the many-to-many user/product relationship, timestamped at
// creation. The (user_id, product_id) pair is unique at the storage layer.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorites_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;index;uniqueIndex:idx_favorites_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// FavoritedProduct is a mirror product together with when it was favorited
type FavoritedProduct struct {
	Product     `gorm:"embedded"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// UserWithFavorites is one user's favorite list with identity fields attached
type UserWithFavorites struct {
	UserID    uint               `json:"user_id"`
	UserName  string             `json:"user_name"`
	UserEmail string             `json:"user_email"`
	Favorites []FavoritedProduct `json:"favorites"`
}

// FavoriteRepository defines the contract for the favorite relationship store
type FavoriteRepository interface {
	IsFavorited(userID, productID uint) (bool, error)
	// AddFavorite inserts the pair; returns ErrAlreadyFavorited if it exists
	// (the unique constraint is the authoritative guard, not the check).
	AddFavorite(userID, productID uint) (*Favorite, error)
	// RemoveFavorite deletes the pair; reports whether a row was deleted
	RemoveFavorite(userID, productID uint) (bool, error)
	// FavoriteProduct returns the mirror product iff the user favorited it
	FavoriteProduct(userID, productID uint) (*Product, error)
	// PageForUser returns one user's favorites, most recently favorited
	// first, with the total count. Returns ErrUserNotFound when the user id
	// does not resolve (distinct from a user with zero favorites).
	PageForUser(userID uint, page, perPage int) ([]FavoritedProduct, int64, error)
	// PageUsersWithFavorites returns every user who has at least one
	// favorite, each with their favorites eagerly attached
	PageUsersWithFavorites(page, perPage int) ([]UserWithFavorites, int64, error)
	// UserWithFavorites returns one user's full favorite list (no paging)
	UserWithFavorites(userID uint) (*UserWithFavorites, error)
}

// CatalogGateway is the slice of the external catalog the favorite service
// consumes. Implemented by catalog.Client.
type CatalogGateway interface {
	GetProductByID(ctx context.Context, id uint) (*catalog.Product, error)
}

// EventPublisher emits favorite lifecycle events. A nil publisher is allowed.
type EventPublisher interface {
	PublishFavoriteAdded(ctx context.Context, userID, productID, externalID uint, title string) error
	PublishFavoriteRemoved(ctx context.Context, userID, productID uint) error
}
