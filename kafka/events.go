package kafka

import "time"

// Topics
const (
	TopicFavoriteAdded   = "favorites.added"
	TopicFavoriteRemoved = "favorites.removed"
)

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
)

// FavoriteAddedEvent is emitted after a favorite relationship is created
type FavoriteAddedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	UserID       uint      `json:"user_id"`
	ProductID    uint      `json:"product_id"`
	ExternalID   uint      `json:"external_id"`
	ProductTitle string    `json:"product_title"`
	Timestamp    time.Time `json:"timestamp"`
}

// FavoriteRemovedEvent is emitted after a favorite relationship is deleted
type FavoriteRemovedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}
