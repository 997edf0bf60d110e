//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/favoritesapp/favorites-api/internal/favorite/delivery/http"
	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
	"github.com/favoritesapp/favorites-api/internal/favorite/repository"
	"github.com/favoritesapp/favorites-api/internal/favorite/usecase/command"
	"github.com/favoritesapp/favorites-api/internal/favorite/usecase/query"
)

// ProvideFavoriteRepository provides the favorite relationship repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepositoryWithTracing(db)
}

// ProvideProductRepository provides the product mirror repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewAddFavoriteHandler,
	command.NewRemoveFavoriteHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewListFavoritesHandler,
	query.NewListAllFavoritesHandler,
	query.NewGetUserFavoritesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewPresenter,
)

// InitializeHTTPHandler initializes the favorite HTTP handler with all
// dependencies
func InitializeHTTPHandler(db *gorm.DB, catalogGateway domain.CatalogGateway, events domain.EventPublisher) (*http.FavoriteHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewFavoriteHandlerWithDI,
	)
	return nil, nil
}
