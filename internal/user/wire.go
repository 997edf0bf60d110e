//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/favoritesapp/favorites-api/internal/user/delivery/http"
	"github.com/favoritesapp/favorites-api/internal/user/domain"
	"github.com/favoritesapp/favorites-api/internal/user/repository"
	"github.com/favoritesapp/favorites-api/internal/user/usecase/command"
	"github.com/favoritesapp/favorites-api/internal/user/usecase/query"
	"github.com/favoritesapp/favorites-api/pkg/auth"
)

// ProvideUserRepository provides the GORM-backed user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	command.NewLogoutUserHandler,
	command.NewUpdateUserHandler,
	command.NewDeleteUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
	query.NewListUsersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the user HTTP handler with all
// dependencies
func InitializeHTTPHandler(db *gorm.DB, tokens *auth.TokenStore) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandlerWithDI,
	)
	return nil, nil
}
