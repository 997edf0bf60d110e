package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// GormFavoriteRepositoryWithTracing wraps GormFavoriteRepository with tracing
type GormFavoriteRepositoryWithTracing struct {
	*GormFavoriteRepository
}

// NewGormFavoriteRepositoryWithTracing creates a favorite repository with tracing
func NewGormFavoriteRepositoryWithTracing(db *gorm.DB) *GormFavoriteRepositoryWithTracing {
	return &GormFavoriteRepositoryWithTracing{
		GormFavoriteRepository: NewGormFavoriteRepository(db),
	}
}

// AddFavoriteWithContext adds a favorite with tracing
func (r *GormFavoriteRepositoryWithTracing) AddFavoriteWithContext(ctx context.Context, userID, productID uint) (*domain.Favorite, error) {
	_, span := tracer.Start(ctx, "repository.AddFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	favorite, err := r.GormFavoriteRepository.AddFavorite(userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorite.id", int(favorite.ID)))
	return favorite, nil
}

// RemoveFavoriteWithContext removes a favorite with tracing
func (r *GormFavoriteRepositoryWithTracing) RemoveFavoriteWithContext(ctx context.Context, userID, productID uint) (bool, error) {
	_, span := tracer.Start(ctx, "repository.RemoveFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	removed, err := r.GormFavoriteRepository.RemoveFavorite(userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("favorite.removed", removed))
	return removed, nil
}

// PageForUserWithContext pages one user's favorites with tracing
func (r *GormFavoriteRepositoryWithTracing) PageForUserWithContext(ctx context.Context, userID uint, page, perPage int) ([]domain.FavoritedProduct, int64, error) {
	_, span := tracer.Start(ctx, "repository.PageForUser",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("query.page", page),
			attribute.Int("query.per_page", perPage),
		),
	)
	defer span.End()

	products, total, err := r.GormFavoriteRepository.PageForUser(userID, page, perPage)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("result.count", len(products)),
		attribute.Int64("result.total", total),
	)
	return products, total, nil
}
