package http

import (
	"context"

	"github.com/favoritesapp/favorites-api/internal/catalog"
	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
	"github.com/favoritesapp/favorites-api/pkg/logger"
)

const favoritedAtLayout = "2006-01-02 15:04:05"

// ProductResponse is the rendered favorite product: mirrored fields plus live
// price/rating. Price and rating are null when the live fetch fails.
type ProductResponse struct {
	ID          uint            `json:"id"`
	ExternalID  uint            `json:"external_id"`
	Title       string          `json:"title"`
	Image       string          `json:"image"`
	Price       *float64        `json:"price"`
	Rating      *catalog.Rating `json:"rating"`
	FavoritedAt string          `json:"favorited_at,omitempty"`
}

// FavoriteUserResponse is one user's favorite list for the admin/detail views
type FavoriteUserResponse struct {
	UserID         uint              `json:"user_id"`
	UserName       string            `json:"user_name"`
	UserEmail      string            `json:"user_email"`
	FavoritesCount int               `json:"favorites_count"`
	Favorites      []ProductResponse `json:"favorites"`
}

// Pagination is the page metadata envelope
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// Presenter shapes favorites for responses, merging live catalog fields onto
// the stored projection. Enrichment is best effort: a failed live fetch
// leaves price/rating null instead of failing the response.
type Presenter struct {
	catalog domain.CatalogGateway
}

// NewPresenter creates a new favorites presenter
func NewPresenter(catalogGateway domain.CatalogGateway) *Presenter {
	return &Presenter{catalog: catalogGateway}
}

// PresentProduct renders a single favorited product with live enrichment
func (p *Presenter) PresentProduct(ctx context.Context, product domain.FavoritedProduct) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID,
		ExternalID:  product.ExternalID,
		Title:       product.Title,
		Image:       product.Image,
		FavoritedAt: product.FavoritedAt.Format(favoritedAtLayout),
	}

	live, err := p.catalog.GetProductByID(ctx, product.ExternalID)
	if err != nil {
		logger.Debug(ctx).
			Err(err).
			Uint("external_id", product.ExternalID).
			Msg("Live enrichment skipped")
		return resp
	}

	resp.Price = &live.Price
	rating := live.Rating
	resp.Rating = &rating
	return resp
}

// PresentProducts renders a list of favorited products
func (p *Presenter) PresentProducts(ctx context.Context, products []domain.FavoritedProduct) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, p.PresentProduct(ctx, product))
	}
	return out
}

// PresentUser renders one user's favorite list
func (p *Presenter) PresentUser(ctx context.Context, user domain.UserWithFavorites) FavoriteUserResponse {
	return FavoriteUserResponse{
		UserID:         user.UserID,
		UserName:       user.UserName,
		UserEmail:      user.UserEmail,
		FavoritesCount: len(user.Favorites),
		Favorites:      p.PresentProducts(ctx, user.Favorites),
	}
}

// PresentUsers renders a list of users with their favorites
func (p *Presenter) PresentUsers(ctx context.Context, users []domain.UserWithFavorites) []FavoriteUserResponse {
	out := make([]FavoriteUserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, p.PresentUser(ctx, user))
	}
	return out
}

// NewPagination builds the pagination envelope for a page of count items
func NewPagination(page, perPage int, total int64, count int) Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	meta := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}

	if count > 0 {
		from := (page-1)*perPage + 1
		to := from + count - 1
		meta.From = &from
		meta.To = &to
	}
	return meta
}
