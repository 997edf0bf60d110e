package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
)

// fakeFavoriteReader serves canned pages and records the paging it received
type fakeFavoriteReader struct {
	items     []domain.FavoritedProduct
	users     []domain.UserWithFavorites
	total     int64
	err       error
	gotPage   int
	gotPer    int
	knownUser uint
}

func (f *fakeFavoriteReader) IsFavorited(userID, productID uint) (bool, error) { return false, nil }

func (f *fakeFavoriteReader) AddFavorite(userID, productID uint) (*domain.Favorite, error) {
	return nil, nil
}

func (f *fakeFavoriteReader) RemoveFavorite(userID, productID uint) (bool, error) {
	return false, nil
}

func (f *fakeFavoriteReader) FavoriteProduct(userID, productID uint) (*domain.Product, error) {
	return nil, domain.ErrNotFavorited
}

func (f *fakeFavoriteReader) PageForUser(userID uint, page, perPage int) ([]domain.FavoritedProduct, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	if f.knownUser != 0 && userID != f.knownUser {
		return nil, 0, domain.ErrUserNotFound
	}
	f.gotPage, f.gotPer = page, perPage
	return f.items, f.total, nil
}

func (f *fakeFavoriteReader) PageUsersWithFavorites(page, perPage int) ([]domain.UserWithFavorites, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.gotPage, f.gotPer = page, perPage
	return f.users, f.total, nil
}

func (f *fakeFavoriteReader) UserWithFavorites(userID uint) (*domain.UserWithFavorites, error) {
	if f.knownUser != 0 && userID != f.knownUser {
		return nil, domain.ErrUserNotFound
	}
	return &domain.UserWithFavorites{UserID: userID, Favorites: f.items}, nil
}

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, 1, DefaultPerPage},
		{"negative page", -3, 10, 1, 10},
		{"negative per page", 2, -1, 2, DefaultPerPage},
		{"capped per page", 1, 1000, 1, MaxPerPage},
		{"in range", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := NormalizePaging(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestListFavorites_NormalizesPagingBeforeRepo(t *testing.T) {
	repo := &fakeFavoriteReader{total: 0}
	handler := NewListFavoritesHandler(repo)

	result, err := handler.Handle(context.Background(), ListFavoritesQuery{UserID: 1, Page: 0, PerPage: 500})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gotPage)
	assert.Equal(t, MaxPerPage, repo.gotPer)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, MaxPerPage, result.PerPage)
}

func TestListFavorites_ReturnsItemsAndTotal(t *testing.T) {
	now := time.Now()
	repo := &fakeFavoriteReader{
		items: []domain.FavoritedProduct{
			{Product: domain.Product{ID: 2, ExternalID: 9, Title: "Jacket"}, FavoritedAt: now},
			{Product: domain.Product{ID: 1, ExternalID: 7, Title: "Backpack"}, FavoritedAt: now.Add(-time.Hour)},
		},
		total: 12,
	}
	handler := NewListFavoritesHandler(repo)

	result, err := handler.Handle(context.Background(), ListFavoritesQuery{UserID: 1, Page: 1, PerPage: 2})
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(12), result.Total)
}

func TestListFavorites_UnknownUser(t *testing.T) {
	repo := &fakeFavoriteReader{knownUser: 1}
	handler := NewListFavoritesHandler(repo)

	_, err := handler.Handle(context.Background(), ListFavoritesQuery{UserID: 42})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListAllFavorites_ReturnsUsers(t *testing.T) {
	repo := &fakeFavoriteReader{
		users: []domain.UserWithFavorites{
			{UserID: 1, UserName: "Ada", Favorites: []domain.FavoritedProduct{{Product: domain.Product{ID: 1}}}},
		},
		total: 1,
	}
	handler := NewListAllFavoritesHandler(repo)

	result, err := handler.Handle(context.Background(), ListAllFavoritesQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Ada", result.Items[0].UserName)
	assert.Equal(t, int64(1), result.Total)
}

func TestGetUserFavorites_ZeroIDIsNotFound(t *testing.T) {
	handler := NewGetUserFavoritesHandler(&fakeFavoriteReader{})

	_, err := handler.Handle(context.Background(), GetUserFavoritesQuery{UserID: 0})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserFavorites_UnknownUser(t *testing.T) {
	handler := NewGetUserFavoritesHandler(&fakeFavoriteReader{knownUser: 1})

	_, err := handler.Handle(context.Background(), GetUserFavoritesQuery{UserID: 9})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
