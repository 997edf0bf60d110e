package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favoritesapp/favorites-api/internal/catalog"
	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
)

// fakeProductRepo is an in-memory mirror store keyed on external id
type fakeProductRepo struct {
	byExternal map[uint]*domain.Product
	nextID     uint
	upserts    int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byExternal: map[uint]*domain.Product{}, nextID: 1}
}

func (f *fakeProductRepo) FindByID(id uint) (*domain.Product, error) {
	for _, p := range f.byExternal {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) FindByExternalID(externalID uint) (*domain.Product, error) {
	if p, ok := f.byExternal[externalID]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) Upsert(externalID uint, title, image string) (*domain.Product, error) {
	f.upserts++
	if p, ok := f.byExternal[externalID]; ok {
		p.Title = title
		p.Image = image
		return p, nil
	}
	p := &domain.Product{ID: f.nextID, ExternalID: externalID, Title: title, Image: image}
	f.nextID++
	f.byExternal[externalID] = p
	return p, nil
}

// fakeFavoriteRepo tracks (user, product) pairs
type fakeFavoriteRepo struct {
	pairs      map[[2]uint]bool
	addErr     error
	nextFavID uint
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{pairs: map[[2]uint]bool{}, nextFavID: 1}
}

func (f *fakeFavoriteRepo) IsFavorited(userID, productID uint) (bool, error) {
	return f.pairs[[2]uint{userID, productID}], nil
}

func (f *fakeFavoriteRepo) AddFavorite(userID, productID uint) (*domain.Favorite, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	key := [2]uint{userID, productID}
	if f.pairs[key] {
		return nil, domain.ErrAlreadyFavorited
	}
	f.pairs[key] = true
	fav := &domain.Favorite{ID: f.nextFavID, UserID: userID, ProductID: productID}
	f.nextFavID++
	return fav, nil
}

func (f *fakeFavoriteRepo) RemoveFavorite(userID, productID uint) (bool, error) {
	key := [2]uint{userID, productID}
	if !f.pairs[key] {
		return false, nil
	}
	delete(f.pairs, key)
	return true, nil
}

func (f *fakeFavoriteRepo) FavoriteProduct(userID, productID uint) (*domain.Product, error) {
	if !f.pairs[[2]uint{userID, productID}] {
		return nil, domain.ErrNotFavorited
	}
	return &domain.Product{ID: productID}, nil
}

func (f *fakeFavoriteRepo) PageForUser(userID uint, page, perPage int) ([]domain.FavoritedProduct, int64, error) {
	return nil, 0, nil
}

func (f *fakeFavoriteRepo) PageUsersWithFavorites(page, perPage int) ([]domain.UserWithFavorites, int64, error) {
	return nil, 0, nil
}

func (f *fakeFavoriteRepo) UserWithFavorites(userID uint) (*domain.UserWithFavorites, error) {
	return nil, domain.ErrUserNotFound
}

// fakeCatalog serves a fixed set of products
type fakeCatalog struct {
	products map[uint]catalog.Product
	err      error
	calls    int
}

func (f *fakeCatalog) GetProductByID(ctx context.Context, id uint) (*catalog.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("product not found in catalog")
	}
	return &p, nil
}

// fakePublisher records published events
type fakePublisher struct {
	added   int
	removed int
	err     error
}

func (f *fakePublisher) PublishFavoriteAdded(ctx context.Context, userID, productID, externalID uint, title string) error {
	f.added++
	return f.err
}

func (f *fakePublisher) PublishFavoriteRemoved(ctx context.Context, userID, productID uint) error {
	f.removed++
	return f.err
}

func TestAddFavorite_Success(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	products := newFakeProductRepo()
	gateway := &fakeCatalog{products: map[uint]catalog.Product{
		7: {ID: 7, Title: "Backpack", Price: 109.95, Image: "img.jpg", Rating: catalog.Rating{Rate: 3.9, Count: 120}},
	}}
	events := &fakePublisher{}

	handler := NewAddFavoriteHandler(favorites, products, gateway, events)

	result, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uint(7), result.ExternalID)
	assert.Equal(t, "Backpack", result.Title)
	require.NotNil(t, result.Price)
	assert.Equal(t, 109.95, *result.Price)
	require.NotNil(t, result.Rating)
	assert.Equal(t, 3.9, result.Rating.Rate)

	// Mirror row created and pair recorded
	mirror, err := products.FindByExternalID(7)
	require.NoError(t, err)
	favorited, err := favorites.IsFavorited(1, mirror.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	assert.Equal(t, 1, events.added)
}

func TestAddFavorite_InvalidID(t *testing.T) {
	handler := NewAddFavoriteHandler(newFakeFavoriteRepo(), newFakeProductRepo(), &fakeCatalog{}, nil)

	_, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidProductID)
}

func TestAddFavorite_UnknownProductLeavesNoMirror(t *testing.T) {
	products := newFakeProductRepo()
	gateway := &fakeCatalog{products: map[uint]catalog.Product{}}
	handler := NewAddFavoriteHandler(newFakeFavoriteRepo(), products, gateway, nil)

	_, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 99})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// No mirror row may be written when the catalog does not know the id
	assert.Equal(t, 0, products.upserts)
}

func TestAddFavorite_CatalogDownMapsToNotFound(t *testing.T) {
	gateway := &fakeCatalog{err: errors.New("catalog request failed: timeout")}
	handler := NewAddFavoriteHandler(newFakeFavoriteRepo(), newFakeProductRepo(), gateway, nil)

	_, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddFavorite_DuplicateDetectedByPrecheck(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	products := newFakeProductRepo()
	gateway := &fakeCatalog{products: map[uint]catalog.Product{
		7: {ID: 7, Title: "Backpack", Price: 109.95},
	}}
	handler := NewAddFavoriteHandler(favorites, products, gateway, nil)

	_, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	require.NoError(t, err)

	gateway.calls = 0
	_, err = handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	// The pre-check short-circuits before reaching the catalog
	assert.Equal(t, 0, gateway.calls)
}

func TestAddFavorite_RaceLossSurfacesConflict(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	favorites.addErr = domain.ErrAlreadyFavorited
	gateway := &fakeCatalog{products: map[uint]catalog.Product{
		7: {ID: 7, Title: "Backpack"},
	}}
	handler := NewAddFavoriteHandler(favorites, newFakeProductRepo(), gateway, nil)

	_, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
}

func TestAddFavorite_TwoUsersSameProduct(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	products := newFakeProductRepo()
	gateway := &fakeCatalog{products: map[uint]catalog.Product{
		7: {ID: 7, Title: "Backpack"},
	}}
	handler := NewAddFavoriteHandler(favorites, products, gateway, nil)

	first, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 2, ExternalProductID: 7})
	require.NoError(t, err)

	// Both favorites share the single mirror row
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, products.byExternal, 1)
}

func TestAddFavorite_PublishFailureDoesNotFailAdd(t *testing.T) {
	favorites := newFakeFavoriteRepo()
	gateway := &fakeCatalog{products: map[uint]catalog.Product{
		7: {ID: 7, Title: "Backpack"},
	}}
	events := &fakePublisher{err: errors.New("broker down")}
	handler := NewAddFavoriteHandler(favorites, newFakeProductRepo(), gateway, events)

	result, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ExternalProductID: 7})
	require.NoError(t, err)
	assert.NotNil(t, result)
}
