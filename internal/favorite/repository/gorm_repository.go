package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
	userdomain "github.com/favoritesapp/favorites-api/internal/user/domain"
)

// GormProductRepository implements the product mirror store using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product mirror repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs database migrations for the mirror table
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// FindByID retrieves a mirror product by its local id
func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindByExternalID retrieves a mirror product by its upstream catalog id
func (r *GormProductRepository) FindByExternalID(externalID uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("external_id = ?", externalID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by external id: %w", err)
	}
	return &product, nil
}

// Upsert creates or refreshes the mirror row keyed on externalID. A create
// that loses the race on the unique external_id index falls back to updating
// the row the winner inserted.
func (r *GormProductRepository) Upsert(externalID uint, title, image string) (*domain.Product, error) {
	product, err := r.upsertOnce(externalID, title, image)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		product, err = r.upsertOnce(externalID, title, image)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product %d: %w", externalID, err)
	}
	return product, nil
}

func (r *GormProductRepository) upsertOnce(externalID uint, title, image string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("external_id = ?", externalID).First(&product).Error
	switch {
	case err == nil:
		product.Title = title
		product.Image = image
		if err := r.db.Save(&product).Error; err != nil {
			return nil, err
		}
		return &product, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		product = domain.Product{ExternalID: externalID, Title: title, Image: image}
		if err := r.db.Create(&product).Error; err != nil {
			return nil, err
		}
		return &product, nil
	default:
		return nil, err
	}
}

// GormFavoriteRepository implements the favorite relationship store using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// AutoMigrate runs database migrations for the favorites table
func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}

// IsFavorited reports whether the (user, product) pair exists
func (r *GormFavoriteRepository) IsFavorited(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// AddFavorite inserts the pair. The unique index on (user_id, product_id) is
// the authoritative duplicate guard; a constraint violation is translated to
// the same conflict the pre-check reports.
func (r *GormFavoriteRepository) AddFavorite(userID, productID uint) (*domain.Favorite, error) {
	favorite := domain.Favorite{UserID: userID, ProductID: productID}
	if err := r.db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return &favorite, nil
}

// RemoveFavorite deletes the pair; reports whether a row was deleted
func (r *GormFavoriteRepository) RemoveFavorite(userID, productID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FavoriteProduct returns the mirror product iff the user favorited it
func (r *GormFavoriteRepository) FavoriteProduct(userID, productID uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Table("products").
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ? AND favorites.product_id = ?", userID, productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFavorited
		}
		return nil, fmt.Errorf("failed to find favorite product: %w", err)
	}
	return &product, nil
}

// PageForUser returns one user's favorites, most recently favorited first
func (r *GormFavoriteRepository) PageForUser(userID uint, page, perPage int) ([]domain.FavoritedProduct, int64, error) {
	exists, err := r.userExists(userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, domain.ErrUserNotFound
	}

	var total int64
	err = r.db.Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	products, err := r.favoritesForUser(userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// PageUsersWithFavorites returns every user who has at least one favorite,
// each with their favorites eagerly attached
func (r *GormFavoriteRepository) PageUsersWithFavorites(page, perPage int) ([]domain.UserWithFavorites, int64, error) {
	withFavorites := r.db.Model(&domain.Favorite{}).Distinct("user_id")

	var total int64
	err := r.db.Model(&userdomain.User{}).
		Where("id IN (?)", withFavorites).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users with favorites: %w", err)
	}

	var users []userdomain.User
	err = r.db.Where("id IN (?)", withFavorites).
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find users with favorites: %w", err)
	}

	result := make([]domain.UserWithFavorites, 0, len(users))
	for _, u := range users {
		favorites, err := r.favoritesForUser(u.ID, 0, 0)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, domain.UserWithFavorites{
			UserID:    u.ID,
			UserName:  u.Name,
			UserEmail: u.Email,
			Favorites: favorites,
		})
	}
	return result, total, nil
}

// UserWithFavorites returns one user's full favorite list (no paging)
func (r *GormFavoriteRepository) UserWithFavorites(userID uint) (*domain.UserWithFavorites, error) {
	var user userdomain.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	favorites, err := r.favoritesForUser(userID, 0, 0)
	if err != nil {
		return nil, err
	}

	return &domain.UserWithFavorites{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Favorites: favorites,
	}, nil
}

// favoritesForUser loads the favorites join ordered newest-first. A limit of
// zero means no paging.
func (r *GormFavoriteRepository) favoritesForUser(userID uint, limit, offset int) ([]domain.FavoritedProduct, error) {
	query := r.db.Table("products").
		Select("products.*, favorites.created_at AS favorited_at").
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	products := []domain.FavoritedProduct{}
	if err := query.Scan(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return products, nil
}

func (r *GormFavoriteRepository) userExists(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return count > 0, nil
}
