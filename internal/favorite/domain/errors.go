package domain

import "errors"

// Error taxonomy surfaced by the favorite service. Storage and transport
// errors are translated into one of these before they reach the boundary.
var (
	// ErrUserNotFound means the user id does not resolve to a known user
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound means the external id does not resolve upstream
	ErrProductNotFound = errors.New("product not found")

	// ErrAlreadyFavorited means the (user, product) pair already exists,
	// whether detected by the pre-check or by the unique constraint
	ErrAlreadyFavorited = errors.New("product already in favorites")

	// ErrNotFavorited means the pair does not exist, so there is nothing
	// to remove
	ErrNotFavorited = errors.New("product is not in favorites")

	// ErrInvalidProductID means the supplied product id is not a positive
	// integer
	ErrInvalidProductID = errors.New("product id must be greater than zero")

	// ErrCatalogUnavailable means the upstream catalog could not be reached
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
