package store

import "errors"

// Nothing here is fatal: every operation either completes or resolves to a
// user-visible notice, and callers map these onto HTTP responses.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrItemNotFound         = errors.New("item not found in cart")
	ErrQuantityTooLow       = errors.New("quantity must be at least 1")
	ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrIllegalTransition    = errors.New("illegal order status transition")
	ErrMirrorUnavailable    = errors.New("cart sync unavailable")
	ErrAlreadyInWishlist    = errors.New("product already in wishlist")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrReasonRequired       = errors.New("a reason is required")
)
