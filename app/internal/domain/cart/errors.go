package cart

import "errors"

// MaxCartIDLength matches the widest cart key every store can hold.
const MaxCartIDLength = 128

var (
	ErrInvalidInput = errors.New("missing required fields")
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)
