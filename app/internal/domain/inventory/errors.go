package inventory

import "errors"

var (
	ErrInvalidEntryType = errors.New("invalid stock entry type")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)
