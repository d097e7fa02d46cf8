package matchengine

import "errors"

var (
	// ErrPriceScale flags a price carrying more than four fractional
	// digits. Records failing the rule are dropped without a warning; the
	// sentinel lets callers tell the drop apart from a malformed record.
	ErrPriceScale = errors.New("price exceeds 4 decimal places")

	// ErrDuplicateOrder rejects an INSERT whose id is already resting.
	ErrDuplicateOrder = errors.New("duplicate order id")
)
