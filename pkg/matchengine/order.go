package matchengine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Opposite returns the side an incoming order crosses against.
func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

// Order is a limit order. Volume is the remaining unfilled quantity; it
// shrinks as fills occur and an order filled down to zero leaves the book.
type Order struct {
	ID     int64
	Symbol string
	Side   Side
	Price  decimal.Decimal
	Volume int64
}

// Trade is one execution. Price is always the passive (resting) order's
// price, never the aggressor's.
type Trade struct {
	Symbol      string
	Price       decimal.Decimal
	Volume      int64
	AggressorID int64
	PassiveID   int64
}

// Row renders the trade as <symbol>,<price>,<volume>,<aggressorId>,<passiveId>.
func (t Trade) Row() string {
	return t.Symbol + "," + formatPrice(t.Price) + "," +
		strconv.FormatInt(t.Volume, 10) + "," +
		strconv.FormatInt(t.AggressorID, 10) + "," +
		strconv.FormatInt(t.PassiveID, 10)
}

// formatPrice renders a price with no trailing fractional zeros and no
// decimal point for integral values, so an order entered at 46.00 reports
// back as 46.
func formatPrice(d decimal.Decimal) string {
	s := d.String()
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
