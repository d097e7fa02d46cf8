package matchengine

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Level is the aggregated remaining volume at one price, one side, one
// symbol. Identity of the contributing orders is discarded.
type Level struct {
	Price  decimal.Decimal
	Volume int64
}

// Quote pairs the k-th best bid level with the k-th best ask level of a
// symbol. One side is nil when the level counts differ.
type Quote struct {
	Bid *Level
	Ask *Level
}

// Row renders <bidPrice>,<bidVolume>,<askPrice>,<askVolume>, leaving the
// missing side's fields empty.
func (q Quote) Row() string {
	var bidPrice, bidVolume, askPrice, askVolume string
	if q.Bid != nil {
		bidPrice = formatPrice(q.Bid.Price)
		bidVolume = strconv.FormatInt(q.Bid.Volume, 10)
	}
	if q.Ask != nil {
		askPrice = formatPrice(q.Ask.Price)
		askVolume = strconv.FormatInt(q.Ask.Volume, 10)
	}
	return bidPrice + "," + bidVolume + "," + askPrice + "," + askVolume
}

type symbolLevels struct {
	bids []Level
	asks []Level
}

func (s *symbolLevels) add(side Side, price decimal.Decimal, volume int64) {
	target := &s.bids
	if side == SELL {
		target = &s.asks
	}
	for i := range *target {
		if (*target)[i].Price.Equal(price) {
			(*target)[i].Volume += volume
			return
		}
	}
	*target = append(*target, Level{Price: price, Volume: volume})
}

func (s *symbolLevels) sort() {
	// best bid first, best ask first
	sort.SliceStable(s.bids, func(i, j int) bool { return s.bids[i].Price.GreaterThan(s.bids[j].Price) })
	sort.SliceStable(s.asks, func(i, j int) bool { return s.asks[i].Price.LessThan(s.asks[j].Price) })
}

// drainLeftovers collapses every resting order into per-symbol bid/ask
// levels and renders one section per symbol: a ===<symbol>=== header
// followed by paired rows. Symbols appear in first-encounter order over a
// BUY-then-SELL drain; symbols with no resting liquidity never appear.
// Both buckets end empty.
func (e *Engine) drainLeftovers() []string {
	var symbols []string
	bySymbol := make(map[string]*symbolLevels)

	for _, side := range []Side{BUY, SELL} {
		q := e.book.bucket(side)
		for q.Len() > 0 {
			o := q.PopFront()
			sl, ok := bySymbol[o.Symbol]
			if !ok {
				sl = &symbolLevels{}
				bySymbol[o.Symbol] = sl
				symbols = append(symbols, o.Symbol)
			}
			sl.add(side, o.Price, o.Volume)
		}
	}

	var rows []string
	for _, symbol := range symbols {
		sl := bySymbol[symbol]
		sl.sort()
		rows = append(rows, "==="+symbol+"===")
		for k := 0; k < max(len(sl.bids), len(sl.asks)); k++ {
			var quote Quote
			if k < len(sl.bids) {
				quote.Bid = &sl.bids[k]
			}
			if k < len(sl.asks) {
				quote.Ask = &sl.asks[k]
			}
			rows = append(rows, quote.Row())
		}
	}
	return rows
}
