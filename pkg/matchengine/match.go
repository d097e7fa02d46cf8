package matchengine

import (
	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// Arithmetic selects how matching decrements the aggressor's remaining
// counter after each cross.
type Arithmetic string

const (
	// ArithmeticLegacy drops the counter by the resting order's pre-trade
	// volume, bit-compatible with the legacy venue.
	ArithmeticLegacy Arithmetic = "legacy"
	// ArithmeticTraded drops the counter by the traded quantity.
	ArithmeticTraded Arithmetic = "traded"
)

// Priority selects which crossable resting order fills first.
type Priority string

const (
	// PriorityTime matches in pure insertion order among crossable
	// candidates, ignoring price ranking (legacy venue behavior).
	PriorityTime Priority = "time"
	// PriorityPrice matches the best-priced crossable candidate first,
	// insertion order breaking ties within a price.
	PriorityPrice Priority = "price"
)

// insert crosses an incoming order against the opposite bucket until its
// remaining counter is exhausted or no crossable candidate is left, then
// rests any positive remainder at the back of its own bucket.
func (e *Engine) insert(o *Order) {
	remaining := o.Volume
	opposite := e.book.bucket(o.Side.Opposite())

	for remaining > 0 {
		i := e.nextCross(o, opposite)
		if i < 0 {
			break
		}
		resting := opposite.At(i)

		traded := min(remaining, resting.Volume)
		if e.cfg.Arithmetic == ArithmeticTraded {
			remaining -= traded
		} else {
			remaining -= resting.Volume
		}
		resting.Volume -= traded

		e.emit(Trade{
			Symbol:      resting.Symbol,
			Price:       resting.Price,
			Volume:      traded,
			AggressorID: o.ID,
			PassiveID:   resting.ID,
		})

		if resting.Volume == 0 {
			opposite.Remove(i)
		}
	}

	if remaining <= 0 {
		return
	}
	o.Volume = remaining
	e.book.Append(o)
}

// nextCross picks the next opposite-side candidate the order can trade
// with, or -1 when none remains. Only same-symbol orders qualify.
func (e *Engine) nextCross(o *Order, opposite *deque.Deque[*Order]) int {
	best := -1
	for i := 0; i < opposite.Len(); i++ {
		c := opposite.At(i)
		if c.Symbol != o.Symbol || !crosses(o, c) {
			continue
		}
		if e.cfg.Priority == PriorityTime {
			return i
		}
		if best < 0 || betterPrice(o.Side, c.Price, opposite.At(best).Price) {
			best = i
		}
	}
	return best
}

// crosses reports whether the incoming order can trade with a resting
// one: bid price >= ask price.
func crosses(incoming, resting *Order) bool {
	if incoming.Side == BUY {
		return resting.Price.LessThanOrEqual(incoming.Price)
	}
	return resting.Price.GreaterThanOrEqual(incoming.Price)
}

// betterPrice reports whether price a beats price b from the aggressor's
// point of view.
func betterPrice(aggressor Side, a, b decimal.Decimal) bool {
	if aggressor == BUY {
		return a.LessThan(b)
	}
	return a.GreaterThan(b)
}
