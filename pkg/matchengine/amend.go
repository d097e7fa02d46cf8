package matchengine

import "github.com/shopspring/decimal"

// amend applies the reinsertion-vs-in-place policy to a resting order.
// Side is never supplied by an AMEND; it stays whatever the resting order
// already is. Unknown ids are a tolerated no-op.
func (e *Engine) amend(id int64, price decimal.Decimal, volume int64) {
	o, ok := e.book.Find(id)
	if !ok {
		return
	}

	// Shrinking volume at an unchanged price keeps the queue position.
	if o.Price.Equal(price) && o.Volume > volume {
		o.Volume = volume
		return
	}

	// Anything else costs the order its place in the queue.
	removed, _ := e.book.Remove(id)
	removed.Volume = volume
	if !removed.Price.Equal(price) {
		removed.Price = price
		e.insert(removed) // may cross the opposite book immediately
		return
	}
	e.book.Append(removed) // volume up at the same price: back of the queue
}

// pull removes a resting order by id. Pulling an unknown or already-gone
// id is a no-op, not an error.
func (e *Engine) pull(id int64) {
	e.book.Remove(id)
}
