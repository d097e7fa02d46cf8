package matchengine

import "github.com/gammazero/deque"

// Book holds the resting liquidity for every symbol: one bucket per side,
// both in insertion order. Bucket position is the effective time priority
// for matching and is never re-sorted by price.
type Book struct {
	buckets [2]*deque.Deque[*Order]
}

func NewBook() *Book {
	return &Book{buckets: [2]*deque.Deque[*Order]{
		new(deque.Deque[*Order]),
		new(deque.Deque[*Order]),
	}}
}

func sideIndex(s Side) int {
	if s == BUY {
		return 0
	}
	return 1
}

// bucket returns the resting queue for one side.
func (b *Book) bucket(s Side) *deque.Deque[*Order] {
	return b.buckets[sideIndex(s)]
}

// Append rests an order at the back of its side's bucket, giving it the
// newest time priority.
func (b *Book) Append(o *Order) {
	b.bucket(o.Side).PushBack(o)
}

// Find locates a resting order by id, scanning the BUY bucket before SELL.
func (b *Book) Find(id int64) (*Order, bool) {
	for _, q := range b.buckets {
		if i := q.Index(func(o *Order) bool { return o.ID == id }); i >= 0 {
			return q.At(i), true
		}
	}
	return nil, false
}

// Remove pulls a resting order out of its bucket by id, scanning the BUY
// bucket before SELL.
func (b *Book) Remove(id int64) (*Order, bool) {
	for _, q := range b.buckets {
		if i := q.Index(func(o *Order) bool { return o.ID == id }); i >= 0 {
			return q.Remove(i), true
		}
	}
	return nil, false
}

// Len reports the number of resting orders across both sides.
func (b *Book) Len() int {
	return b.buckets[0].Len() + b.buckets[1].Len()
}
