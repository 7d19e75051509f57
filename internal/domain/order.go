package domain

import "time"

// Side indicates whether an order buys or sells.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew    OrderStatus = "new"
	OrderStatusQueued OrderStatus = "queued"
)

// Order represents a limit order resting on, or entering, a security's book.
// An order with PeakSize > 0 is an iceberg: only DisplayedQuantity is visible
// to matching while it is queued, and the displayed slice is replenished from
// the hidden remainder each time it is exhausted.
type Order struct {
	OrderID                  int64
	Side                     Side
	Quantity                 int64 // total remaining quantity
	Price                    int64
	MinimumExecutionQuantity int64
	PeakSize                 int64 // 0 for plain limit orders
	DisplayedQuantity        int64
	Broker                   *Broker
	Shareholder              *Shareholder
	EntryTime                time.Time
	Status                   OrderStatus
}

// IsIceberg reports whether the order carries a displayed-quantity cap.
func (o *Order) IsIceberg() bool {
	return o.PeakSize > 0
}

// Value is the credit an order is worth: price × total remaining quantity.
func (o *Order) Value() int64 {
	return o.Price * o.Quantity
}

// MatchableQuantity is the quantity visible to the matching engine. A queued
// iceberg exposes only its displayed slice; everything else exposes the
// total remaining quantity.
func (o *Order) MatchableQuantity() int64 {
	if o.IsIceberg() && o.Status == OrderStatusQueued {
		return o.DisplayedQuantity
	}
	return o.Quantity
}

// DecreaseQuantity consumes amount from the order. For a queued iceberg the
// displayed slice is consumed alongside the total.
func (o *Order) DecreaseQuantity(amount int64) {
	o.Quantity -= amount
	if o.IsIceberg() && o.Status == OrderStatusQueued {
		o.DisplayedQuantity -= amount
	}
}

// Replenish refills an iceberg's displayed slice from the hidden remainder,
// up to the peak size.
func (o *Order) Replenish() {
	if !o.IsIceberg() {
		return
	}
	o.DisplayedQuantity = o.Quantity
	if o.DisplayedQuantity > o.PeakSize {
		o.DisplayedQuantity = o.PeakSize
	}
}

// MarkQueued transitions the order into the book. Icebergs recompute their
// displayed slice on every (re)queue.
func (o *Order) MarkQueued() {
	o.Replenish()
	o.Status = OrderStatusQueued
}

// MarkNew returns the order to the pre-book state, used when an updated
// order is resubmitted through the matching path.
func (o *Order) MarkNew() {
	o.Status = OrderStatusNew
}

// CrossesWith reports whether the order's limit price is compatible with the
// given resting order on the opposite side.
func (o *Order) CrossesWith(other *Order) bool {
	if o.Side == SideBuy {
		return o.Price >= other.Price
	}
	return o.Price <= other.Price
}

// Snapshot returns a copy of the order, used to restore it verbatim when an
// update is rolled back.
func (o *Order) Snapshot() *Order {
	c := *o
	return &c
}

// Restore copies the snapshot's fields back onto the order.
func (o *Order) Restore(snapshot *Order) {
	*o = *snapshot
}

// ApplyUpdate overwrites the order's updatable fields from the request.
// The displayed slice is clamped so it never exceeds the new total.
func (o *Order) ApplyUpdate(req *OrderRequest) {
	o.Quantity = req.Quantity
	o.Price = req.Price
	if o.IsIceberg() {
		o.PeakSize = req.PeakSize
		if o.DisplayedQuantity > o.Quantity {
			o.DisplayedQuantity = o.Quantity
		}
	}
}
