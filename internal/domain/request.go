package domain

import "time"

// OrderRequest is a validated order intent: a new order, an update to an
// existing order, or a stop order waiting for activation. Stop orders
// (StopPrice > 0) are held outside the book as requests until their
// activation condition is met.
type OrderRequest struct {
	RequestID                int64
	OrderID                  int64
	ISIN                     string
	BrokerID                 int64
	ShareholderID            int64
	Side                     Side
	Quantity                 int64
	Price                    int64
	PeakSize                 int64
	MinimumExecutionQuantity int64
	StopPrice                int64
	EntryTime                time.Time
}

// Value is price × quantity, the credit a buy request reserves.
func (r *OrderRequest) Value() int64 {
	return r.Price * r.Quantity
}

// DeleteOrderRequest asks for the removal of a resting or inactive order.
type DeleteOrderRequest struct {
	RequestID int64
	OrderID   int64
	ISIN      string
	Side      Side
}

// ChangeMatchingStateRequest switches a security's matching mode. Leaving
// AUCTION triggers reopening before the target state takes effect.
type ChangeMatchingStateRequest struct {
	ISIN        string
	TargetState MatchingState
}
