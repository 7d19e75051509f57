package domain

import "github.com/google/uuid"

// Trade represents a matched execution between a buy and a sell order.
// It is immutable once constructed; settlement reads it to compute credit
// and position deltas.
type Trade struct {
	TradeID  string
	ISIN     string
	Price    int64
	Quantity int64
	Buy      *Order
	Sell     *Order
}

// NewTrade builds a trade between the two orders, assigning each to the
// buy or sell slot by its side.
func NewTrade(isin string, price, quantity int64, a, b *Order) *Trade {
	t := &Trade{
		TradeID:  uuid.New().String(),
		ISIN:     isin,
		Price:    price,
		Quantity: quantity,
	}
	if a.Side == SideBuy {
		t.Buy, t.Sell = a, b
	} else {
		t.Buy, t.Sell = b, a
	}
	return t
}

// TradedValue is price × quantity.
func (t *Trade) TradedValue() int64 {
	return t.Price * t.Quantity
}

// BuyerHasEnoughCredit reports whether the buy-side broker can pay for
// this trade.
func (t *Trade) BuyerHasEnoughCredit() bool {
	return t.Buy.Broker.HasEnoughCredit(t.TradedValue())
}
