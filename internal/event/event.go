package event

import (
	"github.com/mkarimzade/matchcore/internal/domain"
)

// Event is a notification produced by the order router. The core never
// performs I/O itself; it hands events to a Publisher and the surrounding
// system decides how to deliver them.
type Event interface {
	Kind() string
}

// Publisher is the outbound side-effect sink for events.
type Publisher interface {
	Publish(e Event)
}

// TradeInfo is the per-trade payload carried by OrderExecuted.
type TradeInfo struct {
	Price       int64 `json:"price"`
	Quantity    int64 `json:"quantity"`
	BuyOrderID  int64 `json:"buy_order_id"`
	SellOrderID int64 `json:"sell_order_id"`
}

// NewTradeInfo extracts the event payload from a trade.
func NewTradeInfo(t *domain.Trade) TradeInfo {
	return TradeInfo{
		Price:       t.Price,
		Quantity:    t.Quantity,
		BuyOrderID:  t.Buy.OrderID,
		SellOrderID: t.Sell.OrderID,
	}
}

// OrderAccepted signals that a new order passed validation and admission.
type OrderAccepted struct {
	RequestID int64 `json:"request_id"`
	OrderID   int64 `json:"order_id"`
}

func (OrderAccepted) Kind() string { return "order_accepted" }

// OrderRejected carries the named reasons an order was refused.
type OrderRejected struct {
	RequestID int64    `json:"request_id"`
	OrderID   int64    `json:"order_id"`
	Reasons   []string `json:"reasons"`
}

func (OrderRejected) Kind() string { return "order_rejected" }

// OrderUpdated signals that an update request was admitted.
type OrderUpdated struct {
	RequestID int64 `json:"request_id"`
	OrderID   int64 `json:"order_id"`
}

func (OrderUpdated) Kind() string { return "order_updated" }

// OrderDeleted signals a completed deletion.
type OrderDeleted struct {
	RequestID int64 `json:"request_id"`
	OrderID   int64 `json:"order_id"`
}

func (OrderDeleted) Kind() string { return "order_deleted" }

// OrderActivated signals that a stop order's trigger condition was met and
// the order entered the normal matching path.
type OrderActivated struct {
	RequestID int64 `json:"request_id"`
	OrderID   int64 `json:"order_id"`
}

func (OrderActivated) Kind() string { return "order_activated" }

// OrderExecuted carries the trades produced by one matching attempt.
type OrderExecuted struct {
	RequestID int64       `json:"request_id"`
	OrderID   int64       `json:"order_id"`
	Trades    []TradeInfo `json:"trades"`
}

func (OrderExecuted) Kind() string { return "order_executed" }

// TradeExecuted reports a single reopening trade.
type TradeExecuted struct {
	ISIN        string `json:"isin"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	BuyOrderID  int64  `json:"buy_order_id"`
	SellOrderID int64  `json:"sell_order_id"`
}

func (TradeExecuted) Kind() string { return "trade_executed" }

// OpeningPrice reports the auction price and tradable quantity after a book
// mutation during an auction.
type OpeningPrice struct {
	ISIN             string `json:"isin"`
	Price            int64  `json:"price"`
	TradableQuantity int64  `json:"tradable_quantity"`
}

func (OpeningPrice) Kind() string { return "opening_price" }

// SecurityStateChanged reports a completed matching-state transition.
type SecurityStateChanged struct {
	ISIN  string               `json:"isin"`
	State domain.MatchingState `json:"state"`
}

func (SecurityStateChanged) Kind() string { return "security_state_changed" }
