package engine

import (
	"github.com/mkarimzade/matchcore/internal/domain"
)

// MatchResult is the outcome of one matching attempt: the terminal outcome,
// the remainder of the incoming order (nil on rejection), and the trades
// produced in order. It is never mutated after construction.
type MatchResult struct {
	Outcome   domain.MatchingOutcome
	Remainder *domain.Order
	Trades    []*domain.Trade

	records []tradeRecord
}

// tradeRecord is the undo log entry for one provisionally settled trade.
// Rollback replays these newest-first to restore credit, quantities and
// queue positions exactly.
type tradeRecord struct {
	trade         *domain.Trade
	resting       *domain.Order
	prevDisplayed int64
	removedEntry  bookEntry
	removed       bool
	requeuedEntry bookEntry
	requeued      bool
}

// Matcher consumes an incoming order against the opposite side of a
// security's book, producing trades gated by the control pipeline. Trades
// are settled speculatively; a rejection at either checkpoint rolls the
// whole attempt back.
type Matcher struct {
	controls controlChain
}

// NewMatcher creates a Matcher with the fixed control pipeline.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match walks the opposite queue while the incoming order has remaining
// quantity and a crossing resting order exists. In AUCTION mode matching
// stops once the best resting price exceeds the opening price, and trades
// execute at the opening price; in CONTINUOUS mode trades execute at the
// resting order's price. Each proposed trade passes the per-trade gate and
// settlement hooks before the next iteration.
func (m *Matcher) Match(sec *Security, order *domain.Order, state domain.MatchingState, openingPrice int64) *MatchResult {
	book := sec.Book
	var trades []*domain.Trade
	var records []tradeRecord

	for book.HasOrders(order.Side.Opposite()) && order.MatchableQuantity() > 0 {
		resting := book.MatchWithFirst(order)
		if resting == nil || (state == domain.MatchingStateAuction && resting.Price > openingPrice) {
			break
		}

		price := resting.Price
		if state == domain.MatchingStateAuction {
			price = openingPrice
		}
		quantity := min(order.MatchableQuantity(), resting.MatchableQuantity())
		trade := domain.NewTrade(sec.ISIN, price, quantity, order, resting)

		if outcome := m.controls.canAcceptTrade(sec, order, trade); outcome != domain.OutcomeExecuted {
			m.rollback(sec, order, records)
			return &MatchResult{Outcome: outcome}
		}

		rec := tradeRecord{trade: trade, resting: resting}
		m.controls.tradeAccepted(sec, order, trade, &rec)
		trades = append(trades, trade)
		records = append(records, rec)
	}

	return &MatchResult{
		Outcome:   domain.OutcomeExecuted,
		Remainder: order,
		Trades:    trades,
		records:   records,
	}
}

// Execute runs Match, then applies the matching-level gate and settlement.
// A rejection at the matching gate rolls back the entire trade set; the
// book, broker credit and shareholder positions come out bit-identical to
// their pre-call values.
func (m *Matcher) Execute(sec *Security, order *domain.Order, state domain.MatchingState, openingPrice int64) *MatchResult {
	result := m.Match(sec, order, state, openingPrice)
	if result.Outcome == domain.OutcomeNotEnoughCredit {
		return result
	}

	if outcome := m.controls.canAcceptMatching(sec, order, result); outcome != domain.OutcomeExecuted {
		m.rollback(sec, order, result.records)
		return &MatchResult{Outcome: outcome}
	}

	m.controls.matchingAccepted(sec, order, result)
	return result
}

// rollback undoes every provisionally settled trade, newest first: it
// reverses the credit transfers the settlement hooks applied, restores both
// orders' quantities and displayed slices, and reinserts removed resting
// orders at exactly the queue position they held before the match attempt.
func (m *Matcher) rollback(sec *Security, order *domain.Order, records []tradeRecord) {
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		trade := rec.trade

		trade.Sell.Broker.DecreaseCreditBy(trade.TradedValue())
		if order.Side == domain.SideBuy {
			if sec.MatchingState == domain.MatchingStateAuction {
				order.Broker.DecreaseCreditBy((order.Price - trade.Price) * trade.Quantity)
			} else {
				trade.Buy.Broker.IncreaseCreditBy(trade.TradedValue())
			}
		}

		if rec.requeued {
			sec.Book.removeEntry(rec.requeuedEntry)
		}
		if rec.removed {
			sec.Book.putBack(rec.removedEntry)
		}

		rec.resting.Quantity += trade.Quantity
		rec.resting.DisplayedQuantity = rec.prevDisplayed
		order.Quantity += trade.Quantity
		if order.IsIceberg() && order.Status == domain.OrderStatusQueued {
			order.DisplayedQuantity += trade.Quantity
		}
	}
}
