package engine

import (
	"github.com/mkarimzade/matchcore/internal/domain"
)

// MatchingControl is one admission/settlement check in the control pipeline.
// The matcher invokes the hooks at two checkpoints: per proposed trade
// (CanAcceptTrade / TradeAccepted) and once per whole match
// (CanAcceptMatching / MatchingAccepted). Controls embed noopControl and
// override only the hooks they need.
type MatchingControl interface {
	CanAcceptTrade(sec *Security, order *domain.Order, trade *domain.Trade) bool
	TradeAccepted(sec *Security, order *domain.Order, trade *domain.Trade, rec *tradeRecord)
	CanAcceptMatching(sec *Security, order *domain.Order, result *MatchResult) bool
	MatchingAccepted(sec *Security, order *domain.Order, result *MatchResult)
}

type noopControl struct{}

func (noopControl) CanAcceptTrade(*Security, *domain.Order, *domain.Trade) bool { return true }
func (noopControl) TradeAccepted(*Security, *domain.Order, *domain.Trade, *tradeRecord) {
}
func (noopControl) CanAcceptMatching(*Security, *domain.Order, *MatchResult) bool { return true }
func (noopControl) MatchingAccepted(*Security, *domain.Order, *MatchResult)       {}

// creditControl enforces and settles broker credit. In CONTINUOUS mode a
// buyer pays per trade and must afford each one; in AUCTION mode the buyer
// already paid the full order value at entry, so each trade at the opening
// price refunds the difference to the order's limit price.
type creditControl struct{ noopControl }

func (creditControl) CanAcceptTrade(sec *Security, order *domain.Order, trade *domain.Trade) bool {
	if sec.MatchingState != domain.MatchingStateContinuous {
		return true
	}
	if order.Side == domain.SideBuy && !trade.BuyerHasEnoughCredit() {
		return false
	}
	return true
}

func (creditControl) TradeAccepted(sec *Security, order *domain.Order, trade *domain.Trade, _ *tradeRecord) {
	if order.Side == domain.SideBuy {
		if sec.MatchingState == domain.MatchingStateAuction {
			order.Broker.IncreaseCreditBy((order.Price - trade.Price) * trade.Quantity)
		} else {
			trade.Buy.Broker.DecreaseCreditBy(trade.TradedValue())
		}
	}
	trade.Sell.Broker.IncreaseCreditBy(trade.TradedValue())
}

func (creditControl) CanAcceptMatching(sec *Security, order *domain.Order, result *MatchResult) bool {
	if sec.MatchingState == domain.MatchingStateContinuous &&
		result.Remainder.MatchableQuantity() > 0 &&
		order.Side == domain.SideBuy {
		return order.Broker.HasEnoughCredit(order.Value())
	}
	return true
}

func (creditControl) MatchingAccepted(sec *Security, order *domain.Order, result *MatchResult) {
	if sec.MatchingState == domain.MatchingStateContinuous &&
		result.Remainder.MatchableQuantity() > 0 &&
		order.Side == domain.SideBuy {
		order.Broker.DecreaseCreditBy(order.Value())
	}
}

// orderBookControl settles book state: quantity decrements, removal of
// fully consumed resting orders, iceberg replenishment, and resting or
// deleting the incoming order once the match is accepted. It records every
// book mutation in the trade record so a later rejection can undo it.
type orderBookControl struct{ noopControl }

func (orderBookControl) TradeAccepted(sec *Security, order *domain.Order, trade *domain.Trade, rec *tradeRecord) {
	book := sec.Book
	resting := rec.resting
	rec.prevDisplayed = resting.DisplayedQuantity

	order.DecreaseQuantity(trade.Quantity)
	resting.DecreaseQuantity(trade.Quantity)

	if resting.MatchableQuantity() > 0 {
		return
	}
	entry, ok := book.entryFor(resting.Side, resting.OrderID)
	if ok {
		rec.removedEntry = entry
		rec.removed = true
		book.RemoveByOrderID(resting.Side, resting.OrderID)
	}
	if resting.IsIceberg() && resting.Quantity > 0 {
		// Replenished slice re-enters at the back of its price level.
		book.Enqueue(resting)
		if requeued, ok := book.entryFor(resting.Side, resting.OrderID); ok {
			rec.requeuedEntry = requeued
			rec.requeued = true
		}
	}
}

func (orderBookControl) MatchingAccepted(sec *Security, order *domain.Order, result *MatchResult) {
	if sec.MatchingState == domain.MatchingStateContinuous && result.Remainder.MatchableQuantity() > 0 {
		sec.Book.Enqueue(result.Remainder)
	} else if sec.MatchingState == domain.MatchingStateAuction && result.Remainder.MatchableQuantity() == 0 {
		sec.Book.RemoveByOrderID(order.Side, order.OrderID)
	}
}

// positionControl applies shareholder position deltas for every confirmed
// trade.
type positionControl struct{ noopControl }

func (positionControl) MatchingAccepted(sec *Security, _ *domain.Order, result *MatchResult) {
	for _, trade := range result.Trades {
		trade.Buy.Shareholder.IncPosition(trade.ISIN, trade.Quantity)
		trade.Sell.Shareholder.DecPosition(trade.ISIN, trade.Quantity)
	}
}

// minimumExecutionQuantityControl rejects a match whose executed quantity
// falls short of the order's MEQ.
type minimumExecutionQuantityControl struct{ noopControl }

func (minimumExecutionQuantityControl) CanAcceptMatching(_ *Security, order *domain.Order, result *MatchResult) bool {
	var executed int64
	for _, trade := range result.Trades {
		executed += trade.Quantity
	}
	return executed >= order.MinimumExecutionQuantity
}

// controlChain is the fixed, ordered pipeline of matching controls. The
// chain composition never changes at runtime; each checkpoint evaluates its
// controls in a fixed sequence and short-circuits on the first rejection.
type controlChain struct {
	credit   creditControl
	book     orderBookControl
	position positionControl
	minExec  minimumExecutionQuantityControl
}

func (c *controlChain) canAcceptTrade(sec *Security, order *domain.Order, trade *domain.Trade) domain.MatchingOutcome {
	if !c.credit.CanAcceptTrade(sec, order, trade) {
		return domain.OutcomeNotEnoughCredit
	}
	return domain.OutcomeExecuted
}

func (c *controlChain) tradeAccepted(sec *Security, order *domain.Order, trade *domain.Trade, rec *tradeRecord) {
	c.credit.TradeAccepted(sec, order, trade, rec)
	c.book.TradeAccepted(sec, order, trade, rec)
}

func (c *controlChain) canAcceptMatching(sec *Security, order *domain.Order, result *MatchResult) domain.MatchingOutcome {
	if !c.minExec.CanAcceptMatching(sec, order, result) {
		return domain.OutcomeNotEnoughExecutedQuantity
	}
	if !c.credit.CanAcceptMatching(sec, order, result) {
		return domain.OutcomeNotEnoughCredit
	}
	return domain.OutcomeExecuted
}

func (c *controlChain) matchingAccepted(sec *Security, order *domain.Order, result *MatchResult) {
	c.credit.MatchingAccepted(sec, order, result)
	c.book.MatchingAccepted(sec, order, result)
	c.position.MatchingAccepted(sec, order, result)
}
