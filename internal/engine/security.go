package engine

import (
	"github.com/mkarimzade/matchcore/internal/domain"
)

// Security is a single tradable instrument: it owns the order book, the
// matching-state flag, and the auction pricing fields, and it orchestrates
// order entry, update, deletion and reopening by delegating to the Matcher.
//
// OpeningPrice and TradableQuantity are meaningful only while the matching
// state is AUCTION and are recomputed after every book mutation in that
// state.
type Security struct {
	ISIN             string
	MatchingState    domain.MatchingState
	TickSize         int64
	LotSize          int64
	LastTradedPrice  int64
	OpeningPrice     int64
	TradableQuantity int64
	Book             *OrderBook
}

// NewSecurity creates a security in CONTINUOUS state with an empty book.
func NewSecurity(isin string, tickSize, lotSize int64) *Security {
	return &Security{
		ISIN:          isin,
		MatchingState: domain.MatchingStateContinuous,
		TickSize:      tickSize,
		LotSize:       lotSize,
		Book:          NewOrderBook(),
	}
}

// SetMatchingState switches the matching mode. Callers leaving AUCTION run
// Reopen first.
func (s *Security) SetMatchingState(target domain.MatchingState) {
	s.MatchingState = target
}

// NewOrder builds the order described by the request and dispatches it: in
// AUCTION it is enqueued and the opening price recomputed (nil result); in
// CONTINUOUS it goes through the matcher. An activated stop buy first gets
// its entry-time credit reservation refunded, since continuous matching
// charges the buyer per trade.
func (s *Security) NewOrder(req *domain.OrderRequest, broker *domain.Broker, shareholder *domain.Shareholder, matcher *Matcher) *MatchResult {
	order := &domain.Order{
		OrderID:                  req.OrderID,
		Side:                     req.Side,
		Quantity:                 req.Quantity,
		Price:                    req.Price,
		MinimumExecutionQuantity: req.MinimumExecutionQuantity,
		PeakSize:                 req.PeakSize,
		Broker:                   broker,
		Shareholder:              shareholder,
		EntryTime:                req.EntryTime,
		Status:                   domain.OrderStatusNew,
	}

	if s.MatchingState == domain.MatchingStateContinuous && req.StopPrice > 0 && req.Side == domain.SideBuy {
		broker.IncreaseCreditBy(order.Value())
	}

	if s.MatchingState == domain.MatchingStateAuction {
		return s.auctionMatching(order)
	}
	return s.continuousMatching(order, matcher)
}

// DeleteOrder removes the order from its queue and refunds the buyer's
// reserved credit. During an auction the opening price is recomputed.
func (s *Security) DeleteOrder(req *domain.DeleteOrderRequest) error {
	order := s.Book.FindByOrderID(req.Side, req.OrderID)
	if order == nil {
		return domain.ErrOrderNotFound
	}
	s.Book.RemoveByOrderID(req.Side, req.OrderID)
	if order.Side == domain.SideBuy {
		order.Broker.IncreaseCreditBy(order.Value())
	}
	if s.MatchingState == domain.MatchingStateAuction {
		s.reprice()
	}
	return nil
}

// UpdateOrder applies the requested mutation to a queued order. An update
// that does not lose priority (no price change, no quantity increase, no
// iceberg peak increase) is settled in place with a credit adjustment only.
// Otherwise the original is removed and the updated order resubmitted
// through the matching path; if that resubmission is rejected, the original
// order and its credit reservation are restored.
func (s *Security) UpdateOrder(req *domain.OrderRequest, matcher *Matcher) (*MatchResult, error) {
	order := s.Book.FindByOrderID(req.Side, req.OrderID)
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	original := order.Snapshot()
	order.ApplyUpdate(req)

	losesPriority := req.Quantity > original.Quantity ||
		req.Price != original.Price ||
		(original.IsIceberg() && original.PeakSize < req.PeakSize)

	if !losesPriority {
		if req.Side == domain.SideBuy {
			original.Broker.DecreaseCreditBy((req.Quantity - original.Quantity) * original.Price)
		}
		return &MatchResult{Outcome: domain.OutcomeExecuted}, nil
	}

	s.Book.RemoveByOrderID(original.Side, original.OrderID)
	if req.Side == domain.SideBuy {
		order.Broker.IncreaseCreditBy(original.Value())
	}
	order.MarkNew()

	if s.MatchingState == domain.MatchingStateContinuous {
		result := s.continuousMatching(order, matcher)
		if result.Outcome != domain.OutcomeExecuted {
			s.Book.Enqueue(original)
			if req.Side == domain.SideBuy {
				original.Broker.DecreaseCreditBy(original.Value())
			}
		}
		return result, nil
	}

	result := s.auctionMatching(order)
	if req.Side == domain.SideBuy {
		order.Broker.DecreaseCreditBy(order.Value())
	}
	return result, nil
}

// Reopen converts the auction's crossed orders into trades at the standing
// opening price: every tradable buy order is replayed through the matcher
// until no sell order remains tradable at that price. The caller switches
// the matching state afterwards.
func (s *Security) Reopen(matcher *Matcher) []*domain.Trade {
	var trades []*domain.Trade
	for _, buy := range s.Book.FindTradableBuyOrders(s.OpeningPrice) {
		if len(s.Book.FindTradableSellOrders(s.OpeningPrice)) == 0 {
			break
		}
		result := s.continuousMatching(buy, matcher)
		trades = append(trades, result.Trades...)
	}
	return trades
}

func (s *Security) continuousMatching(order *domain.Order, matcher *Matcher) *MatchResult {
	result := matcher.Execute(s, order, s.MatchingState, s.OpeningPrice)
	if len(result.Trades) > 0 {
		s.LastTradedPrice = result.Trades[len(result.Trades)-1].Price
	}
	return result
}

// auctionMatching enqueues the order and recomputes the auction pricing
// fields. No trades happen until reopening, so there is no MatchResult.
func (s *Security) auctionMatching(order *domain.Order) *MatchResult {
	s.Book.Enqueue(order)
	s.reprice()
	return nil
}

func (s *Security) reprice() {
	s.OpeningPrice = s.Book.CalculateOpeningPrice(s.LastTradedPrice, s.TickSize)
	s.TradableQuantity = s.Book.CalculateTradableQuantity(s.OpeningPrice)
}
