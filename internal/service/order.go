package service

import (
	"sort"
	"sync"

	"github.com/mkarimzade/matchcore/internal/domain"
	"github.com/mkarimzade/matchcore/internal/engine"
	"github.com/mkarimzade/matchcore/internal/event"
	"github.com/mkarimzade/matchcore/internal/store"
)

// OrderService routes validated order intents into the matching core. It
// owns the inactive holding area for stop orders and replays them through
// the normal entry path whenever the last traded price moves.
//
// Processing is strictly sequential: one request is matched, settled and
// cascaded to completion before the next is accepted.
type OrderService struct {
	mu           sync.Mutex
	securities   *store.SecurityStore
	brokers      *store.BrokerStore
	shareholders *store.ShareholderStore
	matcher      *engine.Matcher
	publisher    event.Publisher
	inactive     []*domain.OrderRequest
}

// NewOrderService creates an OrderService with the given collaborators.
func NewOrderService(
	securities *store.SecurityStore,
	brokers *store.BrokerStore,
	shareholders *store.ShareholderStore,
	matcher *engine.Matcher,
	publisher event.Publisher,
) *OrderService {
	return &OrderService{
		securities:   securities,
		brokers:      brokers,
		shareholders: shareholders,
		matcher:      matcher,
		publisher:    publisher,
	}
}

// NewOrder validates and admits a new order. Stop orders whose activation
// condition is not yet met are held outside the book; everything else goes
// through the matching path, followed by the stop-order cascade.
func (s *OrderService) NewOrder(req *domain.OrderRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := s.validateOrderRequest(req, false); len(errs) > 0 {
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: errs})
		return
	}

	sec, _ := s.securities.Get(req.ISIN)
	broker, _ := s.brokers.Get(req.BrokerID)
	shareholder, _ := s.shareholders.Get(req.ShareholderID)

	if !s.admitOrder(req, sec, broker, shareholder) {
		return
	}
	s.publisher.Publish(event.OrderAccepted{RequestID: req.RequestID, OrderID: req.OrderID})

	if canActivate(req, sec.LastTradedPrice) {
		s.executeRequest(req)
	} else {
		s.inactive = append(s.inactive, req)
		return
	}

	s.processInactive()
}

// UpdateOrder validates and applies an update. Updates to inactive stop
// orders mutate the held request in place; updates to queued orders go
// through the security's update path.
func (s *OrderService) UpdateOrder(req *domain.OrderRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := s.validateOrderRequest(req, true); len(errs) > 0 {
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: errs})
		return
	}

	sec, _ := s.securities.Get(req.ISIN)
	shareholder, _ := s.shareholders.Get(req.ShareholderID)

	if !s.admitUpdate(req, sec, shareholder) {
		return
	}
	s.publisher.Publish(event.OrderUpdated{RequestID: req.RequestID, OrderID: req.OrderID})

	if req.StopPrice > 0 {
		s.updateInactive(req)
	} else {
		result, err := sec.UpdateOrder(req, s.matcher)
		if err != nil {
			s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgOrderIDNotFound}})
			return
		}
		s.publishResult(req, result, sec)
	}

	s.processInactive()
}

// DeleteOrder removes a resting or inactive order and refunds any buy-side
// credit reservation.
func (s *OrderService) DeleteOrder(req *domain.DeleteOrderRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := s.validateDeleteRequest(req); len(errs) > 0 {
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: errs})
		return
	}

	if held := s.findInactive(req.OrderID); held != nil {
		if held.Side == domain.SideBuy {
			if broker, err := s.brokers.Get(held.BrokerID); err == nil {
				broker.IncreaseCreditBy(held.Value())
			}
		}
		s.removeInactive(held)
	} else {
		sec, _ := s.securities.Get(req.ISIN)
		if err := sec.DeleteOrder(req); err != nil {
			s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgOrderIDNotFound}})
			return
		}
		if sec.MatchingState == domain.MatchingStateAuction {
			s.publisher.Publish(event.OpeningPrice{ISIN: sec.ISIN, Price: sec.OpeningPrice, TradableQuantity: sec.TradableQuantity})
		}
	}

	s.publisher.Publish(event.OrderDeleted{RequestID: req.RequestID, OrderID: req.OrderID})
}

// ChangeMatchingState transitions a security between CONTINUOUS and
// AUCTION. A security currently in AUCTION reopens first: crossed orders
// trade at the standing opening price before the new state takes effect.
func (s *OrderService) ChangeMatchingState(req *domain.ChangeMatchingStateRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.securities.Get(req.ISIN)
	if err != nil {
		s.publisher.Publish(event.OrderRejected{Reasons: []string{MsgUnknownSecurityISIN}})
		return
	}

	if sec.MatchingState == domain.MatchingStateAuction {
		for _, trade := range sec.Reopen(s.matcher) {
			s.publisher.Publish(event.TradeExecuted{
				ISIN:        sec.ISIN,
				Price:       trade.Price,
				Quantity:    trade.Quantity,
				BuyOrderID:  trade.Buy.OrderID,
				SellOrderID: trade.Sell.OrderID,
			})
		}
	}
	sec.SetMatchingState(req.TargetState)
	s.publisher.Publish(event.SecurityStateChanged{ISIN: sec.ISIN, State: sec.MatchingState})

	s.processInactive()
}

// admitOrder runs the pre-entry checks the pipeline does not cover: the
// seller's position across all resting sells plus the new quantity, and the
// up-front credit reservation for stop orders and auction entries.
func (s *OrderService) admitOrder(req *domain.OrderRequest, sec *engine.Security, broker *domain.Broker, shareholder *domain.Shareholder) bool {
	if req.Side == domain.SideSell &&
		!shareholder.HasEnoughPositionsOn(sec.ISIN, sec.Book.TotalSellQuantityByShareholder(shareholder)+req.Quantity) {
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgSellerHasNotEnoughPositions}})
		return false
	}
	if (req.StopPrice > 0 || sec.MatchingState == domain.MatchingStateAuction) && req.Side == domain.SideBuy {
		if !broker.HasEnoughCredit(req.Value()) {
			s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgBuyerHasNotEnoughCredit}})
			return false
		}
		broker.DecreaseCreditBy(req.Value())
	}
	return true
}

// admitUpdate runs the seller position pre-check for updates.
func (s *OrderService) admitUpdate(req *domain.OrderRequest, sec *engine.Security, shareholder *domain.Shareholder) bool {
	if req.Side == domain.SideSell &&
		!shareholder.HasEnoughPositionsOn(sec.ISIN, sec.Book.TotalSellQuantityByShareholder(shareholder)+req.Quantity) {
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgSellerHasNotEnoughPositions}})
		return false
	}
	return true
}

// executeRequest replays a request through the security's entry path and
// publishes the outcome.
func (s *OrderService) executeRequest(req *domain.OrderRequest) {
	sec, _ := s.securities.Get(req.ISIN)
	broker, _ := s.brokers.Get(req.BrokerID)
	shareholder, _ := s.shareholders.Get(req.ShareholderID)
	result := sec.NewOrder(req, broker, shareholder, s.matcher)
	s.publishResult(req, result, sec)
}

// publishResult translates a MatchResult into events. A nil result means
// the order was enqueued during an auction, so the new opening price is
// published instead.
func (s *OrderService) publishResult(req *domain.OrderRequest, result *engine.MatchResult, sec *engine.Security) {
	if req.StopPrice > 0 {
		s.publisher.Publish(event.OrderActivated{RequestID: req.RequestID, OrderID: req.OrderID})
	}
	if result == nil {
		s.publisher.Publish(event.OpeningPrice{ISIN: sec.ISIN, Price: sec.OpeningPrice, TradableQuantity: sec.TradableQuantity})
		return
	}

	switch result.Outcome {
	case domain.OutcomeNotEnoughCredit:
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgBuyerHasNotEnoughCredit}})
		return
	case domain.OutcomeNotEnoughPositions:
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgSellerHasNotEnoughPositions}})
		return
	case domain.OutcomeNotEnoughExecutedQuantity:
		s.publisher.Publish(event.OrderRejected{RequestID: req.RequestID, OrderID: req.OrderID, Reasons: []string{MsgExecutedQuantityBelowMEQ}})
		return
	}

	if len(result.Trades) > 0 {
		trades := make([]event.TradeInfo, 0, len(result.Trades))
		for _, t := range result.Trades {
			trades = append(trades, event.NewTradeInfo(t))
		}
		s.publisher.Publish(event.OrderExecuted{RequestID: req.RequestID, OrderID: req.OrderID, Trades: trades})
	}
}

// canActivate reports whether a request may enter the book now: plain
// orders always can; a stop buy activates once its stop price is at or
// below the last traded price, a stop sell once at or above it.
func canActivate(req *domain.OrderRequest, lastTradedPrice int64) bool {
	if req.StopPrice == 0 {
		return true
	}
	if req.Side == domain.SideBuy {
		return req.StopPrice <= lastTradedPrice
	}
	return req.StopPrice >= lastTradedPrice
}

// processInactive replays newly activated stop orders until a full pass
// finds none. Buys replay tightest trigger first (stop price ascending),
// sells likewise (stop price descending); each replay can move the last
// traded price, so the scan repeats to a fixed point.
func (s *OrderService) processInactive() {
	for {
		buys, sells := s.collectActivated()
		if len(buys) == 0 && len(sells) == 0 {
			return
		}
		sort.SliceStable(buys, func(i, j int) bool { return buys[i].StopPrice < buys[j].StopPrice })
		sort.SliceStable(sells, func(i, j int) bool { return sells[i].StopPrice > sells[j].StopPrice })

		for _, req := range buys {
			s.removeInactive(req)
			s.executeRequest(req)
		}
		for _, req := range sells {
			s.removeInactive(req)
			s.executeRequest(req)
		}
	}
}

// collectActivated returns the held requests whose activation condition is
// now true, split by side.
func (s *OrderService) collectActivated() (buys, sells []*domain.OrderRequest) {
	for _, req := range s.inactive {
		sec, err := s.securities.Get(req.ISIN)
		if err != nil {
			continue
		}
		if !canActivate(req, sec.LastTradedPrice) {
			continue
		}
		if req.Side == domain.SideBuy {
			buys = append(buys, req)
		} else {
			sells = append(sells, req)
		}
	}
	return buys, sells
}

// updateInactive mutates a held stop order in place, adjusting the buy-side
// credit reservation by the change in order value.
func (s *OrderService) updateInactive(req *domain.OrderRequest) {
	held := s.findInactive(req.OrderID)
	if held == nil {
		return
	}
	if held.Side == domain.SideBuy {
		if broker, err := s.brokers.Get(held.BrokerID); err == nil {
			broker.IncreaseCreditBy(held.Value() - req.Value())
		}
	}
	held.Price = req.Price
	held.Quantity = req.Quantity
	held.StopPrice = req.StopPrice
}

func (s *OrderService) findInactive(orderID int64) *domain.OrderRequest {
	for _, req := range s.inactive {
		if req.OrderID == orderID {
			return req
		}
	}
	return nil
}

func (s *OrderService) removeInactive(target *domain.OrderRequest) {
	for i, req := range s.inactive {
		if req == target {
			s.inactive = append(s.inactive[:i], s.inactive[i+1:]...)
			return
		}
	}
}
