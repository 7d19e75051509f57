package engine

import (
	"github.com/google/btree"

	"github.com/mkarimzade/matchcore/internal/domain"
)

// bookEntry is a single order resting on one side of the book. The sequence
// number is the time-priority key: it is assigned on every enqueue, so a
// replenished iceberg re-enters at the back of its price level.
type bookEntry struct {
	Price int64
	Seq   uint64
	Order *domain.Order
}

// buyLess orders the buy side: price descending, then sequence ascending.
// Min() returns the best buy (highest price, earliest entry).
func buyLess(a, b bookEntry) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	return a.Seq < b.Seq
}

// sellLess orders the sell side: price ascending, then sequence ascending.
// Min() returns the best sell (lowest price, earliest entry).
func sellLess(a, b bookEntry) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.Seq < b.Seq
}

type sideID struct {
	side domain.Side
	id   int64
}

// OrderBook maintains the buy and sell queues of a single security using
// B-trees with a secondary index for removal by order ID.
type OrderBook struct {
	buys  *btree.BTreeG[bookEntry]
	sells *btree.BTreeG[bookEntry]
	index map[sideID]bookEntry
	seq   uint64
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	const degree = 32
	return &OrderBook{
		buys:  btree.NewG[bookEntry](degree, buyLess),
		sells: btree.NewG[bookEntry](degree, sellLess),
		index: make(map[sideID]bookEntry),
	}
}

func (ob *OrderBook) tree(side domain.Side) *btree.BTreeG[bookEntry] {
	if side == domain.SideBuy {
		return ob.buys
	}
	return ob.sells
}

// Enqueue inserts the order at its priority position: better price first,
// earlier arrival first within a price level.
func (ob *OrderBook) Enqueue(order *domain.Order) {
	order.MarkQueued()
	ob.seq++
	entry := bookEntry{Price: order.Price, Seq: ob.seq, Order: order}
	ob.tree(order.Side).ReplaceOrInsert(entry)
	ob.index[sideID{order.Side, order.OrderID}] = entry
}

// RemoveByOrderID removes the order from the given side's queue and reports
// whether it was found.
func (ob *OrderBook) RemoveByOrderID(side domain.Side, orderID int64) bool {
	key := sideID{side, orderID}
	entry, ok := ob.index[key]
	if !ok {
		return false
	}
	delete(ob.index, key)
	ob.tree(side).Delete(entry)
	return true
}

// FindByOrderID returns the queued order with the given ID on the given
// side, or nil.
func (ob *OrderBook) FindByOrderID(side domain.Side, orderID int64) *domain.Order {
	entry, ok := ob.index[sideID{side, orderID}]
	if !ok {
		return nil
	}
	return entry.Order
}

// entryFor returns the book entry of a queued order, used by the matcher to
// record undo information before mutating the book.
func (ob *OrderBook) entryFor(side domain.Side, orderID int64) (bookEntry, bool) {
	entry, ok := ob.index[sideID{side, orderID}]
	return entry, ok
}

// putBack reinserts a previously removed entry. The entry keeps its original
// price and sequence, so it lands in exactly the priority position it held
// before removal.
func (ob *OrderBook) putBack(entry bookEntry) {
	entry.Order.MarkQueued()
	ob.tree(entry.Order.Side).ReplaceOrInsert(entry)
	ob.index[sideID{entry.Order.Side, entry.Order.OrderID}] = entry
}

// removeEntry deletes a specific entry, used to undo an iceberg re-enqueue
// during rollback.
func (ob *OrderBook) removeEntry(entry bookEntry) {
	delete(ob.index, sideID{entry.Order.Side, entry.Order.OrderID})
	ob.tree(entry.Order.Side).Delete(entry)
}

// HasOrders reports whether the given side's queue is non-empty.
func (ob *OrderBook) HasOrders(side domain.Side) bool {
	return ob.tree(side).Len() > 0
}

// MatchWithFirst returns the best resting order on the opposite side if it
// crosses with the incoming order's limit price, else nil. The book is not
// mutated.
func (ob *OrderBook) MatchWithFirst(incoming *domain.Order) *domain.Order {
	best, ok := ob.tree(incoming.Side.Opposite()).Min()
	if !ok || !incoming.CrossesWith(best.Order) {
		return nil
	}
	return best.Order
}

// BuyCount returns the number of queued buy orders.
func (ob *OrderBook) BuyCount() int {
	return ob.buys.Len()
}

// SellCount returns the number of queued sell orders.
func (ob *OrderBook) SellCount() int {
	return ob.sells.Len()
}

// TotalSellQuantityByShareholder sums the remaining sell-side exposure of
// the shareholder, hidden iceberg quantity included.
func (ob *OrderBook) TotalSellQuantityByShareholder(sh *domain.Shareholder) int64 {
	var total int64
	ob.sells.Ascend(func(entry bookEntry) bool {
		if entry.Order.Shareholder == sh {
			total += entry.Order.Quantity
		}
		return true
	})
	return total
}

// CalculateOpeningPrice scans every candidate price between the worst and
// best quotes in tick-size steps and returns the price maximizing tradable
// quantity. A tie is broken toward the price closer to lastTradedPrice; an
// earlier candidate wins when distances are equal. Returns 0 when either
// side of the book is empty.
func (ob *OrderBook) CalculateOpeningPrice(lastTradedPrice, tickSize int64) int64 {
	if ob.buys.Len() == 0 || ob.sells.Len() == 0 {
		return 0
	}

	bestBuy, _ := ob.buys.Min()
	worstBuy, _ := ob.buys.Max()
	bestSell, _ := ob.sells.Min()
	worstSell, _ := ob.sells.Max()

	lowest := min(worstBuy.Price, bestSell.Price)
	highest := max(bestBuy.Price, worstSell.Price)

	var openingPrice, maximumTradableQuantity int64
	for candidate := lowest; candidate <= highest; candidate += tickSize {
		tradable := ob.CalculateTradableQuantity(candidate)
		if tradable == maximumTradableQuantity &&
			abs(candidate-lastTradedPrice) < abs(openingPrice-lastTradedPrice) {
			openingPrice = candidate
		}
		if tradable > maximumTradableQuantity {
			maximumTradableQuantity = tradable
			openingPrice = candidate
		}
	}
	return openingPrice
}

// CalculateTradableQuantity sums the matchable quantity of every buy order
// priced at or above the candidate price and every sell order priced at or
// below it.
func (ob *OrderBook) CalculateTradableQuantity(openingPrice int64) int64 {
	var tradable int64
	for _, order := range ob.FindTradableBuyOrders(openingPrice) {
		tradable += order.MatchableQuantity()
	}
	for _, order := range ob.FindTradableSellOrders(openingPrice) {
		tradable += order.MatchableQuantity()
	}
	return tradable
}

// FindTradableBuyOrders returns the buy orders that would trade at the
// candidate price, in priority order.
func (ob *OrderBook) FindTradableBuyOrders(openingPrice int64) []*domain.Order {
	var orders []*domain.Order
	ob.buys.Ascend(func(entry bookEntry) bool {
		if entry.Price < openingPrice {
			return false // buys are price-descending; nothing further trades
		}
		orders = append(orders, entry.Order)
		return true
	})
	return orders
}

// FindTradableSellOrders returns the sell orders that would trade at the
// candidate price, in priority order.
func (ob *OrderBook) FindTradableSellOrders(openingPrice int64) []*domain.Order {
	var orders []*domain.Order
	ob.sells.Ascend(func(entry bookEntry) bool {
		if entry.Price > openingPrice {
			return false
		}
		orders = append(orders, entry.Order)
		return true
	})
	return orders
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
