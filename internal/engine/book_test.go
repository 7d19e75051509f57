package engine

import (
	"testing"

	"github.com/mkarimzade/matchcore/internal/domain"
)

func newOrder(id int64, side domain.Side, qty, price int64) *domain.Order {
	return &domain.Order{
		OrderID:  id,
		Side:     side,
		Quantity: qty,
		Price:    price,
		Status:   domain.OrderStatusNew,
	}
}

func TestOrderBook_BuyPriority_PriceThenTime(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(newOrder(1, domain.SideBuy, 10, 100))
	book.Enqueue(newOrder(2, domain.SideBuy, 10, 102))
	book.Enqueue(newOrder(3, domain.SideBuy, 10, 100))

	orders := book.FindTradableBuyOrders(0)
	if len(orders) != 3 {
		t.Fatalf("expected 3 buys, got %d", len(orders))
	}
	wantIDs := []int64{2, 1, 3}
	for i, want := range wantIDs {
		if orders[i].OrderID != want {
			t.Errorf("position %d: expected order %d, got %d", i, want, orders[i].OrderID)
		}
	}
}

func TestOrderBook_SellPriority_PriceThenTime(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(newOrder(1, domain.SideSell, 10, 102))
	book.Enqueue(newOrder(2, domain.SideSell, 10, 100))
	book.Enqueue(newOrder(3, domain.SideSell, 10, 102))

	orders := book.FindTradableSellOrders(1000)
	if len(orders) != 3 {
		t.Fatalf("expected 3 sells, got %d", len(orders))
	}
	wantIDs := []int64{2, 1, 3}
	for i, want := range wantIDs {
		if orders[i].OrderID != want {
			t.Errorf("position %d: expected order %d, got %d", i, want, orders[i].OrderID)
		}
	}
}

func TestOrderBook_RemoveAndFindByOrderID(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(newOrder(1, domain.SideBuy, 10, 100))
	book.Enqueue(newOrder(2, domain.SideSell, 10, 105))

	if book.FindByOrderID(domain.SideBuy, 1) == nil {
		t.Error("expected to find buy order 1")
	}
	if book.FindByOrderID(domain.SideSell, 1) != nil {
		t.Error("expected no sell order 1")
	}

	if !book.RemoveByOrderID(domain.SideBuy, 1) {
		t.Error("expected removal of buy order 1 to succeed")
	}
	if book.RemoveByOrderID(domain.SideBuy, 1) {
		t.Error("expected second removal to report missing")
	}
	if book.BuyCount() != 0 || book.SellCount() != 1 {
		t.Errorf("expected 0 buys and 1 sell, got %d and %d", book.BuyCount(), book.SellCount())
	}
}

func TestOrderBook_MatchWithFirst(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(newOrder(1, domain.SideSell, 10, 105))
	book.Enqueue(newOrder(2, domain.SideSell, 10, 103))

	incoming := newOrder(3, domain.SideBuy, 10, 104)
	resting := book.MatchWithFirst(incoming)
	if resting == nil || resting.OrderID != 2 {
		t.Fatalf("expected to match best sell 2, got %+v", resting)
	}

	incoming.Price = 102
	if book.MatchWithFirst(incoming) != nil {
		t.Error("expected no match below the best sell price")
	}
}

func TestOrderBook_TotalSellQuantityByShareholder(t *testing.T) {
	sh := domain.NewShareholder(1)
	other := domain.NewShareholder(2)
	book := NewOrderBook()

	o1 := newOrder(1, domain.SideSell, 100, 105)
	o1.Shareholder = sh
	o2 := newOrder(2, domain.SideSell, 445, 106)
	o2.PeakSize = 100 // hidden quantity must count
	o2.Shareholder = sh
	o3 := newOrder(3, domain.SideSell, 50, 107)
	o3.Shareholder = other

	book.Enqueue(o1)
	book.Enqueue(o2)
	book.Enqueue(o3)

	if got := book.TotalSellQuantityByShareholder(sh); got != 545 {
		t.Errorf("expected 545 total sell quantity, got %d", got)
	}
	if got := book.TotalSellQuantityByShareholder(other); got != 50 {
		t.Errorf("expected 50 total sell quantity, got %d", got)
	}
}

func TestOrderBook_CalculateOpeningPrice_EmptySide(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(newOrder(1, domain.SideBuy, 10, 100))
	if got := book.CalculateOpeningPrice(0, 1); got != 0 {
		t.Errorf("expected 0 opening price with empty sell side, got %d", got)
	}
}

// auctionBook builds the standing book used by the opening-price tests:
// four sells and four small buys around a 15400..16000 band.
func auctionBook() *OrderBook {
	book := NewOrderBook()
	book.Enqueue(newOrder(1, domain.SideSell, 300, 15400))
	book.Enqueue(newOrder(2, domain.SideSell, 300, 15800))
	book.Enqueue(newOrder(3, domain.SideSell, 600, 15900))
	book.Enqueue(newOrder(4, domain.SideSell, 300, 16000))
	book.Enqueue(newOrder(5, domain.SideBuy, 50, 15200))
	book.Enqueue(newOrder(6, domain.SideBuy, 43, 15000))
	book.Enqueue(newOrder(7, domain.SideBuy, 45, 14950))
	book.Enqueue(newOrder(8, domain.SideBuy, 52, 14900))
	return book
}

func TestOrderBook_CalculateOpeningPrice_MaximizesTradableQuantity(t *testing.T) {
	book := auctionBook()
	book.Enqueue(newOrder(9, domain.SideBuy, 900, 16000))

	opening := book.CalculateOpeningPrice(0, 1)
	if opening != 16000 {
		t.Fatalf("expected opening price 16000, got %d", opening)
	}
	if got := book.CalculateTradableQuantity(opening); got != 2400 {
		t.Errorf("expected tradable quantity 2400, got %d", got)
	}
}

func TestOrderBook_CalculateOpeningPrice_TieBreaksTowardLastTradedPrice(t *testing.T) {
	book := auctionBook()
	book.Enqueue(newOrder(9, domain.SideBuy, 900, 16000))
	book.Enqueue(newOrder(10, domain.SideBuy, 300, 15900))

	// 15900 and 16000 both yield 2400; the price closer to the last traded
	// price of 0 wins.
	opening := book.CalculateOpeningPrice(0, 1)
	if opening != 15900 {
		t.Fatalf("expected opening price 15900, got %d", opening)
	}
	if got := book.CalculateTradableQuantity(opening); got != 2400 {
		t.Errorf("expected tradable quantity 2400, got %d", got)
	}
}

func TestOrderBook_CalculateTradableQuantity_CountsIcebergDisplayedOnly(t *testing.T) {
	book := NewOrderBook()
	iceberg := newOrder(1, domain.SideSell, 445, 100)
	iceberg.PeakSize = 100
	book.Enqueue(iceberg)
	book.Enqueue(newOrder(2, domain.SideBuy, 50, 100))

	// Queued iceberg exposes its displayed slice, not the hidden remainder.
	if got := book.CalculateTradableQuantity(100); got != 150 {
		t.Errorf("expected tradable quantity 150, got %d", got)
	}
}
