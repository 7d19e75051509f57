package domain

import "testing"

func TestNewTrade_AssignsSides(t *testing.T) {
	buyer := &Broker{BrokerID: 1, Credit: 10000}
	buy := &Order{OrderID: 1, Side: SideBuy, Price: 100, Quantity: 5, Broker: buyer}
	sell := &Order{OrderID: 2, Side: SideSell, Price: 100, Quantity: 5}

	tr := NewTrade("IRO1MSFT0001", 100, 5, buy, sell)
	if tr.Buy != buy || tr.Sell != sell {
		t.Error("expected buy/sell slots assigned by order side")
	}

	// Argument order must not matter.
	tr = NewTrade("IRO1MSFT0001", 100, 5, sell, buy)
	if tr.Buy != buy || tr.Sell != sell {
		t.Error("expected buy/sell slots assigned by order side regardless of argument order")
	}

	if tr.TradedValue() != 500 {
		t.Errorf("expected traded value 500, got %d", tr.TradedValue())
	}
	if tr.TradeID == "" {
		t.Error("expected trade id to be assigned")
	}
	if !tr.BuyerHasEnoughCredit() {
		t.Error("expected buyer to afford the trade")
	}

	buyer.Credit = 499
	if tr.BuyerHasEnoughCredit() {
		t.Error("expected buyer to lack credit for the trade")
	}
}
