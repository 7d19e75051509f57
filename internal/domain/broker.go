package domain

// Broker represents a trading participant's credit account. Many orders
// across many securities reference the same broker; mutations follow the
// sequential per-instrument discipline, so no locking happens here.
type Broker struct {
	BrokerID int64
	Credit   int64
}

// HasEnoughCredit reports whether the broker can afford the given amount.
func (b *Broker) HasEnoughCredit(amount int64) bool {
	return b.Credit >= amount
}

// IncreaseCreditBy adds amount to the broker's credit.
func (b *Broker) IncreaseCreditBy(amount int64) {
	b.Credit += amount
}

// DecreaseCreditBy subtracts amount from the broker's credit.
func (b *Broker) DecreaseCreditBy(amount int64) {
	b.Credit -= amount
}
