package domain

// Shareholder holds per-security positions, keyed by ISIN. Positions change
// only when confirmed trades settle.
type Shareholder struct {
	ShareholderID int64
	Positions     map[string]int64
}

// NewShareholder creates a shareholder with no positions.
func NewShareholder(id int64) *Shareholder {
	return &Shareholder{
		ShareholderID: id,
		Positions:     make(map[string]int64),
	}
}

// IncPosition adds amount to the position on the given security.
func (s *Shareholder) IncPosition(isin string, amount int64) {
	s.Positions[isin] += amount
}

// DecPosition removes amount from the position on the given security.
func (s *Shareholder) DecPosition(isin string, amount int64) {
	s.Positions[isin] -= amount
}

// PositionOn returns the held quantity of the given security.
func (s *Shareholder) PositionOn(isin string) int64 {
	return s.Positions[isin]
}

// HasEnoughPositionsOn reports whether the position on the given security
// covers amount.
func (s *Shareholder) HasEnoughPositionsOn(isin string, amount int64) bool {
	return s.Positions[isin] >= amount
}
