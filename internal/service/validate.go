package service

import (
	"github.com/mkarimzade/matchcore/internal/domain"
)

// validateOrderRequest checks the structural constraints of a new or update
// order request and returns the list of violated rules. An empty list means
// the request may enter the core.
func (s *OrderService) validateOrderRequest(req *domain.OrderRequest, isUpdate bool) []string {
	var errs []string

	if req.OrderID <= 0 {
		errs = append(errs, MsgInvalidOrderID)
	}
	if req.Quantity <= 0 {
		errs = append(errs, MsgQuantityNotPositive)
	}
	if req.Price <= 0 {
		errs = append(errs, MsgPriceNotPositive)
	}
	if req.MinimumExecutionQuantity < 0 {
		errs = append(errs, MsgMEQNegative)
	}
	if req.MinimumExecutionQuantity > req.Quantity {
		errs = append(errs, MsgMEQGreaterThanQuantity)
	}
	if req.StopPrice > 0 && (req.PeakSize > 0 || req.MinimumExecutionQuantity > 0) {
		errs = append(errs, MsgStopOrderCannotBeIcebergOrMEQ)
	}
	if req.PeakSize < 0 || (req.PeakSize > 0 && req.PeakSize >= req.Quantity) {
		errs = append(errs, MsgInvalidPeakSize)
	}
	if _, err := s.brokers.Get(req.BrokerID); err != nil {
		errs = append(errs, MsgUnknownBrokerID)
	}
	if _, err := s.shareholders.Get(req.ShareholderID); err != nil {
		errs = append(errs, MsgUnknownShareholderID)
	}

	sec, err := s.securities.Get(req.ISIN)
	if err != nil {
		errs = append(errs, MsgUnknownSecurityISIN)
		return errs
	}

	if req.Price%sec.TickSize != 0 {
		errs = append(errs, MsgPriceNotMultipleOfTickSize)
	}
	if req.Quantity%sec.LotSize != 0 {
		errs = append(errs, MsgQuantityNotMultipleOfLotSize)
	}
	if sec.MatchingState == domain.MatchingStateAuction &&
		(req.MinimumExecutionQuantity > 0 || req.StopPrice > 0) {
		errs = append(errs, MsgMEQOrStopPriceInAuction)
	}

	if isUpdate {
		if req.StopPrice > 0 {
			if s.findInactive(req.OrderID) == nil {
				errs = append(errs, MsgOrderIDNotFound)
			}
		} else {
			original := sec.Book.FindByOrderID(req.Side, req.OrderID)
			if original == nil {
				errs = append(errs, MsgOrderIDNotFound)
			} else {
				if original.IsIceberg() && req.PeakSize == 0 {
					errs = append(errs, MsgInvalidPeakSize)
				}
				if !original.IsIceberg() && req.PeakSize != 0 {
					errs = append(errs, MsgPeakSizeForNonIceberg)
				}
				if req.MinimumExecutionQuantity != original.MinimumExecutionQuantity {
					errs = append(errs, MsgCannotChangeMEQ)
				}
			}
		}
	}

	return errs
}

// validateDeleteRequest checks a delete request against the book and the
// inactive holding area.
func (s *OrderService) validateDeleteRequest(req *domain.DeleteOrderRequest) []string {
	var errs []string

	if req.OrderID <= 0 {
		errs = append(errs, MsgInvalidOrderID)
	}
	sec, err := s.securities.Get(req.ISIN)
	if err != nil {
		errs = append(errs, MsgUnknownSecurityISIN)
		return errs
	}
	if sec.Book.FindByOrderID(req.Side, req.OrderID) == nil && s.findInactive(req.OrderID) == nil {
		errs = append(errs, MsgOrderIDNotFound)
	}
	return errs
}
