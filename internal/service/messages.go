package service

// Rejection reason codes carried by OrderRejected events.
const (
	MsgInvalidOrderID                = "invalid_order_id"
	MsgQuantityNotPositive           = "order_quantity_not_positive"
	MsgPriceNotPositive              = "order_price_not_positive"
	MsgMEQNegative                   = "minimum_execution_quantity_is_negative"
	MsgMEQGreaterThanQuantity        = "minimum_execution_quantity_greater_than_order_quantity"
	MsgStopOrderCannotBeIcebergOrMEQ = "stop_order_cannot_be_iceberg_or_have_minimum_execution_quantity"
	MsgInvalidPeakSize               = "invalid_peak_size"
	MsgUnknownBrokerID               = "unknown_broker_id"
	MsgUnknownShareholderID          = "unknown_shareholder_id"
	MsgUnknownSecurityISIN           = "unknown_security_isin"
	MsgPriceNotMultipleOfTickSize    = "price_not_multiple_of_tick_size"
	MsgQuantityNotMultipleOfLotSize  = "quantity_not_multiple_of_lot_size"
	MsgMEQOrStopPriceInAuction       = "order_cannot_have_minimum_execution_quantity_or_stop_price_in_auction_state"
	MsgOrderIDNotFound               = "order_id_not_found"
	MsgPeakSizeForNonIceberg         = "cannot_specify_peak_size_for_a_non_iceberg_order"
	MsgCannotChangeMEQ               = "changing_minimum_execution_quantity_is_not_allowed"
	MsgBuyerHasNotEnoughCredit       = "buyer_has_not_enough_credit"
	MsgSellerHasNotEnoughPositions   = "seller_has_not_enough_positions"
	MsgExecutedQuantityBelowMEQ      = "executed_quantity_is_less_than_minimum_execution_quantity"
)
