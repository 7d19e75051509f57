package domain

import "errors"

// Sentinel errors for entity lookups. Matching rejections are not errors;
// they surface as MatchingOutcome values.
var (
	ErrSecurityNotFound    = errors.New("security_not_found")
	ErrSecurityExists      = errors.New("security_already_exists")
	ErrBrokerNotFound      = errors.New("broker_not_found")
	ErrBrokerExists        = errors.New("broker_already_exists")
	ErrShareholderNotFound = errors.New("shareholder_not_found")
	ErrShareholderExists   = errors.New("shareholder_already_exists")
	ErrOrderNotFound       = errors.New("order_not_found")
)
