package domain

// MatchingOutcome is the terminal result of a matching attempt. All values
// are expected business outcomes, not errors; a rejection means every
// speculative effect of the attempt has been rolled back.
type MatchingOutcome string

const (
	OutcomeExecuted                  MatchingOutcome = "executed"
	OutcomeNotEnoughCredit           MatchingOutcome = "not_enough_credit"
	OutcomeNotEnoughPositions        MatchingOutcome = "not_enough_positions"
	OutcomeNotEnoughExecutedQuantity MatchingOutcome = "not_enough_executed_quantity"
)

// MatchingState is a security's matching mode.
type MatchingState string

const (
	MatchingStateContinuous MatchingState = "continuous"
	MatchingStateAuction    MatchingState = "auction"
)
