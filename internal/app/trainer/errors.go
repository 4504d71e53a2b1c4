package trainer

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrScenarioNotFound   = errors.New("scenario_not_found")
	ErrAttemptNotFound    = errors.New("attempt_not_found")
	ErrSessionNotFound    = errors.New("session_not_found")
	ErrDecisionNotInTable = errors.New("decision_not_in_table")
	ErrIllegalAction      = errors.New("illegal_action")
)
