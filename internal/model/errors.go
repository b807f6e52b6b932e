package model

import "errors"

// Domain errors returned by the voting engine and its stores. Handlers map
// these onto HTTP statuses; everything else is treated as an infrastructure
// failure.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountBanned    = errors.New("account is banned")
	ErrQuotaExhausted   = errors.New("no votes remain today")
	ErrLecturerNotFound = errors.New("lecturer inactive or missing")
	ErrAlreadyVoted     = errors.New("already voted for this lecturer today")
	ErrVoteNotFound     = errors.New("no vote to cancel")
	ErrInvalidSemester  = errors.New("account semester outside the 0-9 domain")
	ErrFeedbackExists   = errors.New("feedback already submitted")
	ErrAdminNotFound    = errors.New("admin not found")
	ErrAborted          = errors.New("operation aborted before commit")
)

// RuleViolationError reports a semester category rule rejection. Message
// names the violated rule and category and is surfaced to the caller
// verbatim.
type RuleViolationError struct {
	Message string
}

func (e *RuleViolationError) Error() string {
	return e.Message
}
