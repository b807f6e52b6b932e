package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrAccountBanned     ErrCode = "ACCOUNT_BANNED"
	ErrAccountAccessOnly ErrCode = "ACCOUNT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Voting ────────────────────────────────────────────────────────
	ErrQuotaExhausted  ErrCode = "QUOTA_EXHAUSTED"
	ErrRuleViolation   ErrCode = "RULE_VIOLATION"
	ErrAlreadyVoted    ErrCode = "ALREADY_VOTED"
	ErrVoteNotFound    ErrCode = "VOTE_NOT_FOUND"
	ErrInvalidSemester ErrCode = "INVALID_SEMESTER"
	ErrFeedbackExists  ErrCode = "FEEDBACK_EXISTS"
	ErrRequestAborted  ErrCode = "REQUEST_ABORTED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAccountBanned:
		return "This account is banned from voting."
	case ErrAccountAccessOnly:
		return "This resource is restricted to voter accounts."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "The resource already exists."

	// ─── Voting ────────────────────────────────────────────────────────
	case ErrQuotaExhausted:
		return "You have no votes remaining today."
	case ErrRuleViolation:
		return "This vote is not allowed by your semester's category rules."
	case ErrAlreadyVoted:
		return "You already voted for this lecturer today."
	case ErrVoteNotFound:
		return "No vote for this lecturer today."
	case ErrInvalidSemester:
		return "The account's semester is outside the supported range."
	case ErrFeedbackExists:
		return "You have already submitted feedback."
	case ErrRequestAborted:
		return "The request was aborted before completion."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
