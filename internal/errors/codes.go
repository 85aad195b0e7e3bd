package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
	AuthForbidden          ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// Ledger engine error codes (LEDGER_*)
const (
	LedgerReferenceNotFound  ErrorCode = "LEDGER_001"
	LedgerTypeMismatch       ErrorCode = "LEDGER_002"
	LedgerTransactionAborted ErrorCode = "LEDGER_003"
)

// Entity error codes
const (
	TransactionNotFound ErrorCode = "TRANSACTION_001"
	AccountNotFound     ErrorCode = "ACCOUNT_001"
	CategoryNotFound    ErrorCode = "CATEGORY_001"
	BudgetNotFound      ErrorCode = "BUDGET_001"
	GoalNotFound        ErrorCode = "GOAL_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthForbidden:          "Insufficient permissions to access this resource",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	// Ledger engine errors
	LedgerReferenceNotFound:  "Referenced entity does not exist",
	LedgerTypeMismatch:       "Category type does not match transaction type",
	LedgerTransactionAborted: "The operation conflicted and was aborted; retry the request",

	// Entity errors
	TransactionNotFound: "Transaction not found",
	AccountNotFound:     "Account not found",
	CategoryNotFound:    "Category not found",
	BudgetNotFound:      "Budget not found",
	GoalNotFound:        "Goal not found",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:     "Database connection error",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
