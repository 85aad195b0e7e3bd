package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Missing Token",
			code:     AuthMissingToken,
			expected: "Authorization token is required",
		},
		{
			name:     "Auth Expired Token",
			code:     AuthExpiredToken,
			expected: "Authorization token has expired",
		},
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Ledger Reference Not Found",
			code:     LedgerReferenceNotFound,
			expected: "Referenced entity does not exist",
		},
		{
			name:     "Ledger Type Mismatch",
			code:     LedgerTypeMismatch,
			expected: "Category type does not match transaction type",
		},
		{
			name:     "Transaction Not Found",
			code:     TransactionNotFound,
			expected: "Transaction not found",
		},
		{
			name:     "Budget Not Found",
			code:     BudgetNotFound,
			expected: "Budget not found",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			message := GetErrorMessage(tc.code)
			s.Equal(tc.expected, message)
		})
	}
}

// TestGetErrorMessage_InvalidCode tests getting message for invalid error code
func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	message := GetErrorMessage("INVALID_CODE")
	s.Equal("An error occurred", message)
}

// TestIsValidErrorCode_ValidCodes tests validation of valid error codes
func (s *CodesTestSuite) TestIsValidErrorCode_ValidCodes() {
	validCodes := []ErrorCode{
		AuthMissingToken,
		AuthExpiredToken,
		AuthInvalidTokenFormat,
		AuthForbidden,
		ValidationGeneral,
		ValidationRequiredField,
		ValidationInvalidFormat,
		ValidationOutOfRange,
		LedgerReferenceNotFound,
		LedgerTypeMismatch,
		LedgerTransactionAborted,
		TransactionNotFound,
		AccountNotFound,
		CategoryNotFound,
		BudgetNotFound,
		GoalNotFound,
		SystemInternalError,
		SystemDatabaseError,
		SystemRateLimitExceeded,
	}

	for _, code := range validCodes {
		s.Run(string(code), func() {
			s.True(IsValidErrorCode(code))
		})
	}
}

// TestIsValidErrorCode_InvalidCodes tests validation of invalid error codes
func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCodes() {
	invalidCodes := []ErrorCode{
		"INVALID_CODE",
		"AUTH_999",
		"",
		"RANDOM_STRING",
	}

	for _, code := range invalidCodes {
		s.Run(string(code), func() {
			s.False(IsValidErrorCode(code))
		})
	}
}

// TestErrorCode_StringValues tests that error codes keep their wire values
func (s *CodesTestSuite) TestErrorCode_StringValues() {
	s.Equal("AUTH_001", string(AuthMissingToken))
	s.Equal("VALIDATION_001", string(ValidationGeneral))
	s.Equal("LEDGER_001", string(LedgerReferenceNotFound))
	s.Equal("LEDGER_002", string(LedgerTypeMismatch))
	s.Equal("LEDGER_003", string(LedgerTransactionAborted))
	s.Equal("TRANSACTION_001", string(TransactionNotFound))
	s.Equal("ACCOUNT_001", string(AccountNotFound))
	s.Equal("SYSTEM_001", string(SystemInternalError))
}
