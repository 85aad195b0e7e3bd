package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"pocketledger/internal/errors"
	"pocketledger/internal/services"
)

func newErrorContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSendError_StatusFollowsCode(t *testing.T) {
	cases := []struct {
		code   errors.ErrorCode
		status int
	}{
		{errors.AuthMissingToken, http.StatusUnauthorized},
		{errors.ValidationGeneral, http.StatusBadRequest},
		{errors.AccountNotFound, http.StatusNotFound},
		{errors.LedgerReferenceNotFound, http.StatusUnprocessableEntity},
		{errors.LedgerTransactionAborted, http.StatusConflict},
	}

	for _, tc := range cases {
		c, rec := newErrorContext()

		err := SendError(c, tc.code)
		assert.NoError(t, err)
		assert.Equal(t, tc.status, rec.Code, "code %s", tc.code)
		assert.Contains(t, rec.Body.String(), string(tc.code))
	}
}

func TestSendServiceError_AbortedMapsToConflict(t *testing.T) {
	c, rec := newErrorContext()

	err := SendServiceError(c, services.ErrTransactionAborted)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "LEDGER_003")
}
