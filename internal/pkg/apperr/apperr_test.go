// internal/pkg/apperr/apperr_test.go
package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{apperr.Invalid("bad"), http.StatusBadRequest},
		{apperr.InsufficientStock("empty"), http.StatusBadRequest},
		{apperr.Conflict("taken"), http.StatusConflict},
		{apperr.Unauthenticated("who"), http.StatusUnauthorized},
		{apperr.Internal("boom", errors.New("io")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, apperr.HTTPStatus(tc.err), "for %v", tc.err)
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := apperr.InsufficientStock("only 2 left")
	wrapped := fmt.Errorf("processing line 3: %w", inner)

	assert.True(t, apperr.Is(wrapped, apperr.CodeInsufficientStock))
	assert.Equal(t, apperr.CodeInsufficientStock, apperr.CodeOf(wrapped))
	assert.Equal(t, "only 2 left", apperr.Message(wrapped))
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(wrapped))
}

func TestInternalHidesDetail(t *testing.T) {
	err := apperr.Internal("failed to list orders", errors.New("dial tcp: connection refused"))

	assert.Equal(t, "failed to list orders", apperr.Message(err))
	assert.Contains(t, err.Error(), "connection refused", "the wrapped cause stays available for logs")
	assert.ErrorContains(t, errors.Unwrap(err), "connection refused")
}

func TestMessageFallsBackForUnclassified(t *testing.T) {
	assert.Equal(t, "internal server error", apperr.Message(errors.New("secret detail")))
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(errors.New("anything")))
}

func TestConstructorFormatting(t *testing.T) {
	err := apperr.NotFound("product %d not found", 7)
	assert.Equal(t, "product 7 not found", err.Message)
	assert.Equal(t, apperr.CodeNotFound, err.Code)
}
