package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.Conflict("dup"), http.StatusBadRequest},
		{apperr.Unauthorized("no"), http.StatusUnauthorized},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Upstream("gateway", errors.New("timeout")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, apperr.HTTPStatus(c.err), c.err.Error())
	}
}

func TestAsFindsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("failed to create order: %w", apperr.NotFound("Product not found"))

	e, ok := apperr.As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Product not found", e.Message)
	assert.True(t, apperr.IsKind(wrapped, apperr.KindNotFound))
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(wrapped))
}

func TestWithExtra(t *testing.T) {
	e := apperr.Validation("Email not verified").With("needsVerification", true)
	assert.Equal(t, true, e.Extra["needsVerification"])
}
