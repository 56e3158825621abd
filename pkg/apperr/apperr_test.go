package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
	}{
		{Validation, http.StatusBadRequest},
		{Conflict, http.StatusConflict},
		{Unauthorized, http.StatusUnauthorized},
		{NotFound, http.StatusNotFound},
		{Upstream, http.StatusBadGateway},
		{Internal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, New(c.kind, "x").HTTPStatus(), c.kind.String())
	}
}

func TestFromForeignError(t *testing.T) {
	ae := From(errors.New("boom"))
	assert.Equal(t, Internal, ae.Kind)
	assert.Equal(t, "internal error", ae.Message)
}

func TestFromWrappedError(t *testing.T) {
	inner := New(Conflict, "user already exists")
	wrapped := fmt.Errorf("register: %w", inner)
	ae := From(wrapped)
	assert.Equal(t, Conflict, ae.Kind)
	assert.Equal(t, "user already exists", ae.Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	ae := Wrap(Upstream, "error uploading files", cause)
	assert.ErrorIs(t, ae, cause)
	assert.Equal(t, Upstream, KindOf(ae))
}

func TestCodeIsStablePerKind(t *testing.T) {
	assert.Equal(t, New(Validation, "a").Code(), New(Validation, "b").Code())
	assert.NotEqual(t, New(Validation, "a").Code(), New(Conflict, "a").Code())
}
