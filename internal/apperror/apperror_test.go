package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("id is required"), http.StatusBadRequest},
		{Unauthorized("nope"), http.StatusUnauthorized},
		{NotFound("order %d not found", 7), http.StatusNotFound},
		{UnsupportedMethod("PATCH"), http.StatusMethodNotAllowed},
		{errors.New("pq: duplicate key"), http.StatusInternalServerError},
		{fmt.Errorf("get order: %w", NotFound("order not found")), http.StatusNotFound},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusCode(c.err), c.err.Error())
	}
}

func TestInternalKeepsRawMessage(t *testing.T) {
	err := Internal(errors.New("connection refused"))
	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, KindInternal, KindOf(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", NotFound("x"))))
	assert.False(t, IsNotFound(nil))
}
