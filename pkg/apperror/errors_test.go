package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"anoa.com/schoolrecords/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperror.ErrNotFound, http.StatusNotFound},
		{apperror.ErrUnauthorized, http.StatusUnauthorized},
		{apperror.ErrForbidden, http.StatusForbidden},
		{apperror.ErrConflict, http.StatusBadRequest},
		{apperror.ErrInvalidInput, http.StatusBadRequest},
		{apperror.ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("anything else"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", apperror.ErrNotFound), http.StatusNotFound},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, apperror.MapErrorToStatus(tc.err), tc.err.Error())
	}
}

func TestAppErrorCarriesCodeAndMessage(t *testing.T) {
	err := apperror.NotFound("Student not found")

	assert.Equal(t, "Student not found", err.Error())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	conflict := apperror.Conflict("User already exists with this email")
	assert.Equal(t, http.StatusBadRequest, conflict.Code)
}
