package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorNilStaysNil(t *testing.T) {
	err := MapError(nil)

	// A typed nil *DomainError inside the interface would compare non-nil.
	assert.True(t, err == nil)
	assert.NoError(t, err)
}

func TestMapErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := MapError(cause)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestMapErrorPassesDomainErrorsThrough(t *testing.T) {
	original := NewForbidden("operation not permitted")
	assert.Same(t, original, MapError(original))
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestIsCode(t *testing.T) {
	err := NewValidationError("bad input", nil)
	assert.True(t, IsCode(err, "VALIDATION_FAILED"))
	assert.False(t, IsCode(err, "FORBIDDEN"))
	assert.False(t, IsCode(nil, "VALIDATION_FAILED"))
}
