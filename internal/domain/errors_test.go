package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransientStoreError("load order", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorKindTransientStore, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Contains(t, err.Error(), "connection reset")

	conflict := NewConflictError([]Interval{iv("2027-01-01", "2027-01-05")})
	var be *BookingError
	assert.True(t, errors.As(conflict, &be))
	assert.Len(t, be.Conflicts, 1)

	assert.Equal(t, ErrorKind(""), KindOf(cause))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
