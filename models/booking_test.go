package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransition(t *testing.T) {
	allowed := [][2]BookingStatus{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
	}
	for _, pair := range allowed {
		assert.True(t, pair[0].CanTransition(pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]BookingStatus{
		{BookingPending, BookingCompleted},
		{BookingCompleted, BookingCancelled},
		{BookingCancelled, BookingPending},
		{BookingConfirmed, BookingPending},
	}
	for _, pair := range denied {
		assert.False(t, pair[0].CanTransition(pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, BookingConfirmed, st)

	_, err = ParseBookingStatus("shipped")
	assert.Error(t, err)
}
