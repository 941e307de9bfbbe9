package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapErrorSentinels(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no documents", mongo.ErrNoDocuments, ErrNotFound},
		{"wrapped no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), ErrNotFound},
		{"deadline", context.DeadlineExceeded, ErrNetwork},
		{"unauthorized command", mongo.CommandError{Code: 13, Message: "not authorized on blogfusion"}, ErrPermission},
		{"authentication failed", mongo.CommandError{Code: 18, Message: "authentication failed"}, ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.in), tt.want)
		})
	}
}

func TestMapErrorKeepsDriverErrorReachable(t *testing.T) {
	in := mongo.CommandError{Code: 13, Message: "not authorized on blogfusion"}

	var ce mongo.CommandError
	assert.ErrorAs(t, mapError(in), &ce)
	assert.Equal(t, int32(13), ce.Code)
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	in := errors.New("some application error")
	assert.Equal(t, in, mapError(in))

	// a non-auth command error is not a permission failure
	out := mapError(mongo.CommandError{Code: 11000, Message: "duplicate key"})
	assert.NotErrorIs(t, out, ErrPermission)
}

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, mapError(nil))
}
