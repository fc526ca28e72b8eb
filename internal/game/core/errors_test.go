package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandError_Unwrap(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{KindSchema, ErrSchema},
		{KindAvailability, ErrUnavailable},
		{KindTurn, ErrNotYourTurn},
		{KindSemantic, ErrIllegalMove},
		{KindState, ErrGameState},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := NewCommandError(tt.kind, "boom %d", 1)
			assert.Equal(t, "boom 1", err.Error())
			assert.True(t, errors.Is(err, tt.sentinel))

			wrapped := fmt.Errorf("handle: %w", err)
			var cmdErr *CommandError
			assert.True(t, errors.As(wrapped, &cmdErr))
			assert.Equal(t, tt.kind, cmdErr.Kind)
		})
	}
}

func TestSchemaError(t *testing.T) {
	err := SchemaError(ActionBoot)
	assert.Equal(t, "invalid options for action boot", err.Error())
	assert.ErrorIs(t, err, ErrSchema)
	assert.NotErrorIs(t, err, ErrIllegalMove)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "semantic", KindSemantic.String())
	assert.Equal(t, "Unknown(42)", ErrorKind(42).String())
}
