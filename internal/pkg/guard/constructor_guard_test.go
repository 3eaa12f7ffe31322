package guard_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/pkg/guard"
)

var errPickNotConstructed = errors.New("PickCommand must be created via NewPickCommand constructor")

type pickCommand struct {
	lineID   string
	quantity float64
	guard    guard.ConstructorGuard
}

func newPickCommand(lineID string, quantity float64) (pickCommand, error) {
	if lineID == "" {
		return pickCommand{}, errors.New("line id is required")
	}
	return pickCommand{lineID: lineID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (c pickCommand) Validate() error {
	return c.guard.Validate(errPickNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name  string
		guard guard.ConstructorGuard
		given error
		want  error
	}{
		{name: "constructed", guard: guard.NewConstructorGuard(), given: errPickNotConstructed},
		{name: "constructed_without_error", guard: guard.NewConstructorGuard()},
		{name: "zero_value", given: errPickNotConstructed, want: errPickNotConstructed},
		{name: "zero_value_default_error", want: guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.given)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConstructorGuard_InsideCommand(t *testing.T) {
	cmd, err := newPickCommand("line-1", 2.5)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	copied := cmd
	require.NoError(t, copied.Validate())

	var zero pickCommand
	require.ErrorIs(t, zero.Validate(), errPickNotConstructed)

	failed, err := newPickCommand("", 1)
	require.Error(t, err)
	assert.ErrorIs(t, failed.Validate(), errPickNotConstructed)
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	errsCh := make(chan error, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errsCh <- g.Validate(nil)
		}()
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		assert.NoError(t, err)
	}
}

func TestErrDefaultConstructorGuard_Message(t *testing.T) {
	assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
}
