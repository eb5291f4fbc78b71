package subscriber

import (
	"context"
	"fmt"

	"github.com/yairfalse/virta/types"
)

// ForwarderNotFoundError is fatal: an invalid destination makes every
// subsequent subscription meaningless, so the whole pass aborts.
type ForwarderNotFoundError struct {
	Destination string
	Err         error
}

func (e *ForwarderNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forwarder %q not found: %v", e.Destination, e.Err)
	}
	return fmt.Sprintf("forwarder %q not found", e.Destination)
}

func (e *ForwarderNotFoundError) Unwrap() error { return e.Err }

// Validator confirms the forwarder destination names a real, deployed
// function before anything is wired to it
type Validator struct {
	functions FunctionService
}

// NewValidator creates a forwarder validator
func NewValidator(functions FunctionService) *Validator {
	return &Validator{functions: functions}
}

// ValidateForwarder issues at most one existence query. Intrinsic
// destinations cannot be checked until deploy time and integration
// testing runs against nothing real; both cases skip the check with an
// advisory warning instead of failing.
func (v *Validator) ValidateForwarder(ctx context.Context, destination any, integrationTesting bool) ([]string, error) {
	if types.IsIntrinsic(destination) {
		return []string{"forwarder destination is not resolvable until deploy time, skipping existence check"}, nil
	}

	if integrationTesting {
		return []string{"integration testing mode is active, skipping forwarder existence check"}, nil
	}

	name := destination.(string)

	exists, err := v.functions.FunctionExists(ctx, name)
	if err != nil {
		return nil, &ForwarderNotFoundError{Destination: name, Err: err}
	}
	if !exists {
		return nil, &ForwarderNotFoundError{Destination: name}
	}

	return nil, nil
}
