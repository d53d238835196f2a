package order

import (
	"errors"
	"fmt"
)

var ErrTransitionNotAllowed = errors.New("order status transition not allowed")

const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

// forward lists the lifecycle edges. Cancelled is reachable from every
// non-terminal state.
var forward = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
}

type TransitionPolicy interface {
	Name() string
	Check(from, to Status) error
}

// PermissivePolicy accepts any valid target, including moves out of
// terminal states. This is what the admin console has always allowed.
type PermissivePolicy struct{}

func (PermissivePolicy) Name() string { return PolicyPermissive }

func (PermissivePolicy) Check(_, to Status) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// StrictPolicy only follows lifecycle edges; terminal states are final.
// Setting the current status again is a no-op and allowed.
type StrictPolicy struct{}

func (StrictPolicy) Name() string { return PolicyStrict }

func (StrictPolicy) Check(from, to Status) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	for _, next := range forward[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
}

func ParsePolicy(name string) (TransitionPolicy, error) {
	switch name {
	case "", PolicyPermissive:
		return PermissivePolicy{}, nil
	case PolicyStrict:
		return StrictPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown order transition policy %q", name)
	}
}
