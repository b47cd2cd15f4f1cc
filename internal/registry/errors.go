package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoNetworks is returned when a network is needed but none is registered.
	ErrNoNetworks = errors.New("no networks available, please create one first")
	// ErrNetworkNotFound is wrapped by NotFoundError.
	ErrNetworkNotFound = errors.New("network not found")
	// ErrDuplicateNetwork is returned when inserting an id already present.
	ErrDuplicateNetwork = errors.New("network already registered")
)

// NotFoundError reports a requested network id with no matching record.
type NotFoundError struct {
	NetworkID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("network %s not found", e.NetworkID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNetworkNotFound
}
