package registry

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// Registry is the ordered list of known networks. Position 0 is the default.
type Registry struct {
	path     string
	networks []Network
	log      *slog.Logger
}

// New returns an empty registry that persists to path.
func New(path string, log *slog.Logger) *Registry {
	return &Registry{path: path, log: log}
}

// Path returns the file the registry persists to.
func (r *Registry) Path() string {
	return r.path
}

// Len returns the number of networks.
func (r *Registry) Len() int {
	return len(r.networks)
}

// Networks returns a copy of the records in order.
func (r *Registry) Networks() []Network {
	out := make([]Network, len(r.networks))
	copy(out, r.networks)
	return out
}

// IndexOf returns the position of the first record with the given id, or -1.
func (r *Registry) IndexOf(networkID string) int {
	_, index, found := lo.FindIndexOf(r.networks, func(n Network) bool {
		return n.NetworkID == networkID
	})
	if !found {
		return -1
	}
	return index
}

// MoveToFront swaps the record at index with the default at position 0.
// The previous default ends up at index. It does not persist.
func (r *Registry) MoveToFront(index int) error {
	if index < 0 || index >= len(r.networks) {
		return fmt.Errorf("index %d out of range for %d networks", index, len(r.networks))
	}
	if index == 0 {
		return nil
	}
	r.networks[0], r.networks[index] = r.networks[index], r.networks[0]
	return nil
}

// SelectActive returns the network a command should act on.
//
// With an empty requestedID the default is returned unchanged. Otherwise the
// record whose id equals requestedID becomes the default: if it was not
// already at position 0 it is swapped there and the registry is persisted
// before returning. An unknown id leaves the registry untouched.
func (r *Registry) SelectActive(requestedID string) (Network, error) {
	if len(r.networks) == 0 {
		return Network{}, ErrNoNetworks
	}
	if requestedID == "" {
		return r.networks[0], nil
	}

	index := r.IndexOf(requestedID)
	if index < 0 {
		return Network{}, &NotFoundError{NetworkID: requestedID}
	}
	if index != 0 {
		if err := r.MoveToFront(index); err != nil {
			return Network{}, err
		}
		r.persistOrReport()
	}
	return r.networks[0], nil
}

// InsertAsDefault prepends n, making it the default, and persists.
func (r *Registry) InsertAsDefault(n Network) error {
	if r.IndexOf(n.NetworkID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateNetwork, n.NetworkID)
	}
	r.networks = append([]Network{n}, r.networks...)
	r.persistOrReport()
	return nil
}

// UpdateInPlace applies mutate to the record at index and persists.
// Commands select the network first, so index is 0 in practice.
func (r *Registry) UpdateInPlace(index int, mutate func(*Network)) error {
	if index < 0 || index >= len(r.networks) {
		return fmt.Errorf("index %d out of range for %d networks", index, len(r.networks))
	}
	mutate(&r.networks[index])
	r.persistOrReport()
	return nil
}
