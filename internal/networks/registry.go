package networks

import (
	"fmt"
	"strings"
)

// DefaultNetworkID is used when a lookup omits the id.
const DefaultNetworkID = "0xio-testnet"

// Descriptor is the static configuration of one network. Values are
// immutable once a Registry is built.
type Descriptor struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	RPCURL      string `json:"rpc_url" yaml:"rpc_url" toml:"rpc_url"`
	ExplorerURL string `json:"explorer_url" yaml:"explorer_url" toml:"explorer_url"`
	Color       string `json:"color" yaml:"color" toml:"color"`
	IsTestnet   bool   `json:"is_testnet" yaml:"is_testnet" toml:"is_testnet"`
}

// Registry is a read-only id -> Descriptor table. It is safe for concurrent
// use since nothing mutates it after NewRegistry returns.
type Registry struct {
	defaultID string
	order     []string
	byID      map[string]Descriptor
}

// NewRegistry builds a registry from the builtin networks plus extra.
// An extra descriptor with a builtin id replaces that entry in place; new ids
// are appended in the order given. An empty defaultID selects
// DefaultNetworkID.
func NewRegistry(defaultID string, extra ...Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]Descriptor)}
	for _, d := range builtin {
		r.put(d)
	}
	for _, d := range extra {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			return nil, fmt.Errorf("network descriptor %q: empty id", d.Name)
		}
		r.put(d)
	}
	if defaultID == "" {
		defaultID = DefaultNetworkID
	}
	if _, ok := r.byID[defaultID]; !ok {
		return nil, fmt.Errorf("default network: %w", ErrUnknown(defaultID))
	}
	r.defaultID = defaultID
	return r, nil
}

func (r *Registry) put(d Descriptor) {
	if _, ok := r.byID[d.ID]; !ok {
		r.order = append(r.order, d.ID)
	}
	r.byID[d.ID] = d
}

// Lookup returns the descriptor for id, or the default network when id is
// empty. Unknown ids fail with an error matching ErrUnknownNetwork.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	if id == "" {
		id = r.defaultID
	}
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, ErrUnknown(id)
	}
	return d, nil
}

// ListAll returns every descriptor in a stable order.
func (r *Registry) ListAll() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IsKnown reports whether id names a configured network.
func (r *Registry) IsKnown(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// DefaultID returns the id used when Lookup is called with "".
func (r *Registry) DefaultID() string { return r.defaultID }
