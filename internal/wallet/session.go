package wallet

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"walletd/internal/events"
	"walletd/internal/networks"
)

// NetworkLookup resolves network ids.
type NetworkLookup interface {
	Lookup(id string) (networks.Descriptor, error)
}

// Emitter publishes events. *events.Dispatcher satisfies it.
type Emitter interface {
	Emit(cat events.Category, payload any)
}

// ConnectPayload is the payload of events.Connect.
type ConnectPayload struct {
	Address string              `json:"address"`
	Network networks.Descriptor `json:"network"`
}

// DisconnectPayload is the payload of events.Disconnect.
type DisconnectPayload struct {
	Address string `json:"address"`
}

// NetworkChangedPayload is the payload of events.NetworkChanged.
type NetworkChangedPayload struct {
	Previous networks.Descriptor `json:"previous"`
	Current  networks.Descriptor `json:"current"`
}

// SessionState is a point-in-time copy of a Session.
type SessionState struct {
	Connected bool                `json:"connected"`
	Address   string              `json:"address,omitempty"`
	Network   networks.Descriptor `json:"network"`
}

// Session tracks the connected account and selected network and emits the
// matching lifecycle events. Events are emitted after the session lock is
// released, so listeners may call back into the session.
type Session struct {
	mu        sync.Mutex
	reg       NetworkLookup
	bus       Emitter
	log       zerolog.Logger
	connected bool
	address   string
	network   networks.Descriptor
}

// NewSession starts disconnected on the registry's default network.
func NewSession(reg NetworkLookup, bus Emitter, log zerolog.Logger) (*Session, error) {
	def, err := reg.Lookup("")
	if err != nil {
		return nil, fmt.Errorf("default network: %w", err)
	}
	return &Session{reg: reg, bus: bus, log: log, network: def}, nil
}

// Connect attaches address on networkID ("" keeps the current network) and
// emits events.Connect. Connecting again replaces the previous account.
func (s *Session) Connect(networkID, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("address is required")
	}
	s.mu.Lock()
	net := s.network
	if networkID != "" {
		d, err := s.reg.Lookup(networkID)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		net = d
	}
	s.connected = true
	s.address = address
	s.network = net
	s.mu.Unlock()

	s.log.Info().Str("address", address).Str("network", net.ID).Msg("wallet connected")
	s.bus.Emit(events.Connect, ConnectPayload{Address: address, Network: net})
	return nil
}

// Disconnect emits events.Disconnect if a wallet is connected.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}
	addr := s.address
	s.connected = false
	s.address = ""
	s.mu.Unlock()

	s.log.Info().Str("address", addr).Msg("wallet disconnected")
	s.bus.Emit(events.Disconnect, DisconnectPayload{Address: addr})
}

// SwitchNetwork selects id and emits events.NetworkChanged. Selecting the
// current network does nothing. Unknown ids are returned to the caller, never
// replaced by a default.
func (s *Session) SwitchNetwork(id string) error {
	d, err := s.reg.Lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	prev := s.network
	if prev.ID == d.ID {
		s.mu.Unlock()
		return nil
	}
	s.network = d
	s.mu.Unlock()

	s.log.Info().Str("from", prev.ID).Str("to", d.ID).Msg("network changed")
	s.bus.Emit(events.NetworkChanged, NetworkChangedPayload{Previous: prev, Current: d})
	return nil
}

// State returns a copy of the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{Connected: s.connected, Address: s.address, Network: s.network}
}
