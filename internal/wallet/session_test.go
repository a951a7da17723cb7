package wallet

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletd/internal/events"
	"walletd/internal/networks"
)

func newTestSession(t *testing.T) (*Session, *events.Dispatcher) {
	t.Helper()
	d := events.New(false)
	s, err := NewSession(networks.Builtin(), d, zerolog.Nop())
	require.NoError(t, err)
	return s, d
}

func TestSession_ConnectEmits(t *testing.T) {
	s, d := newTestSession(t)
	var got []events.Event
	d.On(events.Connect, func(e events.Event) { got = append(got, e) })

	require.NoError(t, s.Connect("octra-testnet", "oct1abc"))

	require.Len(t, got, 1)
	p, ok := events.PayloadAs[ConnectPayload](got[0])
	require.True(t, ok)
	assert.Equal(t, "oct1abc", p.Address)
	assert.Equal(t, "octra-testnet", p.Network.ID)

	st := s.State()
	assert.True(t, st.Connected)
	assert.Equal(t, "octra-testnet", st.Network.ID)
}

func TestSession_ConnectErrors(t *testing.T) {
	s, d := newTestSession(t)
	fired := false
	d.On(events.Connect, func(events.Event) { fired = true })

	assert.Error(t, s.Connect("", "  "))
	err := s.Connect("no-such-network", "oct1abc")
	assert.True(t, networks.IsUnknownNetwork(err))
	assert.False(t, fired)
	assert.False(t, s.State().Connected)
}

func TestSession_DisconnectIdempotent(t *testing.T) {
	s, d := newTestSession(t)
	n := 0
	d.On(events.Disconnect, func(events.Event) { n++ })

	s.Disconnect()
	require.NoError(t, s.Connect("", "oct1abc"))
	s.Disconnect()
	s.Disconnect()

	assert.Equal(t, 1, n)
	assert.False(t, s.State().Connected)
}

func TestSession_SwitchNetwork(t *testing.T) {
	s, d := newTestSession(t)
	var got []NetworkChangedPayload
	d.On(events.NetworkChanged, func(e events.Event) {
		p, _ := events.PayloadAs[NetworkChangedPayload](e)
		got = append(got, p)
	})

	require.NoError(t, s.SwitchNetwork(networks.DefaultNetworkID))
	require.NoError(t, s.SwitchNetwork("custom"))
	assert.True(t, networks.IsUnknownNetwork(s.SwitchNetwork("nope")))

	require.Len(t, got, 1)
	assert.Equal(t, networks.DefaultNetworkID, got[0].Previous.ID)
	assert.Equal(t, "custom", got[0].Current.ID)
	assert.Equal(t, "custom", s.State().Network.ID)
}

func TestSession_ListenerMayReenter(t *testing.T) {
	s, d := newTestSession(t)
	d.On(events.Connect, func(events.Event) { _ = s.SwitchNetwork("custom") })

	require.NoError(t, s.Connect("", "oct1abc"))
	assert.Equal(t, "custom", s.State().Network.ID)
}
