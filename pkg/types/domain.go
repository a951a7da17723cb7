package types

// Network describes one configured network.
type Network struct {
	// Stable identifier.
	// example: 0xio-testnet
	ID string `json:"id" example:"0xio-testnet"`
	// Human-friendly name.
	// example: 0xio Testnet
	Name string `json:"name" example:"0xio Testnet"`
	// JSON-RPC endpoint.
	// example: https://0xio.network
	RPCURL string `json:"rpc_url" example:"https://0xio.network"`
	// Block explorer base URL.
	// example: https://0xioscan.io/
	ExplorerURL string `json:"explorer_url" example:"https://0xioscan.io/"`
	// UI color hint.
	// example: #6366f1
	Color string `json:"color" example:"#6366f1"`
	// True for test networks.
	// example: true
	IsTestnet bool `json:"is_testnet" example:"true"`
}

// Event is one dispatched event as written to streams.
type Event struct {
	// Event category.
	// example: connect
	Type string `json:"type" example:"connect"`
	// Category specific payload.
	Data any `json:"data"`
	// Emission time in unix milliseconds.
	// example: 1700000000000
	Timestamp int64 `json:"timestamp" example:"1700000000000"`
}
