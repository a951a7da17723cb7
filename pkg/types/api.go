package types

// NetworksResponse wraps the list returned by GET /networks.
type NetworksResponse struct {
	Networks []Network `json:"networks"`
	// Id used when a request omits the network.
	// example: 0xio-testnet
	Default string `json:"default" example:"0xio-testnet"`
}

// CategoryStatus reports the listeners of one active category.
type CategoryStatus struct {
	// example: networkChanged
	Category string `json:"category" example:"networkChanged"`
	// example: 2
	Listeners int `json:"listeners" example:"2"`
}

// CategoriesResponse is returned by GET /events/categories.
type CategoriesResponse struct {
	Categories []CategoryStatus `json:"categories"`
}

// EmitResponse acknowledges POST /events/{category}.
type EmitResponse struct {
	// example: balanceChanged
	Category string `json:"category" example:"balanceChanged"`
	// Listeners registered when the event was emitted.
	// example: 1
	Listeners int `json:"listeners" example:"1"`
}

// ConnectRequest is the body of POST /session/connect.
type ConnectRequest struct {
	// Optional network id; the current network is kept when empty.
	// example: 0xio-testnet
	Network string `json:"network,omitempty" example:"0xio-testnet"`
	// Wallet address.
	// example: oct1q2w3e4r5t6y7u8i9o0p
	Address string `json:"address" example:"oct1q2w3e4r5t6y7u8i9o0p"`
}

// SwitchNetworkRequest is the body of POST /session/network.
type SwitchNetworkRequest struct {
	// example: octra-testnet
	Network string `json:"network" example:"octra-testnet"`
}

// SessionResponse reports the wallet session state.
type SessionResponse struct {
	Connected bool    `json:"connected"`
	Address   string  `json:"address,omitempty"`
	Network   Network `json:"network"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
