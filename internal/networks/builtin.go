package networks

// builtin is the table shipped with the SDK. octra-testnet is the legacy id
// of 0xio-testnet and points at the same endpoints.
var builtin = []Descriptor{
	{
		ID:          "0xio-testnet",
		Name:        "0xio Testnet",
		RPCURL:      "https://0xio.network",
		ExplorerURL: "https://0xioscan.io/",
		Color:       "#6366f1",
		IsTestnet:   true,
	},
	{
		ID:          "octra-testnet",
		Name:        "0xio Testnet (Legacy)",
		RPCURL:      "https://0xio.network",
		ExplorerURL: "https://0xioscan.io/",
		Color:       "#6366f1",
		IsTestnet:   true,
	},
	{
		// user configurable; may point at a mainnet or testnet
		ID:    "custom",
		Name:  "Custom Network",
		Color: "#64748b",
	},
}

var defaultRegistry = mustBuiltin()

func mustBuiltin() *Registry {
	r, err := NewRegistry(DefaultNetworkID)
	if err != nil {
		panic(err)
	}
	return r
}

// Builtin returns the registry of builtin networks.
func Builtin() *Registry { return defaultRegistry }

// Lookup resolves id against the builtin networks.
func Lookup(id string) (Descriptor, error) { return defaultRegistry.Lookup(id) }

// ListAll returns the builtin networks.
func ListAll() []Descriptor { return defaultRegistry.ListAll() }

// IsKnown reports whether id is a builtin network.
func IsKnown(id string) bool { return defaultRegistry.IsKnown(id) }
