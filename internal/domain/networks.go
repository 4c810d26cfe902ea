package domain

// Network describes one supported EVM target chain.
type Network struct {
	Name        string
	ChainID     int64
	Currency    string
	ExplorerURL string
}

var networks = map[string]Network{
	"amoy": {
		Name:        "Polygon Amoy",
		ChainID:     80002,
		Currency:    "POL",
		ExplorerURL: "https://amoy.polygonscan.com",
	},
	"mumbai": {
		Name:        "Polygon Mumbai",
		ChainID:     80001,
		Currency:    "MATIC",
		ExplorerURL: "https://mumbai.polygonscan.com",
	},
	"polygon": {
		Name:        "Polygon Mainnet",
		ChainID:     137,
		Currency:    "MATIC",
		ExplorerURL: "https://polygonscan.com",
	},
	"ethereum": {
		Name:        "Ethereum Mainnet",
		ChainID:     1,
		Currency:    "ETH",
		ExplorerURL: "https://etherscan.io",
	},
	"localhost": {
		Name:     "Local Devnet",
		ChainID:  31337,
		Currency: "ETH",
	},
}

// LookupNetwork resolves a symbolic network selector such as "amoy".
func LookupNetwork(symbol string) (Network, bool) {
	n, ok := networks[symbol]
	return n, ok
}
