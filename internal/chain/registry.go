package chain

import (
	"errors"
	"strings"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// SepoliaChainID is the network the token contract lives on.
const SepoliaChainID uint64 = 11155111

// Network holds the metadata of a single EVM network.
type Network struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	ChainID        uint64   `json:"chain_id"`
	NativeCurrency string   `json:"native_currency"`
	RPCs           []string `json:"rpcs"`
	Explorer       string   `json:"explorer"`
	// FaucetURL is the native-currency faucet (empty for mainnets).
	FaucetURL string `json:"faucet_url,omitempty"`
}

// Registry is the network registry.
type Registry struct {
	networks []Network
	byName   map[string]*Network
	byID     map[uint64]*Network
}

// NewRegistry returns the registry of known networks.
func NewRegistry() *Registry {
	networks := allNetworks()
	r := &Registry{
		networks: networks,
		byName:   make(map[string]*Network, len(networks)),
		byID:     make(map[uint64]*Network, len(networks)),
	}
	for i := range r.networks {
		n := &r.networks[i]
		r.byName[n.Name] = n
		r.byID[n.ChainID] = n
	}
	return r
}

// All returns every network in the registry.
func (r *Registry) All() []Network {
	return r.networks
}

// GetByName finds a network by its slug name (e.g. "sepolia").
func (r *Registry) GetByName(name string) (*Network, error) {
	n, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return n, nil
}

// GetByChainID finds a network by its numeric chain ID.
func (r *Registry) GetByChainID(id uint64) (*Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, ErrChainNotFound
	}
	return n, nil
}

// TxURL returns the explorer link for a transaction hash.
func (n *Network) TxURL(hash string) string {
	return n.Explorer + "/tx/" + hash
}

// AddressURL returns the explorer link for an address.
func (n *Network) AddressURL(addr string) string {
	return n.Explorer + "/address/" + addr
}

// --- network data ---

func allNetworks() []Network {
	return []Network{
		{
			Name: "sepolia", DisplayName: "Sepolia", ChainID: SepoliaChainID,
			NativeCurrency: "ETH",
			RPCs: []string{
				"https://ethereum-sepolia-rpc.publicnode.com",
				"https://sepolia.gateway.tenderly.co",
				"https://rpc.sepolia.org",
			},
			Explorer:  "https://sepolia.etherscan.io",
			FaucetURL: "https://sepoliafaucet.com",
		},
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer:       "https://etherscan.io",
		},
		{
			Name: "holesky", DisplayName: "Holesky", ChainID: 17000,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://ethereum-holesky-rpc.publicnode.com"},
			Explorer:       "https://holesky.etherscan.io",
			FaucetURL:      "https://holesky-faucet.pk910.de",
		},
		{
			Name: "base-sepolia", DisplayName: "Base Sepolia", ChainID: 84532,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://sepolia.base.org"},
			Explorer:       "https://sepolia.basescan.org",
			FaucetURL:      "https://www.alchemy.com/faucets/base-sepolia",
		},
		{
			Name: "arbitrum-sepolia", DisplayName: "Arbitrum Sepolia", ChainID: 421614,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://sepolia-rollup.arbitrum.io/rpc"},
			Explorer:       "https://sepolia.arbiscan.io",
			FaucetURL:      "https://www.alchemy.com/faucets/arbitrum-sepolia",
		},
		{
			Name: "optimism-sepolia", DisplayName: "OP Sepolia", ChainID: 11155420,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://sepolia.optimism.io"},
			Explorer:       "https://sepolia-optimism.etherscan.io",
			FaucetURL:      "https://www.alchemy.com/faucets/optimism-sepolia",
		},
	}
}
