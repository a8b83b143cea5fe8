package chain_test

import (
	"testing"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasSepolia(t *testing.T) {
	reg := chain.NewRegistry()

	n, err := reg.GetByChainID(chain.SepoliaChainID)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", n.Name)
	assert.NotEmpty(t, n.RPCs)
	assert.NotEmpty(t, n.FaucetURL)
}

func TestRegistryGetByNameCaseInsensitive(t *testing.T) {
	n, err := chain.NewRegistry().GetByName("SEPOLIA")
	require.NoError(t, err)
	assert.Equal(t, chain.SepoliaChainID, n.ChainID)
}

func TestRegistryUnknownChain(t *testing.T) {
	reg := chain.NewRegistry()

	_, err := reg.GetByChainID(999_999)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)

	_, err = reg.GetByName("nope")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestRegistryUniqueIDs(t *testing.T) {
	seen := map[uint64]string{}
	for _, n := range chain.NewRegistry().All() {
		prev, dup := seen[n.ChainID]
		assert.False(t, dup, "chain id %d shared by %s and %s", n.ChainID, prev, n.Name)
		seen[n.ChainID] = n.Name
	}
}

func TestExplorerLinks(t *testing.T) {
	n, err := chain.NewRegistry().GetByName("sepolia")
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", n.TxURL("0xabc"))
	assert.Equal(t, "https://sepolia.etherscan.io/address/0xdef", n.AddressURL("0xdef"))
}
