package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"testing"

	"github.com/stretchr/testify/assert"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

func TestChainName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give uint64
		want string
	}{
		{give: chainsel.AVALANCHE_MAINNET.EvmChainID, want: chainsel.AVALANCHE_MAINNET.Name},
		{give: chainsel.AVALANCHE_TESTNET_FUJI.EvmChainID, want: chainsel.AVALANCHE_TESTNET_FUJI.Name},
		{give: 999999999991, want: "evm-999999999991"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChainName(tt.give))
	}
}
