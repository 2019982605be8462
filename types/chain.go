package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainName returns the canonical chain-selectors name of an EVM chain ID, falling back
// to the numeric ID for chains the registry does not know about.
func ChainName(chainID uint64) string {
	chain, exists := chainsel.ChainByEvmChainID(chainID)
	if !exists || chain.Name == "" {
		return fmt.Sprintf("evm-%d", chainID)
	}

	return chain.Name
}
