package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

const (
	// DefaultConfirmations is the confirmation depth awaited for every state changing call.
	DefaultConfirmations = 1
)

type ContractDeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// previousBlock returns the block before n, or n itself for genesis.
func previousBlock(n *big.Int) *big.Int {
	if n == nil || n.Sign() == 0 {
		return n
	}

	return new(big.Int).Sub(n, big.NewInt(1))
}
