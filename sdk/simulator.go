package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Simulator dry-runs a state changing call as the client's sender without submitting it.
//
// This is only required if the chain client supports simulation.
type Simulator interface {
	Simulate(ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any) error
}
