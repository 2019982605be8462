package sdk

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/types"
)

// ChainClient is an RPC connection paired with a signing identity. Read calls never
// wait for confirmation; state changing calls return a PendingTransaction that the
// caller must explicitly wait on.
//
// Implementations return *sdkerrors.ChainRevertError when the contract rejected the
// call and *sdkerrors.TransportError when the node could not be reached.
type ChainClient interface {
	Call(ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any) ([]any, error)
	Send(ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any) (PendingTransaction, error)
}

// PendingTransaction is a submitted transaction awaiting inclusion.
type PendingTransaction interface {
	Hash() common.Hash
	// Wait blocks until the transaction has the given number of confirmations. A
	// transaction included in the latest block has one confirmation.
	Wait(ctx context.Context, confirmations uint64) (types.TransactionResult, error)
}

// TestChainControls manipulates a simulated or forked chain. Only simulation backends
// implement it; clients for live networks never do.
type TestChainControls interface {
	// Impersonate makes subsequent sends originate from account without its key.
	Impersonate(ctx context.Context, account common.Address) error
	// AdvanceTime moves the chain clock forward and mines a block at the new time.
	AdvanceTime(ctx context.Context, d time.Duration) error
	MineBlock(ctx context.Context) error
}
