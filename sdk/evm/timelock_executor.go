package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/types"
)

var _ sdk.TimelockExecutor = (*TimelockExecutor)(nil)

// TimelockExecutor submits propose and set transactions to a strategy timelock.
type TimelockExecutor struct {
	*TimelockInspector
}

// NewTimelockExecutor creates a new TimelockExecutor
func NewTimelockExecutor(client sdk.ChainClient, timelock common.Address) *TimelockExecutor {
	return &TimelockExecutor{
		TimelockInspector: NewTimelockInspector(client, timelock),
	}
}

// Propose records value as the pending value of kind for target. The caller must wait
// on the returned transaction.
func (t *TimelockExecutor) Propose(
	ctx context.Context, target common.Address, kind types.CommandKind, value *big.Int,
) (sdk.PendingTransaction, error) {
	h, err := handlesFor(kind)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, sdkerrors.NewMissingValueError(kind.String())
	}

	return h.propose(t.timelock, ctx, target, value)
}

// Apply installs the pending value of kind on target.
func (t *TimelockExecutor) Apply(ctx context.Context, target common.Address, kind types.CommandKind) (sdk.PendingTransaction, error) {
	h, err := handlesFor(kind)
	if err != nil {
		return nil, err
	}

	return h.apply(t.timelock, ctx, target)
}

// SweepTokens transfers amount of token held by the timelock to its manager.
func (t *TimelockExecutor) SweepTokens(ctx context.Context, token common.Address, amount *big.Int) (sdk.PendingTransaction, error) {
	return t.timelock.SweepTokens(ctx, token, amount)
}
