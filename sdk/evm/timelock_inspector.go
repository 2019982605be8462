package evm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/internal/utils/safecast"
	"github.com/stratops/stratops/sdk"
	"github.com/stratops/stratops/sdk/evm/bindings"
	"github.com/stratops/stratops/types"
)

var _ sdk.TimelockInspector = (*TimelockInspector)(nil)

// TimelockInspector reads pending changes and delays from a strategy timelock.
type TimelockInspector struct {
	timelock *bindings.StrategyTimelock
}

// NewTimelockInspector creates a new TimelockInspector
func NewTimelockInspector(client sdk.ChainClient, timelock common.Address) *TimelockInspector {
	return &TimelockInspector{
		timelock: bindings.NewStrategyTimelock(timelock, client),
	}
}

// Address returns the timelock contract address.
func (tm *TimelockInspector) Address() common.Address {
	return tm.timelock.Address()
}

func (tm *TimelockInspector) GetPendingChange(
	ctx context.Context, target common.Address, kind types.CommandKind,
) (*big.Int, error) {
	h, err := handlesFor(kind)
	if err != nil {
		return nil, err
	}

	value, err := h.pending(tm.timelock, ctx, target)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = new(big.Int)
	}

	return value, nil
}

// GetPendingRecovery returns the token and amount queued for recovery from target.
func (tm *TimelockInspector) GetPendingRecovery(ctx context.Context, target common.Address) (common.Address, *big.Int, error) {
	token, err := tm.timelock.PendingTokenAddressesToRecover(ctx, target)
	if err != nil {
		return common.Address{}, nil, err
	}

	amount, err := tm.timelock.PendingTokenAmountsToRecover(ctx, target)
	if err != nil {
		return common.Address{}, nil, err
	}

	return token, amount, nil
}

func (tm *TimelockInspector) GetTimelockWindow(ctx context.Context, kind types.CommandKind) (time.Duration, error) {
	h, err := handlesFor(kind)
	if err != nil {
		return 0, err
	}

	seconds, err := h.window(tm.timelock, ctx)
	if err != nil {
		return 0, err
	}

	d, err := safecast.SecondsToDuration(seconds)
	if err != nil {
		return 0, fmt.Errorf("timelock window for %s: %w", kind, err)
	}

	return d, nil
}
