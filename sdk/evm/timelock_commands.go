package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/sdk/evm/bindings"
	"github.com/stratops/stratops/types"
)

type (
	proposeFunc func(t *bindings.StrategyTimelock, ctx context.Context, strategy common.Address, value *big.Int) (sdk.PendingTransaction, error)
	applyFunc   func(t *bindings.StrategyTimelock, ctx context.Context, strategy common.Address) (sdk.PendingTransaction, error)
	pendingFunc func(t *bindings.StrategyTimelock, ctx context.Context, strategy common.Address) (*big.Int, error)
	windowFunc  func(t *bindings.StrategyTimelock, ctx context.Context) (*big.Int, error)
)

// commandHandles binds one command kind to the timelock methods that implement it.
type commandHandles struct {
	propose proposeFunc
	apply   applyFunc
	pending pendingFunc
	window  windowFunc
}

var commandTable = map[types.CommandKind]commandHandles{
	types.CommandDevFee: {
		propose: (*bindings.StrategyTimelock).ProposeDevFee,
		apply:   (*bindings.StrategyTimelock).SetDevFee,
		pending: (*bindings.StrategyTimelock).PendingDevFees,
		window:  (*bindings.StrategyTimelock).TimelockLengthForFeeChanges,
	},
	types.CommandAdminFee: {
		propose: (*bindings.StrategyTimelock).ProposeAdminFee,
		apply:   (*bindings.StrategyTimelock).SetAdminFee,
		pending: (*bindings.StrategyTimelock).PendingAdminFees,
		window:  (*bindings.StrategyTimelock).TimelockLengthForFeeChanges,
	},
	types.CommandReinvestReward: {
		propose: (*bindings.StrategyTimelock).ProposeReinvestReward,
		apply:   (*bindings.StrategyTimelock).SetReinvestReward,
		pending: (*bindings.StrategyTimelock).PendingReinvestRewards,
		window:  (*bindings.StrategyTimelock).TimelockLengthForFeeChanges,
	},
	types.CommandOwner: {
		propose: proposeOwner,
		apply:   (*bindings.StrategyTimelock).SetOwner,
		pending: pendingOwner,
		window:  (*bindings.StrategyTimelock).TimelockLengthForOwnershipTransfer,
	},
}

// maxAddressBits is the width of an EVM address.
const maxAddressBits = 160

func proposeOwner(t *bindings.StrategyTimelock, ctx context.Context, strategy common.Address, value *big.Int) (sdk.PendingTransaction, error) {
	if value.BitLen() > maxAddressBits {
		return nil, fmt.Errorf("owner value %s does not fit in an address", value)
	}

	return t.ProposeOwner(ctx, strategy, common.BigToAddress(value))
}

func pendingOwner(t *bindings.StrategyTimelock, ctx context.Context, strategy common.Address) (*big.Int, error) {
	owner, err := t.PendingOwners(ctx, strategy)
	if err != nil {
		return nil, err
	}

	return owner.Big(), nil
}

func handlesFor(kind types.CommandKind) (commandHandles, error) {
	h, ok := commandTable[kind]
	if !ok {
		return commandHandles{}, sdkerrors.NewInvalidCommandError(string(kind))
	}

	return h, nil
}
