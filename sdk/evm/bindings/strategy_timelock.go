package bindings

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
)

// StrategyTimelockABI is the external surface of the timelock that owns the strategies.
const StrategyTimelockABI = `[
{"type":"function","name":"proposeDevFee","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"},{"name":"value","type":"uint256"}],"outputs":[]},
{"type":"function","name":"proposeAdminFee","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"},{"name":"value","type":"uint256"}],"outputs":[]},
{"type":"function","name":"proposeReinvestReward","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"},{"name":"value","type":"uint256"}],"outputs":[]},
{"type":"function","name":"proposeOwner","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"},{"name":"newOwner","type":"address"}],"outputs":[]},
{"type":"function","name":"setDevFee","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"}],"outputs":[]},
{"type":"function","name":"setAdminFee","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"}],"outputs":[]},
{"type":"function","name":"setReinvestReward","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"}],"outputs":[]},
{"type":"function","name":"setOwner","stateMutability":"nonpayable","inputs":[{"name":"strategy","type":"address"}],"outputs":[]},
{"type":"function","name":"pendingDevFees","stateMutability":"view","inputs":[{"name":"strategy","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"pendingAdminFees","stateMutability":"view","inputs":[{"name":"strategy","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"pendingReinvestRewards","stateMutability":"view","inputs":[{"name":"strategy","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"pendingOwners","stateMutability":"view","inputs":[{"name":"strategy","type":"address"}],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"pendingTokenAddressesToRecover","stateMutability":"view","inputs":[{"name":"strategy","type":"address"}],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"pendingTokenAmountsToRecover","stateMutability":"view","inputs":[{"name":"strategy","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"sweepTokens","stateMutability":"nonpayable","inputs":[{"name":"tokenAddress","type":"address"},{"name":"tokenAmount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"timelockLengthForFeeChanges","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"timelockLengthForOwnershipTransfer","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"manager","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

var strategyTimelockABI = mustParseABI(StrategyTimelockABI)

// StrategyTimelockABIParsed returns the parsed timelock ABI.
func StrategyTimelockABIParsed() *abi.ABI {
	return strategyTimelockABI
}

// StrategyTimelock is a typed binding for the strategy timelock contract.
type StrategyTimelock struct {
	contract boundContract
}

// NewStrategyTimelock binds the timelock deployed at address.
func NewStrategyTimelock(address common.Address, client sdk.ChainClient) *StrategyTimelock {
	return &StrategyTimelock{contract: newBoundContract(address, strategyTimelockABI, client)}
}

func (t *StrategyTimelock) Address() common.Address {
	return t.contract.address
}

func (t *StrategyTimelock) ProposeDevFee(ctx context.Context, strategy common.Address, value *big.Int) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "proposeDevFee", strategy, value)
}

func (t *StrategyTimelock) ProposeAdminFee(ctx context.Context, strategy common.Address, value *big.Int) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "proposeAdminFee", strategy, value)
}

func (t *StrategyTimelock) ProposeReinvestReward(ctx context.Context, strategy common.Address, value *big.Int) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "proposeReinvestReward", strategy, value)
}

func (t *StrategyTimelock) ProposeOwner(ctx context.Context, strategy common.Address, newOwner common.Address) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "proposeOwner", strategy, newOwner)
}

func (t *StrategyTimelock) SetDevFee(ctx context.Context, strategy common.Address) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "setDevFee", strategy)
}

func (t *StrategyTimelock) SetAdminFee(ctx context.Context, strategy common.Address) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "setAdminFee", strategy)
}

func (t *StrategyTimelock) SetReinvestReward(ctx context.Context, strategy common.Address) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "setReinvestReward", strategy)
}

func (t *StrategyTimelock) SetOwner(ctx context.Context, strategy common.Address) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "setOwner", strategy)
}

func (t *StrategyTimelock) PendingDevFees(ctx context.Context, strategy common.Address) (*big.Int, error) {
	return callOne[*big.Int](ctx, t.contract, "pendingDevFees", strategy)
}

func (t *StrategyTimelock) PendingAdminFees(ctx context.Context, strategy common.Address) (*big.Int, error) {
	return callOne[*big.Int](ctx, t.contract, "pendingAdminFees", strategy)
}

func (t *StrategyTimelock) PendingReinvestRewards(ctx context.Context, strategy common.Address) (*big.Int, error) {
	return callOne[*big.Int](ctx, t.contract, "pendingReinvestRewards", strategy)
}

func (t *StrategyTimelock) PendingOwners(ctx context.Context, strategy common.Address) (common.Address, error) {
	return callOne[common.Address](ctx, t.contract, "pendingOwners", strategy)
}

func (t *StrategyTimelock) PendingTokenAddressesToRecover(ctx context.Context, strategy common.Address) (common.Address, error) {
	return callOne[common.Address](ctx, t.contract, "pendingTokenAddressesToRecover", strategy)
}

func (t *StrategyTimelock) PendingTokenAmountsToRecover(ctx context.Context, strategy common.Address) (*big.Int, error) {
	return callOne[*big.Int](ctx, t.contract, "pendingTokenAmountsToRecover", strategy)
}

func (t *StrategyTimelock) SweepTokens(ctx context.Context, token common.Address, amount *big.Int) (sdk.PendingTransaction, error) {
	return t.contract.transact(ctx, "sweepTokens", token, amount)
}

// TimelockLengthForFeeChanges returns the fee change delay in seconds.
func (t *StrategyTimelock) TimelockLengthForFeeChanges(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, t.contract, "timelockLengthForFeeChanges")
}

// TimelockLengthForOwnershipTransfer returns the ownership transfer delay in seconds.
func (t *StrategyTimelock) TimelockLengthForOwnershipTransfer(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, t.contract, "timelockLengthForOwnershipTransfer")
}

func (t *StrategyTimelock) Manager(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, t.contract, "manager")
}
