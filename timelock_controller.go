package stratops

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/sdk/evm"
	"github.com/stratops/stratops/types"
)

// DefaultConfirmations is the confirmation depth awaited after each change.
const DefaultConfirmations = 1

// ControllerOption configures a TimelockChangeController.
type ControllerOption func(*TimelockChangeController)

// WithConfirmations overrides the number of confirmations awaited after a send.
func WithConfirmations(n uint64) ControllerOption {
	return func(c *TimelockChangeController) {
		if n > 0 {
			c.confirmations = n
		}
	}
}

// TimelockChangeController issues the propose and set phases of a timelocked strategy
// parameter change. The delay between the phases is enforced by the timelock contract;
// the controller only submits calls and reports the outcome.
type TimelockChangeController struct {
	executor      sdk.TimelockExecutor
	timelock      common.Address
	confirmations uint64
}

// NewTimelockChangeController creates a controller for the timelock at timelock. All
// chain access goes through client.
func NewTimelockChangeController(
	client sdk.ChainClient, timelock common.Address, opts ...ControllerOption,
) *TimelockChangeController {
	c := &TimelockChangeController{
		executor:      evm.NewTimelockExecutor(client, timelock),
		timelock:      timelock,
		confirmations: DefaultConfirmations,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Timelock returns the address of the controlled timelock.
func (c *TimelockChangeController) Timelock() common.Address {
	return c.timelock
}

// RequestChange parses command and either proposes value for target (apply false) or
// applies the pending value (apply true). value is ignored when applying.
func (c *TimelockChangeController) RequestChange(
	ctx context.Context, target common.Address, command string, apply bool, value *big.Int,
) (types.TransactionResult, error) {
	kind, err := types.ParseCommandKind(command)
	if err != nil {
		return types.TransactionResult{}, err
	}

	return c.RequestChangeKind(ctx, target, kind, apply, value)
}

// RequestChangeKind is RequestChange for an already parsed command.
func (c *TimelockChangeController) RequestChangeKind(
	ctx context.Context, target common.Address, kind types.CommandKind, apply bool, value *big.Int,
) (types.TransactionResult, error) {
	if !kind.Valid() {
		return types.TransactionResult{}, sdkerrors.NewInvalidCommandError(kind.String())
	}

	lggr := sdk.LoggerFrom(ctx)

	var (
		tx  sdk.PendingTransaction
		err error
	)
	if apply {
		lggr.Infof("applying pending %s on %s via timelock %s", kind, target.Hex(), c.timelock.Hex())
		tx, err = c.executor.Apply(ctx, target, kind)
	} else {
		if value == nil {
			return types.TransactionResult{}, sdkerrors.NewMissingValueError(kind.String())
		}
		if value.Sign() < 0 {
			return types.TransactionResult{}, fmt.Errorf("propose%s value must not be negative, got %s", kind, value)
		}
		lggr.Infof("proposing %s=%s on %s via timelock %s", kind, value, target.Hex(), c.timelock.Hex())
		tx, err = c.executor.Propose(ctx, target, kind, value)
	}
	if err != nil {
		return types.TransactionResult{}, c.wrapError(kind, apply, target, err)
	}

	lggr.Debugf("submitted %s, waiting for %d confirmation(s)", tx.Hash().Hex(), c.confirmations)

	result, err := tx.Wait(ctx, c.confirmations)
	if err != nil {
		return types.TransactionResult{}, c.wrapError(kind, apply, target, err)
	}

	lggr.Infof("%s %s confirmed in block %d", phase(apply), result.Hash, result.BlockNumber)

	return result, nil
}

// QueryPendingChange returns the raw pending value of kind for target. Zero means no
// change is pending. Owner values are addresses converted to integers.
func (c *TimelockChangeController) QueryPendingChange(
	ctx context.Context, target common.Address, kind types.CommandKind,
) (*big.Int, error) {
	if !kind.Valid() {
		return nil, sdkerrors.NewInvalidCommandError(kind.String())
	}

	value, err := c.executor.GetPendingChange(ctx, target, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending %s for %s: %w", kind, target.Hex(), err)
	}

	return value, nil
}

// QueryPendingChanges returns the pending value of every command for target, in the
// order of types.AllCommandKinds.
func (c *TimelockChangeController) QueryPendingChanges(
	ctx context.Context, target common.Address,
) ([]types.PendingChange, error) {
	changes := make([]types.PendingChange, 0, len(types.AllCommandKinds))
	for _, kind := range types.AllCommandKinds {
		value, err := c.QueryPendingChange(ctx, target, kind)
		if err != nil {
			return nil, err
		}
		changes = append(changes, types.PendingChange{Target: target, Command: kind, Value: value})
	}

	return changes, nil
}

// QueryTimelockWindow returns the delay the timelock enforces for kind.
func (c *TimelockChangeController) QueryTimelockWindow(ctx context.Context, kind types.CommandKind) (time.Duration, error) {
	if !kind.Valid() {
		return 0, sdkerrors.NewInvalidCommandError(kind.String())
	}

	return c.executor.GetTimelockWindow(ctx, kind)
}

// wrapError names the command and target; the typed cause stays reachable with errors.As.
func (c *TimelockChangeController) wrapError(kind types.CommandKind, apply bool, target common.Address, err error) error {
	return fmt.Errorf("%s %s on %s failed: %w", phase(apply), kind, target.Hex(), err)
}

func phase(apply bool) string {
	if apply {
		return "set"
	}

	return "propose"
}
