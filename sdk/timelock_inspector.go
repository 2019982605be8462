package sdk

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/types"
)

// TimelockInspector reads the pending state and delays of a strategy timelock.
type TimelockInspector interface {
	// GetPendingChange returns the raw pending value for target and kind. Zero means
	// nothing is pending.
	GetPendingChange(ctx context.Context, target common.Address, kind types.CommandKind) (*big.Int, error)
	GetPendingRecovery(ctx context.Context, target common.Address) (common.Address, *big.Int, error)
	GetTimelockWindow(ctx context.Context, kind types.CommandKind) (time.Duration, error)
}
