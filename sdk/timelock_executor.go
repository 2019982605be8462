package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/types"
)

// TimelockExecutor issues the two phases of a timelocked parameter change.
type TimelockExecutor interface {
	TimelockInspector
	Propose(ctx context.Context, target common.Address, kind types.CommandKind, value *big.Int) (PendingTransaction, error)
	Apply(ctx context.Context, target common.Address, kind types.CommandKind) (PendingTransaction, error)
	SweepTokens(ctx context.Context, token common.Address, amount *big.Int) (PendingTransaction, error)
}
