package bindings

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
)

// PairABI is the ERC20 surface plus the token0/token1 views of an AMM pair. Plain
// ERC20 tokens revert on the pair views.
const PairABI = `[
{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"token0","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"token1","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

var pairABI = mustParseABI(PairABI)

// Pair is a read-only binding for ERC20 tokens and AMM liquidity pairs.
type Pair struct {
	contract boundContract
}

func NewPair(address common.Address, client sdk.ChainClient) *Pair {
	return &Pair{contract: newBoundContract(address, pairABI, client)}
}

func (p *Pair) Address() common.Address {
	return p.contract.address
}

func (p *Pair) Name(ctx context.Context) (string, error) {
	return callOne[string](ctx, p.contract, "name")
}

func (p *Pair) Symbol(ctx context.Context) (string, error) {
	return callOne[string](ctx, p.contract, "symbol")
}

func (p *Pair) Decimals(ctx context.Context) (uint8, error) {
	return callOne[uint8](ctx, p.contract, "decimals")
}

func (p *Pair) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return callOne[*big.Int](ctx, p.contract, "balanceOf", owner)
}

func (p *Pair) Token0(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, p.contract, "token0")
}

func (p *Pair) Token1(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, p.contract, "token1")
}
