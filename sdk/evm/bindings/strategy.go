package bindings

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
)

// StrategyABI covers the read surface shared by the dex strategy versions in use.
const StrategyABI = `[
{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"depositToken","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"rewardToken","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"stakingContract","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"ADMIN_FEE_BIPS","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"DEV_FEE_BIPS","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"REINVEST_REWARD_BIPS","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"MIN_TOKENS_TO_REINVEST","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"totalDeposits","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var strategyABI = mustParseABI(StrategyABI)

// Strategy is a read-only binding for a yield strategy contract.
type Strategy struct {
	contract boundContract
}

func NewStrategy(address common.Address, client sdk.ChainClient) *Strategy {
	return &Strategy{contract: newBoundContract(address, strategyABI, client)}
}

func (s *Strategy) Address() common.Address {
	return s.contract.address
}

func (s *Strategy) Name(ctx context.Context) (string, error) {
	return callOne[string](ctx, s.contract, "name")
}

func (s *Strategy) Owner(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, s.contract, "owner")
}

func (s *Strategy) DepositToken(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, s.contract, "depositToken")
}

func (s *Strategy) RewardToken(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, s.contract, "rewardToken")
}

func (s *Strategy) StakingContract(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, s.contract, "stakingContract")
}

func (s *Strategy) AdminFeeBips(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, s.contract, "ADMIN_FEE_BIPS")
}

func (s *Strategy) DevFeeBips(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, s.contract, "DEV_FEE_BIPS")
}

func (s *Strategy) ReinvestRewardBips(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, s.contract, "REINVEST_REWARD_BIPS")
}

func (s *Strategy) MinTokensToReinvest(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, s.contract, "MIN_TOKENS_TO_REINVEST")
}

func (s *Strategy) TotalDeposits(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, s.contract, "totalDeposits")
}

func (s *Strategy) TotalSupply(ctx context.Context) (*big.Int, error) {
	return callOne[*big.Int](ctx, s.contract, "totalSupply")
}
