package stratops

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"

	"github.com/stratops/stratops/sdk"
	"github.com/stratops/stratops/sdk/evm"
	"github.com/stratops/stratops/sdk/evm/bindings"
	"github.com/stratops/stratops/types"
)

// TokenInfo is the ERC20 metadata of a token.
type TokenInfo struct {
	Address  common.Address `json:"address"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

// FarmState is a snapshot of a strategy and the changes its timelock holds for it.
type FarmState struct {
	Farm            common.Address `json:"farm"`
	Name            string         `json:"name"`
	Owner           common.Address `json:"owner"`
	StakingContract common.Address `json:"stakingContract"`
	DepositToken    TokenInfo      `json:"depositToken"`
	RewardToken     TokenInfo      `json:"rewardToken"`

	AdminFeeBips        *big.Int `json:"adminFeeBips"`
	DevFeeBips          *big.Int `json:"devFeeBips"`
	ReinvestRewardBips  *big.Int `json:"reinvestRewardBips"`
	MinTokensToReinvest *big.Int `json:"minTokensToReinvest"`
	TotalDeposits       *big.Int `json:"totalDeposits"`
	TotalSupply         *big.Int `json:"totalSupply"`

	// Pending holds one entry per command, read from the owner which is expected to be
	// the timelock.
	Pending        []types.PendingChange `json:"pending"`
	RecoveryToken  common.Address        `json:"recoveryToken"`
	RecoveryAmount *big.Int              `json:"recoveryAmount"`
}

// FarmInspector reads the state of strategy contracts.
type FarmInspector struct {
	client sdk.ChainClient
}

func NewFarmInspector(client sdk.ChainClient) *FarmInspector {
	return &FarmInspector{client: client}
}

// Inspect collects the strategy parameters, token metadata and pending timelock changes
// of farm. Calls are issued one after another.
func (f *FarmInspector) Inspect(ctx context.Context, farm common.Address) (FarmState, error) {
	strategy := bindings.NewStrategy(farm, f.client)
	state := FarmState{Farm: farm}

	var err error
	if state.Name, err = strategy.Name(ctx); err != nil {
		return FarmState{}, fmt.Errorf("failed to read strategy name: %w", err)
	}
	if state.Owner, err = strategy.Owner(ctx); err != nil {
		return FarmState{}, fmt.Errorf("failed to read strategy owner: %w", err)
	}
	if state.StakingContract, err = strategy.StakingContract(ctx); err != nil {
		return FarmState{}, fmt.Errorf("failed to read staking contract: %w", err)
	}

	depositToken, err := strategy.DepositToken(ctx)
	if err != nil {
		return FarmState{}, fmt.Errorf("failed to read deposit token: %w", err)
	}
	if state.DepositToken, err = f.tokenInfo(ctx, depositToken); err != nil {
		return FarmState{}, err
	}

	rewardToken, err := strategy.RewardToken(ctx)
	if err != nil {
		return FarmState{}, fmt.Errorf("failed to read reward token: %w", err)
	}
	if state.RewardToken, err = f.tokenInfo(ctx, rewardToken); err != nil {
		return FarmState{}, err
	}

	reads := []struct {
		name string
		dst  **big.Int
		read func(context.Context) (*big.Int, error)
	}{
		{"ADMIN_FEE_BIPS", &state.AdminFeeBips, strategy.AdminFeeBips},
		{"DEV_FEE_BIPS", &state.DevFeeBips, strategy.DevFeeBips},
		{"REINVEST_REWARD_BIPS", &state.ReinvestRewardBips, strategy.ReinvestRewardBips},
		{"MIN_TOKENS_TO_REINVEST", &state.MinTokensToReinvest, strategy.MinTokensToReinvest},
		{"totalDeposits", &state.TotalDeposits, strategy.TotalDeposits},
		{"totalSupply", &state.TotalSupply, strategy.TotalSupply},
	}
	for _, r := range reads {
		if *r.dst, err = r.read(ctx); err != nil {
			return FarmState{}, fmt.Errorf("failed to read %s: %w", r.name, err)
		}
	}

	timelock := evm.NewTimelockInspector(f.client, state.Owner)
	for _, kind := range types.AllCommandKinds {
		value, perr := timelock.GetPendingChange(ctx, farm, kind)
		if perr != nil {
			return FarmState{}, fmt.Errorf("failed to read pending %s: %w", kind, perr)
		}
		state.Pending = append(state.Pending, types.PendingChange{Target: farm, Command: kind, Value: value})
	}

	if state.RecoveryToken, state.RecoveryAmount, err = timelock.GetPendingRecovery(ctx, farm); err != nil {
		return FarmState{}, fmt.Errorf("failed to read pending recovery: %w", err)
	}

	return state, nil
}

func (f *FarmInspector) tokenInfo(ctx context.Context, address common.Address) (TokenInfo, error) {
	token := bindings.NewPair(address, f.client)
	info := TokenInfo{Address: address}

	var err error
	if info.Name, err = token.Name(ctx); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to read name of %s: %w", address.Hex(), err)
	}
	if info.Symbol, err = token.Symbol(ctx); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to read symbol of %s: %w", address.Hex(), err)
	}
	if info.Decimals, err = token.Decimals(ctx); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to read decimals of %s: %w", address.Hex(), err)
	}

	return info, nil
}

// PendingFor returns the pending change of kind, or nil when it was not read.
func (s FarmState) PendingFor(kind types.CommandKind) *types.PendingChange {
	for i := range s.Pending {
		if s.Pending[i].Command == kind {
			return &s.Pending[i]
		}
	}

	return nil
}

// Render writes the fee, token and contract tables.
func (s FarmState) Render(w io.Writer) error {
	pendingFee := func(kind types.CommandKind) string {
		p := s.PendingFor(kind)
		if p == nil || !p.IsPending() {
			return "-"
		}

		return FormatBips(p.Value)
	}

	total := new(big.Int).Add(s.AdminFeeBips, s.DevFeeBips)
	total.Add(total, s.ReinvestRewardBips)

	fmt.Fprintln(w, "FEES INFO")
	fees := tablewriter.NewWriter(w)
	fees.Header("Fee type", "Amount", "Pending")
	rows := [][]string{
		{"admin", FormatBips(s.AdminFeeBips), pendingFee(types.CommandAdminFee)},
		{"dev", FormatBips(s.DevFeeBips), pendingFee(types.CommandDevFee)},
		{"reinvestRewards", FormatBips(s.ReinvestRewardBips), pendingFee(types.CommandReinvestReward)},
		{"total", FormatBips(total), ""},
	}
	if err := fees.Bulk(rows); err != nil {
		return err
	}
	if err := fees.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTOKEN INFO")
	tokens := tablewriter.NewWriter(w)
	tokens.Header("Role", "Address", "Token", "Decimals")
	for _, row := range [][]string{
		{"deposit", s.DepositToken.Address.Hex(), fmt.Sprintf("%s (%s)", s.DepositToken.Name, s.DepositToken.Symbol), strconv.Itoa(int(s.DepositToken.Decimals))},
		{"reward", s.RewardToken.Address.Hex(), fmt.Sprintf("%s (%s)", s.RewardToken.Name, s.RewardToken.Symbol), strconv.Itoa(int(s.RewardToken.Decimals))},
	} {
		if err := tokens.Append(row); err != nil {
			return err
		}
	}
	if err := tokens.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nCONTRACT INFO")
	contract := tablewriter.NewWriter(w)
	info := [][]string{
		{"name", s.Name},
		{"owner", s.Owner.Hex()},
		{"staking contract", s.StakingContract.Hex()},
		{"min tokens to reinvest", FormatUnits(s.MinTokensToReinvest, s.RewardToken.Decimals)},
		{"totalDeposits", FormatUnits(s.TotalDeposits, s.DepositToken.Decimals)},
		{"totalSupply", FormatUnits(s.TotalSupply, 18)}, //nolint:mnd
	}
	if p := s.PendingFor(types.CommandOwner); p != nil && p.IsPending() {
		info = append(info, []string{"pending owner", p.AddressValue().Hex()})
	}
	if s.RecoveryToken != (common.Address{}) {
		info = append(info, []string{"pending recovery token", s.RecoveryToken.Hex()})
	}
	if s.RecoveryAmount != nil && s.RecoveryAmount.Sign() != 0 {
		info = append(info, []string{"pending recovery amount", s.RecoveryAmount.String()})
	}
	if err := contract.Bulk(info); err != nil {
		return err
	}

	return contract.Render()
}
