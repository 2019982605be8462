package stratops

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"

	"github.com/stratops/stratops/config"
	"github.com/stratops/stratops/sdk"
	"github.com/stratops/stratops/sdk/evm/bindings"
)

// notAPair marks token0/token1 columns of pools whose LP token is not a pair.
const notAPair = "-"

// PoolData describes one masterchef pool and its LP token.
type PoolData struct {
	LPToken     common.Address `json:"lpToken"`
	AllocPoint  *big.Int       `json:"allocPoint"`
	TokenName   string         `json:"tokenName"`
	TokenSymbol string         `json:"tokenSymbol"`
	Token0      string         `json:"token0"`
	Token1      string         `json:"token1"`
}

// MasterChefReport is the reward configuration and pool list of a masterchef.
type MasterChefReport struct {
	Address      common.Address `json:"address"`
	RewardRate   *big.Int       `json:"rewardRate"`
	RateUnit     string         `json:"rateUnit"`
	RewardToken  common.Address `json:"rewardToken"`
	RewardSymbol string         `json:"rewardSymbol"`
	Pools        []PoolData     `json:"pools"`
}

// MasterChefInspector dumps masterchef pools using a named profile.
type MasterChefInspector struct {
	client sdk.ChainClient
}

func NewMasterChefInspector(client sdk.ChainClient) *MasterChefInspector {
	return &MasterChefInspector{client: client}
}

// Inspect reads the reward rate, reward token and every pool of the masterchef described
// by profile.
func (m *MasterChefInspector) Inspect(ctx context.Context, profile config.MasterChef) (MasterChefReport, error) {
	chef, err := bindings.NewMasterChef(profile.ContractAddress(), m.client, profile.RewardRateMethod, profile.RewardTokenMethod)
	if err != nil {
		return MasterChefReport{}, err
	}

	report := MasterChefReport{Address: profile.ContractAddress(), RateUnit: profile.RateUnit, RewardSymbol: profile.Symbol}
	if report.RewardRate, err = chef.RewardRate(ctx); err != nil {
		return MasterChefReport{}, fmt.Errorf("failed to read %s: %w", profile.RewardRateMethod, err)
	}
	if report.RewardToken, err = chef.RewardToken(ctx); err != nil {
		return MasterChefReport{}, fmt.Errorf("failed to read %s: %w", profile.RewardTokenMethod, err)
	}
	if report.RewardSymbol == "" {
		if report.RewardSymbol, err = bindings.NewPair(report.RewardToken, m.client).Symbol(ctx); err != nil {
			return MasterChefReport{}, fmt.Errorf("failed to read reward token symbol: %w", err)
		}
	}

	length, err := chef.PoolLength(ctx)
	if err != nil {
		return MasterChefReport{}, fmt.Errorf("failed to read pool length: %w", err)
	}

	for pid := new(big.Int); pid.Cmp(length) < 0; pid = new(big.Int).Add(pid, big.NewInt(1)) {
		pool, err := m.pool(ctx, chef, pid)
		if err != nil {
			return MasterChefReport{}, err
		}
		report.Pools = append(report.Pools, pool)
	}

	return report, nil
}

func (m *MasterChefInspector) pool(ctx context.Context, chef *bindings.MasterChef, pid *big.Int) (PoolData, error) {
	info, err := chef.PoolInfo(ctx, pid)
	if err != nil {
		return PoolData{}, fmt.Errorf("failed to read pool %s: %w", pid, err)
	}

	lp := bindings.NewPair(info.LpToken, m.client)
	pool := PoolData{LPToken: info.LpToken, AllocPoint: info.AllocPoint, Token0: notAPair, Token1: notAPair}
	if pool.TokenName, err = lp.Name(ctx); err != nil {
		return PoolData{}, fmt.Errorf("failed to read name of pool %s token: %w", pid, err)
	}
	if pool.TokenSymbol, err = lp.Symbol(ctx); err != nil {
		return PoolData{}, fmt.Errorf("failed to read symbol of pool %s token: %w", pid, err)
	}

	// Single asset pools have no token0/token1.
	token0, err0 := lp.Token0(ctx)
	token1, err1 := lp.Token1(ctx)
	if err0 != nil || err1 != nil {
		return pool, nil
	}
	symbol0, err0 := bindings.NewPair(token0, m.client).Symbol(ctx)
	symbol1, err1 := bindings.NewPair(token1, m.client).Symbol(ctx)
	if err0 != nil || err1 != nil {
		return pool, nil
	}
	pool.Token0, pool.Token1 = symbol0, symbol1

	return pool, nil
}

// Render writes the reward rate, the pool table and the reward token address.
func (r MasterChefReport) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s %s per %s\nmasterchef contract: %s\n",
		FormatUnits(r.RewardRate, 18), r.RewardSymbol, r.RateUnit, r.Address.Hex()); err != nil { //nolint:mnd
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("PID", "Token address", "Alloc point", "Token name", "Token symbol", "Token0", "Token1")
	for i, p := range r.Pools {
		row := []string{fmt.Sprint(i), p.LPToken.Hex(), p.AllocPoint.String(), p.TokenName, p.TokenSymbol, p.Token0, p.Token1}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s contract: %s\n", r.RewardSymbol, r.RewardToken.Hex())

	return err
}
