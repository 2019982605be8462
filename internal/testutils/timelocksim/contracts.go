package timelocksim

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/types"
)

func (c *Chain) window(kind types.CommandKind) time.Duration {
	if kind == types.CommandOwner {
		return c.ownerWindow
	}

	return c.feeWindow
}

func (c *Chain) callTimelock(method string, args []any) ([]any, error) {
	switch method {
	case "manager":
		return []any{c.manager}, nil
	case "timelockLengthForFeeChanges":
		return []any{big.NewInt(int64(c.feeWindow / time.Second))}, nil
	case "timelockLengthForOwnershipTransfer":
		return []any{big.NewInt(int64(c.ownerWindow / time.Second))}, nil
	case "pendingTokenAddressesToRecover":
		target, err := argAddress(args, 0)
		if err != nil {
			return nil, err
		}

		return []any{c.recoveries[target].token}, nil
	case "pendingTokenAmountsToRecover":
		target, err := argAddress(args, 0)
		if err != nil {
			return nil, err
		}
		amount := new(big.Int)
		if r, ok := c.recoveries[target]; ok {
			amount.Set(r.amount)
		}

		return []any{amount}, nil
	}

	for _, kind := range types.AllCommandKinds {
		if method != kind.PendingMethod() {
			continue
		}
		target, err := argAddress(args, 0)
		if err != nil {
			return nil, err
		}
		value := new(big.Int)
		if p, ok := c.pending[pendingKey{target, kind}]; ok {
			value.Set(p.value)
		}
		if kind == types.CommandOwner {
			return []any{common.BigToAddress(value)}, nil
		}

		return []any{value}, nil
	}

	return nil, fmt.Errorf("%s::%s: not a view", ContractName, method)
}

// execTimelock runs method with the contract's checks. State changes only when commit
// is true.
func (c *Chain) execTimelock(method string, args []any, commit bool) error {
	if c.from != c.manager {
		return fmt.Errorf("%s::onlyManager", ContractName)
	}

	if method == "sweepTokens" {
		return c.sweep(args, commit)
	}

	for _, kind := range types.AllCommandKinds {
		switch method {
		case kind.ProposeMethod():
			return c.propose(kind, args, commit)
		case kind.SetMethod():
			return c.set(kind, args, commit)
		}
	}

	return fmt.Errorf("%s::%s: unsupported", ContractName, method)
}

func (c *Chain) propose(kind types.CommandKind, args []any, commit bool) error {
	target, err := argAddress(args, 0)
	if err != nil {
		return err
	}
	if _, ok := c.strategies[target]; !ok {
		return fmt.Errorf("%s::%s: unknown strategy", ContractName, kind.ProposeMethod())
	}

	var value *big.Int
	if kind == types.CommandOwner {
		owner, aerr := argAddress(args, 1)
		if aerr != nil {
			return aerr
		}
		if owner == (common.Address{}) {
			return fmt.Errorf("%s::proposeOwner: zero address", ContractName)
		}
		value = owner.Big()
	} else {
		value, err = argBig(args, 1)
		if err != nil {
			return err
		}
	}

	if !commit {
		return nil
	}
	c.pending[pendingKey{target, kind}] = pendingEntry{value: new(big.Int).Set(value), proposedAt: c.now}

	return nil
}

// set applies a pending change once the window has elapsed. The boundary is inclusive.
func (c *Chain) set(kind types.CommandKind, args []any, commit bool) error {
	target, err := argAddress(args, 0)
	if err != nil {
		return err
	}
	key := pendingKey{target, kind}
	p, ok := c.pending[key]
	if !ok {
		return fmt.Errorf("%s::%s: no pending change", ContractName, kind.SetMethod())
	}
	if c.now.Before(p.proposedAt.Add(c.window(kind))) {
		return fmt.Errorf("%s::setterTimelock: timelock not expired", ContractName)
	}
	if !commit {
		return nil
	}

	s := c.strategies[target]
	switch kind {
	case types.CommandDevFee:
		s.DevFeeBips = p.value
	case types.CommandAdminFee:
		s.AdminFeeBips = p.value
	case types.CommandReinvestReward:
		s.ReinvestRewardBips = p.value
	case types.CommandOwner:
		s.Owner = common.BigToAddress(p.value)
	}
	delete(c.pending, key)

	return nil
}

func (c *Chain) sweep(args []any, commit bool) error {
	token, err := argAddress(args, 0)
	if err != nil {
		return err
	}
	amount, err := argBig(args, 1)
	if err != nil {
		return err
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("%s::sweepTokens: amount must be positive", ContractName)
	}
	t, ok := c.tokens[token]
	if !ok {
		return fmt.Errorf("%s::sweepTokens: unknown token", ContractName)
	}

	balance := c.balanceOf(token, c.timelock)
	if balance.Cmp(amount) < 0 {
		return errors.New("ERC20: transfer amount exceeds balance")
	}
	if !commit {
		return nil
	}
	t.balances[c.timelock] = balance.Sub(balance, amount)
	t.balances[c.manager] = new(big.Int).Add(c.balanceOf(token, c.manager), amount)

	return nil
}

func (c *Chain) callStrategy(s *Strategy, method string) ([]any, error) {
	switch method {
	case "name":
		return []any{s.Name}, nil
	case "owner":
		return []any{s.Owner}, nil
	case "depositToken":
		return []any{s.DepositToken}, nil
	case "rewardToken":
		return []any{s.RewardToken}, nil
	case "stakingContract":
		return []any{s.StakingContract}, nil
	case "ADMIN_FEE_BIPS":
		return []any{new(big.Int).Set(s.AdminFeeBips)}, nil
	case "DEV_FEE_BIPS":
		return []any{new(big.Int).Set(s.DevFeeBips)}, nil
	case "REINVEST_REWARD_BIPS":
		return []any{new(big.Int).Set(s.ReinvestRewardBips)}, nil
	case "MIN_TOKENS_TO_REINVEST":
		return []any{new(big.Int).Set(s.MinTokensToReinvest)}, nil
	case "totalDeposits":
		return []any{new(big.Int).Set(s.TotalDeposits)}, nil
	case "totalSupply":
		return []any{new(big.Int).Set(s.TotalSupply)}, nil
	}

	return nil, fmt.Errorf("strategy does not implement %s", method)
}

func (c *Chain) callToken(t *Token, method string, args []any) ([]any, error) {
	switch method {
	case "name":
		return []any{t.Name}, nil
	case "symbol":
		return []any{t.Symbol}, nil
	case "decimals":
		return []any{t.Decimals}, nil
	case "balanceOf":
		holder, err := argAddress(args, 0)
		if err != nil {
			return nil, err
		}
		if b, ok := t.balances[holder]; ok {
			return []any{new(big.Int).Set(b)}, nil
		}

		return []any{new(big.Int)}, nil
	case "token0":
		if t.Token0 == (common.Address{}) {
			return nil, errors.New("token0 not implemented")
		}

		return []any{t.Token0}, nil
	case "token1":
		if t.Token1 == (common.Address{}) {
			return nil, errors.New("token1 not implemented")
		}

		return []any{t.Token1}, nil
	}

	return nil, fmt.Errorf("token does not implement %s", method)
}

func (c *Chain) callMasterChef(m *MasterChef, method string, args []any) ([]any, error) {
	switch method {
	case "poolLength":
		return []any{big.NewInt(int64(len(m.Pools)))}, nil
	case "poolInfo":
		pid, err := argBig(args, 0)
		if err != nil {
			return nil, err
		}
		if !pid.IsInt64() || pid.Int64() < 0 || pid.Int64() >= int64(len(m.Pools)) {
			return nil, errors.New("invalid pool id")
		}
		p := m.Pools[pid.Int64()]

		return []any{p.LPToken, new(big.Int).Set(p.AllocPoint)}, nil
	case m.RateMethod:
		return []any{new(big.Int).Set(m.Rate)}, nil
	case m.TokenMethod:
		return []any{m.RewardToken}, nil
	}

	return nil, fmt.Errorf("masterchef does not implement %s", method)
}

func argAddress(args []any, i int) (common.Address, error) {
	if i >= len(args) {
		return common.Address{}, fmt.Errorf("missing argument %d", i)
	}
	a, ok := args[i].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("argument %d: expected address, got %T", i, args[i])
	}

	return a, nil
}

func argBig(args []any, i int) (*big.Int, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	v, ok := args[i].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("argument %d: expected uint256, got %T", i, args[i])
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("argument %d: negative uint256", i)
	}

	return v, nil
}
