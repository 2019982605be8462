package stratops

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/config"
	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/sdk/evm"
	"github.com/stratops/stratops/sdk/evm/bindings"
	"github.com/stratops/stratops/types"
)

// ParseIndexList parses a comma separated list of indices and inclusive ranges such as
// "0,2-4,9". Reversed ranges are accepted. The result is sorted and free of duplicates.
func ParseIndexList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, sdkerrors.NewInvalidIndexListError(s)
	}

	seen := map[int]struct{}{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)

		lowStr, highStr, isRange := strings.Cut(entry, "-")
		low, err := parseIndex(lowStr)
		if err != nil {
			return nil, sdkerrors.NewInvalidIndexListError(entry)
		}
		high := low
		if isRange {
			if high, err = parseIndex(highStr); err != nil {
				return nil, sdkerrors.NewInvalidIndexListError(entry)
			}
		}
		if high < low {
			low, high = high, low
		}
		for i := low; i <= high; i++ {
			seen[i] = struct{}{}
		}
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	return indices, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("negative index %d", i)
	}

	return i, nil
}

// SweepResult is the outcome of sweeping one token.
type SweepResult struct {
	Balance TokenBalance
	Skipped bool
	Tx      types.TransactionResult
}

// TokenSweeper moves token balances held by the timelock to its manager.
type TokenSweeper struct {
	client        sdk.ChainClient
	executor      *evm.TimelockExecutor
	confirmations uint64
}

func NewTokenSweeper(client sdk.ChainClient, timelock common.Address) *TokenSweeper {
	return &TokenSweeper{
		client:        client,
		executor:      evm.NewTimelockExecutor(client, timelock),
		confirmations: DefaultConfirmations,
	}
}

// Sweep sweeps the full timelock balance of each selected token. Tokens are processed
// one at a time and each transaction is confirmed before the next is sent. Zero
// balances are skipped.
func (s *TokenSweeper) Sweep(ctx context.Context, tokens []config.Token, indices []int) ([]SweepResult, error) {
	selected := make([]config.Token, 0, len(indices))
	for _, i := range indices {
		if i >= len(tokens) {
			return nil, fmt.Errorf("token index %d out of range, %d tokens configured", i, len(tokens))
		}
		selected = append(selected, tokens[i])
	}

	lggr := sdk.LoggerFrom(ctx)
	timelock := s.executor.Address()

	results := make([]SweepResult, 0, len(selected))
	for _, t := range selected {
		token := bindings.NewPair(t.TokenAddress(), s.client)
		balance, err := token.BalanceOf(ctx, timelock)
		if err != nil {
			return results, fmt.Errorf("failed to read %s balance: %w", t.Symbol, err)
		}

		result := SweepResult{
			Balance: TokenBalance{Symbol: t.Symbol, Token: t.TokenAddress(), Balance: balance},
		}
		if balance.Sign() == 0 {
			lggr.Infof("skipping %s, timelock balance is zero", t.Symbol)
			result.Skipped = true
			results = append(results, result)

			continue
		}
		if result.Balance.Decimals, err = token.Decimals(ctx); err != nil {
			return results, fmt.Errorf("failed to read %s decimals: %w", t.Symbol, err)
		}

		tx, err := s.executor.SweepTokens(ctx, t.TokenAddress(), balance)
		if err != nil {
			return results, fmt.Errorf("failed to sweep %s: %w", t.Symbol, err)
		}
		if result.Tx, err = tx.Wait(ctx, s.confirmations); err != nil {
			return results, fmt.Errorf("failed to confirm sweep of %s: %w", t.Symbol, err)
		}
		lggr.Infof("swept %s %s in %s", result.Balance.Formatted(), t.Symbol, result.Tx.Hash)

		results = append(results, result)
	}

	return results, nil
}
