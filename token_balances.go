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

// TokenBalance is the balance a holder has of one configured token.
type TokenBalance struct {
	Symbol   string         `json:"symbol"`
	Token    common.Address `json:"token"`
	Balance  *big.Int       `json:"balance"`
	Decimals uint8          `json:"decimals"`
}

// Formatted returns the balance scaled by the token decimals.
func (b TokenBalance) Formatted() string {
	return FormatUnits(b.Balance, b.Decimals)
}

// TokenBalances reads the balance of holder for every token, preserving the order of
// tokens.
func TokenBalances(ctx context.Context, client sdk.ChainClient, holder common.Address, tokens []config.Token) ([]TokenBalance, error) {
	balances := make([]TokenBalance, 0, len(tokens))
	for _, t := range tokens {
		token := bindings.NewPair(t.TokenAddress(), client)

		balance, err := token.BalanceOf(ctx, holder)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s balance: %w", t.Symbol, err)
		}
		decimals, err := token.Decimals(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s decimals: %w", t.Symbol, err)
		}

		balances = append(balances, TokenBalance{
			Symbol:   t.Symbol,
			Token:    t.TokenAddress(),
			Balance:  balance,
			Decimals: decimals,
		})
	}

	return balances, nil
}

// RenderBalances writes balances as a table followed by the holder address.
func RenderBalances(w io.Writer, holder common.Address, balances []TokenBalance) error {
	table := tablewriter.NewWriter(w)
	table.Header("Index", "Symbol", "Balance")
	for i, b := range balances {
		if err := table.Append([]string{fmt.Sprint(i), b.Symbol, b.Formatted()}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "holder address: %s\n", holder.Hex())

	return err
}
