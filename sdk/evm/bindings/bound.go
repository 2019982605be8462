// Package bindings contains typed wrappers around the strategy, timelock, token and
// masterchef contracts. Every wrapper routes through an sdk.ChainClient so the same
// binding works against a live node, a fork or the in-memory simulator.
package bindings

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
)

// boundContract pairs a contract address and ABI with the client used to reach it.
type boundContract struct {
	address common.Address
	abi     *abi.ABI
	client  sdk.ChainClient
}

func newBoundContract(address common.Address, contractABI *abi.ABI, client sdk.ChainClient) boundContract {
	return boundContract{address: address, abi: contractABI, client: client}
}

func (c boundContract) call(ctx context.Context, method string, args ...any) ([]any, error) {
	return c.client.Call(ctx, c.address, c.abi, method, args...)
}

func (c boundContract) transact(ctx context.Context, method string, args ...any) (sdk.PendingTransaction, error) {
	return c.client.Send(ctx, c.address, c.abi, method, args...)
}

// callOne performs a view call and converts its first return value to T.
func callOne[T any](ctx context.Context, c boundContract, method string, args ...any) (T, error) {
	var zero T

	out, err := c.call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, fmt.Errorf("%s returned no values", method)
	}

	return *abi.ConvertType(out[0], new(T)).(*T), nil
}

func parseABI(meta string) (*abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(meta))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	return &parsed, nil
}

func mustParseABI(meta string) *abi.ABI {
	parsed, err := parseABI(meta)
	if err != nil {
		panic(err)
	}

	return parsed
}
