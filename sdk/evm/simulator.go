package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stratops/stratops/sdk"
	"github.com/stratops/stratops/types"
)

var (
	_ sdk.Simulator = (*Client)(nil)
	_ sdk.Simulator = (*ForkClient)(nil)
)

// Simulate executes method as an eth_call from the signer against the latest block.
func (c *Client) Simulate(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) error {
	return simulate(ctx, c.backend, c.From(), contract, contractABI, method, args...)
}

// Simulate executes method from the impersonated account when there is one.
func (f *ForkClient) Simulate(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) error {
	return simulate(ctx, f.backend, f.From(), contract, contractABI, method, args...)
}

func simulate(
	ctx context.Context,
	backend ContractDeployBackend,
	from common.Address,
	contract common.Address,
	contractABI *abi.ABI,
	method string,
	args ...any,
) error {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return err
	}

	_, err = backend.CallContract(ctx, ethereum.CallMsg{
		From:  from,
		To:    &contract,
		Value: big.NewInt(0),
		Data:  data,
	}, nil)

	return classifyError("simulate "+method, method, contract, err)
}

// dryRunClient turns every Send into a simulation. Reads pass through.
type dryRunClient struct {
	sdk.ChainClient
	sim sdk.Simulator
}

// DryRun wraps client so that state changing calls are simulated instead of sent. The
// returned transactions have a zero hash and resolve immediately.
func DryRun(client sdk.ChainClient) (sdk.ChainClient, error) {
	sim, ok := client.(sdk.Simulator)
	if !ok {
		return nil, fmt.Errorf("%T does not support simulation", client)
	}

	return &dryRunClient{ChainClient: client, sim: sim}, nil
}

func (d *dryRunClient) Send(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) (sdk.PendingTransaction, error) {
	if err := d.sim.Simulate(ctx, contract, contractABI, method, args...); err != nil {
		return nil, err
	}
	sdk.LoggerFrom(ctx).Infof("simulated %s on %s", method, contract.Hex())

	return simulatedTx{}, nil
}

type simulatedTx struct{}

func (simulatedTx) Hash() common.Hash {
	return common.Hash{}
}

func (simulatedTx) Wait(context.Context, uint64) (types.TransactionResult, error) {
	return types.TransactionResult{}, nil
}
