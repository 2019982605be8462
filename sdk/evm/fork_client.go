package evm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
)

var (
	_ sdk.ChainClient       = (*ForkClient)(nil)
	_ sdk.TestChainControls = (*ForkClient)(nil)
)

// ForkClient talks to a local fork node (hardhat or anvil) and exposes the node's test
// controls. Once an account is impersonated every send is submitted unsigned from it.
type ForkClient struct {
	*Client
	rpc *rpc.Client

	mu           sync.Mutex
	impersonated *common.Address
}

// DialFork connects to the fork node at url.
func DialFork(ctx context.Context, url string, auth *bind.TransactOpts, opts ...ClientOption) (*ForkClient, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, sdkerrors.NewTransportError("dial "+url, err)
	}

	return NewForkClient(rpcClient, auth, opts...), nil
}

// NewForkClient wraps an existing RPC connection.
func NewForkClient(rpcClient *rpc.Client, auth *bind.TransactOpts, opts ...ClientOption) *ForkClient {
	return &ForkClient{
		Client: NewClient(ethclient.NewClient(rpcClient), auth, opts...),
		rpc:    rpcClient,
	}
}

// Impersonate makes account the sender of every subsequent Send.
func (f *ForkClient) Impersonate(ctx context.Context, account common.Address) error {
	if err := f.rpc.CallContext(ctx, nil, "hardhat_impersonateAccount", account); err != nil {
		return sdkerrors.NewTransportError("hardhat_impersonateAccount", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.impersonated = &account

	return nil
}

// AdvanceTime increases the node clock and mines a block so the new time is observable.
func (f *ForkClient) AdvanceTime(ctx context.Context, d time.Duration) error {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return errors.New("time advance must be at least one second")
	}

	if err := f.rpc.CallContext(ctx, nil, "evm_increaseTime", seconds); err != nil {
		return sdkerrors.NewTransportError("evm_increaseTime", err)
	}

	return f.MineBlock(ctx)
}

func (f *ForkClient) MineBlock(ctx context.Context) error {
	if err := f.rpc.CallContext(ctx, nil, "evm_mine"); err != nil {
		return sdkerrors.NewTransportError("evm_mine", err)
	}

	return nil
}

// From returns the impersonated account if any, otherwise the signer.
func (f *ForkClient) From() common.Address {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.impersonated != nil {
		return *f.impersonated
	}

	return f.Client.From()
}

func (f *ForkClient) Send(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) (sdk.PendingTransaction, error) {
	f.mu.Lock()
	impersonated := f.impersonated
	f.mu.Unlock()

	if impersonated == nil {
		return f.Client.Send(ctx, contract, contractABI, method, args...)
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	var hash common.Hash
	err = f.rpc.CallContext(ctx, &hash, "eth_sendTransaction", map[string]any{
		"from": *impersonated,
		"to":   contract,
		"data": hexutil.Bytes(data),
	})
	if err != nil {
		return nil, classifyError("eth_sendTransaction "+method, method, contract, err)
	}

	sdk.LoggerFrom(ctx).Debugf("sent %s to %s as %s in tx %s", method, contract.Hex(), impersonated.Hex(), hash.Hex())

	return &pendingTransaction{
		backend:      f.backend,
		pollInterval: f.pollInterval,
		hash:         hash,
		method:       method,
		contract:     contract,
		msg: ethereum.CallMsg{
			From: *impersonated,
			To:   &contract,
			Data: data,
		},
	}, nil
}
