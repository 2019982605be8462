package evm

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/types"
)

var _ sdk.ChainClient = (*Client)(nil)

const defaultPollInterval = time.Second

// Client is a ChainClient backed by an EVM node connection and an optional signer.
// Without transact options the client is read only.
type Client struct {
	backend      ContractDeployBackend
	auth         *bind.TransactOpts
	pollInterval time.Duration
}

type ClientOption func(*Client)

// WithPollInterval sets how often receipts are polled while waiting for confirmations.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// NewClient creates a new Client.
func NewClient(backend ContractDeployBackend, auth *bind.TransactOpts, opts ...ClientOption) *Client {
	c := &Client{
		backend:      backend,
		auth:         auth,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Backend returns the underlying node connection.
func (c *Client) Backend() ContractDeployBackend {
	return c.backend
}

// From returns the signing address, or the zero address for a read only client.
func (c *Client) From() common.Address {
	if c.auth == nil {
		return common.Address{}
	}

	return c.auth.From
}

func (c *Client) Call(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) ([]any, error) {
	bound := bind.NewBoundContract(contract, *contractABI, c.backend, c.backend, c.backend)

	var out []any
	if err := bound.Call(&bind.CallOpts{Context: ctx, From: c.From()}, &out, method, args...); err != nil {
		return nil, classifyError("eth_call "+method, method, contract, err)
	}

	return out, nil
}

func (c *Client) Send(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) (sdk.PendingTransaction, error) {
	if c.auth == nil {
		return nil, sdkerrors.NewNoSignerError(method)
	}

	bound := bind.NewBoundContract(contract, *contractABI, c.backend, c.backend, c.backend)

	opts := *c.auth
	opts.Context = ctx

	tx, err := bound.Transact(&opts, method, args...)
	if err != nil {
		return nil, classifyError("send "+method, method, contract, err)
	}

	sdk.LoggerFrom(ctx).Debugf("sent %s to %s in tx %s", method, contract.Hex(), tx.Hash().Hex())

	return &pendingTransaction{
		backend:      c.backend,
		pollInterval: c.pollInterval,
		hash:         tx.Hash(),
		method:       method,
		contract:     contract,
		msg: ethereum.CallMsg{
			From:  opts.From,
			To:    &contract,
			Gas:   tx.Gas(),
			Value: tx.Value(),
			Data:  tx.Data(),
		},
	}, nil
}

// pendingTransaction polls a node until a sent transaction is mined and confirmed.
type pendingTransaction struct {
	backend      ContractDeployBackend
	pollInterval time.Duration
	hash         common.Hash
	method       string
	contract     common.Address
	// msg replays the transaction to recover a revert reason when the receipt failed.
	msg ethereum.CallMsg
}

func (p *pendingTransaction) Hash() common.Hash {
	return p.hash
}

func (p *pendingTransaction) Wait(ctx context.Context, confirmations uint64) (types.TransactionResult, error) {
	if confirmations == 0 {
		confirmations = DefaultConfirmations
	}

	queryTicker := time.NewTicker(p.pollInterval)
	defer queryTicker.Stop()

	logger := sdk.LoggerFrom(ctx)

	var receipt *gethtypes.Receipt
	for {
		if receipt == nil {
			r, err := p.backend.TransactionReceipt(ctx, p.hash)
			switch {
			case err == nil:
				receipt = r
			case errors.Is(err, ethereum.NotFound):
				logger.Debugf("transaction %s not yet mined", p.hash.Hex())
			default:
				logger.Debugf("receipt retrieval for %s failed: %v", p.hash.Hex(), err)
			}
		}

		if receipt != nil {
			if receipt.Status != gethtypes.ReceiptStatusSuccessful {
				return types.TransactionResult{}, &sdkerrors.ChainRevertError{
					Method:   p.method,
					Contract: p.contract.Hex(),
					Reason:   p.replayRevertReason(ctx, receipt.BlockNumber),
					TxHash:   p.hash.Hex(),
				}
			}

			head, err := p.backend.HeaderByNumber(ctx, nil)
			if err == nil && head.Number.Uint64()+1 >= receipt.BlockNumber.Uint64()+confirmations {
				return types.TransactionResult{
					Hash:        p.hash.Hex(),
					BlockNumber: receipt.BlockNumber.Uint64(),
					RawData:     receipt,
				}, nil
			}
		}

		// Wait for the next round.
		select {
		case <-ctx.Done():
			return types.TransactionResult{}, sdkerrors.NewTransportError("wait for "+p.hash.Hex(), ctx.Err())
		case <-queryTicker.C:
		}
	}
}

// replayRevertReason re-executes the failed call against the state it ran on. This is
// best effort; an empty string is returned when no reason can be recovered.
func (p *pendingTransaction) replayRevertReason(ctx context.Context, minedAt *big.Int) string {
	_, err := p.backend.CallContract(ctx, p.msg, previousBlock(minedAt))
	if err == nil {
		return ""
	}

	reason, _ := RevertReason(err)

	return reason
}
