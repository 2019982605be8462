package commands

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/stratops/stratops"
	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/sdk/evm"
)

// readClient connects without a signer. Fork networks still get a ForkClient so reads
// observe the fork node state.
func (e *env) readClient(ctx context.Context) (sdk.ChainClient, error) {
	return e.dial(ctx, nil, "")
}

// writeClient connects with the configured signer, or unsigned and impersonating
// impersonate when it is set. A dry run client simulates every send.
func (e *env) writeClient(ctx context.Context, impersonate string, dryRun bool) (sdk.ChainClient, error) {
	client, err := e.signingClient(ctx, impersonate)
	if err != nil || !dryRun {
		return client, err
	}

	return evm.DryRun(client)
}

func (e *env) signingClient(ctx context.Context, impersonate string) (sdk.ChainClient, error) {
	if impersonate != "" {
		if !common.IsHexAddress(impersonate) {
			return nil, fmt.Errorf("invalid impersonation address %q", impersonate)
		}

		return e.dial(ctx, nil, impersonate)
	}

	auth, err := e.transactOpts()
	if err != nil {
		return nil, err
	}

	return e.dial(ctx, auth, "")
}

func (e *env) dial(ctx context.Context, auth *bind.TransactOpts, impersonate string) (sdk.ChainClient, error) {
	url, err := e.network.URL()
	if err != nil {
		return nil, err
	}

	if e.network.Fork || impersonate != "" {
		client, err := evm.DialFork(ctx, url, auth)
		if err != nil {
			return nil, err
		}
		if impersonate != "" {
			if err := client.Impersonate(ctx, common.HexToAddress(impersonate)); err != nil {
				return nil, err
			}
			e.logger.Infof("impersonating %s on %s", impersonate, e.networkName())
		}

		return client, nil
	}

	backend, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, sdkerrors.NewTransportError("dial "+e.networkName(), err)
	}

	return evm.NewClient(backend, auth), nil
}

func (e *env) transactOpts() (*bind.TransactOpts, error) {
	var signer stratops.Signer
	if e.flags.ledger {
		path, err := accounts.ParseDerivationPath(e.flags.derivationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse derivation path: %w", err)
		}
		signer = stratops.NewLedgerSigner(path)
	} else {
		key, err := e.network.PrivateKey(e.flags.account)
		if err != nil {
			return nil, err
		}
		if signer, err = stratops.ParsePrivateKeySigner(key); err != nil {
			return nil, err
		}
	}

	auth, err := signer.TransactOpts(new(big.Int).SetUint64(e.network.ChainID))
	if err != nil {
		return nil, err
	}

	gasPrice, err := e.network.GasPriceWei()
	if err != nil {
		return nil, err
	}
	auth.GasPrice = gasPrice

	e.logger.Debugf("signing as %s", auth.From.Hex())

	return auth, nil
}

// timelock returns the configured timelock address or the override when set.
func (e *env) timelock(override string) (common.Address, error) {
	if override != "" {
		if !common.IsHexAddress(override) {
			return common.Address{}, fmt.Errorf("invalid timelock address %q", override)
		}

		return common.HexToAddress(override), nil
	}

	return e.cfg.TimelockAddress()
}

func parseAddressFlag(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("--%s: invalid address %q", name, value)
	}

	return common.HexToAddress(value), nil
}
