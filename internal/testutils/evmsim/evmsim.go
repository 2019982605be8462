// Package evmsim wraps geth's simulated backend as a test chain with funded signers.
package evmsim

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"

	"github.com/stratops/stratops/sdk"
	"github.com/stratops/stratops/sdk/evm"
)

const (
	// DefaultGasLimit is the default gas limit for each transaction in the simulated chain
	DefaultGasLimit = uint64(8000000)

	// DefaultBalance is the default balance for each account in the simulated chain
	DefaultBalance = 1e18

	// SimulatedChainID is the chain ID used for the simulated chain. EVM Simulated chains always use 1337
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// ErrImpersonationUnsupported is returned by Impersonate; the simulated backend only
// accepts transactions signed with a known key.
var ErrImpersonationUnsupported = errors.New("simulated backend cannot impersonate accounts")

var _ sdk.TestChainControls = SimulatedChain{}

// SimulatedChain represents a simulated chain with a backend and a list of signers.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer represents a signer with a private key.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// NewTransactOpts creates a new transact options with the signer's private key and sets default
// values.
func (s *Signer) NewTransactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()

	auth, err := bind.NewKeyedTransactorWithChainID(s.PrivateKey, big.NewInt(SimulatedChainID))
	require.NoError(t, err)

	// Set default values
	auth.GasLimit = DefaultGasLimit

	return auth
}

// Address extracts the address from the signer's private key.
func (s *Signer) Address(t *testing.T) common.Address {
	t.Helper()

	publicKeyECDSA, ok := s.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatal("error casting public key from crypto to ecdsa")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA)
}

// NewSimulatedChain creates a new simulated chain with the given number of signers.
func NewSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	// Generate a private key
	signers := make([]*Signer, 0, numSigners)
	for range numSigners {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	// Setup the simulated backend
	genesisAlloc := gethTypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address(t)] = gethTypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit),
	)

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}

// Client returns an evm.Client sending transactions as signer.
func (s SimulatedChain) Client(t *testing.T, signer *Signer) *evm.Client {
	t.Helper()

	return evm.NewClient(s.Backend.Client(), signer.NewTransactOpts(t), evm.WithPollInterval(10*time.Millisecond))
}

// Impersonate always fails. Use a timelocksim chain or a fork node instead.
func (s SimulatedChain) Impersonate(_ context.Context, account common.Address) error {
	return fmt.Errorf("impersonate %s: %w", account.Hex(), ErrImpersonationUnsupported)
}

// AdvanceTime mines a block whose timestamp is d after the current head.
func (s SimulatedChain) AdvanceTime(_ context.Context, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("time advance must be positive, got %s", d)
	}

	return s.Backend.AdjustTime(d)
}

func (s SimulatedChain) MineBlock(_ context.Context) error {
	s.Backend.Commit()

	return nil
}
