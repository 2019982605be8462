package stratops

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/usbwallet"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer produces transaction options for the chain the controller talks to.
type Signer interface {
	TransactOpts(chainID *big.Int) (*bind.TransactOpts, error)
	Address() (common.Address, error)
}

var _ Signer = &PrivateKeySigner{}

// PrivateKeySigner signs transactions with an in-memory private key.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// ParsePrivateKeySigner accepts a hex key with or without the 0x prefix.
func ParsePrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return NewPrivateKeySigner(pk), nil
}

func (s *PrivateKeySigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.pk, chainID)
}

func (s *PrivateKeySigner) Address() (common.Address, error) {
	return crypto.PubkeyToAddress(s.pk.PublicKey), nil
}

var _ Signer = &LedgerSigner{}

// LedgerSigner signs transactions on the first connected Ledger.
type LedgerSigner struct {
	derivationPath accounts.DerivationPath
}

func NewLedgerSigner(derivationPath accounts.DerivationPath) *LedgerSigner {
	return &LedgerSigner{derivationPath: derivationPath}
}

// TransactOpts resolves the ledger account once. Each signature reopens the device.
func (s *LedgerSigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	from, err := s.Address()
	if err != nil {
		return nil, err
	}

	return &bind.TransactOpts{
		From: from,
		Signer: func(addr common.Address, tx *gethtypes.Transaction) (*gethtypes.Transaction, error) {
			if addr != from {
				return nil, bind.ErrNotAuthorized
			}

			wallet, account, err := s.open()
			if err != nil {
				return nil, err
			}
			defer wallet.Close()

			return wallet.SignTx(account, tx, chainID)
		},
	}, nil
}

func (s *LedgerSigner) Address() (common.Address, error) {
	wallet, account, err := s.open()
	if err != nil {
		return common.Address{}, err
	}
	defer wallet.Close()

	return account.Address, nil
}

// open loads the wallet and account from the ledger. Caller closes the wallet.
func (s *LedgerSigner) open() (accounts.Wallet, accounts.Account, error) {
	hub, err := usbwallet.NewLedgerHub()
	if err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open ledger hub: %w", err)
	}

	wallets := hub.Wallets()
	if len(wallets) == 0 {
		return nil, accounts.Account{}, errors.New("no ledger found")
	}
	wallet := wallets[0]

	if err = wallet.Open(""); err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open wallet: %w", err)
	}

	account, err := wallet.Derive(s.derivationPath, true)
	if err != nil {
		wallet.Close()
		return nil, accounts.Account{}, fmt.Errorf("is the ledger ethereum app open? failed to derive %s: %w", s.derivationPath, err)
	}

	return wallet, account, nil
}
