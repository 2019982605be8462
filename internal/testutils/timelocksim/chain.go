// Package timelocksim implements an in-memory chain holding a strategy timelock, its
// strategies and ERC20 tokens. It satisfies sdk.ChainClient and sdk.TestChainControls
// so that the propose/set protocol can be exercised without a node.
package timelocksim

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/types"
)

const (
	// DefaultFeeWindow is the delay enforced between proposing and setting a fee.
	DefaultFeeWindow = 8 * time.Hour

	// DefaultOwnerWindow is the delay enforced for ownership transfers.
	DefaultOwnerWindow = 8 * time.Hour

	// ContractName prefixes revert reasons raised by the simulated timelock.
	ContractName = "YakTimelockForDexStrategyV3"
)

var (
	_ sdk.ChainClient       = (*Chain)(nil)
	_ sdk.TestChainControls = (*Chain)(nil)
	_ sdk.Simulator         = (*Chain)(nil)
)

// Strategy is the governed state of a simulated strategy contract.
type Strategy struct {
	Name                string
	Owner               common.Address
	DepositToken        common.Address
	RewardToken         common.Address
	StakingContract     common.Address
	AdminFeeBips        *big.Int
	DevFeeBips          *big.Int
	ReinvestRewardBips  *big.Int
	MinTokensToReinvest *big.Int
	TotalDeposits       *big.Int
	TotalSupply         *big.Int
}

// Token is a simulated ERC20. Token0 and Token1 are set for LP pairs only.
type Token struct {
	Name     string
	Symbol   string
	Decimals uint8
	Token0   common.Address
	Token1   common.Address
	balances map[common.Address]*big.Int
}

// Pool is a single masterchef pool.
type Pool struct {
	LPToken    common.Address
	AllocPoint *big.Int
}

// MasterChef is a simulated masterchef exposing a custom reward rate and token getter.
type MasterChef struct {
	RateMethod  string
	TokenMethod string
	Rate        *big.Int
	RewardToken common.Address
	Pools       []Pool
}

// SentTx records a transaction accepted by the simulated chain.
type SentTx struct {
	Hash        common.Hash
	From        common.Address
	To          common.Address
	Method      string
	Args        []any
	BlockNumber uint64
}

type pendingKey struct {
	target common.Address
	kind   types.CommandKind
}

type pendingEntry struct {
	value      *big.Int
	proposedAt time.Time
}

type recovery struct {
	token  common.Address
	amount *big.Int
}

// Option configures a Chain.
type Option func(*Chain)

// WithFeeWindow overrides the fee change delay.
func WithFeeWindow(d time.Duration) Option {
	return func(c *Chain) { c.feeWindow = d }
}

// WithOwnerWindow overrides the ownership transfer delay.
func WithOwnerWindow(d time.Duration) Option {
	return func(c *Chain) { c.ownerWindow = d }
}

// WithStartTime sets the timestamp of the genesis block.
func WithStartTime(t time.Time) Option {
	return func(c *Chain) { c.now = t }
}

// Chain is an automining in-memory chain. Every accepted transaction is included in a
// new block immediately.
type Chain struct {
	mu sync.Mutex

	timelock    common.Address
	manager     common.Address
	from        common.Address
	feeWindow   time.Duration
	ownerWindow time.Duration

	now   time.Time
	block uint64
	nonce uint64

	strategies  map[common.Address]*Strategy
	tokens      map[common.Address]*Token
	masterchefs map[common.Address]*MasterChef
	pending     map[pendingKey]pendingEntry
	recoveries  map[common.Address]recovery

	sent         []SentTx
	calls        int
	transportErr error
}

// NewChain creates a chain with a timelock at timelock managed by manager. Transactions
// are sent from manager until Impersonate is called.
func NewChain(timelock, manager common.Address, opts ...Option) *Chain {
	c := &Chain{
		timelock:    timelock,
		manager:     manager,
		from:        manager,
		feeWindow:   DefaultFeeWindow,
		ownerWindow: DefaultOwnerWindow,
		now:         time.Unix(1700000000, 0).UTC(),
		block:       1,
		strategies:  map[common.Address]*Strategy{},
		tokens:      map[common.Address]*Token{},
		masterchefs: map[common.Address]*MasterChef{},
		pending:     map[pendingKey]pendingEntry{},
		recoveries:  map[common.Address]recovery{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AddStrategy registers a strategy. Nil numeric fields default to zero.
func (c *Chain) AddStrategy(addr common.Address, s Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range []**big.Int{
		&s.AdminFeeBips, &s.DevFeeBips, &s.ReinvestRewardBips,
		&s.MinTokensToReinvest, &s.TotalDeposits, &s.TotalSupply,
	} {
		if *f == nil {
			*f = new(big.Int)
		}
	}
	c.strategies[addr] = &s
}

// Strategy returns a copy of the strategy state at addr.
func (c *Chain) Strategy(addr common.Address) (Strategy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.strategies[addr]
	if !ok {
		return Strategy{}, false
	}

	return *s, true
}

// AddToken registers an ERC20 token.
func (c *Chain) AddToken(addr common.Address, t Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t.balances = map[common.Address]*big.Int{}
	c.tokens[addr] = &t
}

// SetBalance sets the token balance of holder.
func (c *Chain) SetBalance(token, holder common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tokens[token]
	if !ok {
		panic(fmt.Sprintf("unknown token %s", token))
	}
	t.balances[holder] = new(big.Int).Set(amount)
}

// Balance returns the token balance of holder.
func (c *Chain) Balance(token, holder common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.balanceOf(token, holder)
}

// AddMasterChef registers a masterchef contract.
func (c *Chain) AddMasterChef(addr common.Address, m MasterChef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.masterchefs[addr] = &m
}

// SetPendingRecovery queues a token recovery for strategy.
func (c *Chain) SetPendingRecovery(strategy, token common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recoveries[strategy] = recovery{token: token, amount: new(big.Int).Set(amount)}
}

// FailWith makes every subsequent Call, Send and Wait fail with a transport error
// wrapping err. A nil err restores normal operation.
func (c *Chain) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transportErr = err
}

// Sent returns the transactions accepted so far.
func (c *Chain) Sent() []SentTx {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]SentTx(nil), c.sent...)
}

// CallCount returns the number of read calls served.
func (c *Chain) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}

// Now returns the timestamp of the latest block.
func (c *Chain) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// BlockNumber returns the latest block number.
func (c *Chain) BlockNumber() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.block
}

func (c *Chain) Impersonate(_ context.Context, account common.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.from = account

	return nil
}

func (c *Chain) AdvanceTime(_ context.Context, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("time advance must be positive, got %s", d)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	c.block++

	return nil
}

func (c *Chain) MineBlock(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.block++

	return nil
}

func (c *Chain) Call(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) ([]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkTransport(ctx, method); err != nil {
		return nil, err
	}
	if err := checkMethod(contractABI, method); err != nil {
		return nil, err
	}
	c.calls++

	var (
		out []any
		err error
	)
	switch {
	case contract == c.timelock:
		out, err = c.callTimelock(method, args)
	case c.strategies[contract] != nil:
		out, err = c.callStrategy(c.strategies[contract], method)
	case c.tokens[contract] != nil:
		out, err = c.callToken(c.tokens[contract], method, args)
	case c.masterchefs[contract] != nil:
		out, err = c.callMasterChef(c.masterchefs[contract], method, args)
	default:
		return nil, sdkerrors.NewChainRevertError(method, contract.Hex(), "", errors.New("no contract code at address"))
	}
	if err != nil {
		return nil, revert(method, contract, err)
	}

	return out, nil
}

// Simulate runs the timelock checks for method without changing state.
func (c *Chain) Simulate(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkTransport(ctx, method); err != nil {
		return err
	}
	if err := checkMethod(contractABI, method); err != nil {
		return err
	}
	if contract != c.timelock {
		return revert(method, contract, errors.New("no contract code at address"))
	}
	if err := c.execTimelock(method, args, false); err != nil {
		return revert(method, contract, err)
	}

	return nil
}

func (c *Chain) Send(
	ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any,
) (sdk.PendingTransaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkTransport(ctx, method); err != nil {
		return nil, err
	}
	if err := checkMethod(contractABI, method); err != nil {
		return nil, err
	}
	if contract != c.timelock {
		return nil, revert(method, contract, errors.New("no contract code at address"))
	}
	if err := c.execTimelock(method, args, true); err != nil {
		return nil, revert(method, contract, err)
	}

	c.nonce++
	c.block++
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], c.nonce)
	tx := SentTx{
		Hash:        crypto.Keccak256Hash(c.from.Bytes(), seed[:], []byte(method)),
		From:        c.from,
		To:          contract,
		Method:      method,
		Args:        args,
		BlockNumber: c.block,
	}
	c.sent = append(c.sent, tx)

	return &pendingTx{chain: c, tx: tx}, nil
}

func (c *Chain) checkTransport(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return sdkerrors.NewTransportError(op, err)
	}
	if c.transportErr != nil {
		return sdkerrors.NewTransportError(op, c.transportErr)
	}

	return nil
}

func checkMethod(contractABI *abi.ABI, method string) error {
	if contractABI == nil {
		return errors.New("nil abi")
	}
	if _, ok := contractABI.Methods[method]; !ok {
		return fmt.Errorf("method %q not found in abi", method)
	}

	return nil
}

func revert(method string, contract common.Address, reason error) error {
	return sdkerrors.NewChainRevertError(method, contract.Hex(), reason.Error(), nil)
}

func (c *Chain) balanceOf(token, holder common.Address) *big.Int {
	t, ok := c.tokens[token]
	if !ok {
		return new(big.Int)
	}
	if b, ok := t.balances[holder]; ok {
		return new(big.Int).Set(b)
	}

	return new(big.Int)
}

type pendingTx struct {
	chain *Chain
	tx    SentTx
}

func (p *pendingTx) Hash() common.Hash {
	return p.tx.Hash
}

// Wait mines empty blocks until the transaction has the requested confirmations.
func (p *pendingTx) Wait(ctx context.Context, confirmations uint64) (types.TransactionResult, error) {
	c := p.chain
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkTransport(ctx, p.tx.Method); err != nil {
		return types.TransactionResult{}, err
	}
	for confirmations > 0 && c.block+1 < p.tx.BlockNumber+confirmations {
		c.block++
	}

	return types.TransactionResult{
		Hash:        p.tx.Hash.Hex(),
		BlockNumber: p.tx.BlockNumber,
		RawData:     p.tx,
	}, nil
}
