package stratops

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/stratops/stratops/internal/testutils/timelocksim"
	"github.com/stratops/stratops/sdk"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/sdk/evm/bindings"
	"github.com/stratops/stratops/sdk/mocks"
	"github.com/stratops/stratops/types"
)

var (
	testTimelock = common.HexToAddress("0x8d36C5c6947ADCcd25Ef49Ea1aAC2ceACFff0bD7")
	testManager  = common.HexToAddress("0xDcEDF06Fd33E1D7b6eb4b309f779a0e9D3172e44")
	testFarm     = common.HexToAddress("0x06404FC9C69F8333DC24D4C856E2c8Db7983EB8a")

	// windowElapsed is the advance used against the deployed contract: just over 8 hours.
	windowElapsed = 28801 * time.Second
)

// TimelockControllerSuite runs the propose/set protocol against a simulated timelock.
type TimelockControllerSuite struct {
	suite.Suite

	ctx        context.Context
	chain      *timelocksim.Chain
	controller *TimelockChangeController
}

func TestTimelockControllerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TimelockControllerSuite))
}

func (s *TimelockControllerSuite) SetupTest() {
	s.ctx = sdk.WithLogger(context.Background(), zaptest.NewLogger(s.T()).Sugar())
	s.chain = timelocksim.NewChain(testTimelock, testManager)
	s.chain.AddStrategy(testFarm, timelocksim.Strategy{
		Name:         "Yield: ELK-WAVAX",
		Owner:        testTimelock,
		DevFeeBips:   big.NewInt(200),
		AdminFeeBips: big.NewInt(0),
	})
	s.controller = NewTimelockChangeController(s.chain, testTimelock)
}

func (s *TimelockControllerSuite) propose(command string, value int64) types.TransactionResult {
	res, err := s.controller.RequestChange(s.ctx, testFarm, command, false, big.NewInt(value))
	s.Require().NoError(err)

	return res
}

func (s *TimelockControllerSuite) pending(kind types.CommandKind) *big.Int {
	v, err := s.controller.QueryPendingChange(s.ctx, testFarm, kind)
	s.Require().NoError(err)

	return v
}

func (s *TimelockControllerSuite) TestFarmOwnedByTimelock() {
	st, ok := s.chain.Strategy(testFarm)
	s.Require().True(ok)
	s.Equal(testTimelock, st.Owner)
}

func (s *TimelockControllerSuite) TestQueryIsIdempotent() {
	s.Zero(s.pending(types.CommandDevFee).Sign())
	s.propose("DevFee", 123)

	first := s.pending(types.CommandDevFee)
	for range 3 {
		s.Equal(first, s.pending(types.CommandDevFee))
	}
	s.Len(s.chain.Sent(), 1)
}

func (s *TimelockControllerSuite) TestProposeSetsPendingValue() {
	for _, kind := range []types.CommandKind{types.CommandDevFee, types.CommandAdminFee, types.CommandReinvestReward} {
		res := s.propose(kind.String(), 123)
		s.NotEmpty(res.Hash)
		s.Equal(s.chain.BlockNumber(), res.BlockNumber)
		s.Equal(big.NewInt(123), s.pending(kind))
	}
}

func (s *TimelockControllerSuite) TestImmediateSetIsRejected() {
	s.propose("DevFee", 123)

	_, err := s.controller.RequestChange(s.ctx, testFarm, "DevFee", true, nil)
	s.Require().Error(err)

	var revertErr *sdkerrors.ChainRevertError
	s.Require().ErrorAs(err, &revertErr)
	s.Equal("setDevFee", revertErr.Method)
	s.Contains(revertErr.Reason, "timelock not expired")
	s.Contains(err.Error(), testFarm.Hex())

	s.Equal(big.NewInt(123), s.pending(types.CommandDevFee))
	st, _ := s.chain.Strategy(testFarm)
	s.Equal(big.NewInt(200), st.DevFeeBips)
}

func (s *TimelockControllerSuite) TestSetSucceedsAfterWindow() {
	s.propose("DevFee", 123)
	s.Require().NoError(s.chain.AdvanceTime(s.ctx, windowElapsed))

	res, err := s.controller.RequestChange(s.ctx, testFarm, "DevFee", true, nil)
	s.Require().NoError(err)
	s.NotEmpty(res.Hash)

	s.Zero(s.pending(types.CommandDevFee).Sign())
	st, _ := s.chain.Strategy(testFarm)
	s.Equal(big.NewInt(123), st.DevFeeBips)
}

func (s *TimelockControllerSuite) TestWindowBoundary() {
	window, err := s.controller.QueryTimelockWindow(s.ctx, types.CommandDevFee)
	s.Require().NoError(err)
	s.Equal(8*time.Hour, window)

	s.propose("AdminFee", 50)
	s.Require().NoError(s.chain.AdvanceTime(s.ctx, window-time.Second))
	_, err = s.controller.RequestChange(s.ctx, testFarm, "AdminFee", true, nil)
	s.Require().ErrorAs(err, new(*sdkerrors.ChainRevertError))

	s.Require().NoError(s.chain.AdvanceTime(s.ctx, time.Second))
	_, err = s.controller.RequestChange(s.ctx, testFarm, "AdminFee", true, nil)
	s.Require().NoError(err)
}

func (s *TimelockControllerSuite) TestProposeOverwrites() {
	s.propose("DevFee", 123)
	s.propose("DevFee", 456)

	s.Equal(big.NewInt(456), s.pending(types.CommandDevFee))
}

func (s *TimelockControllerSuite) TestOverwriteRestartsWindow() {
	s.propose("DevFee", 123)
	s.Require().NoError(s.chain.AdvanceTime(s.ctx, 5*time.Hour))
	s.propose("DevFee", 456)
	s.Require().NoError(s.chain.AdvanceTime(s.ctx, 5*time.Hour))

	_, err := s.controller.RequestChange(s.ctx, testFarm, "DevFee", true, nil)
	s.Require().ErrorAs(err, new(*sdkerrors.ChainRevertError))
	s.Equal(big.NewInt(456), s.pending(types.CommandDevFee))
}

func (s *TimelockControllerSuite) TestOwnerTransfer() {
	newOwner := common.HexToAddress("0x1111111111111111111111111111111111111111")

	_, err := s.controller.RequestChange(s.ctx, testFarm, "owner", false, newOwner.Big())
	s.Require().NoError(err)

	changes, err := s.controller.QueryPendingChanges(s.ctx, testFarm)
	s.Require().NoError(err)
	s.Require().Len(changes, len(types.AllCommandKinds))
	for _, c := range changes {
		if c.Command == types.CommandOwner {
			s.Equal(newOwner, c.AddressValue())
		} else {
			s.False(c.IsPending())
		}
	}

	window, err := s.controller.QueryTimelockWindow(s.ctx, types.CommandOwner)
	s.Require().NoError(err)
	s.Require().NoError(s.chain.AdvanceTime(s.ctx, window))

	_, err = s.controller.RequestChange(s.ctx, testFarm, "Owner", true, nil)
	s.Require().NoError(err)
	st, _ := s.chain.Strategy(testFarm)
	s.Equal(newOwner, st.Owner)
}

func (s *TimelockControllerSuite) TestOwnerValueTooWide() {
	tooWide := new(big.Int).Lsh(big.NewInt(1), 160)

	_, err := s.controller.RequestChange(s.ctx, testFarm, "Owner", false, tooWide)
	s.Require().Error(err)
	s.Empty(s.chain.Sent())
}

func (s *TimelockControllerSuite) TestOnlyManager() {
	s.Require().NoError(s.chain.Impersonate(s.ctx, common.HexToAddress("0x2222222222222222222222222222222222222222")))

	_, err := s.controller.RequestChange(s.ctx, testFarm, "DevFee", false, big.NewInt(1))
	var revertErr *sdkerrors.ChainRevertError
	s.Require().ErrorAs(err, &revertErr)
	s.Contains(revertErr.Reason, "onlyManager")
}

func (s *TimelockControllerSuite) TestSetWithoutProposal() {
	_, err := s.controller.RequestChange(s.ctx, testFarm, "ReinvestReward", true, nil)
	s.Require().ErrorAs(err, new(*sdkerrors.ChainRevertError))
}

func (s *TimelockControllerSuite) TestTransportFailure() {
	s.chain.FailWith(errors.New("connection refused"))

	_, err := s.controller.RequestChange(s.ctx, testFarm, "DevFee", false, big.NewInt(1))
	s.Require().ErrorAs(err, new(*sdkerrors.TransportError))

	_, err = s.controller.QueryPendingChange(s.ctx, testFarm, types.CommandDevFee)
	s.Require().ErrorAs(err, new(*sdkerrors.TransportError))
}

func Test_RequestChange_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
	}{
		{name: "canonical", command: "DevFee"},
		{name: "lower case", command: "devfee"},
		{name: "lower first letter", command: "devFee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewChainClient(t)
			tx := mocks.NewPendingTransaction(t)
			value := big.NewInt(123)
			hash := common.HexToHash("0xabc")

			client.EXPECT().
				Send(mock.Anything, testTimelock, bindings.StrategyTimelockABIParsed(), "proposeDevFee", testFarm, value).
				Return(tx, nil).
				Once()
			tx.EXPECT().Hash().Return(hash)
			tx.EXPECT().Wait(mock.Anything, uint64(1)).
				Return(types.TransactionResult{Hash: hash.Hex(), BlockNumber: 7}, nil).
				Once()

			ctx := sdk.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
			c := NewTimelockChangeController(client, testTimelock)

			res, err := c.RequestChange(ctx, testFarm, tt.command, false, value)
			require.NoError(t, err)
			assert.Equal(t, hash.Hex(), res.Hash)
			assert.Equal(t, uint64(7), res.BlockNumber)
		})
	}
}

func Test_RequestChange_RejectedLocally(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		apply   bool
		value   *big.Int
		wantErr any
	}{
		{name: "unknown command", command: "Nonsense", value: big.NewInt(1), wantErr: new(*sdkerrors.InvalidCommandError)},
		{name: "unknown command on set", command: "Nonsense", apply: true, wantErr: new(*sdkerrors.InvalidCommandError)},
		{name: "empty command", command: "", value: big.NewInt(1), wantErr: new(*sdkerrors.InvalidCommandError)},
		{name: "missing value", command: "DevFee", wantErr: new(*sdkerrors.MissingValueError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewChainClient(t)
			c := NewTimelockChangeController(client, testTimelock)

			_, err := c.RequestChange(context.Background(), testFarm, tt.command, tt.apply, tt.value)
			require.Error(t, err)
			require.ErrorAs(t, err, tt.wantErr)

			client.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			client.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, client.Calls)
		})
	}
}

func Test_RequestChange_SetIgnoresValue(t *testing.T) {
	t.Parallel()

	client := mocks.NewChainClient(t)
	tx := mocks.NewPendingTransaction(t)

	client.EXPECT().
		Send(mock.Anything, testTimelock, mock.Anything, "setAdminFee", testFarm).
		Return(tx, nil).
		Once()
	tx.EXPECT().Hash().Return(common.Hash{})
	tx.EXPECT().Wait(mock.Anything, uint64(3)).Return(types.TransactionResult{Hash: "0x01"}, nil)

	c := NewTimelockChangeController(client, testTimelock, WithConfirmations(3))
	_, err := c.RequestChange(sdk.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar()),
		testFarm, "adminFee", true, big.NewInt(999))
	require.NoError(t, err)
}
