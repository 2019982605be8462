package evm_test

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratops/stratops/internal/testutils/evmsim"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
	"github.com/stratops/stratops/sdk/evm"
)

const pingABI = `[{"type":"function","name":"ping","stateMutability":"nonpayable","inputs":[{"name":"v","type":"uint256"}],"outputs":[]},
{"type":"function","name":"pong","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}]`

func parsePingABI(t *testing.T) *abi.ABI {
	t.Helper()

	parsed, err := abi.JSON(strings.NewReader(pingABI))
	require.NoError(t, err)

	return &parsed
}

func Test_Client_SendAndWait(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 2)
	client := sim.Client(t, sim.Signers[0])
	to := sim.Signers[1].Address(t)
	ctx := context.Background()

	assert.Equal(t, sim.Signers[0].Address(t), client.From())

	tx, err := client.Send(ctx, to, parsePingABI(t), "ping", big.NewInt(7))
	require.NoError(t, err)
	sim.Backend.Commit()

	res, err := tx.Wait(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash().Hex(), res.Hash)
	assert.Equal(t, uint64(1), res.BlockNumber)
}

func Test_Client_WaitForConfirmations(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 2)
	client := sim.Client(t, sim.Signers[0])
	ctx := context.Background()

	tx, err := client.Send(ctx, sim.Signers[1].Address(t), parsePingABI(t), "ping", big.NewInt(1))
	require.NoError(t, err)
	sim.Backend.Commit()

	go func() {
		time.Sleep(50 * time.Millisecond)
		assert.NoError(t, sim.MineBlock(ctx))
	}()

	res, err := tx.Wait(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.BlockNumber)
}

func Test_Client_WaitTimeout(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 2)
	client := sim.Client(t, sim.Signers[0])

	tx, err := client.Send(context.Background(), sim.Signers[1].Address(t), parsePingABI(t), "ping", big.NewInt(1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = tx.Wait(ctx, 1)
	require.ErrorAs(t, err, new(*sdkerrors.TransportError))
}

func Test_Client_CallWithoutCode(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 1)
	client := sim.Client(t, sim.Signers[0])

	_, err := client.Call(context.Background(), common.HexToAddress("0x1234"), parsePingABI(t), "pong")
	require.ErrorIs(t, err, bind.ErrNoCode)
}

func Test_Client_ReadOnly(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 1)
	client := evm.NewClient(sim.Backend.Client(), nil)

	assert.Equal(t, common.Address{}, client.From())

	_, err := client.Send(context.Background(), common.HexToAddress("0x1234"), parsePingABI(t), "ping", big.NewInt(1))
	require.ErrorAs(t, err, new(*sdkerrors.NoSignerError))
}

func Test_SimulatedChain_Controls(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 1)
	ctx := context.Background()

	before, err := sim.Backend.Client().HeaderByNumber(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, sim.AdvanceTime(ctx, 28801*time.Second))

	after, err := sim.Backend.Client().HeaderByNumber(ctx, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.Time-before.Time, uint64(28801))

	require.ErrorIs(t, sim.Impersonate(ctx, common.HexToAddress("0x01")), evmsim.ErrImpersonationUnsupported)
}
