package evm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abiutils "github.com/stratops/stratops/internal/utils/abi"
	sdkerrors "github.com/stratops/stratops/sdk/errors"
)

// dataError mimics the JSON-RPC error a node returns for a reverted eth_call.
type dataError struct {
	msg  string
	data any
}

func (e dataError) Error() string  { return e.msg }
func (e dataError) ErrorCode() int { return 3 }
func (e dataError) ErrorData() any { return e.data }

func errorStringData(t *testing.T, reason string) string {
	t.Helper()

	encoded, err := abiutils.ABIEncode(`[{"type":"string"}]`, reason)
	require.NoError(t, err)

	// Error(string) selector
	return hexutil.Encode(append(common.FromHex("0x08c379a0"), encoded...))
}

func Test_RevertReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveErr    func(t *testing.T) error
		wantReason string
		wantOK     bool
	}{
		{
			name:    "nil",
			giveErr: func(*testing.T) error { return nil },
		},
		{
			name: "rpc data error with Error(string)",
			giveErr: func(t *testing.T) error {
				t.Helper()
				return dataError{msg: "execution reverted", data: errorStringData(t, "YakTimelockForDexStrategyV3::onlyManager")}
			},
			wantReason: "YakTimelockForDexStrategyV3::onlyManager",
			wantOK:     true,
		},
		{
			name: "rpc data error with custom error",
			giveErr: func(*testing.T) error {
				return dataError{msg: "execution reverted", data: "0xdeadbeef0000"}
			},
			wantReason: "custom error 0xdeadbeef",
			wantOK:     true,
		},
		{
			name: "wrapped rpc data error",
			giveErr: func(t *testing.T) error {
				t.Helper()
				return fmt.Errorf("estimate gas: %w", dataError{msg: "execution reverted", data: errorStringData(t, "nope")})
			},
			wantReason: "nope",
			wantOK:     true,
		},
		{
			name: "hardhat reason string",
			giveErr: func(*testing.T) error {
				return errors.New("VM Exception while processing transaction: reverted with reason string 'timelock not expired'")
			},
			wantReason: "timelock not expired",
			wantOK:     true,
		},
		{
			name: "hardhat exception without reason",
			giveErr: func(*testing.T) error {
				return errors.New("VM Exception while processing transaction: revert")
			},
			wantOK: true,
		},
		{
			name: "geth execution reverted with message",
			giveErr: func(*testing.T) error {
				return errors.New("execution reverted: Ownable: caller is not the owner")
			},
			wantReason: "Ownable: caller is not the owner",
			wantOK:     true,
		},
		{
			name: "execution reverted with raw data",
			giveErr: func(t *testing.T) error {
				t.Helper()
				return errors.New("execution reverted: " + errorStringData(t, "raw"))
			},
			wantReason: "raw",
			wantOK:     true,
		},
		{
			name: "not a revert",
			giveErr: func(*testing.T) error {
				return errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reason, ok := RevertReason(tt.giveErr(t))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func Test_classifyError(t *testing.T) {
	t.Parallel()

	contract := common.HexToAddress("0x8d36C5c6947ADCcd25Ef49Ea1aAC2ceACFff0bD7")

	require.NoError(t, classifyError("send setDevFee", "setDevFee", contract, nil))

	err := classifyError("send setDevFee", "setDevFee", contract, errors.New("execution reverted: timelock not expired"))
	var revertErr *sdkerrors.ChainRevertError
	require.ErrorAs(t, err, &revertErr)
	assert.Equal(t, "setDevFee", revertErr.Method)
	assert.Equal(t, contract.Hex(), revertErr.Contract)
	assert.Equal(t, "timelock not expired", revertErr.Reason)

	err = classifyError("eth_call pendingDevFees", "pendingDevFees", contract, errors.New("i/o timeout"))
	var transportErr *sdkerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "eth_call pendingDevFees", transportErr.Op)

	err = classifyError("eth_call manager", "manager", contract, bind.ErrNoCode)
	require.ErrorIs(t, err, bind.ErrNoCode)
	assert.Contains(t, err.Error(), contract.Hex())

	already := sdkerrors.NewTransportError("first", errors.New("boom"))
	assert.Same(t, already, classifyError("second", "manager", contract, already))
}
