package abi

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveABI    string
		giveValues []any
		want       string
		wantError  bool
	}{
		{
			name:    "success: encode single uint256",
			giveABI: `[{"type":"uint256"}]`,
			giveValues: []any{
				big.NewInt(30), // 30 in uint256
			},
			want: "000000000000000000000000000000000000000000000000000000000000001e",
		},
		{
			name:       "success: encode address",
			giveABI:    `[{"type":"address"}]`,
			giveValues: []any{common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")},
			want:       "0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4",
		},
		{
			name:       "failure: wrong type",
			giveABI:    `[{"type":"uint256"}]`,
			giveValues: []any{"not a number"},
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ABIEncode(tt.giveABI, tt.giveValues...)

			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, hex.EncodeToString(got))
			}
		})
	}
}

const constructorABI = `[{"type":"constructor","inputs":[
{"name":"_name","type":"string"},
{"name":"_depositToken","type":"address"},
{"name":"_minTokensToReinvest","type":"uint256"},
{"name":"_adminFeeBips","type":"uint16"},
{"name":"_enabled","type":"bool"},
{"name":"_path","type":"address[]"}
]}]`

func Test_EncodeConstructorArgs(t *testing.T) {
	t.Parallel()

	parsed, err := abi.JSON(strings.NewReader(constructorABI))
	require.NoError(t, err)

	deposit := "0x2612dA8fc26Efbca3cC3F8fD543BCBa72b10aB59"
	args := []any{
		"Yield: ELK-WAVAX",
		deposit,
		json.Number("100000000000000000"),
		"200",
		true,
		[]any{deposit, "0xE1C110E1B1b4A1deD0cAf3E42BfBdbB7b5d7cE1C"},
	}

	got, err := EncodeConstructorArgs(&parsed, args)
	require.NoError(t, err)

	want, err := parsed.Constructor.Inputs.Pack(
		"Yield: ELK-WAVAX",
		common.HexToAddress(deposit),
		big.NewInt(100000000000000000),
		uint16(200),
		true,
		[]common.Address{common.HexToAddress(deposit), common.HexToAddress("0xE1C110E1B1b4A1deD0cAf3E42BfBdbB7b5d7cE1C")},
	)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func Test_EncodeConstructorArgs_Errors(t *testing.T) {
	t.Parallel()

	parsed, err := abi.JSON(strings.NewReader(constructorABI))
	require.NoError(t, err)

	_, err = EncodeConstructorArgs(&parsed, []any{"only one"})
	require.EqualError(t, err, "constructor expects 6 arguments, got 1")

	args := []any{"n", "0xnot-an-address", "1", "1", true, []any{}}
	_, err = EncodeConstructorArgs(&parsed, args)
	require.ErrorContains(t, err, "constructor argument 1 (_depositToken)")

	args = []any{"n", "0x2612dA8fc26Efbca3cC3F8fD543BCBa72b10aB59", "1", "70000", true, []any{}}
	_, err = EncodeConstructorArgs(&parsed, args)
	require.ErrorContains(t, err, "overflows uint16")
}
