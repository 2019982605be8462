package stratops

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKeyHex = "b17c4c6a409cebce4b39977689180900d9009d5c55a57ff9fd9cb962b24ae99d"

func Test_ParsePrivateKeySigner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{name: "plain hex", give: testPrivateKeyHex},
		{name: "prefixed", give: "0x" + testPrivateKeyHex},
		{name: "garbage", give: "0xnotakey", wantErr: "invalid private key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := ParsePrivateKeySigner(tt.give)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			addr, err := s.Address()
			require.NoError(t, err)
			assert.NotEqual(t, common.Address{}, addr)
		})
	}
}

func Test_PrivateKeySigner_TransactOpts(t *testing.T) {
	t.Parallel()

	s, err := ParsePrivateKeySigner(testPrivateKeyHex)
	require.NoError(t, err)

	chainID := big.NewInt(43114)
	opts, err := s.TransactOpts(chainID)
	require.NoError(t, err)

	addr, err := s.Address()
	require.NoError(t, err)
	assert.Equal(t, addr, opts.From)

	tx := gethtypes.NewTx(&gethtypes.LegacyTx{Nonce: 1, Gas: 21000, GasPrice: big.NewInt(25_000_000_000), To: &testTimelock})
	signed, err := opts.Signer(opts.From, tx)
	require.NoError(t, err)

	sender, err := gethtypes.Sender(gethtypes.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, addr, sender)

	_, err = opts.Signer(testManager, tx)
	require.Error(t, err)
}
