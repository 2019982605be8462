package sdkerrors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		err      error
		expected string
	}{
		{NewInvalidCommandError("Nonsense"), "invalid command: Nonsense"},
		{NewMissingValueError("DevFee"), "missing value: proposeDevFee requires a value"},
		{
			NewChainRevertError("setDevFee", "0x0000000000000000000000000000000000000001", "timelock in effect", cause),
			"setDevFee on 0x0000000000000000000000000000000000000001 reverted: timelock in effect",
		},
		{
			NewChainRevertError("setDevFee", "0x01", "", cause),
			"setDevFee on 0x01 reverted: boom",
		},
		{
			&ChainRevertError{Method: "sweepTokens", Contract: "0x01", TxHash: "0xabc"},
			"sweepTokens on 0x01 reverted in tx 0xabc",
		},
		{NewTransportError("eth_call", cause), "transport error during eth_call: boom"},
		{NewInvalidIndexListError("a-b"), `invalid index list entry: "a-b"`},
		{NewNoSignerError("proposeDevFee"), "no signer configured for proposeDevFee"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	err := NewTransportError("wait", context.DeadlineExceeded)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	cause := errors.New("execution reverted")
	revert := NewChainRevertError("setOwner", "0x01", "", cause)
	require.ErrorIs(t, revert, cause)

	var target *ChainRevertError
	require.ErrorAs(t, errors.Join(errors.New("other"), revert), &target)
	assert.Equal(t, "setOwner", target.Method)
}
