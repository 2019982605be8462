package evm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	sdkerrors "github.com/stratops/stratops/sdk/errors"
)

var (
	// hexPattern matches "0x" followed by one or more hex characters
	hexPattern = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	// hardhatReasonPattern matches the reason string hardhat and anvil embed in their
	// "VM Exception while processing transaction" messages.
	hardhatReasonPattern = regexp.MustCompile(`reverted with (?:reason string|custom error) '(.*)'`)
)

const (
	selectorSize     = 4
	revertPrefix     = "execution reverted"
	vmExceptionMatch = "VM Exception"
)

// RevertReason extracts the revert reason from an error returned by a node or by the
// bind package. ok is false when err does not describe a revert.
func RevertReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	// Nodes attach the raw revert data to JSON-RPC error code 3.
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason := decodeRevertData(dataErr.ErrorData()); reason != "" {
			return reason, true
		}
	}

	errStr := err.Error()

	if matches := hardhatReasonPattern.FindStringSubmatch(errStr); len(matches) == 2 { //nolint:mnd
		return matches[1], true
	}

	idx := strings.Index(errStr, revertPrefix)
	if idx == -1 {
		if strings.Contains(errStr, vmExceptionMatch) {
			return "", true
		}

		return "", false
	}

	reason := strings.TrimSpace(strings.TrimPrefix(errStr[idx+len(revertPrefix):], ":"))
	// The reason may itself be raw revert data.
	if strings.HasPrefix(reason, "0x") {
		if decoded := decodeRevertData(hexPattern.FindString(reason)); decoded != "" {
			return decoded, true
		}
	}

	return reason, true
}

// decodeRevertData decodes Error(string), Panic(uint256) or, failing those, renders the
// custom error selector.
func decodeRevertData(data any) string {
	hexStr, ok := data.(string)
	if !ok || hexStr == "" {
		return ""
	}

	raw, err := hexutil.Decode(hexStr)
	if err != nil || len(raw) < selectorSize {
		return ""
	}

	if reason, err := abi.UnpackRevert(raw); err == nil {
		return reason
	}

	return "custom error 0x" + common.Bytes2Hex(raw[:selectorSize])
}

// classifyError maps an error from a contract call onto the sdk error taxonomy.
func classifyError(op string, method string, contract common.Address, err error) error {
	if err == nil {
		return nil
	}

	var revertErr *sdkerrors.ChainRevertError
	var transportErr *sdkerrors.TransportError
	if errors.As(err, &revertErr) || errors.As(err, &transportErr) {
		return err
	}

	if errors.Is(err, bind.ErrNoCode) {
		return fmt.Errorf("%s on %s: %w", method, contract.Hex(), err)
	}

	if reason, ok := RevertReason(err); ok {
		return sdkerrors.NewChainRevertError(method, contract.Hex(), reason, err)
	}

	return sdkerrors.NewTransportError(op, err)
}
