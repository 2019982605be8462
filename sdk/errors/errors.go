package sdkerrors

import (
	"fmt"
)

// InvalidCommandError is returned when a command name does not normalize to one of the
// governable timelock commands. It is raised before any network interaction.
type InvalidCommandError struct {
	Command string
}

func (e *InvalidCommandError) Error() string {
	return "invalid command: " + e.Command
}

func NewInvalidCommandError(command string) *InvalidCommandError {
	return &InvalidCommandError{Command: command}
}

// MissingValueError is returned when a propose is requested without a value.
type MissingValueError struct {
	Command string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value: propose%s requires a value", e.Command)
}

func NewMissingValueError(command string) *MissingValueError {
	return &MissingValueError{Command: command}
}

// ChainRevertError is returned when a contract rejected a call or transaction.
// Reason carries the decoded revert string when one could be extracted.
type ChainRevertError struct {
	Method   string
	Contract string
	Reason   string
	TxHash   string
	Err      error
}

func (e *ChainRevertError) Error() string {
	msg := fmt.Sprintf("%s on %s reverted", e.Method, e.Contract)
	if e.TxHash != "" {
		msg += " in tx " + e.TxHash
	}
	if e.Reason != "" {
		return msg + ": " + e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *ChainRevertError) Unwrap() error {
	return e.Err
}

func NewChainRevertError(method, contract, reason string, err error) *ChainRevertError {
	return &ChainRevertError{Method: method, Contract: contract, Reason: reason, Err: err}
}

// TransportError is returned when the RPC connection failed or timed out. The operation
// is not retried; callers must re-query chain state before trying again.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// InvalidIndexListError is returned when a token index list such as "0,2-4" cannot be parsed.
type InvalidIndexListError struct {
	Entry string
}

func (e *InvalidIndexListError) Error() string {
	return fmt.Sprintf("invalid index list entry: %q", e.Entry)
}

func NewInvalidIndexListError(entry string) *InvalidIndexListError {
	return &InvalidIndexListError{Entry: entry}
}

// NoSignerError is returned when a state changing call is attempted on a client that was
// constructed without transact options.
type NoSignerError struct {
	Method string
}

func (e *NoSignerError) Error() string {
	return "no signer configured for " + e.Method
}

func NewNoSignerError(method string) *NoSignerError {
	return &NoSignerError{Method: method}
}
