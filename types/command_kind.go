package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sdkerrors "github.com/stratops/stratops/sdk/errors"
)

// CommandKind identifies a strategy parameter that is governed by the timelock.
type CommandKind string

const (
	CommandDevFee         CommandKind = "DevFee"
	CommandAdminFee       CommandKind = "AdminFee"
	CommandOwner          CommandKind = "Owner"
	CommandReinvestReward CommandKind = "ReinvestReward"
)

// ValueKind describes the ABI type of the value carried by a command.
type ValueKind string

const (
	ValueKindUint    ValueKind = "uint256"
	ValueKindAddress ValueKind = "address"
)

// AllCommandKinds lists every governable command in a stable order.
var AllCommandKinds = []CommandKind{
	CommandDevFee,
	CommandAdminFee,
	CommandOwner,
	CommandReinvestReward,
}

// ParseCommandKind normalizes a caller supplied command name and matches it against
// the known commands. The first character is upper cased; the remainder is matched
// without regard to case so that "devfee" and "DevFee" resolve to the same command.
func ParseCommandKind(s string) (CommandKind, error) {
	normalized := capitalize(strings.TrimSpace(s))
	for _, k := range AllCommandKinds {
		if strings.EqualFold(normalized, string(k)) {
			return k, nil
		}
	}

	return "", sdkerrors.NewInvalidCommandError(s)
}

// Valid reports whether k is one of the known commands.
func (k CommandKind) Valid() bool {
	for _, known := range AllCommandKinds {
		if k == known {
			return true
		}
	}

	return false
}

func (k CommandKind) String() string {
	return string(k)
}

// ProposeMethod is the timelock method that records a pending value.
func (k CommandKind) ProposeMethod() string {
	return "propose" + string(k)
}

// SetMethod is the timelock method that applies a pending value.
func (k CommandKind) SetMethod() string {
	return "set" + string(k)
}

// PendingMethod is the timelock view returning the pending value.
func (k CommandKind) PendingMethod() string {
	return "pending" + string(k) + "s"
}

// ValueKind returns the ABI type of the proposed value.
func (k CommandKind) ValueKind() ValueKind {
	if k == CommandOwner {
		return ValueKindAddress
	}

	return ValueKindUint
}

// TimelockWindowMethod is the timelock view returning the delay that applies to k.
func (k CommandKind) TimelockWindowMethod() string {
	if k == CommandOwner {
		return "timelockLengthForOwnershipTransfer"
	}

	return "timelockLengthForFeeChanges"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
