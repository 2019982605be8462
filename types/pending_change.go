package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PendingChange is a proposed but not yet applied parameter change, as observed on
// the timelock contract. A zero Value means nothing is pending.
type PendingChange struct {
	Target  common.Address `json:"target"`
	Command CommandKind    `json:"command"`
	Value   *big.Int       `json:"value"`
}

// IsPending reports whether the change holds a non zero value.
func (p PendingChange) IsPending() bool {
	return p.Value != nil && p.Value.Sign() != 0
}

// AddressValue interprets the pending value as an address, which is how the
// timelock stores pending owners.
func (p PendingChange) AddressValue() common.Address {
	if p.Value == nil {
		return common.Address{}
	}

	return common.BigToAddress(p.Value)
}

// Display renders the value for operators: "-" when nothing is pending, a checksummed
// address for owner changes and the decimal integer otherwise.
func (p PendingChange) Display() string {
	switch {
	case !p.IsPending():
		return "-"
	case p.Command == CommandOwner:
		return p.AddressValue().Hex()
	default:
		return p.Value.String()
	}
}
