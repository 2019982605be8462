package types //nolint:revive,nolintlint // allow pkg name 'types'

// TransactionResult is the outcome of a confirmed state changing call.
type TransactionResult struct {
	Hash        string `json:"hash"`
	BlockNumber uint64 `json:"blockNumber"`
	// RawData holds the chain specific receipt. Users of this struct should cast it to the
	// appropriate type.
	RawData any `json:"-"`
}
