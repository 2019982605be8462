package safecast

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Uint64ToInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    uint64
		want    int64
		wantErr bool
	}{
		{name: "Valid uint64 within range", give: 42, want: 42},
		{name: "Uint64 exceeds int64 max value", give: uint64(math.MaxInt64) + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint64ToInt64(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_BigToUint64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    *big.Int
		want    uint64
		wantErr bool
	}{
		{name: "Valid", give: big.NewInt(28800), want: 28800},
		{name: "Nil", give: nil, wantErr: true},
		{name: "Negative", give: big.NewInt(-1), wantErr: true},
		{name: "Too large", give: new(big.Int).Lsh(big.NewInt(1), 64), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BigToUint64(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_SecondsToDuration(t *testing.T) {
	t.Parallel()

	got, err := SecondsToDuration(big.NewInt(28800))
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, got)

	_, err = SecondsToDuration(new(big.Int).SetUint64(math.MaxUint64))
	require.Error(t, err)
}
