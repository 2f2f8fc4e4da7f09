package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  string
		pct     string
		want    string
		wantErr error
	}{
		{name: "two percent of 1000", amount: "1000", pct: "2", want: "20.00"},
		{name: "two percent of 300", amount: "300", pct: "2", want: "6.00"},
		{name: "smallest amount rounds to zero", amount: "0.01", pct: "2", want: "0.00"},
		{name: "half cent rounds up", amount: "0.25", pct: "2", want: "0.01"},
		{name: "fractional percentage", amount: "333.33", pct: "1.5", want: "5.00"},
		{name: "zero percentage", amount: "500", pct: "0", want: "0.00"},
		{name: "full percentage", amount: "100", pct: "100", want: "100.00"},
		{name: "zero amount", amount: "0", pct: "2", wantErr: ErrInvalidAmount},
		{name: "negative amount", amount: "-5", pct: "2", wantErr: ErrInvalidAmount},
		{name: "negative percentage", amount: "100", pct: "-1", wantErr: ErrInvalidPercentage},
		{name: "percentage above 100", amount: "100", pct: "100.01", wantErr: ErrInvalidPercentage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFee(d(tt.amount), d(tt.pct))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "fee: want %s, got %s", tt.want, got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestComputeFeeMatchesFormula(t *testing.T) {
	t.Parallel()

	amounts := []string{"0.01", "1", "12.34", "999.99", "5000", "123456.78"}
	pcts := []string{"0", "0.5", "1", "1.25", "2", "2.5", "37.33", "100"}

	for _, a := range amounts {
		for _, p := range pcts {
			got, err := ComputeFee(d(a), d(p))
			require.NoError(t, err)

			want := d(a).Mul(d(p)).Div(decimal.NewFromInt(100)).Round(2)
			assert.True(t, got.Equal(want), "amount=%s pct=%s: want %s, got %s", a, p, want, got)
			assert.False(t, got.IsNegative())
		}
	}
}

func TestComputeTieredFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		kind   TransactionKind
		want   string
	}{
		{name: "cash in lowest tier boundary", amount: "5000", kind: KindCashIn, want: "50.00"},
		{name: "cash in just above lowest tier", amount: "5000.01", kind: KindCashIn, want: "75.00"},
		{name: "cash in middle tier boundary", amount: "10000", kind: KindCashIn, want: "150.00"},
		{name: "cash in top tier", amount: "10001", kind: KindCashIn, want: "200.02"},
		{name: "cash out lowest tier", amount: "1000", kind: KindCashOut, want: "15.00"},
		{name: "cash out middle tier boundary", amount: "10000", kind: KindCashOut, want: "200.00"},
		{name: "cash out top tier", amount: "20000", kind: KindCashOut, want: "500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTieredFee(d(tt.amount), tt.kind)
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "want %s, got %s", tt.want, got)
		})
	}

	_, err := ComputeTieredFee(d("100"), TransactionKind("refund"))
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = ComputeTieredFee(decimal.Zero, KindCashIn)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
