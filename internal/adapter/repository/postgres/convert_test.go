package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1000.00", "19.8", "-250.55", "0.01", "123456789.99"} {
		t.Run(s, func(t *testing.T) {
			d := decimal.RequireFromString(s)
			n := decimalToNumeric(d)
			require.True(t, n.Valid)
			assert.True(t, numericToDecimal(n).Equal(d), "got %s", numericToDecimal(n))
		})
	}
}

func TestNumericToDecimalNull(t *testing.T) {
	assert.True(t, numericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestDateConversionDropsTimeOfDay(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	d := dateToPgDate(time.Date(2024, 3, 15, 23, 30, 0, 0, manila))

	got := pgDateToTime(d)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	assert.False(t, optionalDate(nil).Valid)
	assert.True(t, pgDateToTime(pgtype.Date{}).IsZero())
}

func TestTextConversion(t *testing.T) {
	assert.Nil(t, textToStringPtr(stringPtrToText(nil)))

	note := "load for store"
	got := textToStringPtr(stringPtrToText(&note))
	require.NotNil(t, got)
	assert.Equal(t, note, *got)
}
