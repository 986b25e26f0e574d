package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateFormats(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 5, 0, 0, time.Local)

	require.Equal(t, "14/03/2025", Date(ts))
	require.Equal(t, "14/03/2025 09:05", DateTime(ts))
	require.Equal(t, "09:05", Time(ts))
	require.Equal(t, "2025-03-14", DateInputValue(ts))
	require.Equal(t, "09:05", TimeInputValue(ts))
}

func TestCurrency(t *testing.T) {
	got := Currency(35)
	require.Contains(t, got, "R$")
	require.Contains(t, got, "35")
}

func TestParseDateTimeInput(t *testing.T) {
	ts, err := ParseDateTimeInput("2025-03-14", "18:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 14, 18, 30, 0, 0, time.Local), ts)

	// Empty time defaults to midnight
	ts, err = ParseDateTimeInput("2025-03-14", "")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local), ts)

	_, err = ParseDateTimeInput("14/03/2025", "18:30")
	require.Error(t, err)
}

func TestInputValueRoundTrip(t *testing.T) {
	original := time.Date(2025, 12, 31, 23, 45, 0, 0, time.Local)

	ts, err := ParseDateTimeInput(DateInputValue(original), TimeInputValue(original))
	require.NoError(t, err)
	require.True(t, ts.Equal(original))
}
