package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-05-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-15", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())

	_, err = ParseDate("15/05/2025")
	require.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2025, 1, 31)
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-03-03", d.AddMonths(1).String())
	assert.Equal(t, "2024-12-31", d.AddDays(-31).String())
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2025, 5, 15)
	b := NewDate(2025, 5, 16)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2025, 5, 15)))
	assert.False(t, a.Equal(b))
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	instant := time.Date(2025, 5, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, NewDate(2025, 5, 15), DateOf(instant))
}

func TestDateJSON(t *testing.T) {
	raw, err := json.Marshal(NewDate(2025, 5, 15))
	require.NoError(t, err)
	assert.Equal(t, `"2025-05-15"`, string(raw))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-05-15"`), &d))
	assert.Equal(t, NewDate(2025, 5, 15), d)

	// Snapshots from older clients carry full timestamps.
	require.NoError(t, json.Unmarshal([]byte(`"2025-05-15T10:00:00.000Z"`), &d))
	assert.Equal(t, NewDate(2025, 5, 15), d)

	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	require.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDateEpochMillis(t *testing.T) {
	assert.Equal(t, int64(0), NewDate(1970, 1, 1).EpochMillis())
	assert.Equal(t, int64(86400000), NewDate(1970, 1, 2).EpochMillis())
}
