package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid morning", "09:00", false},
		{"valid midnight", "00:00", false},
		{"valid end of day", "23:59", false},
		{"missing minutes", "09", true},
		{"out of range hour", "24:00", true},
		{"out of range minutes", "09:60", true},
		{"garbage", "morning", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)

	later, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "10:30", later.String())
}

func TestTimeString_AddMinutes_CrossesMidnight(t *testing.T) {
	ts, err := NewTimeStringFromString("23:30")
	require.NoError(t, err)

	_, err = ts.AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	early, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	late, err := NewTimeStringFromString("18:00")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, "10:15", ts.String())

	require.NoError(t, ts.Scan([]byte("08:45")))
	assert.Equal(t, "08:45", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "14:30", ts.String())
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 2, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, "07:05", ts.String())
}
