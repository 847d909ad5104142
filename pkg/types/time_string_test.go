package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "10:00", "23:59"}
	for _, s := range valid {
		ts, err := NewTimeStringFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ts.String())
	}

	invalid := []string{"", "24:00", "10:60", "10", "10:0", "abc", "10:00:00"}
	for _, s := range invalid {
		_, err := NewTimeStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidTimeString, s)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(14*60 + 5)
	require.NoError(t, err)
	assert.Equal(t, "14:05", ts.String())

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 10*60+30, TimeString("10:30").Minutes())
	assert.Equal(t, 23*60+59, TimeString("23:59").Minutes())
}

func TestTimeString_Comparisons(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("10:40")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))

	// Строгие сравнения: равное время не раньше и не позже
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(35)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:35"), ts)

	ts, err = TimeString("22:30").AddMinutes(89)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), ts)
}

func TestTimeString_AddMinutes_PastMidnight(t *testing.T) {
	_, err := TimeString("23:30").AddMinutes(40)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("14:05:00")))
	assert.Equal(t, TimeString("14:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 21, 20, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("20:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
