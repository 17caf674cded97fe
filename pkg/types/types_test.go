package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DateString
		wantErr bool
	}{
		{name: "date only", input: "2026-01-08", want: "2026-01-08"},
		{name: "utc midnight instant", input: "2026-01-08T00:00:00.000Z", want: "2026-01-08"},
		{name: "instant without millis", input: "2026-01-08T00:00:00Z", want: "2026-01-08"},
		{name: "offset instant uses utc fields", input: "2026-01-08T22:30:00-03:00", want: "2026-01-09"},
		{name: "zoneless datetime uses prefix", input: "2026-01-08T10:00:00", want: "2026-01-08"},
		{name: "space separated", input: "2026-01-08 10:00:00", want: "2026-01-08"},
		{name: "zoneless with millis", input: "2026-01-08T10:00:00.000", want: "2026-01-08"},
		{name: "zoneless without seconds", input: "2026-01-08T10:00", want: "2026-01-08"},
		{name: "surrounding spaces", input: "  2026-01-08 ", want: "2026-01-08"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "mañana", wantErr: true},
		{name: "wrong segment count", input: "2026-01", wantErr: true},
		{name: "impossible day", input: "2026-02-30", wantErr: true},
		{name: "impossible time", input: "2026-01-08T99:99:99Z", wantErr: true},
		{name: "impossible zoneless time", input: "2026-01-08T25:00:00", wantErr: true},
		{name: "garbage after date", input: "2026-01-08Tgarbage", wantErr: true},
		{name: "garbage after space", input: "2026-01-08 xx", wantErr: true},
		{name: "impossible day with time", input: "2026-02-30T10:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateString_IndependentOfLocalZone(t *testing.T) {
	original := time.Local
	defer func() { time.Local = original }()

	for offset := -12; offset <= 14; offset++ {
		time.Local = time.FixedZone("test", offset*3600)

		got, err := ParseDateString("2026-01-08T00:00:00.000Z")
		require.NoError(t, err)
		assert.Equal(t, DateString("2026-01-08"), got, "offset %d", offset)
	}
}

func TestDateIn(t *testing.T) {
	buenosAires := time.FixedZone("ART", -3*3600)
	instant := time.Date(2026, 1, 9, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, DateString("2026-01-09"), DateFromTime(instant))
	assert.Equal(t, DateString("2026-01-08"), DateIn(instant, buenosAires))
}

func TestDateString_Calendar(t *testing.T) {
	monday := DateString("2026-01-05")
	sunday := DateString("2026-01-04")

	assert.Equal(t, time.Monday, monday.Weekday())
	assert.True(t, sunday.IsSunday())
	assert.False(t, monday.IsSunday())
	assert.False(t, DateString("").IsSunday())
	assert.Equal(t, DateString("2026-02-01"), DateString("2026-01-31").AddDays(1))
	assert.True(t, sunday.Before(monday))
	assert.True(t, monday.After(sunday))
}

func TestCompareDates_UnknownLast(t *testing.T) {
	assert.Equal(t, -1, CompareDates("2026-01-01", "2026-01-02"))
	assert.Equal(t, 1, CompareDates("", "2026-01-02"))
	assert.Equal(t, -1, CompareDates("2026-01-02", ""))
	assert.Equal(t, 0, CompareDates("", ""))
}

func TestDateString_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Date DateString `json:"date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-01-08T00:00:00.000Z"}`), &payload))
	assert.Equal(t, DateString("2026-01-08"), payload.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date":"not a date"}`), &payload))
	assert.True(t, payload.Date.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &payload))
	assert.True(t, payload.Date.IsZero())
}

func TestDateString_Scan(t *testing.T) {
	var d DateString
	require.NoError(t, d.Scan(time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateString("2026-01-08"), d)

	require.NoError(t, d.Scan([]byte("2026-03-01")))
	assert.Equal(t, DateString("2026-03-01"), d)

	assert.Error(t, d.Scan(42))
}

func TestTimeString(t *testing.T) {
	ts, err := NewTimeStringFromString("9:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("10:5")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	assert.True(t, TimeString("10:00").IsBefore("10:30"))
	assert.True(t, TimeString("19:30").IsAfter("10:00"))
	assert.NoError(t, TimeString("10:00").Validate())
	assert.Error(t, TimeString("10:00:00").Validate())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:00:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestDateString_ISOInstant(t *testing.T) {
	assert.Equal(t, "2026-01-08T00:00:00.000Z", DateString("2026-01-08").ISOInstant())
	assert.Equal(t, "", DateString("").ISOInstant())

	again, err := ParseDateString(DateString("2026-01-08").ISOInstant())
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-01-08"), again)
}
