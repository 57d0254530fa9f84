package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func TestResolveWindowToday(t *testing.T) {
	win, err := ResolveWindow(RangeToday, nil, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, testNow, win.End)
}

func TestResolveWindowNamedRanges(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
	}{
		{RangeOneWeek, testNow.AddDate(0, 0, -7)},
		{RangeFifteen, testNow.AddDate(0, 0, -15)},
		{RangeOneMonth, testNow.AddDate(0, -1, 0)},
		{RangeSixMonths, testNow.AddDate(0, -6, 0)},
	}
	for _, tc := range cases {
		win, err := ResolveWindow(tc.name, nil, nil, testNow)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.start, win.Start, tc.name)
		assert.Equal(t, testNow, win.End, tc.name)
	}
}

func TestResolveWindowCustomSpansWholeDays(t *testing.T) {
	start := time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	win, err := ResolveWindow(RangeCustom, &start, &end, testNow)
	require.NoError(t, err)

	assert.True(t, win.Contains(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, win.Contains(time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC)))
	assert.False(t, win.Contains(time.Date(2026, 1, 4, 23, 59, 59, 0, time.UTC)))
	assert.False(t, win.Contains(time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)))
}

func TestResolveWindowCustomMissingBoundsFallBackToNow(t *testing.T) {
	win, err := ResolveWindow(RangeCustom, nil, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, win.Start)
	assert.Equal(t, testNow, win.End)
}

func TestResolveWindowUnknownRange(t *testing.T) {
	_, err := ResolveWindow("fortnight", nil, nil, testNow)
	assert.Error(t, err)
}

func TestWindowContainsIsInclusive(t *testing.T) {
	win := Window{Start: testNow.AddDate(0, 0, -1), End: testNow}
	assert.True(t, win.Contains(win.Start))
	assert.True(t, win.Contains(win.End))
	assert.False(t, win.Contains(win.End.Add(time.Nanosecond)))
}
