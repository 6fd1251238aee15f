package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestISODayMapsSundayLast(t *testing.T) {
	// 2024-03-03 was a Sunday; walk Sun..Sat and expect 6,0,1,2,3,4,5.
	want := []int{6, 0, 1, 2, 3, 4, 5}
	for i, expected := range want {
		d := date(2024, time.March, 3+i)
		require.Equal(t, expected, ISODay(d), "weekday %s", d.Weekday())
	}
}

func TestMondayOf(t *testing.T) {
	monday := date(2024, time.March, 4)
	for offset := 0; offset < 7; offset++ {
		d := AddDays(monday, offset)
		require.Equal(t, monday, MondayOf(d), "day %s", d)
	}

	// Sub-day time components are zeroed out.
	late := time.Date(2024, time.March, 6, 23, 59, 59, 0, time.UTC)
	require.Equal(t, monday, MondayOf(late))
}

func TestWeeksWindow(t *testing.T) {
	today := date(2024, time.March, 6) // a Wednesday
	weeks := Weeks(today)

	require.Len(t, weeks, 6)
	require.Equal(t, date(2024, time.February, 5), weeks[0])
	require.Equal(t, date(2024, time.March, 4), weeks[WeeksBefore])
	require.Equal(t, date(2024, time.March, 11), weeks[5])
}

func TestFetchWindowCoversAllRenderedWeeks(t *testing.T) {
	today := date(2024, time.March, 6)
	from, to := FetchWindow(today)

	require.Equal(t, "2024-02-05", from)
	require.Equal(t, "2024-03-17", to)

	// The window spans exactly the first rendered Monday through the
	// last rendered Sunday.
	weeks := Weeks(today)
	require.Equal(t, DateString(weeks[0]), from)
	require.Equal(t, DateString(AddDays(weeks[5], 6)), to)
}

func TestWeekLabel(t *testing.T) {
	require.Equal(t, "2024.W10", WeekLabel(date(2024, time.March, 4)))
	// Week 1 of 2025 starts in December 2024.
	require.Equal(t, "2025.W01", WeekLabel(date(2024, time.December, 30)))
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-04")
	require.NoError(t, err)
	require.Equal(t, "2024-03-04", DateString(d))

	_, err = ParseDate("04.03.2024")
	require.Error(t, err)
}
