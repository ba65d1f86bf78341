package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timebridge/timebridge/pkg/attendance"
	"github.com/timebridge/timebridge/pkg/worklog"
)

func TestHolidayCalendar(t *testing.T) {
	calendar := NewHolidayCalendar("JP")

	t.Run("weekends are holidays", func(t *testing.T) {
		saturday := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
		assert.True(t, calendar.IsHoliday(saturday))
	})

	t.Run("zone holidays are recognized", func(t *testing.T) {
		newYear := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, calendar.IsHoliday(newYear))
	})

	t.Run("regular weekday is not a holiday", func(t *testing.T) {
		tuesday := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
		assert.False(t, calendar.IsHoliday(tuesday))
	})

	t.Run("unknown zone still flags weekends", func(t *testing.T) {
		fallback := NewHolidayCalendar("XX")
		sunday := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		assert.True(t, fallback.IsHoliday(sunday))
		newYear := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		assert.False(t, fallback.IsHoliday(newYear))
	})
}

func TestWorklogLine(t *testing.T) {
	entry := worklog.Entry{
		EventID:     "evt-1",
		TicketIDs:   []string{"ABC-12", "DEF-3"},
		Description: "pairing session",
		StartTime:   time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC),
		Duration:    90,
	}

	line := worklogLine(entry, "ABC-12")
	assert.Contains(t, line, "03-04")
	assert.Contains(t, line, "ABC-12")
	assert.Contains(t, line, "0.75h", "duration splits evenly across tickets")
	assert.Contains(t, line, "pairing session")
}

func TestAttendanceLine(t *testing.T) {
	t.Run("worked day", func(t *testing.T) {
		line := attendanceLine(attendance.DayRecord{
			Date:     time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			ClockIn:  "09:30",
			ClockOut: "18:00",
			Break:    "1:00",
			Duration: 450,
		})
		assert.Contains(t, line, "Mon 03-04")
		assert.Contains(t, line, "09:30 - 18:00")
		assert.Contains(t, line, "worked 7:30")
	})

	t.Run("vacation day carries its label", func(t *testing.T) {
		line := attendanceLine(attendance.DayRecord{
			Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			ClockIn:  attendance.NoTime,
			ClockOut: attendance.NoTime,
			Vacation: "PTO",
		})
		assert.Contains(t, line, attendance.VacationTypes["PTO"].Label)
	})
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "+1:30", formatBalance(90))
	assert.Equal(t, "-0:45", formatBalance(-45))
	assert.Equal(t, "+0:00", formatBalance(0))
}

func TestRenderAttendanceFooter(t *testing.T) {
	var out strings.Builder
	renderer := NewRenderer(NewHolidayCalendar("JP"), &out)

	renderer.RenderAttendance([]attendance.DayRecord{
		{Date: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), ClockIn: "09:00", ClockOut: "18:00", Duration: 510},
		{Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), ClockIn: "09:00", ClockOut: "17:00", Duration: 450},
		// weekend day stays out of the average
		{Date: time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), ClockIn: "10:00", ClockOut: "12:00", Duration: 120},
	})

	assert.Contains(t, out.String(), "Average: 8:00 over 2 weekdays")
	assert.Contains(t, out.String(), "balance +0:00")
}

func TestRenderWorklogsTotal(t *testing.T) {
	var out strings.Builder
	renderer := NewRenderer(NewHolidayCalendar("JP"), &out)

	renderer.RenderWorklogs([]worklog.Entry{
		{TicketIDs: []string{"ABC-1"}, StartTime: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC), Duration: 90},
		{TicketIDs: []string{"ABC-2"}, StartTime: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC), Duration: 45},
	})

	assert.Contains(t, out.String(), "Total: 2:15")
}
