package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/timebridge/timebridge/pkg/attendance"
	"github.com/timebridge/timebridge/pkg/worklog"
)

// fullWorkDay is the expected worked time per weekday, in minutes.
const fullWorkDay = 480.0

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	holidayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	overStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	shortStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	footerStyle  = lipgloss.NewStyle().Bold(true)
)

// Renderer prints what a run is about to submit, so a dry read of the
// console is enough to spot a miscategorized event before it reaches the
// remote systems.
type Renderer struct {
	holidays *HolidayCalendar
	out      io.Writer
}

func NewRenderer(holidays *HolidayCalendar, out io.Writer) *Renderer {
	return &Renderer{holidays: holidays, out: out}
}

// RenderWorklogs prints one row per entry and ticket with the per-ticket
// share of the entry's duration. Rows on weekends or holidays are
// highlighted since billable work there usually means a mistagged event.
func (r *Renderer) RenderWorklogs(entries []worklog.Entry) {
	fmt.Fprintln(r.out, headerStyle.Render("Jira worklogs"))
	total := 0.0
	for _, entry := range entries {
		for _, ticketID := range entry.TicketIDs {
			line := worklogLine(entry, ticketID)
			if r.holidays.IsHoliday(entry.StartTime) {
				line = holidayStyle.Render(line)
			}
			fmt.Fprintln(r.out, line)
		}
		total += entry.Duration
	}
	fmt.Fprintln(r.out, footerStyle.Render(fmt.Sprintf("Total: %s", formatClock(total))))
}

// RenderAttendance prints one row per day. Unusually short or long days
// are highlighted, and the footer sums the balance against a full
// workday so overtime is visible before submission.
func (r *Renderer) RenderAttendance(days []attendance.DayRecord) {
	fmt.Fprintln(r.out, headerStyle.Render("JobCan attendance"))
	worked := 0.0
	weekdays := 0
	for _, day := range days {
		line := attendanceLine(day)
		switch {
		case r.holidays.IsHoliday(day.Date):
			line = holidayStyle.Render(line)
		case day.Duration > 9*60:
			line = overStyle.Render(line)
		case day.Duration < 7*60 && day.Vacation == "":
			line = shortStyle.Render(line)
		}
		fmt.Fprintln(r.out, line)

		if !r.holidays.IsHoliday(day.Date) {
			worked += day.Duration
			weekdays++
		}
	}
	if weekdays == 0 {
		return
	}
	average := worked / float64(weekdays)
	balance := worked - float64(weekdays)*fullWorkDay
	footer := fmt.Sprintf("Average: %s over %d weekdays, balance %s",
		formatClock(average), weekdays, formatBalance(balance))
	fmt.Fprintln(r.out, footerStyle.Render(footer))
}

func worklogLine(entry worklog.Entry, ticketID string) string {
	hours := entry.Duration / float64(len(entry.TicketIDs)) / 60
	return fmt.Sprintf("%s  %-10s  %5.2fh  %s",
		entry.StartTime.Format("01-02"), ticketID, hours, entry.Description)
}

func attendanceLine(day attendance.DayRecord) string {
	line := fmt.Sprintf("%s %s  %s - %s  break %s  worked %s",
		day.Date.Format("Mon"), day.Date.Format("01-02"),
		day.ClockIn, day.ClockOut, day.Break, formatClock(day.Duration))
	if vacation, ok := attendance.VacationTypes[day.Vacation]; ok {
		line = fmt.Sprintf("%s  %s", line, vacation.Label)
	}
	return line
}

func formatClock(minutes float64) string {
	total := int(minutes)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatBalance(minutes float64) string {
	if minutes < 0 {
		return "-" + formatClock(-minutes)
	}
	return "+" + formatClock(minutes)
}
