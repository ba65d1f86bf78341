package attendance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/timebridge/timebridge/pkg/calendar"
)

// Strategy turns raw calendar events into per-day attendance records.
type Strategy func(events []calendar.Event, loc *time.Location) []DayRecord

type StrategyRegistry struct {
	strategies map[string]Strategy
}

func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{strategies: map[string]Strategy{
		"daily": DailyStrategy,
	}}
}

func (r *StrategyRegistry) Register(name string, strategy Strategy) {
	r.strategies[name] = strategy
}

func (r *StrategyRegistry) Get(name string) (Strategy, error) {
	strategy, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown attendance strategy %q", name)
	}
	return strategy, nil
}

// DailyStrategy groups attended events by local date. Timed events define
// the day's span: clock-in is the earliest start, clock-out the latest end,
// break the unworked remainder of the span. An all-day event whose summary
// is a known vacation code marks the day's leave. Days with a vacation but
// no timed events keep the NoTime markers.
func DailyStrategy(events []calendar.Event, loc *time.Location) []DayRecord {
	type dayTimes struct {
		record   DayRecord
		earliest time.Time
		latest   time.Time
	}
	days := map[string]*dayTimes{}

	ensure := func(date time.Time) *dayTimes {
		key := date.Format("2006-01-02")
		day, ok := days[key]
		if !ok {
			day = &dayTimes{record: DayRecord{
				Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc),
				ClockIn:  NoTime,
				ClockOut: NoTime,
				Break:    "0:00",
			}}
			days[key] = day
		}
		return day
	}

	for _, event := range events {
		if !event.Attended() {
			continue
		}

		if event.AllDay {
			code := strings.TrimSpace(event.Summary)
			if _, known := VacationTypes[code]; known {
				// all-day starts carry a bare date already
				ensure(event.StartTime).record.Vacation = code
			}
			continue
		}

		start := event.StartTime.In(loc)
		end := event.EndTime.In(loc)
		day := ensure(start)
		if day.earliest.IsZero() || start.Before(day.earliest) {
			day.earliest = start
		}
		if end.After(day.latest) {
			day.latest = end
		}
		day.record.Duration += event.Duration()
	}

	records := make([]DayRecord, 0, len(days))
	for _, day := range days {
		if !day.earliest.IsZero() {
			day.record.ClockIn = day.earliest.Format("15:04")
			day.record.ClockOut = day.latest.Format("15:04")
			span := day.latest.Sub(day.earliest).Minutes()
			if pause := span - day.record.Duration; pause > 0 {
				day.record.Break = formatMinutes(pause)
			}
		}
		records = append(records, day.record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}
