package report

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/us"
	log "github.com/sirupsen/logrus"
)

// HolidayCalendar classifies dates as non-working for report highlighting.
// Weekends always count; public holidays come from the configured zone.
// It is constructed once and passed to the renderer, never shared globally.
type HolidayCalendar struct {
	calendar *cal.Calendar
}

func NewHolidayCalendar(zone string) *HolidayCalendar {
	calendar := &cal.Calendar{}
	switch strings.ToUpper(zone) {
	case "JP":
		calendar.AddHoliday(jp.Holidays...)
	case "US":
		calendar.AddHoliday(us.Holidays...)
	case "GB":
		calendar.AddHoliday(gb.Holidays...)
	case "DE":
		calendar.AddHoliday(de.Holidays...)
	case "FR":
		calendar.AddHoliday(fr.Holidays...)
	case "PL":
		calendar.AddHoliday(pl.Holidays...)
	default:
		log.Warnf("unknown holiday zone %q, classifying weekends only", zone)
	}
	return &HolidayCalendar{calendar: calendar}
}

func (h *HolidayCalendar) IsHoliday(date time.Time) bool {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return true
	}
	actual, observed, _ := h.calendar.IsHoliday(date)
	return actual || observed
}
