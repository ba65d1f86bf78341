package attendance

import (
	"fmt"
	"time"
)

// NoTime marks a day without usable clock times (vacation-only days).
const NoTime = "--:--"

// DayRecord is one day's attendance data to submit: clock-in/out and break
// as HH:MM strings, worked duration in minutes and an optional vacation
// code from VacationTypes. Records are rebuilt from calendar data on every
// run and never persisted; idempotency comes from probing the remote pages.
type DayRecord struct {
	Date     time.Time
	ClockIn  string
	ClockOut string
	Break    string
	Duration float64
	Vacation string
}

// VacationType describes one leave type of the attendance system: the value
// of its request-form option and the label it is listed under.
type VacationType struct {
	Code  string
	Label string
}

// VacationTypes maps the codes recognized in calendar events to the remote
// system's leave types.
var VacationTypes = map[string]VacationType{
	"PTO":    {Code: "79", Label: "Annual leave 年次有給休暇 (Full day)"},
	"PTO-AM": {Code: "92", Label: "Annual leave 年次有給休暇 (AM OFF 午前休)"},
	"PTO-PM": {Code: "93", Label: "Annual leave 年次有給休暇 (PM OFF 午後休)"},
	"SL":     {Code: "77", Label: "Sick/Care Leave 傷病/介護 (Full day)"},
	"SL-AM":  {Code: "96", Label: "Sick/Care Leave 傷病/介護 (AM OFF)"},
	"SL-PM":  {Code: "97", Label: "Sick/Care Leave 傷病/介護 (PM OFF)"},
}

func formatMinutes(minutes float64) string {
	total := int(minutes)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
