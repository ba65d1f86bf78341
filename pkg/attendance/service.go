package attendance

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// DayStatus is what the remote modify-record page shows for one day before
// any write is attempted.
type DayStatus struct {
	HasClockIn bool
	Locked     bool
}

// Session is one authenticated browser session against the attendance
// system. All operations act on the remote pages; OpenDay navigates to the
// day's modify-record page and probes it.
type Session interface {
	OpenDay(date time.Time) (DayStatus, error)
	SubmitTimes(clockIn string, clockOut string) error
	HasVacationRequest(date time.Time, vacation VacationType) (bool, error)
	RequestVacation(date time.Time, vacation VacationType) error
}

// Automator owns the browser lifecycle: Run logs in, hands the session to
// fn and tears the browser down on every exit path.
type Automator interface {
	Run(ctx context.Context, fn func(session Session) error) error
}

// Syncer submits day records through one automator session, day by day.
// The remote pages are the idempotency source: a day that already shows a
// clock-in is skipped entirely, a locked day is skipped silently, and a
// vacation request is only filed when the monthly listing has none for that
// date and type.
type Syncer interface {
	Sync(ctx context.Context, days []DayRecord) error
}

type SyncerImpl struct {
	automator Automator
}

func NewSyncer(automator Automator) *SyncerImpl {
	return &SyncerImpl{automator: automator}
}

func (s *SyncerImpl) Sync(ctx context.Context, days []DayRecord) error {
	return s.automator.Run(ctx, func(session Session) error {
		for _, day := range days {
			if err := syncDay(session, day); err != nil {
				return fmt.Errorf("failed to sync %s: %w", day.Date.Format("2006-01-02"), err)
			}
		}
		return nil
	})
}

func syncDay(session Session, day DayRecord) error {
	date := day.Date.Format("2006-01-02")

	status, err := session.OpenDay(day.Date)
	if err != nil {
		return err
	}
	if status.HasClockIn {
		log.Debugf("%s %s ~ %s already recorded", date, day.ClockIn, day.ClockOut)
		return nil
	}

	if !status.Locked && day.ClockIn != NoTime && day.ClockOut != NoTime {
		log.Infof("%s %s ~ %s", date, day.ClockIn, day.ClockOut)
		if err := session.SubmitTimes(day.ClockIn, day.ClockOut); err != nil {
			return err
		}
	}

	vacation, known := VacationTypes[day.Vacation]
	if !known {
		return nil
	}
	requested, err := session.HasVacationRequest(day.Date, vacation)
	if err != nil {
		return err
	}
	if requested {
		log.Debugf("%s %s already requested", date, vacation.Label)
		return nil
	}
	log.Infof("%s %s", date, vacation.Label)
	return session.RequestVacation(day.Date, vacation)
}
