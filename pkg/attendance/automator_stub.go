package attendance

import (
	"context"
	"time"
)

type StubSubmission struct {
	Date     string
	ClockIn  string
	ClockOut string
}

type StubVacationRequest struct {
	Date string
	Code string
}

type StubSession struct {
	Statuses  map[string]DayStatus
	Requested map[string]bool

	Submissions      []StubSubmission
	VacationRequests []StubVacationRequest
	OpenErr          error

	openDate string
}

func (s *StubSession) OpenDay(date time.Time) (DayStatus, error) {
	if s.OpenErr != nil {
		return DayStatus{}, s.OpenErr
	}
	s.openDate = date.Format("2006-01-02")
	return s.Statuses[s.openDate], nil
}

func (s *StubSession) SubmitTimes(clockIn string, clockOut string) error {
	s.Submissions = append(s.Submissions, StubSubmission{Date: s.openDate, ClockIn: clockIn, ClockOut: clockOut})
	return nil
}

func (s *StubSession) HasVacationRequest(date time.Time, vacation VacationType) (bool, error) {
	return s.Requested[date.Format("2006-01-02")+"/"+vacation.Code], nil
}

func (s *StubSession) RequestVacation(date time.Time, vacation VacationType) error {
	s.VacationRequests = append(s.VacationRequests, StubVacationRequest{
		Date: date.Format("2006-01-02"),
		Code: vacation.Code,
	})
	return nil
}

type StubAutomator struct {
	Session  *StubSession
	RunErr   error
	RunCount int
}

func (s *StubAutomator) Run(ctx context.Context, fn func(session Session) error) error {
	if s.RunErr != nil {
		return s.RunErr
	}
	s.RunCount++
	return fn(s.Session)
}
