package jobcan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"github.com/timebridge/timebridge/internal/config"
	"github.com/timebridge/timebridge/pkg/attendance"
)

const (
	loginURL      = "https://id.jobcan.jp/users/sign_in?app_key=atd&lang=ja"
	holidayNewURL = "https://ssl.jobcan.jp/employee/holiday/new"

	// JobCan has no API and no confirmation signal; every write is followed
	// by a bounded poll for the rendered state it should produce.
	stepTimeout  = 30 * time.Second
	writeTimeout = 10 * time.Second
)

const (
	clockInRowXPath      = `//tr[@class="text-center"]//td[contains(., "Clock-in") or contains(., "Clock In")]`
	lockedDayXPath       = `//form[@id="modifyForm"]//div[contains(., "Cannot revise clock time on this day")]`
	vacationSubmitXPath  = `//div//input[@type="submit" and @class="btn jbc-btn-primary"]`
	vacationConfirmXPath = `//div//input[@type="button" and @class="btn jbc-btn-secondary"]`
)

// Client drives the JobCan web interface through a headless browser. It
// implements attendance.Automator: one Run is one login session, and the
// browser is released on every exit path.
type Client struct {
	email    string
	password string
}

func NewClient(cfg config.Jobcan) *Client {
	return &Client{email: cfg.Email, password: cfg.Password}
}

func (c *Client) Run(ctx context.Context, fn func(session attendance.Session) error) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	s := &session{ctx: browserCtx}
	if err := c.login(s); err != nil {
		return fmt.Errorf("jobcan login failed: %w", err)
	}
	if err := fn(s); err != nil {
		log.Errorf("jobcan automation failed: %v", err)
		return err
	}
	return nil
}

func (c *Client) login(s *session) error {
	return s.run(stepTimeout,
		chromedp.EmulateViewport(1080, 720),
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible("#user_email", chromedp.ByQuery),
		chromedp.SendKeys("#user_email", c.email, chromedp.ByQuery),
		chromedp.SendKeys("#user_password", c.password, chromedp.ByQuery),
		chromedp.Click("#login_button", chromedp.ByQuery),
		chromedp.WaitVisible("#working_status", chromedp.ByQuery),
	)
}

type session struct {
	ctx context.Context
}

func (s *session) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// count evaluates an XPath on the current page and returns how many nodes
// match, without waiting for any to appear.
func (s *session) count(xpath string) (int, error) {
	js := fmt.Sprintf(
		`document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength`,
		xpath,
	)
	var n int
	if err := s.run(writeTimeout, chromedp.Evaluate(js, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

// waitFor polls until the XPath matches at least one node or the timeout
// expires. A timeout is logged but tolerated: the markers are best effort
// on a page we do not control.
func (s *session) waitFor(xpath string, timeout time.Duration) {
	js := fmt.Sprintf(
		`document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength > 0`,
		xpath,
	)
	var ok bool
	if err := s.run(timeout, chromedp.Poll(js, &ok, chromedp.WithPollingTimeout(timeout))); err != nil {
		log.Warnf("timed out waiting for page state %s: %v", xpath, err)
	}
}

func (s *session) OpenDay(date time.Time) (attendance.DayStatus, error) {
	var status attendance.DayStatus
	err := s.run(stepTimeout,
		chromedp.Navigate(modifyURL(date)),
		chromedp.WaitVisible("#ter_time", chromedp.ByQuery),
	)
	if err != nil {
		return status, fmt.Errorf("failed to open modify page for %s: %w", date.Format("2006-01-02"), err)
	}

	recorded, err := s.count(clockInRowXPath)
	if err != nil {
		return status, err
	}
	status.HasClockIn = recorded > 0

	locked, err := s.count(lockedDayXPath)
	if err != nil {
		return status, err
	}
	status.Locked = locked > 0
	return status, nil
}

func (s *session) SubmitTimes(clockIn string, clockOut string) error {
	if err := s.submitTime(clockIn); err != nil {
		return err
	}
	s.waitFor(clockInRowXPath, writeTimeout)
	if err := s.submitTime(clockOut); err != nil {
		return err
	}
	s.waitFor(recordedTimeXPath(clockOut), writeTimeout)
	return nil
}

func (s *session) submitTime(value string) error {
	return s.run(writeTimeout,
		chromedp.SetValue("#ter_time", "", chromedp.ByQuery),
		chromedp.SendKeys("#ter_time", normalizeTime(value), chromedp.ByQuery),
		chromedp.Click("#insert_button", chromedp.ByQuery),
	)
}

func (s *session) HasVacationRequest(date time.Time, vacation attendance.VacationType) (bool, error) {
	err := s.run(stepTimeout,
		chromedp.Navigate(holidayListURL(date)),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return false, fmt.Errorf("failed to open vacation listing: %w", err)
	}
	n, err := s.count(requestedRowXPath(date, vacation))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *session) RequestVacation(date time.Time, vacation attendance.VacationType) error {
	year := fmt.Sprintf("%d", date.Year())
	month := fmt.Sprintf("%02d", int(date.Month()))
	day := fmt.Sprintf("%02d", date.Day())

	err := s.run(stepTimeout,
		chromedp.Navigate(holidayNewURL),
		chromedp.WaitVisible("#holiday_id", chromedp.ByQuery),
		chromedp.SetValue("#holiday_id", vacation.Code, chromedp.ByQuery),
		chromedp.SetValue("#holiday_year", year, chromedp.ByQuery),
		chromedp.SetValue("#holiday_month", month, chromedp.ByQuery),
		chromedp.SetValue("#holiday_day", day, chromedp.ByQuery),
		chromedp.SetValue("#to_holiday_year", year, chromedp.ByQuery),
		chromedp.SetValue("#to_holiday_month", month, chromedp.ByQuery),
		chromedp.SetValue("#to_holiday_day", day, chromedp.ByQuery),
		chromedp.Click(vacationSubmitXPath, chromedp.BySearch),
		chromedp.WaitVisible(vacationConfirmXPath, chromedp.BySearch),
		chromedp.Click(vacationConfirmXPath, chromedp.BySearch),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to request vacation for %s: %w", date.Format("2006-01-02"), err)
	}
	return nil
}

func modifyURL(date time.Time) string {
	return fmt.Sprintf(
		"https://ssl.jobcan.jp/employee/adit/modify?year=%d&month=%02d&day=%02d",
		date.Year(), int(date.Month()), date.Day(),
	)
}

func holidayListURL(date time.Time) string {
	return fmt.Sprintf(
		"https://ssl.jobcan.jp/employee/holiday/?search_type=month&month=%02d&year=%d",
		int(date.Month()), date.Year(),
	)
}

// requestedRowXPath matches a row of the monthly vacation listing that
// names both the leave type and the requested date.
func requestedRowXPath(date time.Time, vacation attendance.VacationType) string {
	return fmt.Sprintf(
		`//tr[td[contains(text(),%q)] and td[contains(text(),%q)]]`,
		vacation.Label, date.Format("01/02/2006"),
	)
}

func recordedTimeXPath(value string) string {
	return fmt.Sprintf(`//tr[@class="text-center"]//td[contains(., %q)]`, value)
}

// normalizeTime converts "10:00" to the "1000" form the time input expects.
func normalizeTime(value string) string {
	return strings.ReplaceAll(value, ":", "")
}
