package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/timebridge/timebridge/internal/config"
	"github.com/timebridge/timebridge/pkg/calendar"
)

const dateLayout = "2006-01-02"

// Application wires configuration, calendar input, and the two output
// channels, ready to Run() once or on a schedule.
type Application struct {
	cfg  config.Application
	deps *Dependencies
	loc  *time.Location
}

func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return &Application{cfg: cfg, deps: BuildDependencies(cfg), loc: loc}, nil
}

// Run executes one synchronization pass. With a schedule configured and no
// explicit dates it instead blocks and runs a pass on every cron tick.
func (a *Application) Run(args []string) error {
	if a.cfg.Schedule != "" && len(args) == 0 {
		return a.runScheduled()
	}
	return a.runOnce(context.Background(), args)
}

func (a *Application) runScheduled() error {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(a.cfg.Schedule, func() {
		if err := a.runOnce(context.Background(), nil); err != nil {
			log.Errorf("scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", a.cfg.Schedule, err)
	}
	log.Infof("Running on schedule %q", a.cfg.Schedule)
	scheduler.Run()
	return nil
}

func (a *Application) runOnce(ctx context.Context, args []string) error {
	from, to, err := dateWindow(a.deps.Clock.Now(), a.loc, args)
	if err != nil {
		return err
	}
	log.Infof("Searching for events between %s and %s", from.Format(dateLayout), to.Format(dateLayout))

	provider, err := a.deps.CalendarProviders.New(ctx, a.cfg.Input)
	if err != nil {
		return err
	}
	events, err := provider.GetEvents(ctx, from, to)
	if err != nil {
		return err
	}
	log.Debugf("retrieved %d events", len(events))

	output := strings.ToUpper(a.cfg.Output)
	switch output {
	case "JIRA":
		return a.syncWorklogs(ctx, events)
	case "JOBCAN":
		return a.syncAttendance(ctx, events)
	case "BOTH":
		if err := a.syncWorklogs(ctx, events); err != nil {
			return err
		}
		return a.syncAttendance(ctx, events)
	default:
		return fmt.Errorf("unknown output %q", a.cfg.Output)
	}
}

func (a *Application) syncWorklogs(ctx context.Context, events []calendar.Event) error {
	strategy, err := a.deps.WorklogStrategies.Get(a.cfg.Jira.Strategy)
	if err != nil {
		return err
	}
	entries := strategy(events)
	a.deps.Renderer.RenderWorklogs(entries)
	return a.deps.WorklogSyncer.Sync(ctx, entries)
}

func (a *Application) syncAttendance(ctx context.Context, events []calendar.Event) error {
	strategy, err := a.deps.AttendanceStrategies.Get(a.cfg.Jobcan.Strategy)
	if err != nil {
		return err
	}
	days := strategy(events, a.loc)
	a.deps.Renderer.RenderAttendance(days)
	return a.deps.AttendanceSyncer.Sync(ctx, days)
}

// dateWindow resolves the search range. Without arguments it covers the
// previous Monday-to-Sunday week in the configured timezone; one or two
// date arguments override the start and end.
func dateWindow(now time.Time, loc *time.Location, args []string) (time.Time, time.Time, error) {
	if len(args) == 0 {
		now = now.In(loc)
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		thisMonday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
			AddDate(0, 0, -daysSinceMonday)
		from := thisMonday.AddDate(0, 0, -7)
		return from, thisMonday, nil
	}

	from, err := time.ParseInLocation(dateLayout, args[0], loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", args[0], err)
	}
	to := from.AddDate(0, 0, 1)
	if len(args) > 1 {
		end, err := time.ParseInLocation(dateLayout, args[1], loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", args[1], err)
		}
		to = end.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", args[1], args[0])
	}
	return from, to, nil
}
