package app

import (
	"context"
	"os"

	"github.com/timebridge/timebridge/internal/config"
	"github.com/timebridge/timebridge/internal/storage"
	"github.com/timebridge/timebridge/internal/utils"
	"github.com/timebridge/timebridge/pkg/attendance"
	"github.com/timebridge/timebridge/pkg/calendar"
	"github.com/timebridge/timebridge/pkg/google"
	"github.com/timebridge/timebridge/pkg/ics"
	"github.com/timebridge/timebridge/pkg/jira"
	"github.com/timebridge/timebridge/pkg/jobcan"
	"github.com/timebridge/timebridge/pkg/report"
	"github.com/timebridge/timebridge/pkg/worklog"
)

// Dependencies holds all services wired for one application instance.
type Dependencies struct {
	Store storage.Store

	CalendarProviders *calendar.Registry

	WorklogStrategies *worklog.StrategyRegistry
	WorklogSyncer     worklog.Syncer

	AttendanceStrategies *attendance.StrategyRegistry
	AttendanceSyncer     attendance.Syncer

	Renderer *report.Renderer
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services.
func BuildDependencies(cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	store := storage.NewFileStore(cfg.Storage.Dir, cfg.Storage.Account)
	deps.Store = store

	googleAuth := google.NewAuth(store)
	deps.CalendarProviders = calendar.NewRegistry()
	deps.CalendarProviders.Register("google", func(ctx context.Context) (calendar.Provider, error) {
		return google.NewProvider(googleAuth, cfg.Google.CalendarID), nil
	})
	deps.CalendarProviders.Register("ics", func(ctx context.Context) (calendar.Provider, error) {
		return ics.NewProvider(cfg.ICS), nil
	})

	deps.WorklogStrategies = worklog.NewStrategyRegistry()
	deps.WorklogSyncer = worklog.NewSyncer(
		worklog.NewFileStateRepository(store),
		jira.NewClient(cfg.Jira),
	)

	deps.AttendanceStrategies = attendance.NewStrategyRegistry()
	deps.AttendanceSyncer = attendance.NewSyncer(jobcan.NewClient(cfg.Jobcan))

	deps.Renderer = report.NewRenderer(report.NewHolidayCalendar(cfg.HolidayZone), os.Stdout)
	deps.Clock = &utils.SystemClock{}

	return deps
}
