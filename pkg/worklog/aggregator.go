package worklog

import (
	"fmt"

	"github.com/timebridge/timebridge/pkg/calendar"
	"github.com/timebridge/timebridge/pkg/ticket"
)

// Strategy turns raw calendar events into aggregated worklog entries.
type Strategy func(events []calendar.Event) []Entry

// StrategyRegistry resolves the configured strategy name once at startup.
type StrategyRegistry struct {
	strategies map[string]Strategy
}

func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{strategies: map[string]Strategy{
		"ticket": TicketStrategy,
	}}
}

func (r *StrategyRegistry) Register(name string, strategy Strategy) {
	r.strategies[name] = strategy
}

func (r *StrategyRegistry) Get(name string) (Strategy, error) {
	strategy, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown worklog strategy %q", name)
	}
	return strategy, nil
}

// TicketStrategy keeps attended, timed, in-office events that reference at
// least one ticket id and converts each into one entry. The entry keeps the
// full duration; the per-ticket split happens when worklogs are built.
func TicketStrategy(events []calendar.Event) []Entry {
	entries := make([]Entry, 0, len(events))
	for _, event := range events {
		if !event.Attended() {
			continue
		}
		if event.AllDay {
			continue
		}
		if event.OutOfOffice {
			continue
		}
		ids := ticket.Extract(event.Summary, event.Description)
		if len(ids) == 0 {
			continue
		}
		entries = append(entries, Entry{
			EventID:     event.ID,
			TicketIDs:   ids,
			Description: event.Summary,
			StartTime:   event.StartTime,
			Duration:    event.Duration(),
		})
	}
	return entries
}
