package google

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/timebridge/timebridge/pkg/calendar"
)

// Provider retrieves events from one Google calendar.
type Provider struct {
	auth       *Auth
	calendarID string
}

func NewProvider(auth *Auth, calendarID string) *Provider {
	return &Provider{auth: auth, calendarID: calendarID}
}

func (p *Provider) GetEvents(ctx context.Context, from time.Time, to time.Time) ([]calendar.Event, error) {
	client, err := p.auth.getClient(ctx)
	if err != nil {
		return nil, err
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	googleEvents, err := service.Events.List(p.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}

	events := make([]calendar.Event, 0, len(googleEvents.Items))
	for _, item := range googleEvents.Items {
		events = append(events, mapEvent(item))
	}
	log.Debugf("retrieved %d events from calendar %s", len(events), p.calendarID)
	return events, nil
}

func mapEvent(item *gcal.Event) calendar.Event {
	event := calendar.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Confirmed:   item.Status == "confirmed",
		OutOfOffice: item.EventType == "outOfOffice",
	}

	if item.Start != nil {
		if item.Start.DateTime != "" {
			event.StartTime, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		} else if item.Start.Date != "" {
			// date without time component marks an all-day event
			event.AllDay = true
			event.StartTime, _ = time.Parse("2006-01-02", item.Start.Date)
		}
	}
	if item.End != nil {
		if item.End.DateTime != "" {
			event.EndTime, _ = time.Parse(time.RFC3339, item.End.DateTime)
		} else if item.End.Date != "" {
			event.EndTime, _ = time.Parse("2006-01-02", item.End.Date)
		}
	}

	if len(item.Attendees) > 0 {
		event.HasAttendees = true
		for _, attendee := range item.Attendees {
			if attendee.Self {
				event.SelfResponse = attendee.ResponseStatus
				break
			}
		}
	}
	return event
}
