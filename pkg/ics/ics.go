package ics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"

	"github.com/timebridge/timebridge/internal/config"
	"github.com/timebridge/timebridge/pkg/calendar"
)

// Provider retrieves events from a subscribed ICS feed. ICS carries no
// attendee responses for the subscriber, so events count as confirmed
// unless their STATUS says otherwise.
type Provider struct {
	url        string
	httpClient *http.Client
}

func NewProvider(cfg config.ICS) *Provider {
	return &Provider{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *Provider) GetEvents(ctx context.Context, from time.Time, to time.Time) ([]calendar.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ICS feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ICS feed returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ICS feed: %w", err)
	}
	return parseEvents(body, from, to)
}

func parseEvents(body []byte, from time.Time, to time.Time) ([]calendar.Event, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS feed: %w", err)
	}

	events := make([]calendar.Event, 0)
	for _, ve := range cal.Events() {
		parsed, err := parseVEvent(ve, from, to)
		if err != nil {
			// skip the broken VEVENT, keep the rest of the feed
			log.Warnf("skipping unparsable ICS event: %v", err)
			continue
		}
		events = append(events, parsed...)
	}
	return events, nil
}

// parseVEvent maps one VEVENT into zero or more events inside the window,
// expanding RRULE recurrences when present.
func parseVEvent(ve *ical.VEvent, from time.Time, to time.Time) ([]calendar.Event, error) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return nil, fmt.Errorf("VEVENT without UID")
	}

	base := calendar.Event{
		ID:        uidProp.Value,
		Confirmed: true,
	}
	if prop := ve.GetProperty(ical.ComponentPropertySummary); prop != nil {
		base.Summary = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyDescription); prop != nil {
		base.Description = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyStatus); prop != nil {
		base.Confirmed = prop.Value == "CONFIRMED"
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return nil, fmt.Errorf("VEVENT %s without DTSTART", base.ID)
	}
	if len(startProp.Value) == len("20060102") {
		// date-only DTSTART marks an all-day event
		start, err := time.Parse("20060102", startProp.Value)
		if err != nil {
			return nil, fmt.Errorf("VEVENT %s has invalid all-day start: %w", base.ID, err)
		}
		base.AllDay = true
		base.StartTime = start
		if overlaps(base.StartTime, base.StartTime.AddDate(0, 0, 1), from, to) {
			return []calendar.Event{base}, nil
		}
		return nil, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("VEVENT %s has invalid start: %w", base.ID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("VEVENT %s has invalid end: %w", base.ID, err)
	}
	base.StartTime = start
	base.EndTime = end

	rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
	if rruleProp == nil {
		if overlaps(start, end, from, to) {
			return []calendar.Event{base}, nil
		}
		return nil, nil
	}
	return expandRecurrence(base, rruleProp.Value, from, to)
}

// expandRecurrence yields one event per RRULE occurrence within the window.
// Each occurrence gets a derived id so reconciliation treats it as its own
// calendar event.
func expandRecurrence(base calendar.Event, rule string, from time.Time, to time.Time) ([]calendar.Event, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("VEVENT %s has invalid RRULE: %w", base.ID, err)
	}
	r.DTStart(base.StartTime)

	duration := base.EndTime.Sub(base.StartTime)
	occurrences := r.Between(from, to, true)
	events := make([]calendar.Event, 0, len(occurrences))
	for _, occurrence := range occurrences {
		event := base
		event.ID = fmt.Sprintf("%s-%s", base.ID, occurrence.UTC().Format("20060102T150405Z"))
		event.StartTime = occurrence
		event.EndTime = occurrence.Add(duration)
		events = append(events, event)
	}
	return events, nil
}

func overlaps(start, end, from, to time.Time) bool {
	return start.Before(to) && end.After(from)
}
