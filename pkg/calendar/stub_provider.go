package calendar

import (
	"context"
	"time"
)

type StubProvider struct {
	Events []Event
	Err    error
}

func (s *StubProvider) GetEvents(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Events, nil
}
