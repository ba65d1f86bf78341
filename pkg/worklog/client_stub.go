package worklog

import (
	"context"
	"fmt"
)

type StubClientCall struct {
	Op       string
	RemoteID string
	Worklog  Worklog
}

type StubClient struct {
	Calls []StubClientCall
	Err   error

	nextID int
}

func (s *StubClient) Create(ctx context.Context, w Worklog) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.nextID++
	s.Calls = append(s.Calls, StubClientCall{Op: "create", Worklog: w})
	return fmt.Sprintf("remote-%d", s.nextID), nil
}

func (s *StubClient) Update(ctx context.Context, remoteID string, w Worklog) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Calls = append(s.Calls, StubClientCall{Op: "update", RemoteID: remoteID, Worklog: w})
	return remoteID, nil
}
