package worklog

import "context"

// Client is the remote side of the reconciliation: it creates or replaces a
// single worklog and returns the id the remote system knows it by.
type Client interface {
	Create(ctx context.Context, w Worklog) (string, error)
	Update(ctx context.Context, remoteID string, w Worklog) (string, error)
}
