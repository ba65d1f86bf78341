package worklog

import "time"

// startAtLayout renders the start instant in UTC with a literal +0000
// offset, which is the only offset form the remote worklog API accepts.
const startAtLayout = "2006-01-02T15:04:05.000+0000"

// Entry is one billable calendar event after aggregation: the tickets it
// references, its total duration in minutes and the text that becomes the
// worklog comment.
type Entry struct {
	EventID     string
	TicketIDs   []string
	Description string
	StartTime   time.Time
	Duration    float64
}

// Worklog is the per-ticket unit of reconciliation. It doubles as the
// persisted shape in the sync-state file.
type Worklog struct {
	ID               string  `json:"id"`
	Description      string  `json:"description"`
	StartAt          string  `json:"startAt"`
	TimeSpentSeconds float64 `json:"timeSpentSeconds"`
	RemoteWorklogID  string  `json:"jiraWorklogId"`
}

// EventRecord holds everything previously told to the remote system about
// one calendar event.
type EventRecord struct {
	Worklogs []Worklog `json:"worklogs"`
}

// State maps calendar event ids to their last synchronized records.
type State map[string]EventRecord

// Worklogs splits the entry evenly across its ticket ids. An entry with N
// ids yields N worklogs of Duration/N minutes each; ids appearing twice get
// two separate allocations.
func (e Entry) Worklogs() []Worklog {
	n := float64(len(e.TicketIDs))
	worklogs := make([]Worklog, 0, len(e.TicketIDs))
	for _, id := range e.TicketIDs {
		worklogs = append(worklogs, Worklog{
			ID:               id,
			Description:      e.Description,
			StartAt:          e.StartTime.UTC().Format(startAtLayout),
			TimeSpentSeconds: e.Duration / n * 60,
		})
	}
	return worklogs
}
