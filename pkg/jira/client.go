package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/timebridge/timebridge/internal/config"
	"github.com/timebridge/timebridge/pkg/worklog"
)

// Jira answers with this message when the token cannot see the issue, which
// in practice means the credentials are wrong.
const invalidCredsMessage = "Issue does not exist or you do not have permission to see it."

var ErrInvalidCredentials = fmt.Errorf("invalid Jira credentials, please check the configured email and token")

// Client adds and replaces worklogs through the Jira REST API
// (POST/PUT /rest/api/3/issue/{issueId}/worklog[/{worklogId}]).
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
}

func NewClient(cfg config.Jira) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.DomainURL, "/"),
		email:      cfg.Email,
		token:      cfg.Token,
		httpClient: http.DefaultClient,
	}
}

type worklogBody struct {
	Started          string     `json:"started"`
	TimeSpentSeconds float64    `json:"timeSpentSeconds"`
	Comment          commentDoc `json:"comment"`
}

type commentDoc struct {
	Type    string         `json:"type"`
	Version int            `json:"version"`
	Content []commentBlock `json:"content"`
}

type commentBlock struct {
	Type    string        `json:"type"`
	Content []commentText `json:"content"`
}

type commentText struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type worklogResponse struct {
	ID            string   `json:"id"`
	ErrorMessages []string `json:"errorMessages"`
}

func body(w worklog.Worklog) worklogBody {
	return worklogBody{
		Started:          w.StartAt,
		TimeSpentSeconds: w.TimeSpentSeconds,
		Comment: commentDoc{
			Type:    "doc",
			Version: 1,
			Content: []commentBlock{{
				Type: "paragraph",
				Content: []commentText{{
					Text: w.Description,
					Type: "text",
				}},
			}},
		},
	}
}

func (c *Client) Create(ctx context.Context, w worklog.Worklog) (string, error) {
	url := fmt.Sprintf("%s/rest/api/3/issue/%s/worklog", c.baseURL, w.ID)
	response, err := c.send(ctx, http.MethodPost, url, w)
	if err != nil {
		return "", err
	}
	return response.ID, nil
}

func (c *Client) Update(ctx context.Context, remoteID string, w worklog.Worklog) (string, error) {
	url := fmt.Sprintf("%s/rest/api/3/issue/%s/worklog/%s", c.baseURL, w.ID, remoteID)
	if _, err := c.send(ctx, http.MethodPut, url, w); err != nil {
		return "", err
	}
	return remoteID, nil
}

func (c *Client) send(ctx context.Context, method string, url string, w worklog.Worklog) (*worklogResponse, error) {
	payload, err := json.Marshal(body(w))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize worklog body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	var response worklogResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode worklog response: %w", err)
	}
	if err := checkResponse(response); err != nil {
		return nil, err
	}
	return &response, nil
}

// checkResponse classifies the errorMessages list the API returns instead of
// HTTP error codes. The known bad-credentials message gets its own error so
// the operator sees an actionable diagnostic; anything else is surfaced
// verbatim. Both are fatal to the run.
func checkResponse(response worklogResponse) error {
	if len(response.ErrorMessages) == 0 {
		return nil
	}
	for _, message := range response.ErrorMessages {
		if message == invalidCredsMessage {
			log.Error(ErrInvalidCredentials)
			return ErrInvalidCredentials
		}
	}
	err := fmt.Errorf("failed to add worklog to Jira: %s", strings.Join(response.ErrorMessages, "; "))
	log.Error(err)
	return err
}
