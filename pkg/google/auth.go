package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/timebridge/timebridge/internal/storage"
)

const (
	credentialsFileName = "credentials.json"
	tokenFileName       = "token.json"
)

// Auth builds an authenticated HTTP client from the credentials.json and
// token.json files held in the account's storage. The token must already
// exist; there is no interactive consent flow in a batch run.
type Auth struct {
	store storage.Store
}

func NewAuth(store storage.Store) *Auth {
	return &Auth{store: store}
}

type installedCredentials struct {
	Installed struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		RedirectURIs []string `json:"redirect_uris"`
	} `json:"installed"`
}

func (a *Auth) getClient(ctx context.Context) (*http.Client, error) {
	credBytes, err := a.store.Read(credentialsFileName)
	if err != nil {
		log.Errorf("unable to read Google credentials: %v", err)
		return nil, err
	}
	var creds installedCredentials
	if err := json.Unmarshal(credBytes, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", credentialsFileName, err)
	}
	if len(creds.Installed.RedirectURIs) == 0 {
		return nil, fmt.Errorf("no redirect URIs in %s", credentialsFileName)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     creds.Installed.ClientID,
		ClientSecret: creds.Installed.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  creds.Installed.RedirectURIs[0],
		Scopes:       []string{gcal.CalendarReadonlyScope},
	}

	tokenBytes, err := a.store.Read(tokenFileName)
	if err != nil {
		log.Errorf("unable to read Google token: %v", err)
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenBytes, &token); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tokenFileName, err)
	}

	return oauthConfig.Client(ctx, &token), nil
}
