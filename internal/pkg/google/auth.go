// Package google implements the external Google collaborators: the Sheets
// grid source and the Calendar client. Auth, transport and token refresh
// live here, behind the narrow interfaces the core consumes.
package google

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

const (
	scopeSheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	scopeCalendar       = "https://www.googleapis.com/auth/calendar"
)

// newServiceAccountClient builds an HTTP client authenticated with the
// service account key file using the two-legged JWT flow. The returned
// client refreshes tokens transparently.
func newServiceAccountClient(ctx context.Context, keyFile string, scopes ...string) (*http.Client, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(key, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account file: %w", err)
	}
	return conf.Client(ctx), nil
}
