package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/calendar"
)

const calendarBaseURL = "https://www.googleapis.com/calendar/v3"

// CalendarClient talks to the Google Calendar API. It implements
// calendar.Client.
type CalendarClient struct {
	httpClient *http.Client
	location   *time.Location
}

func NewCalendarClient(ctx context.Context, keyFile, timezone string) (*CalendarClient, error) {
	httpClient, err := newServiceAccountClient(ctx, keyFile, scopeCalendar)
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return &CalendarClient{httpClient: httpClient, location: location}, nil
}

// Wire types, shaped after the Calendar v3 resources.

type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type eventResource struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Start       *eventTime `json:"start,omitempty"`
	End         *eventTime `json:"end,omitempty"`
}

type calendarResource struct {
	ID       string `json:"id,omitempty"`
	Summary  string `json:"summary"`
	TimeZone string `json:"timeZone,omitempty"`
}

type aclRule struct {
	Scope struct {
		Type  string `json:"type"`
		Value string `json:"value,omitempty"`
	} `json:"scope"`
	Role string `json:"role"`
}

// ListEvents returns the events on the given local calendar date, ordered
// by start time so duplicate handling is deterministic for a given remote
// state.
func (c *CalendarClient) ListEvents(ctx context.Context, calendarID string, date time.Time) ([]calendar.Event, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := url.Values{}
	query.Set("timeMin", dayStart.Format(time.RFC3339))
	query.Set("timeMax", dayEnd.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", calendarBaseURL, url.PathEscape(calendarID), query.Encode())
	var payload struct {
		Items []eventResource `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	events := make([]calendar.Event, 0, len(payload.Items))
	for _, item := range payload.Items {
		events = append(events, c.toEvent(item))
	}
	return events, nil
}

func (c *CalendarClient) CreateEvent(ctx context.Context, calendarID string, desc calendar.EventDescriptor) (string, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events", calendarBaseURL, url.PathEscape(calendarID))
	var created eventResource
	if err := c.call(ctx, http.MethodPost, endpoint, c.toResource(desc), &created); err != nil {
		return "", err
	}
	slog.Info("Event created", "summary", desc.Summary, "id", created.ID)
	return created.ID, nil
}

func (c *CalendarClient) UpdateEvent(ctx context.Context, calendarID string, eventID string, desc calendar.EventDescriptor) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s", calendarBaseURL, url.PathEscape(calendarID), url.PathEscape(eventID))
	if err := c.call(ctx, http.MethodPut, endpoint, c.toResource(desc), nil); err != nil {
		return err
	}
	slog.Info("Event updated", "id", eventID)
	return nil
}

func (c *CalendarClient) DeleteEvent(ctx context.Context, calendarID string, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s", calendarBaseURL, url.PathEscape(calendarID), url.PathEscape(eventID))
	if err := c.call(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return err
	}
	slog.Info("Event deleted", "id", eventID)
	return nil
}

func (c *CalendarClient) ListCalendars(ctx context.Context) ([]calendar.CalendarInfo, error) {
	endpoint := calendarBaseURL + "/users/me/calendarList"
	var payload struct {
		Items []calendarResource `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	infos := make([]calendar.CalendarInfo, 0, len(payload.Items))
	for _, item := range payload.Items {
		infos = append(infos, calendar.CalendarInfo{ID: item.ID, Summary: item.Summary, Timezone: item.TimeZone})
	}
	return infos, nil
}

func (c *CalendarClient) CreateCalendar(ctx context.Context, name string, timezone string) (string, error) {
	var created calendarResource
	body := calendarResource{Summary: name, TimeZone: timezone}
	if err := c.call(ctx, http.MethodPost, calendarBaseURL+"/calendars", body, &created); err != nil {
		return "", err
	}
	slog.Info("Calendar created", "name", name, "id", created.ID)
	return created.ID, nil
}

func (c *CalendarClient) ShareCalendar(ctx context.Context, calendarID string, email string, role string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/acl", calendarBaseURL, url.PathEscape(calendarID))
	var rule aclRule
	rule.Scope.Type = "user"
	rule.Scope.Value = email
	rule.Role = role
	return c.call(ctx, http.MethodPost, endpoint, rule, nil)
}

// ListShares returns the emails of users the calendar is shared with.
func (c *CalendarClient) ListShares(ctx context.Context, calendarID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/acl", calendarBaseURL, url.PathEscape(calendarID))
	var payload struct {
		Items []aclRule `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	var emails []string
	for _, item := range payload.Items {
		if item.Scope.Type == "user" && item.Scope.Value != "" {
			emails = append(emails, item.Scope.Value)
		}
	}
	return emails, nil
}

func (c *CalendarClient) toResource(desc calendar.EventDescriptor) eventResource {
	resource := eventResource{
		Summary:     desc.Summary,
		Description: desc.Description,
	}
	if desc.AllDay() {
		resource.Start = &eventTime{Date: desc.AllDayDate.Format("2006-01-02")}
		resource.End = &eventTime{Date: desc.AllDayDate.AddDate(0, 0, 1).Format("2006-01-02")}
		return resource
	}
	resource.Start = &eventTime{DateTime: desc.Start.In(c.location).Format(time.RFC3339), TimeZone: desc.Timezone}
	resource.End = &eventTime{DateTime: desc.End.In(c.location).Format(time.RFC3339), TimeZone: desc.Timezone}
	return resource
}

func (c *CalendarClient) toEvent(item eventResource) calendar.Event {
	event := calendar.Event{
		ID:          item.ID,
		Summary:     item.Summary,
		Description: item.Description,
	}
	if item.Start != nil {
		if item.Start.Date != "" {
			if parsed, err := time.ParseInLocation("2006-01-02", item.Start.Date, time.UTC); err == nil {
				event.AllDayDate = &parsed
			}
		} else if parsed, err := time.Parse(time.RFC3339, item.Start.DateTime); err == nil {
			local := parsed.In(c.location)
			event.Start = &local
		}
	}
	if item.End != nil {
		if item.End.Date != "" {
			if parsed, err := time.ParseInLocation("2006-01-02", item.End.Date, time.UTC); err == nil {
				event.AllDayEnd = &parsed
			}
		} else if parsed, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
			local := parsed.In(c.location)
			event.End = &local
		}
	}
	return event
}

// call performs one API request. Non-2xx responses wrap
// calendar.ErrRemoteOperation so callers can classify them.
func (c *CalendarClient) call(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", calendar.ErrRemoteOperation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: %s: %s", calendar.ErrRemoteOperation, method, endpoint, resp.Status, detail)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
