package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/ddenisova/targbulk/internal/constant"
	"github.com/ddenisova/targbulk/internal/models"
)

// Client talks to the workforce-management API on behalf of one operator
// session. Implementations must be safe for sequential reuse; the tool
// never issues concurrent calls.
type Client interface {
	ListCalendarTypes(ctx context.Context) ([]models.CalendarType, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateEvent(ctx context.Context, ev models.CalendarEvent) error
	QueryEvents(ctx context.Context, q models.EventQuery) ([]models.RemoteEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

type apiClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client bound to one tenant base URL and API key.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *apiClient) ListCalendarTypes(ctx context.Context) ([]models.CalendarType, error) {
	var types []models.CalendarType
	if err := c.do(ctx, http.MethodGet, constant.PATH_CALENDAR_TYPES, nil, &types); err != nil {
		return nil, errors.Wrap(err, "list calendar types")
	}
	return types, nil
}

func (c *apiClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.do(ctx, http.MethodGet, constant.PATH_EMPLOYEES, nil, &employees); err != nil {
		return nil, errors.Wrap(err, "list employees")
	}
	return employees, nil
}

func (c *apiClient) ListLocations(ctx context.Context) ([]models.Location, error) {
	// The locations endpoint wraps its payload, unlike the other lists.
	var envelope struct {
		Data []models.Location `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, constant.PATH_LOCATIONS, nil, &envelope); err != nil {
		return nil, errors.Wrap(err, "list locations")
	}
	return envelope.Data, nil
}

func (c *apiClient) CreateEvent(ctx context.Context, ev models.CalendarEvent) error {
	return c.do(ctx, http.MethodPost, constant.PATH_CREATE_EVENT, ev, nil)
}

func (c *apiClient) QueryEvents(ctx context.Context, q models.EventQuery) ([]models.RemoteEvent, error) {
	var events []models.RemoteEvent
	if err := c.do(ctx, http.MethodPost, constant.PATH_QUERY_EVENTS, q, &events); err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	return events, nil
}

func (c *apiClient) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, constant.PATH_DELETE_EVENT+"/"+id, nil, nil)
}

func (c *apiClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constant.API_KEY_HEADER, c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrapf(err, "decode %s response", path)
		}
	}
	return nil
}
