package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the API reports that the requested event does not exist
var ErrNotFound = errors.New("not found")

// APIError is a non-success answer from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("events API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("events API returned status %d: %s", e.StatusCode, e.Message)
}

// Event is an event as returned by the list, search and detail endpoints.
// Detail-only fields are zero in list results.
type Event struct {
	EventID             int64           `json:"event_id"`
	EventName           string          `json:"event_name"`
	Description         string          `json:"description"`
	DetailedDescription string          `json:"detailed_description"`
	EventDate           string          `json:"event_date"`
	EventTime           *string         `json:"event_time"`
	Location            string          `json:"location"`
	City                string          `json:"city"`
	Address             string          `json:"address"`
	TicketPrice         decimal.Decimal `json:"ticket_price"`
	IsFree              bool            `json:"is_free"`
	ImageURL            string          `json:"image_url"`
	Status              string          `json:"status"`
	IsSuspended         bool            `json:"is_suspended"`
	FundraisingGoal     decimal.Decimal `json:"fundraising_goal"`
	CurrentFunds        decimal.Decimal `json:"current_funds"`
	MaxParticipants     *int            `json:"max_participants"`
	CurrentParticipants int             `json:"current_participants"`
	CategoryID          int64           `json:"category_id"`
	OrganizationID      int64           `json:"organization_id"`

	CategoryName            string `json:"category_name"`
	CategoryDescription     string `json:"category_description"`
	OrganizationName        string `json:"organization_name"`
	OrganizationDescription string `json:"organization_description"`
	ContactEmail            string `json:"contact_email"`
	ContactPhone            string `json:"contact_phone"`
	Website                 string `json:"website"`
}

// Category is an event category
type Category struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}

// SearchFilter holds user-entered search criteria; blank fields are not sent
type SearchFilter struct {
	Date     string
	City     string
	Category string
}

// Values encodes the filter as query parameters, omitting blank fields
func (f SearchFilter) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(f.Date); s != "" {
		v.Set("date", s)
	}
	if s := strings.TrimSpace(f.City); s != "" {
		v.Set("city", s)
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		v.Set("category", s)
	}
	return v
}

// AppliedFilters is the filter echo of a search response; nil means not applied
type AppliedFilters struct {
	Date     *string `json:"date"`
	City     *string `json:"city"`
	Category *string `json:"category"`
}

// SearchResult is a search response
type SearchResult struct {
	Events  []Event
	Count   int
	Filters AppliedFilters
}

// EventsClient reads the charity events API
type EventsClient interface {
	ListEvents(ctx context.Context) ([]Event, error)
	SearchEvents(ctx context.Context, filter SearchFilter) (*SearchResult, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListCities(ctx context.Context) ([]string, error)
}

// HTTPEventsClient implements EventsClient using HTTP
type HTTPEventsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPEventsClient creates a client for the API rooted at baseURL, e.g. http://localhost:3000/api
func NewHTTPEventsClient(baseURL string, timeout time.Duration) *HTTPEventsClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPEventsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Filters *AppliedFilters `json:"filters"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// ListEvents fetches the publicly listed events
func (c *HTTPEventsClient) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if _, err := c.get(ctx, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SearchEvents fetches events matching filter
func (c *HTTPEventsClient) SearchEvents(ctx context.Context, filter SearchFilter) (*SearchResult, error) {
	result := &SearchResult{}
	env, err := c.get(ctx, "/events/search", filter.Values(), &result.Events)
	if err != nil {
		return nil, err
	}
	result.Count = env.Count
	if env.Filters != nil {
		result.Filters = *env.Filters
	}
	return result, nil
}

// GetEvent fetches one event with full detail
func (c *HTTPEventsClient) GetEvent(ctx context.Context, id string) (*Event, error) {
	event := &Event{}
	if _, err := c.get(ctx, "/events/"+url.PathEscape(id), nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListCategories fetches all categories
func (c *HTTPEventsClient) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if _, err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListCities fetches the cities that have events
func (c *HTTPEventsClient) ListCities(ctx context.Context) ([]string, error) {
	var cities []string
	if _, err := c.get(ctx, "/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *HTTPEventsClient) get(ctx context.Context, path string, query url.Values, out interface{}) (*envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return &env, nil
}
