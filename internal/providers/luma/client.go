package luma

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/checkmint/checkmint/internal/adapter"
)

// apiKeyHeader is the credential header expected by the source API
const apiKeyHeader = "x-luma-api-key"

// Event represents an event from the source API
type Event struct {
	APIID       string      `json:"api_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartAt     *time.Time  `json:"start_at"`
	EndAt       *time.Time  `json:"end_at"`
	Timezone    string      `json:"timezone"`
	URL         string      `json:"url"`
	CoverURL    string      `json:"cover_url"`
	GeoAddress  *GeoAddress `json:"geo_address_json"`
}

// GeoAddress is the venue block attached to an in-person event
type GeoAddress struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	FullAddress string `json:"full_address"`
}

// Location returns the best available venue description, empty for
// virtual events
func (e Event) Location() string {
	if e.GeoAddress == nil {
		return ""
	}
	if e.GeoAddress.FullAddress != "" {
		return e.GeoAddress.FullAddress
	}
	return e.GeoAddress.Address
}

// eventEntry wraps an event in the list response
type eventEntry struct {
	APIID string `json:"api_id"`
	Event Event  `json:"event"`
}

// eventsResponse represents the calendar list-events response
type eventsResponse struct {
	Entries    []eventEntry `json:"entries"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

// Guest represents a guest from the source API
type Guest struct {
	APIID               string               `json:"api_id"`
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	EthAddress          string               `json:"eth_address"`
	CheckedInAt         *time.Time           `json:"checked_in_at"`
	ApprovalStatus      string               `json:"approval_status"`
	RegistrationAnswers []RegistrationAnswer `json:"registration_answers"`
}

// RegistrationAnswer is a custom registration form answer
type RegistrationAnswer struct {
	Label  string `json:"label"`
	Answer string `json:"answer"`
}

// WalletAddress resolves the guest's wallet, preferring the profile field
// over a registration form answer mentioning a wallet
func (g *Guest) WalletAddress() string {
	if g.EthAddress != "" {
		return g.EthAddress
	}
	for _, answer := range g.RegistrationAnswers {
		label := strings.ToLower(answer.Label)
		if strings.Contains(label, "wallet") || strings.Contains(label, "address") {
			if addr := strings.TrimSpace(answer.Answer); addr != "" {
				return addr
			}
		}
	}
	return ""
}

// guestEntry wraps a guest in the list response
type guestEntry struct {
	APIID string `json:"api_id"`
	Guest Guest  `json:"guest"`
}

// guestsResponse represents the event get-guests response
type guestsResponse struct {
	Entries    []guestEntry `json:"entries"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

// selfResponse represents the user get-self response
type selfResponse struct {
	APIID string `json:"api_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventsPage is one page of events with pagination state
type EventsPage struct {
	Events     []Event
	HasMore    bool
	NextCursor string
}

// CheckInsPage is one page of checked-in guests with pagination state
type CheckInsPage struct {
	Guests     []Guest
	HasMore    bool
	NextCursor string
}

// Client defines the interface for source API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/luma_client.go -package=mocks -mock_names=Client=MockLumaClient,ClientFactory=MockLumaClientFactory
type Client interface {
	// ListEvents fetches one page of calendar events
	ListEvents(ctx context.Context, cursor string, limit int) (*EventsPage, error)

	// ListCheckIns fetches one page of guests for an event, filtered to
	// those who actually checked in
	ListCheckIns(ctx context.Context, eventAPIID string, cursor string, limit int) (*CheckInsPage, error)

	// VerifyCredentials checks that the API key is accepted
	VerifyCredentials(ctx context.Context) error
}

// ClientFactory creates clients bound to per-account credentials
type ClientFactory interface {
	New(apiKey string) Client
}

// LumaClient implements the source API client
type LumaClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	apiKey     string
}

// NewClient creates a new source API client for one account credential
func NewClient(httpClient adapter.HTTPClient, apiURL string, apiKey string) Client {
	return &LumaClient{
		httpClient: httpClient,
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		apiKey:     apiKey,
	}
}

type clientFactory struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewClientFactory creates a factory producing clients that share one HTTP
// client but carry per-account API keys
func NewClientFactory(httpClient adapter.HTTPClient, apiURL string) ClientFactory {
	return &clientFactory{httpClient: httpClient, apiURL: apiURL}
}

func (f *clientFactory) New(apiKey string) Client {
	return NewClient(f.httpClient, f.apiURL, apiKey)
}

func (c *LumaClient) headers() map[string]string {
	return map[string]string{apiKeyHeader: c.apiKey}
}

// ListEvents fetches one page of calendar events
func (c *LumaClient) ListEvents(ctx context.Context, cursor string, limit int) (*EventsPage, error) {
	params := url.Values{}
	if cursor != "" {
		params.Set("pagination_cursor", cursor)
	}
	if limit > 0 {
		params.Set("pagination_limit", strconv.Itoa(limit))
	}

	endpoint := c.apiURL + "/calendar/list-events"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var resp eventsResponse
	if err := c.httpClient.Get(ctx, endpoint, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	page := &EventsPage{
		Events:     make([]Event, 0, len(resp.Entries)),
		HasMore:    resp.HasMore,
		NextCursor: resp.NextCursor,
	}
	for _, entry := range resp.Entries {
		event := entry.Event
		if event.APIID == "" {
			event.APIID = entry.APIID
		}
		page.Events = append(page.Events, event)
	}
	return page, nil
}

// ListCheckIns fetches one page of guests for an event. Guests without a
// check-in timestamp are dropped.
func (c *LumaClient) ListCheckIns(ctx context.Context, eventAPIID string, cursor string, limit int) (*CheckInsPage, error) {
	params := url.Values{}
	params.Set("event_api_id", eventAPIID)
	if cursor != "" {
		params.Set("pagination_cursor", cursor)
	}
	if limit > 0 {
		params.Set("pagination_limit", strconv.Itoa(limit))
	}

	endpoint := c.apiURL + "/event/get-guests?" + params.Encode()

	var resp guestsResponse
	if err := c.httpClient.Get(ctx, endpoint, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}

	page := &CheckInsPage{
		Guests:     make([]Guest, 0, len(resp.Entries)),
		HasMore:    resp.HasMore,
		NextCursor: resp.NextCursor,
	}
	for _, entry := range resp.Entries {
		guest := entry.Guest
		if guest.APIID == "" {
			guest.APIID = entry.APIID
		}
		if guest.CheckedInAt == nil {
			continue
		}
		page.Guests = append(page.Guests, guest)
	}
	return page, nil
}

// VerifyCredentials checks that the API key is accepted
func (c *LumaClient) VerifyCredentials(ctx context.Context) error {
	var resp selfResponse
	if err := c.httpClient.Get(ctx, c.apiURL+"/user/get-self", c.headers(), &resp); err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}
	return nil
}
