package luma_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmint/checkmint/internal/mocks"
	"github.com/checkmint/checkmint/internal/providers/luma"
)

func respondWith(payload string) func(ctx context.Context, url string, headers map[string]string, result interface{}) error {
	return func(ctx context.Context, url string, headers map[string]string, result interface{}) error {
		return json.Unmarshal([]byte(payload), result)
	}
}

func TestListEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := luma.NewClient(mockHTTP, "https://api.lu.ma/public/v1", "test-key")

	ctx := context.Background()
	expectedURL := "https://api.lu.ma/public/v1/calendar/list-events?pagination_limit=50"
	expectedHeaders := map[string]string{"x-luma-api-key": "test-key"}

	mockHTTP.EXPECT().
		Get(ctx, expectedURL, expectedHeaders, gomock.Any()).
		DoAndReturn(respondWith(`{
			"entries": [
				{"api_id": "evt-1", "event": {"name": "GopherCon", "timezone": "Europe/Berlin"}},
				{"api_id": "evt-2", "event": {"api_id": "evt-2", "name": "Meetup"}}
			],
			"has_more": true,
			"next_cursor": "cur-2"
		}`))

	page, err := client.ListEvents(ctx, "", 50)
	require.NoError(t, err)
	require.Len(t, page.Events, 2)

	// Entry-level api_id backfills a missing event api_id
	assert.Equal(t, "evt-1", page.Events[0].APIID)
	assert.Equal(t, "GopherCon", page.Events[0].Name)
	assert.Equal(t, "evt-2", page.Events[1].APIID)
	assert.True(t, page.HasMore)
	assert.Equal(t, "cur-2", page.NextCursor)
}

func TestListCheckInsFiltersUncheckedGuests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := luma.NewClient(mockHTTP, "https://api.lu.ma/public/v1", "test-key")

	ctx := context.Background()
	expectedURL := "https://api.lu.ma/public/v1/event/get-guests?event_api_id=evt-1&pagination_cursor=cur-1"

	mockHTTP.EXPECT().
		Get(ctx, expectedURL, gomock.Any(), gomock.Any()).
		DoAndReturn(respondWith(`{
			"entries": [
				{"api_id": "g-1", "guest": {"name": "Ada", "checked_in_at": "2026-04-01T18:00:00Z", "eth_address": "0xabc"}},
				{"api_id": "g-2", "guest": {"name": "Bob"}}
			],
			"has_more": false
		}`))

	page, err := client.ListCheckIns(ctx, "evt-1", "cur-1", 0)
	require.NoError(t, err)

	// Guests without a check-in timestamp are dropped
	require.Len(t, page.Guests, 1)
	assert.Equal(t, "g-1", page.Guests[0].APIID)
	assert.Equal(t, "0xabc", page.Guests[0].EthAddress)
	assert.False(t, page.HasMore)
}

func TestGuestWalletAddress(t *testing.T) {
	// Profile field wins over registration answers
	guest := luma.Guest{
		EthAddress: "0xprofile",
		RegistrationAnswers: []luma.RegistrationAnswer{
			{Label: "Wallet address", Answer: "0xform"},
		},
	}
	assert.Equal(t, "0xprofile", guest.WalletAddress())

	// Fall back to a registration answer mentioning a wallet
	guest.EthAddress = ""
	assert.Equal(t, "0xform", guest.WalletAddress())

	// No wallet anywhere
	assert.Empty(t, (&luma.Guest{}).WalletAddress())
}

func TestVerifyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := luma.NewClient(mockHTTP, "https://api.lu.ma/public/v1", "test-key")

	ctx := context.Background()
	mockHTTP.EXPECT().
		Get(ctx, "https://api.lu.ma/public/v1/user/get-self", gomock.Any(), gomock.Any()).
		DoAndReturn(respondWith(`{"api_id": "usr-1", "name": "Org"}`))

	assert.NoError(t, client.VerifyCredentials(ctx))
}
