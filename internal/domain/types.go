package domain

import (
	"time"
)

// MintStatus represents the lifecycle state of an NFT mint
type MintStatus string

const (
	// MintStatusPending means the NFT is queued and waiting for a drain cycle
	MintStatusPending MintStatus = "PENDING"
	// MintStatusProcessing means a mint attempt is currently in flight
	MintStatusProcessing MintStatus = "PROCESSING"
	// MintStatusCompleted means the token landed on chain
	MintStatusCompleted MintStatus = "COMPLETED"
	// MintStatusFailed means all attempts were exhausted or the error was terminal
	MintStatusFailed MintStatus = "FAILED"
	// MintStatusSkipped means the check-in had no usable wallet address
	MintStatusSkipped MintStatus = "SKIPPED"
)

// ActiveMintStatuses are the statuses that count as "already minted or on the
// way" for dedup purposes. A FAILED or SKIPPED row does not block a new mint.
var ActiveMintStatuses = []MintStatus{
	MintStatusPending,
	MintStatusProcessing,
	MintStatusCompleted,
}

// IsTerminal reports whether the status cannot transition further on its own.
// FAILED can still be re-queued explicitly via RetryMint.
func (s MintStatus) IsTerminal() bool {
	return s == MintStatusCompleted || s == MintStatusFailed || s == MintStatusSkipped
}

// MintRequest is a request to enqueue an NFT mint for an event attendee.
// CheckInID is empty for direct mints that are not tied to a check-in.
type MintRequest struct {
	EventID         string
	ExternalEventID string
	Recipient       string
	CheckInID       string
	AttendeeName    string
	AttendeeEmail   string
}

// MintReceipt is the result of a finalized mint transaction
type MintReceipt struct {
	TxHash      string
	BlockNumber uint64
	TokenID     uint64
}

// NotificationKind identifies the trigger points of the notification contract
type NotificationKind string

const (
	NotifyMinted           NotificationKind = "minted"
	NotifyRetry            NotificationKind = "retry"
	NotifyFailed           NotificationKind = "failed"
	NotifyOrganizerSummary NotificationKind = "organizerSummary"
)

// MintNotification is the payload published for minted/retry/failed kinds
type MintNotification struct {
	EventID       string     `json:"event_id"`
	EventName     string     `json:"event_name"`
	NFTID         string     `json:"nft_id"`
	Recipient     string     `json:"recipient"`
	AttendeeName  string     `json:"attendee_name,omitempty"`
	AttendeeEmail string     `json:"attendee_email,omitempty"`
	TxHash        string     `json:"tx_hash,omitempty"`
	TokenID       *uint64    `json:"token_id,omitempty"`
	Attempts      int        `json:"attempts,omitempty"`
	Error         string     `json:"error,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	MintedAt      *time.Time `json:"minted_at,omitempty"`
}

// OrganizerSummary is the payload published after a bulk mint run
type OrganizerSummary struct {
	EventID        string    `json:"event_id"`
	EventName      string    `json:"event_name"`
	TotalAttendees int       `json:"total_attendees"`
	Queued         int       `json:"queued"`
	Duplicates     int       `json:"duplicates"`
	Skipped        int       `json:"skipped"`
	Errors         int       `json:"errors"`
	Timestamp      time.Time `json:"timestamp"`
}

// SyncKind distinguishes the two reconciliation pollers
type SyncKind string

const (
	SyncEvents   SyncKind = "events"
	SyncCheckIns SyncKind = "checkins"
)

// SyncResult aggregates one reconciliation pass for one account
type SyncResult struct {
	New       int `json:"new"`
	Updated   int `json:"updated"`
	Errors    int `json:"errors"`
	Processed int `json:"processed"`
}

// Add merges another result into this one
func (r *SyncResult) Add(other SyncResult) {
	r.New += other.New
	r.Updated += other.Updated
	r.Errors += other.Errors
	r.Processed += other.Processed
}
