package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Event represents the events table - one row per event mirrored from the
// event source API
type Event struct {
	// ID is the internal UUID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// AccountID links the event to its owning account
	AccountID string `gorm:"column:account_id;not null;type:text;index"`
	// ExternalID is the event identifier in the source API
	ExternalID string `gorm:"column:external_id;not null;uniqueIndex;type:text"`
	// Name is the event title
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the event description, possibly empty
	Description string `gorm:"column:description;type:text"`
	// StartAt is the scheduled start of the event
	StartAt *time.Time `gorm:"column:start_at"`
	// EndAt is the scheduled end of the event
	EndAt *time.Time `gorm:"column:end_at"`
	// Timezone is the IANA timezone name the event is scheduled in
	Timezone string `gorm:"column:timezone;type:text"`
	// URL is the public event page
	URL string `gorm:"column:url;type:text"`
	// CoverURL is the event cover image, used for token metadata
	CoverURL string `gorm:"column:cover_url;type:text"`
	// Location is the venue description, empty for virtual events
	Location string `gorm:"column:location;type:text"`
	// NFTTemplate optionally overrides and extends the token metadata
	// minted for attendees
	NFTTemplate datatypes.JSON `gorm:"column:nft_template;type:jsonb"`
	// MintEnabled controls whether check-ins for this event enqueue mints
	MintEnabled bool `gorm:"column:mint_enabled;not null;default:true"`
	// SyncError holds the last check-in sync failure for this event, nil
	// when the most recent pass succeeded
	SyncError *string `gorm:"column:sync_error;type:text"`
	// Raw preserves the source API payload for auditing
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was first synced
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	// UpdatedAt is the timestamp of the last sync that touched this row
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`

	// Associations
	CheckIns []CheckIn `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	NFTs     []NFT     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}
