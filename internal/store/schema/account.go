package schema

import (
	"time"
)

// Account represents the accounts table - one row per connected event source
// account whose events and check-ins are reconciled
type Account struct {
	// ID is the internal UUID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Name is a human readable label for the account
	Name string `gorm:"column:name;not null;type:text"`
	// APIKey is the credential used against the event source API
	APIKey string `gorm:"column:api_key;not null;uniqueIndex;type:text"`
	// Active controls whether the reconciler picks this account up
	Active bool `gorm:"column:active;not null;default:true"`
	// LastEventsSyncAt records the completion time of the last events pass
	LastEventsSyncAt *time.Time `gorm:"column:last_events_sync_at"`
	// LastCheckInsSyncAt records the completion time of the last check-ins pass
	LastCheckInsSyncAt *time.Time `gorm:"column:last_checkins_sync_at"`
	// SyncError holds the last account-level reconciliation failure, nil
	// when the most recent pass succeeded
	SyncError *string `gorm:"column:sync_error;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	// UpdatedAt is the timestamp of the last modification
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`

	// Associations
	Events []Event `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
