package domain

import "time"

// Event types
const (
	EventTypeAccountLocked  = "account.locked"
	EventTypeBatchCompleted = "batch.completed"
)

// Aggregate types
const (
	AggregateTypeAccount = "account"
	AggregateTypeBatch   = "batch"
)

// Event represents a notification emitted after a batch run for
// downstream consumers.
type Event struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
}

// AccountLockedEvent payload
type AccountLockedEvent struct {
	ClientID  uint16 `json:"client_id"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	RunID     string `json:"run_id"`
}

// BatchCompletedEvent payload
type BatchCompletedEvent struct {
	RunID           string `json:"run_id"`
	Transactions    int64  `json:"transactions"`
	Accounts        int    `json:"accounts"`
	LockedAccounts  int    `json:"locked_accounts"`
	DurationSeconds string `json:"duration_seconds"`
}
