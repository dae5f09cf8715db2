package events

import (
	"encoding/json"
	"time"
)

// TransactionUpdated is published after every successful store update. It
// carries only the id and store version; consumers read the current state
// from the shared snapshot.
type TransactionUpdated struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionUpdated(id string, version int64) *TransactionUpdated {
	return &TransactionUpdated{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *TransactionUpdated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionUpdatedFromJSON(data []byte) (*TransactionUpdated, error) {
	var msg TransactionUpdated
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
