package events

import (
	"testing"
	"time"
)

func TestTransactionUpdatedJSONRoundTrip(t *testing.T) {
	msg := NewTransactionUpdated("TRX007", 12)
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := TransactionUpdatedFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != "TRX007" || back.Version != 12 {
		t.Fatalf("round trip: %+v", back)
	}
	if back.Timestamp.Sub(msg.Timestamp) > time.Second {
		t.Fatalf("timestamp drifted: %v vs %v", back.Timestamp, msg.Timestamp)
	}
}

func TestTransactionUpdatedFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionUpdatedFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}
