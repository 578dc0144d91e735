package amqp

import (
	"encoding/json"
	"time"
)

// RecordKind identifies which collection changed.
type RecordKind string

const (
	KindTransaction RecordKind = "transaction"
	KindGoal        RecordKind = "goal"
	KindBudget      RecordKind = "budget"
)

// RecordChangedMessage notifies the mirror worker that a namespace's
// collection was rewritten. It carries no record data; the worker reloads
// the snapshot from storage, which keeps the message valid however many
// writes coalesce behind it.
type RecordChangedMessage struct {
	Kind      RecordKind `json:"kind"`
	Namespace string     `json:"namespace"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewRecordChangedMessage(kind RecordKind, namespace string) *RecordChangedMessage {
	return &RecordChangedMessage{
		Kind:      kind,
		Namespace: namespace,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangedMessageFromJSON(data []byte) (*RecordChangedMessage, error) {
	var msg RecordChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
