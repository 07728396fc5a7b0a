package amqp

import (
	"encoding/json"
	"time"
)

// CollectionSyncMessage tells the export worker that a collection changed.
// It carries only the collection name and revision, the worker re-reads the
// CSV from primary storage.
type CollectionSyncMessage struct {
	Collection string    `json:"collection"`
	Revision   int64     `json:"revision"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCollectionSyncMessage(collection string, revision int64) *CollectionSyncMessage {
	return &CollectionSyncMessage{
		Collection: collection,
		Revision:   revision,
		Timestamp:  time.Now(),
	}
}

func (m *CollectionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CollectionSyncMessageFromJSON(data []byte) (*CollectionSyncMessage, error) {
	var msg CollectionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
