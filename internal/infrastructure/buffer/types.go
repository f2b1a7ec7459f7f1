package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	KindActivity = "activity"
)

// Item is a write that could not reach primary storage and waits for replay.
type Item struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"task_id"`
	Kind      string          `json:"kind"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Kind == "" {
		i.Kind = KindActivity
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
