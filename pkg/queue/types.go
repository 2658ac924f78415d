package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultQueueName is used when no queue is specified.
const DefaultQueueName = "files_manager"

// Task is the unit of work exchanged through the broker.
type Task struct {
	ID         uuid.UUID       `json:"id"`
	Queue      string          `json:"queue"`
	TaskName   string          `json:"task_name"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RetryCount int8            `json:"retry_count"`
	MaxRetries int8            `json:"max_retries"`
	CreatedAt  time.Time       `json:"created_at"`
}
