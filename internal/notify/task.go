// Package notify is the asynchronous notification dispatcher: the chat core
// enqueues push tasks onto a RabbitMQ queue and a separate worker process
// drains them and delivers through Telegram. The core never waits on a
// result.
package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QueueName is the durable queue carrying notification tasks.
const QueueName = "chat.notifications"

// Task is one queued push notification.
type Task struct {
	ID          string    `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Text        string    `json:"text"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

// NewTask builds a task with a fresh ID for the given recipient.
func NewTask(recipientID int64, text string) Task {
	return Task{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Text:        text,
		EnqueuedAt:  time.Now().UTC(),
	}
}

// Encode serializes the task for publishing.
func (t Task) Encode() ([]byte, error) {
	return json.Marshal(t)
}

// DecodeTask parses a task from a queue delivery body.
func DecodeTask(body []byte) (Task, error) {
	var t Task
	err := json.Unmarshal(body, &t)
	return t, err
}
