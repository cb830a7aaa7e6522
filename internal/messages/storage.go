// Package messages publishes evaluated rolls to a durable chat log.
//
// The log is the publication sink for task checks: every published roll
// becomes one message record, and a pushed roll supersedes its prior
// message by deleting it before the replacement is written.
package messages

import (
	"context"
	"time"
)

// DieRecord is one die of a published roll, flattened for storage.
type DieRecord struct {
	Kind   string `json:"kind"`
	Sides  int    `json:"sides"`
	Value  int    `json:"value"`
	Pushed bool   `json:"pushed,omitempty"`
}

// Record is one durable chat-log message for a published roll.
type Record struct {
	ID         string
	Title      string
	Formula    string
	Successes  int
	PushCount  int
	Visibility string
	Dice       []DieRecord
	CreatedAt  time.Time
}

// Store persists chat-log message records.
type Store interface {
	PutMessage(ctx context.Context, record Record) error
	DeleteMessage(ctx context.Context, messageID string) error
	ListMessages(ctx context.Context, limit int) ([]Record, error)
}
