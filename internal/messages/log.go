package messages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/zerohour.games/internal/platform/id"
	"github.com/louisbranch/zerohour.games/internal/yearzero"
	"github.com/louisbranch/zerohour.games/internal/yearzero/check"
)

// Log adapts a message store to the check publisher contract.
type Log struct {
	store Store
	clock func() time.Time
}

// NewLog creates a chat log backed by the provided store.
func NewLog(store Store) (*Log, error) {
	if store == nil {
		return nil, errors.New("message store is required")
	}
	return &Log{store: store, clock: time.Now}, nil
}

// Publish records an evaluated roll and returns the new message id.
func (l *Log) Publish(ctx context.Context, roll yearzero.Roll, visibility check.Visibility) (string, error) {
	messageID, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("new message id: %w", err)
	}

	record := Record{
		ID:         messageID,
		Title:      roll.Name,
		Formula:    roll.Formula(),
		Successes:  roll.Successes(),
		PushCount:  roll.PushCount,
		Visibility: visibility.String(),
		Dice:       diceRecords(roll),
		CreatedAt:  l.clock().UTC(),
	}
	if err := l.store.PutMessage(ctx, record); err != nil {
		return "", fmt.Errorf("put message: %w", err)
	}
	return messageID, nil
}

// Delete removes a superseded message from the log.
func (l *Log) Delete(ctx context.Context, messageID string) error {
	if err := l.store.DeleteMessage(ctx, messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// List returns the newest messages first, up to limit.
func (l *Log) List(ctx context.Context, limit int) ([]Record, error) {
	return l.store.ListMessages(ctx, limit)
}

func diceRecords(roll yearzero.Roll) []DieRecord {
	records := make([]DieRecord, 0, len(roll.Dice))
	for _, d := range roll.Dice {
		records = append(records, DieRecord{
			Kind:   kindLabel(d.Kind),
			Sides:  d.Size.Sides(),
			Value:  d.Value,
			Pushed: d.Pushed,
		})
	}
	return records
}

func kindLabel(kind yearzero.DieKind) string {
	switch kind {
	case yearzero.KindAmmo:
		return "ammo"
	case yearzero.KindLocation:
		return "location"
	default:
		return "base"
	}
}

var _ check.Publisher = (*Log)(nil)
