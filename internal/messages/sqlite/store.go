// Package sqlite implements the chat-log message store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/zerohour.games/internal/messages"
	"github.com/louisbranch/zerohour.games/internal/messages/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/zerohour.games/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed roll-message persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a message SQLite store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutMessage persists one published roll message.
func (s *Store) PutMessage(ctx context.Context, record messages.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	record.ID = strings.TrimSpace(record.ID)
	record.Visibility = strings.TrimSpace(record.Visibility)
	if record.ID == "" {
		return fmt.Errorf("message id is required")
	}
	if record.Visibility == "" {
		return fmt.Errorf("visibility is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	dice, err := json.Marshal(record.Dice)
	if err != nil {
		return fmt.Errorf("encode dice: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO roll_messages (
	message_id,
	title,
	formula,
	successes,
	push_count,
	visibility,
	dice,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		record.ID,
		record.Title,
		record.Formula,
		record.Successes,
		record.PushCount,
		record.Visibility,
		string(dice),
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put message: %w", err)
	}
	return nil
}

// DeleteMessage removes one message by id. Deleting a missing message is
// not an error; the supersede path must stay idempotent.
func (s *Store) DeleteMessage(ctx context.Context, messageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return fmt.Errorf("message id is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM roll_messages WHERE message_id = ?", messageID,
	); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// ListMessages lists newest-first message records.
func (s *Store) ListMessages(ctx context.Context, limit int) ([]messages.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	message_id,
	title,
	formula,
	successes,
	push_count,
	visibility,
	dice,
	created_at
FROM roll_messages
ORDER BY created_at DESC, message_id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	records := make([]messages.Record, 0, limit)
	for rows.Next() {
		var record messages.Record
		var dice string
		var createdAt int64
		if err := rows.Scan(
			&record.ID,
			&record.Title,
			&record.Formula,
			&record.Successes,
			&record.PushCount,
			&record.Visibility,
			&dice,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if err := json.Unmarshal([]byte(dice), &record.Dice); err != nil {
			return nil, fmt.Errorf("decode dice: %w", err)
		}
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return records, nil
}

var _ messages.Store = (*Store)(nil)
