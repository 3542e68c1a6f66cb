package messages

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// appleEpoch is the zero point of Messages database timestamps
// (seconds or nanoseconds since 2001-01-01 00:00:00 UTC).
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultChatDBPath returns the standard Messages database location.
func DefaultChatDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Messages", "chat.db")
}

// ChatDB reads message history directly from the Messages SQLite database.
type ChatDB struct {
	db *sql.DB
}

// OpenChatDB opens the database read-only. The caller owns Close.
func OpenChatDB(path string) (*ChatDB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &ChatDB{db: db}, nil
}

func (c *ChatDB) Close() error { return c.db.Close() }

// Messages returns up to limit messages for the chat with the given GUID,
// newest first. A beforeID > 0 restricts results to rows older than that id,
// which lets callers page backwards through history.
func (c *ChatDB) Messages(ctx context.Context, chatGUID string, limit int, beforeID int64) ([]Message, error) {
	query := `
		SELECT m.ROWID, COALESCE(m.text, ''), m.date, m.is_from_me, COALESCE(h.id, '')
		FROM message m
		JOIN chat_message_join cmj ON cmj.message_id = m.ROWID
		JOIN chat c ON c.ROWID = cmj.chat_id
		LEFT JOIN handle h ON h.ROWID = m.handle_id
		WHERE c.guid = ?`
	args := []any{chatGUID}
	if beforeID > 0 {
		query += ` AND m.ROWID < ?`
		args = append(args, beforeID)
	}
	query += ` ORDER BY m.date DESC LIMIT ?`
	args = append(args, limit)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			rowID    int64
			text     string
			date     int64
			isFromMe int
			handle   string
		)
		if err := rows.Scan(&rowID, &text, &date, &isFromMe, &handle); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m := Message{
			ID:       strconv.FormatInt(rowID, 10),
			Text:     text,
			Date:     appleTimestampToISO(date),
			IsFromMe: isFromMe == 1,
			Sender:   handle,
		}
		if m.IsFromMe {
			m.Sender = "me"
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	if out == nil {
		out = []Message{}
	}
	return out, nil
}

// appleTimestampToISO converts a chat.db date column to ISO 8601 UTC.
// Older databases store seconds since the Apple epoch, newer ones
// nanoseconds; anything too large to be seconds is treated as nanoseconds.
func appleTimestampToISO(ts int64) string {
	if ts == 0 {
		return ""
	}
	var t time.Time
	if ts > 1e12 {
		t = appleEpoch.Add(time.Duration(ts) * time.Nanosecond)
	} else {
		t = appleEpoch.Add(time.Duration(ts) * time.Second)
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
