// Package messages exposes the macOS Messages app: conversation listing,
// message history and sending.
//
// History reads go straight to the Messages database (~/Library/Messages/
// chat.db) when it is readable, because AppleScript's message enumeration is
// slow and loses metadata; the AppleScript path remains as a fallback.
package messages

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// LastMessage is the preview attached to a conversation listing entry.
type LastMessage struct {
	Text   string `json:"text"`
	Date   string `json:"date"`
	Sender string `json:"sender"`
}

// Conversation is one chat from the Messages app.
type Conversation struct {
	ID           string      `json:"id"`
	DisplayName  string      `json:"display_name"`
	IsGroupChat  bool        `json:"is_group_chat"`
	LastMessage  LastMessage `json:"last_message"`
	Participants []string    `json:"participants"`
	UnreadCount  int         `json:"unread_count"`
}

// Message is one message from a conversation. Date is ISO 8601 when it came
// from the database, AppleScript's date text otherwise.
type Message struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Date     string `json:"date"`
	Sender   string `json:"sender"`
	IsFromMe bool   `json:"is_from_me"`
}

// Metadata carries counters and the access path used.
type Metadata struct {
	Count           int    `json:"count,omitempty"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
	Source          string `json:"source,omitempty"` // "database" or "applescript"
}

// ConversationsResult is the response shape of messages_list_conversations.
type ConversationsResult struct {
	Success       bool           `json:"success"`
	Conversations []Conversation `json:"conversations"`
	Message       string         `json:"message"`
	Metadata      *Metadata      `json:"metadata,omitempty"`
	Error         string         `json:"error,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// MessagesResult is the response shape of messages_get.
type MessagesResult struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// SendResult is the response shape of messages_send.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func conversationSchema() applescript.Schema {
	return applescript.Schema{
		Fields: []applescript.FieldSpec{
			{Name: "id", Kind: applescript.FieldText},
			{Name: "display_name", Kind: applescript.FieldText},
			{Name: "is_group_chat", Kind: applescript.FieldBool},
			{Name: "last_message", Kind: applescript.FieldText},
		},
		MinFields: 4,
	}
}

// ListConversations returns every known chat with a last-message preview.
func ListConversations(ctx context.Context, r *applescript.Runner) ConversationsResult {
	res, err := r.Execute(ctx, listConversationsScript, nil, r.Timeout)
	if err != nil {
		return ConversationsResult{Success: false, Conversations: []Conversation{}, Message: "Failed to get conversations from Messages app", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds()}
	if !res.Success {
		return ConversationsResult{Success: false, Conversations: []Conversation{}, Message: "Error listing conversations", Error: res.Err.Error(), Metadata: meta}
	}

	records, _, diags := applescript.DecodeRecords(res.Stdout, conversationSchema())
	out := ConversationsResult{
		Success:       true,
		Conversations: make([]Conversation, 0, len(records)),
		Message:       "Successfully retrieved conversations from Messages app",
		Metadata:      meta,
	}
	for _, rec := range records {
		conv := Conversation{Participants: []string{}}
		conv.ID, _ = rec["id"].(string)
		conv.DisplayName, _ = rec["display_name"].(string)
		conv.IsGroupChat, _ = rec["is_group_chat"].(bool)
		conv.LastMessage.Text, _ = rec["last_message"].(string)
		out.Conversations = append(out.Conversations, conv)
	}
	for _, d := range diags {
		logging.Warn("messages", "%s", d)
		out.Warnings = append(out.Warnings, d.String())
	}
	meta.Count = len(out.Conversations)
	return out
}

// Get returns up to limit messages from one conversation, newest first.
// beforeID (a database row id) pages further back. The database path is
// preferred; dbPath may be empty to use the default location.
func Get(ctx context.Context, r *applescript.Runner, dbPath, conversationID string, limit int, beforeID int64) MessagesResult {
	if strings.TrimSpace(conversationID) == "" {
		return MessagesResult{Success: false, Messages: []Message{}, Message: "Invalid conversation ID", Error: "conversation_id cannot be empty"}
	}
	if limit <= 0 {
		limit = 50
	}

	if dbPath == "" {
		dbPath = DefaultChatDBPath()
	}
	if _, err := os.Stat(dbPath); err == nil {
		start := time.Now()
		db, err := OpenChatDB(dbPath)
		if err == nil {
			defer db.Close()
			msgs, err := db.Messages(ctx, conversationID, limit, beforeID)
			if err == nil {
				return MessagesResult{
					Success:  true,
					Messages: msgs,
					Message:  fmt.Sprintf("Retrieved %d message(s)", len(msgs)),
					Metadata: &Metadata{
						Count:           len(msgs),
						ExecutionTimeMS: time.Since(start).Milliseconds(),
						Source:          "database",
					},
				}
			}
			logging.Warn("messages", "database query failed, falling back to AppleScript: %v", err)
		} else {
			logging.Warn("messages", "cannot open %s, falling back to AppleScript: %v", dbPath, err)
		}
	}

	return getWithAppleScript(ctx, r, conversationID, limit)
}

// getWithAppleScript is the fallback history path for systems where chat.db
// is not readable (Full Disk Access not granted).
func getWithAppleScript(ctx context.Context, r *applescript.Runner, conversationID string, limit int) MessagesResult {
	res, err := r.Execute(ctx, getMessagesScript, map[string]applescript.Value{
		"targetChatId": applescript.String(conversationID),
		"msgLimit":     applescript.Int(int64(limit)),
	}, r.Timeout)
	if err != nil {
		return MessagesResult{Success: false, Messages: []Message{}, Message: "Failed to retrieve messages", Error: err.Error()}
	}
	meta := &Metadata{ExecutionTimeMS: res.Elapsed.Milliseconds(), Source: "applescript"}
	if !res.Success {
		return MessagesResult{Success: false, Messages: []Message{}, Message: "Error retrieving messages", Error: res.Err.Error(), Metadata: meta}
	}

	records, _, _ := applescript.DecodeRecords(res.Stdout, applescript.Schema{
		Fields: []applescript.FieldSpec{
			{Name: "id", Kind: applescript.FieldText},
			{Name: "text", Kind: applescript.FieldText},
			{Name: "date", Kind: applescript.FieldDate},
			{Name: "sender", Kind: applescript.FieldText},
		},
		MinFields: 4,
	})
	msgs := make([]Message, 0, len(records))
	for _, rec := range records {
		var m Message
		m.ID, _ = rec["id"].(string)
		m.Text, _ = rec["text"].(string)
		m.Date, _ = rec["date"].(string)
		m.Sender, _ = rec["sender"].(string)
		msgs = append(msgs, m)
	}
	meta.Count = len(msgs)
	return MessagesResult{
		Success:  true,
		Messages: msgs,
		Message:  fmt.Sprintf("Retrieved %d message(s)", len(msgs)),
		Metadata: meta,
	}
}

// Send delivers a text and/or attachments to a conversation.
func Send(ctx context.Context, r *applescript.Runner, conversationID, text string, attachments []string) SendResult {
	if strings.TrimSpace(conversationID) == "" {
		return SendResult{Success: false, Message: "Failed to send message due to invalid conversation ID", Error: "conversation_id must be a non-empty string"}
	}
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		return SendResult{Success: false, Message: "Failed to send message due to missing content", Error: "must provide either text content or attachments"}
	}
	for _, attachment := range attachments {
		if attachment == "" {
			return SendResult{Success: false, Message: "Failed to send message due to invalid attachment path", Error: "attachment path cannot be empty"}
		}
		if _, err := os.Stat(attachment); err != nil {
			return SendResult{Success: false, Message: "Failed to send message due to missing attachment file", Error: fmt.Sprintf("attachment file not found: %s", attachment)}
		}
	}

	attachmentValues := make([]applescript.Value, 0, len(attachments))
	for _, attachment := range attachments {
		attachmentValues = append(attachmentValues, applescript.String(attachment))
	}

	res, err := r.Execute(ctx, sendMessageScript, map[string]applescript.Value{
		"targetChatId":    applescript.String(conversationID),
		"messageText":     applescript.String(text),
		"attachmentPaths": applescript.List(attachmentValues...),
	}, r.Timeout)
	if err != nil {
		return SendResult{Success: false, Message: "Failed to send message", Error: err.Error()}
	}
	if !res.Success {
		return SendResult{Success: false, Message: "Failed to send message", Error: res.Err.Error()}
	}
	logging.Debug("messages", "sent to %s: %s", conversationID, logging.Truncate(text, 50))
	return SendResult{Success: true, Message: "Message sent successfully"}
}
