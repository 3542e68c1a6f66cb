// Package mail exposes the macOS Mail app: sending messages and creating
// drafts, with recipients, CC/BCC, attachments and optional HTML bodies.
package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// Result is the response shape of both mail tools.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	DraftID string `json:"draft_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Options collects the optional parts of a message.
type Options struct {
	CC          []string
	BCC         []string
	Attachments []string
	HTML        bool
}

// validAddress is the bare minimum sanity check: one @ with something on
// both sides. Mail itself is the authority on deliverability.
func validAddress(addr string) bool {
	at := strings.Index(addr, "@")
	return at > 0 && at < len(addr)-1 && !strings.ContainsAny(addr, " \t\n")
}

// cleanRecipients trims entries, drops empties and rejects malformed
// addresses.
func cleanRecipients(kind string, addrs []string) ([]string, error) {
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if !validAddress(addr) {
			return nil, fmt.Errorf("invalid %s address: %q", kind, addr)
		}
		out = append(out, addr)
	}
	return out, nil
}

// validateAttachments resolves each path and requires it to be an existing
// regular file.
func validateAttachments(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid attachment path %q: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("attachment not found: %s", path)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("attachment is a directory: %s", path)
		}
		out = append(out, abs)
	}
	return out, nil
}

func contentType(html bool) string {
	if html {
		return "html"
	}
	return "text"
}

func recipientValues(addrs []string) applescript.Value {
	items := make([]applescript.Value, 0, len(addrs))
	for _, addr := range addrs {
		items = append(items, applescript.String(addr))
	}
	return applescript.List(items...)
}

// Send composes and immediately sends a message through Mail.
func Send(ctx context.Context, r *applescript.Runner, to []string, subject, body string, opts Options) Result {
	params, errResult := buildParams(to, subject, body, opts, "send")
	if errResult != nil {
		return *errResult
	}

	res, err := r.Execute(ctx, sendScript, params, r.Timeout)
	if err != nil {
		return Result{Success: false, Message: "Failed to execute mail sending script", Error: err.Error()}
	}
	if !res.Success {
		return Result{Success: false, Message: "Failed to send email", Error: res.Err.Error()}
	}
	logging.Info("mail", "sent message to %d recipient(s)", len(to))
	return Result{Success: true, Message: "Email sent successfully"}
}

// Draft composes a message and leaves it open as a visible draft. The
// returned draft id is a timestamp plus the subject, enough to find the
// draft again in Mail.
func Draft(ctx context.Context, r *applescript.Runner, to []string, subject, body string, opts Options) Result {
	params, errResult := buildParams(to, subject, body, opts, "draft")
	if errResult != nil {
		return *errResult
	}

	res, err := r.Execute(ctx, draftScript, params, r.Timeout)
	if err != nil {
		return Result{Success: false, Message: "Failed to create draft email via Mail app", Error: err.Error()}
	}
	if !res.Success {
		return Result{Success: false, Message: "Failed to create draft email", Error: res.Err.Error()}
	}
	draftID := fmt.Sprintf("%d||%s", time.Now().Unix(), subject)
	return Result{Success: true, Message: "Draft email created successfully", DraftID: draftID}
}

// buildParams validates the message parts and assembles injection parameters
// shared by Send and Draft.
func buildParams(to []string, subject, body string, opts Options, verb string) (map[string]applescript.Value, *Result) {
	fail := func(message, errText string) *Result {
		return &Result{Success: false, Message: message, Error: errText}
	}

	toClean, err := cleanRecipients("to", to)
	if err != nil {
		return nil, fail("Failed to "+verb+" email due to invalid to address", err.Error())
	}
	if len(toClean) == 0 {
		return nil, fail("Failed to "+verb+" email due to missing recipients", "at least one to recipient is required")
	}
	ccClean, err := cleanRecipients("cc", opts.CC)
	if err != nil {
		return nil, fail("Failed to "+verb+" email due to invalid cc address", err.Error())
	}
	bccClean, err := cleanRecipients("bcc", opts.BCC)
	if err != nil {
		return nil, fail("Failed to "+verb+" email due to invalid bcc address", err.Error())
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fail("Failed to "+verb+" email due to missing subject", "subject is required")
	}
	if body == "" {
		return nil, fail("Failed to "+verb+" email due to missing body content", "body is required")
	}
	attachments, err := validateAttachments(opts.Attachments)
	if err != nil {
		return nil, fail("Failed to "+verb+" email due to invalid attachment", err.Error())
	}

	return map[string]applescript.Value{
		"toRecipients":    recipientValues(toClean),
		"ccRecipients":    recipientValues(ccClean),
		"bccRecipients":   recipientValues(bccClean),
		"attachmentPaths": recipientValues(attachments),
		"theSubject":      applescript.String(subject),
		"messageBody":     applescript.String(body),
		"contentType":     applescript.String(contentType(opts.HTML)),
	}, nil
}
