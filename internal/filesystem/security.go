package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localtoolkit/localtoolkit/internal/config"
	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// Policy decides which paths and operations are permitted and records every
// access decision to an audit log.
type Policy struct {
	allowed []allowedDir
	logDir  string
}

type allowedDir struct {
	path        string
	permissions map[string]bool
}

// NewPolicy builds a Policy from configuration. Paths are expanded (~) and
// made absolute; directories that cannot be resolved are skipped with a
// warning.
func NewPolicy(cfg config.FilesystemConfig) *Policy {
	p := &Policy{logDir: expandPath(cfg.SecurityLogDir)}
	for _, dir := range cfg.AllowedDirs {
		abs, err := filepath.Abs(expandPath(dir.Path))
		if err != nil {
			logging.Warn("filesystem", "skipping allowed dir %q: %v", dir.Path, err)
			continue
		}
		perms := make(map[string]bool, len(dir.Permissions))
		for _, perm := range dir.Permissions {
			perms[strings.ToLower(perm)] = true
		}
		p.allowed = append(p.allowed, allowedDir{path: abs, permissions: perms})
	}
	return p
}

// Validate checks that path is inside an allowed directory whose permissions
// include operation. It returns the resolved absolute path on success and a
// human-readable denial message on failure.
func (p *Policy) Validate(path, operation string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	abs, err := filepath.Abs(expandPath(path))
	if err != nil {
		return "", fmt.Errorf("invalid path: %v", err)
	}
	for _, dir := range p.allowed {
		if abs != dir.path && !strings.HasPrefix(abs, dir.path+string(os.PathSeparator)) {
			continue
		}
		if !dir.permissions[operation] {
			return "", fmt.Errorf("operation %q not permitted on %s", operation, path)
		}
		return abs, nil
	}
	return "", fmt.Errorf("path is outside allowed directories: %s", path)
}

// auditEvent is one line of the security log.
type auditEvent struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	User      string `json:"user"`
}

// Log appends one access decision to the audit log. Logging failures are
// swallowed; an unwritable log must not block filesystem operations.
func (p *Policy) Log(operation, path string, success bool, message string) {
	if p.logDir == "" {
		return
	}
	event := auditEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Operation: operation,
		Path:      path,
		Success:   success,
		Message:   message,
		User:      os.Getenv("USER"),
	}
	line, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := os.MkdirAll(p.logDir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(p.logDir, "filesystem_security.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	f.Write(append(line, '\n'))
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
