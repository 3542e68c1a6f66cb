// Package filesystem provides sandboxed file access: read, write and list,
// restricted to configured directories with per-directory permissions and an
// append-only audit log.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"
)

// ReadResult is the response shape of filesystem_read_file.
type ReadResult struct {
	Success  bool   `json:"success"`
	Content  string `json:"content,omitempty"`
	Path     string `json:"path"`
	Encoding string `json:"encoding,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WriteResult is the response shape of filesystem_write_file.
type WriteResult struct {
	Success      bool   `json:"success"`
	BytesWritten int    `json:"bytes_written,omitempty"`
	Path         string `json:"path"`
	Error        string `json:"error,omitempty"`
}

// Entry is one row of a directory listing.
type Entry struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "file" or "directory"
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// ListResult is the response shape of filesystem_list_directory.
type ListResult struct {
	Success bool    `json:"success"`
	Entries []Entry `json:"entries,omitempty"`
	Count   int     `json:"count"`
	Path    string  `json:"path"`
	Error   string  `json:"error,omitempty"`
}

// ReadFile returns the complete contents of a file inside an allowed
// directory. Content must be valid UTF-8; binary files are rejected.
func ReadFile(policy *Policy, path string) ReadResult {
	safe, err := policy.Validate(path, "read")
	if err != nil {
		policy.Log("read_file", path, false, err.Error())
		return ReadResult{Success: false, Path: path, Error: err.Error()}
	}

	info, err := os.Stat(safe)
	if err != nil {
		msg := fmt.Sprintf("file not found: %s", path)
		if !os.IsNotExist(err) {
			msg = fmt.Sprintf("error reading file: %v", err)
		}
		policy.Log("read_file", path, false, msg)
		return ReadResult{Success: false, Path: path, Error: msg}
	}
	if info.IsDir() {
		msg := fmt.Sprintf("not a file: %s", path)
		policy.Log("read_file", path, false, msg)
		return ReadResult{Success: false, Path: path, Error: msg}
	}

	data, err := os.ReadFile(safe)
	if err != nil {
		msg := fmt.Sprintf("error reading file: %v", err)
		if os.IsPermission(err) {
			msg = fmt.Sprintf("permission denied when reading file: %s", path)
		}
		policy.Log("read_file", path, false, msg)
		return ReadResult{Success: false, Path: path, Error: msg}
	}
	if !utf8.Valid(data) {
		msg := fmt.Sprintf("file is not valid UTF-8 text: %s", path)
		policy.Log("read_file", path, false, msg)
		return ReadResult{Success: false, Path: path, Error: msg}
	}

	policy.Log("read_file", path, true, "file read successfully")
	return ReadResult{Success: true, Content: string(data), Path: path, Encoding: "utf-8"}
}

// WriteFile creates or overwrites a file inside an allowed directory. The
// parent directory must already exist.
func WriteFile(policy *Policy, path, content string) WriteResult {
	safe, err := policy.Validate(path, "write")
	if err != nil {
		policy.Log("write_file", path, false, err.Error())
		return WriteResult{Success: false, Path: path, Error: err.Error()}
	}

	parent := filepath.Dir(safe)
	if _, err := os.Stat(parent); err != nil {
		msg := fmt.Sprintf("parent directory does not exist: %s", filepath.Dir(path))
		policy.Log("write_file", path, false, msg)
		return WriteResult{Success: false, Path: path, Error: msg}
	}

	if err := os.WriteFile(safe, []byte(content), 0o644); err != nil {
		msg := fmt.Sprintf("error writing file: %v", err)
		if os.IsPermission(err) {
			msg = fmt.Sprintf("permission denied when writing file: %s", path)
		}
		policy.Log("write_file", path, false, msg)
		return WriteResult{Success: false, Path: path, Error: msg}
	}

	n := len(content)
	policy.Log("write_file", path, true, fmt.Sprintf("file written successfully (%d bytes)", n))
	return WriteResult{Success: true, BytesWritten: n, Path: path}
}

// ListDirectory lists a directory inside an allowed directory, directories
// first, each group sorted by name.
func ListDirectory(policy *Policy, path string) ListResult {
	safe, err := policy.Validate(path, "list")
	if err != nil {
		policy.Log("list_directory", path, false, err.Error())
		return ListResult{Success: false, Path: path, Error: err.Error()}
	}

	info, err := os.Stat(safe)
	if err != nil {
		msg := fmt.Sprintf("directory not found: %s", path)
		if !os.IsNotExist(err) {
			msg = fmt.Sprintf("error listing directory: %v", err)
		}
		policy.Log("list_directory", path, false, msg)
		return ListResult{Success: false, Path: path, Error: msg}
	}
	if !info.IsDir() {
		msg := fmt.Sprintf("not a directory: %s", path)
		policy.Log("list_directory", path, false, msg)
		return ListResult{Success: false, Path: path, Error: msg}
	}

	dirEntries, err := os.ReadDir(safe)
	if err != nil {
		msg := fmt.Sprintf("error listing directory: %v", err)
		if os.IsPermission(err) {
			msg = fmt.Sprintf("permission denied when listing directory: %s", path)
		}
		policy.Log("list_directory", path, false, msg)
		return ListResult{Success: false, Path: path, Error: msg}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry := Entry{Name: de.Name(), Type: "file"}
		if de.IsDir() {
			entry.Type = "directory"
		}
		if fi, err := de.Info(); err == nil {
			if !de.IsDir() {
				entry.Size = fi.Size()
			}
			entry.Modified = fi.ModTime().UTC().Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entries[i].Type == "directory"
		}
		return entries[i].Name < entries[j].Name
	})

	policy.Log("list_directory", path, true, fmt.Sprintf("directory listed successfully with %d entries", len(entries)))
	return ListResult{Success: true, Entries: entries, Count: len(entries), Path: path}
}
