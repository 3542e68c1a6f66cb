package filesystem

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localtoolkit/localtoolkit/internal/config"
)

func testPolicy(t *testing.T, perms ...string) (*Policy, string) {
	t.Helper()
	dir := t.TempDir()
	if perms == nil {
		perms = []string{"read", "write", "list"}
	}
	p := NewPolicy(config.FilesystemConfig{
		AllowedDirs: []config.AllowedDir{{Path: dir, Permissions: perms}},
	})
	return p, dir
}

func TestValidateInsideAllowedDir(t *testing.T) {
	p, dir := testPolicy(t)
	safe, err := p.Validate(filepath.Join(dir, "a.txt"), "read")
	if err != nil {
		t.Fatal(err)
	}
	if safe != filepath.Join(dir, "a.txt") {
		t.Errorf("safe = %q", safe)
	}
	// The allowed directory itself is valid too.
	if _, err := p.Validate(dir, "list"); err != nil {
		t.Errorf("allowed dir itself rejected: %v", err)
	}
}

func TestValidateRejectsOutsidePaths(t *testing.T) {
	p, dir := testPolicy(t)
	cases := []string{
		"/etc/passwd",
		dir + "sibling/file.txt", // shares the prefix but is a different dir
		filepath.Join(dir, "..", "escape.txt"),
		"",
	}
	for _, path := range cases {
		if _, err := p.Validate(path, "read"); err == nil {
			t.Errorf("Validate(%q) should fail", path)
		}
	}
}

func TestValidateChecksPermissions(t *testing.T) {
	p, dir := testPolicy(t, "read")
	if _, err := p.Validate(filepath.Join(dir, "a.txt"), "read"); err != nil {
		t.Errorf("read should be allowed: %v", err)
	}
	_, err := p.Validate(filepath.Join(dir, "a.txt"), "write")
	if err == nil {
		t.Fatal("write should be denied")
	}
	if !strings.Contains(err.Error(), "not permitted") {
		t.Errorf("error = %q", err)
	}
}

func TestReadFile(t *testing.T) {
	p, dir := testPolicy(t)
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := ReadFile(p, path)
	if !res.Success {
		t.Fatalf("ReadFile failed: %s", res.Error)
	}
	if res.Content != "hello" || res.Encoding != "utf-8" {
		t.Errorf("content = %q, encoding = %q", res.Content, res.Encoding)
	}
}

func TestReadFileMissing(t *testing.T) {
	p, dir := testPolicy(t)
	res := ReadFile(p, filepath.Join(dir, "nope.txt"))
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "not found") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestReadFileDirectory(t *testing.T) {
	p, dir := testPolicy(t)
	res := ReadFile(p, dir)
	if res.Success || !strings.Contains(res.Error, "not a file") {
		t.Errorf("result = %+v", res)
	}
}

func TestReadFileRejectsBinary(t *testing.T) {
	p, dir := testPolicy(t)
	path := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}
	res := ReadFile(p, path)
	if res.Success || !strings.Contains(res.Error, "UTF-8") {
		t.Errorf("result = %+v", res)
	}
}

func TestWriteFile(t *testing.T) {
	p, dir := testPolicy(t)
	path := filepath.Join(dir, "out.txt")
	res := WriteFile(p, path, "content here")
	if !res.Success {
		t.Fatalf("WriteFile failed: %s", res.Error)
	}
	if res.BytesWritten != len("content here") {
		t.Errorf("bytes_written = %d", res.BytesWritten)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "content here" {
		t.Errorf("file content = %q, err = %v", data, err)
	}
}

func TestWriteFileMissingParent(t *testing.T) {
	p, dir := testPolicy(t)
	res := WriteFile(p, filepath.Join(dir, "sub", "out.txt"), "x")
	if res.Success || !strings.Contains(res.Error, "parent directory") {
		t.Errorf("result = %+v", res)
	}
}

func TestWriteFileDenied(t *testing.T) {
	p, dir := testPolicy(t, "read")
	res := WriteFile(p, filepath.Join(dir, "out.txt"), "x")
	if res.Success {
		t.Fatal("expected denial")
	}
}

func TestListDirectory(t *testing.T) {
	p, dir := testPolicy(t)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res := ListDirectory(p, dir)
	if !res.Success {
		t.Fatalf("ListDirectory failed: %s", res.Error)
	}
	if res.Count != 3 {
		t.Fatalf("count = %d, want 3", res.Count)
	}
	// Directories first, then files sorted by name.
	if res.Entries[0].Name != "sub" || res.Entries[0].Type != "directory" {
		t.Errorf("entries[0] = %+v", res.Entries[0])
	}
	if res.Entries[1].Name != "a.txt" || res.Entries[2].Name != "b.txt" {
		t.Errorf("file order = %s, %s", res.Entries[1].Name, res.Entries[2].Name)
	}
	if res.Entries[1].Size != 1 {
		t.Errorf("file size = %d", res.Entries[1].Size)
	}
	if res.Entries[1].Modified == "" {
		t.Error("modified timestamp missing")
	}
}

func TestListDirectoryNotADirectory(t *testing.T) {
	p, dir := testPolicy(t)
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := ListDirectory(p, path)
	if res.Success || !strings.Contains(res.Error, "not a directory") {
		t.Errorf("result = %+v", res)
	}
}

func TestAuditLogWritten(t *testing.T) {
	dir := t.TempDir()
	logDir := t.TempDir()
	p := NewPolicy(config.FilesystemConfig{
		AllowedDirs:    []config.AllowedDir{{Path: dir, Permissions: []string{"read", "write", "list"}}},
		SecurityLogDir: logDir,
	})

	WriteFile(p, filepath.Join(dir, "x.txt"), "data")
	ReadFile(p, "/etc/passwd") // denied, still logged

	f, err := os.Open(filepath.Join(logDir, "filesystem_security.log"))
	if err != nil {
		t.Fatalf("audit log missing: %v", err)
	}
	defer f.Close()

	var events []auditEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e auditEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("bad audit line %q: %v", scanner.Text(), err)
		}
		events = append(events, e)
	}
	if len(events) != 2 {
		t.Fatalf("got %d audit events, want 2", len(events))
	}
	if events[0].Operation != "write_file" || !events[0].Success {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1].Operation != "read_file" || events[1].Success {
		t.Errorf("events[1] = %+v", events[1])
	}
	if events[0].ID == "" || events[0].ID == events[1].ID {
		t.Error("audit events should carry unique ids")
	}
	if events[0].Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestAuditLogDisabledWithoutDir(t *testing.T) {
	p, dir := testPolicy(t)
	// No SecurityLogDir configured; must not panic or create files.
	p.Log("read_file", filepath.Join(dir, "x"), true, "ok")
}
