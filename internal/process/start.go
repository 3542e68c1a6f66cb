package process

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// StartResult is the response shape of process_start.
type StartResult struct {
	Success     bool   `json:"success"`
	PID         int    `json:"pid,omitempty"`
	Command     string `json:"command"`
	FullCommand string `json:"full_command,omitempty"`
	ExitCode    int    `json:"exit_code,omitempty"`
	Stdout      string `json:"stdout,omitempty"`
	Stderr      string `json:"stderr,omitempty"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
}

// StartOptions controls how a process is launched.
type StartOptions struct {
	Args       []string
	Env        map[string]string
	Background bool
	Wait       bool
}

// Start launches a command or application. A command ending in ".app" is
// opened as a bundle via the open utility. With Wait set the call blocks
// until the process exits and captures its output; otherwise the process is
// detached (its own session) and only the PID is reported.
func Start(command string, opts StartOptions) StartResult {
	if strings.TrimSpace(command) == "" {
		return StartResult{Success: false, Command: command, Message: "Error while starting process", Error: "command cannot be empty"}
	}

	var argv []string
	if strings.HasSuffix(command, ".app") {
		argv = append([]string{"open", command}, opts.Args...)
	} else {
		parts, err := splitCommand(command)
		if err != nil {
			return StartResult{Success: false, Command: command, Message: "Error while starting process", Error: err.Error()}
		}
		argv = append(parts, opts.Args...)
	}

	env := os.Environ()
	for k, v := range opts.Env {
		env = append(env, k+"="+v)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	full := strings.Join(argv, " ")

	if opts.Wait {
		var stdout, stderr strings.Builder
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		err := cmd.Run()
		res := StartResult{
			Success:     err == nil,
			Command:     command,
			FullCommand: full,
			Stdout:      stdout.String(),
			Stderr:      stderr.String(),
		}
		if cmd.ProcessState != nil {
			res.ExitCode = cmd.ProcessState.ExitCode()
		}
		res.Message = fmt.Sprintf("Process completed with exit code %d", res.ExitCode)
		if err != nil {
			res.Error = fmt.Sprintf("process failed with exit code %d: %s", res.ExitCode, stderr.String())
		}
		return res
	}

	if opts.Background {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		if err == nil {
			cmd.Stdin = devNull
			cmd.Stdout = devNull
			cmd.Stderr = devNull
			defer devNull.Close()
		}
	}
	if err := cmd.Start(); err != nil {
		return StartResult{Success: false, Command: command, FullCommand: full, Message: "Error while starting process", Error: fmt.Sprintf("failed to start process: %v", err)}
	}
	pid := cmd.Process.Pid
	// Reap the child when it exits so detached processes do not linger as
	// zombies for the life of the server.
	go cmd.Wait()

	return StartResult{
		Success:     true,
		PID:         pid,
		Command:     command,
		FullCommand: full,
		Message:     fmt.Sprintf("Process started with PID %d", pid),
	}
}

// splitCommand breaks a command string into words, honoring single and
// double quotes and backslash escapes.
func splitCommand(s string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' && i+1 < len(runes) {
				i++
				current.WriteRune(runes[i])
			} else {
				current.WriteRune(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inWord = true
		case c == '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash in command")
			}
			i++
			current.WriteRune(runes[i])
			inWord = true
		case c == ' ' || c == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(c)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in command", quote)
	}
	if inWord {
		words = append(words, current.String())
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("command cannot be empty")
	}
	return words, nil
}
