// Package process lists, inspects, monitors, starts and terminates
// processes on the local machine.
package process

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Info is the summary row returned by List.
type Info struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	User          string  `json:"user"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// Detail is the full record returned by Get.
type Detail struct {
	PID           int32          `json:"pid"`
	PPID          int32          `json:"ppid"`
	Name          string         `json:"name"`
	ParentName    string         `json:"parent_name,omitempty"`
	User          string         `json:"user"`
	CPUPercent    float64        `json:"cpu_percent"`
	MemoryPercent float64        `json:"memory_percent"`
	StartTime     string         `json:"start_time"`
	Command       string         `json:"command"`
	MemoryDetails *MemoryDetails `json:"memory_details,omitempty"`
	OpenFiles     []OpenFile     `json:"file_handles,omitempty"`
	OpenFileCount int            `json:"file_handles_count,omitempty"`
}

// MemoryDetails combines process and system memory figures.
type MemoryDetails struct {
	RSSKB          uint64 `json:"rss_kb"`
	RSSMB          uint64 `json:"rss_mb"`
	VSZKB          uint64 `json:"vsz_kb"`
	VSZMB          uint64 `json:"vsz_mb"`
	SystemTotalMB  uint64 `json:"system_total_mb"`
	SystemFreeMB   uint64 `json:"system_free_mb"`
	SystemActiveMB uint64 `json:"system_active_mb"`
	SystemWiredMB  uint64 `json:"system_wired_mb"`
}

// OpenFile is one open file handle of a process.
type OpenFile struct {
	FD   uint64 `json:"fd"`
	Path string `json:"path"`
}

// ListResult is the response shape of process_list.
type ListResult struct {
	Success   bool           `json:"success"`
	Processes []Info         `json:"processes"`
	Count     int            `json:"count"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// DetailResult is the response shape of process_info.
type DetailResult struct {
	Success bool    `json:"success"`
	PID     int32   `json:"pid"`
	Process *Detail `json:"process,omitempty"`
	Message string  `json:"message"`
	Error   string  `json:"error,omitempty"`
}

// TerminateResult is the response shape of process_terminate.
type TerminateResult struct {
	Success    bool   `json:"success"`
	PID        int32  `json:"pid"`
	Signal     int    `json:"signal"`
	ForcedKill bool   `json:"forced_kill"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

// List returns running processes sorted by CPU usage, highest first.
// filter matches case-insensitively against the process name or command line.
func List(ctx context.Context, filter string, limit int) ListResult {
	if limit <= 0 {
		limit = 20
	}
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return ListResult{Success: false, Processes: []Info{}, Message: "Error while retrieving process list", Error: fmt.Sprintf("failed to list processes: %v", err)}
	}

	filter = strings.ToLower(filter)
	infos := make([]Info, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			cmdline, _ := p.CmdlineWithContext(ctx)
			if !strings.Contains(strings.ToLower(cmdline), filter) {
				continue
			}
		}
		info := Info{PID: p.Pid, Name: name}
		info.User, _ = p.UsernameWithContext(ctx)
		info.CPUPercent, _ = p.CPUPercentWithContext(ctx)
		if memPct, err := p.MemoryPercentWithContext(ctx); err == nil {
			info.MemoryPercent = float64(memPct)
		}
		infos = append(infos, info)
	}

	sort.SliceStable(infos, func(i, j int) bool { return infos[i].CPUPercent > infos[j].CPUPercent })
	if len(infos) > limit {
		infos = infos[:limit]
	}

	msg := fmt.Sprintf("Successfully retrieved %d processes", len(infos))
	if filter != "" {
		msg += fmt.Sprintf(" matching %q", filter)
	}
	return ListResult{
		Success:   true,
		Processes: infos,
		Count:     len(infos),
		Message:   msg,
		Metadata: map[string]any{
			"filter_applied": filter != "",
			"limit_applied":  limit,
			"timestamp":      time.Now().Unix(),
		},
	}
}

// Get returns detailed information about one process.
func Get(ctx context.Context, pid int32, includeMemory, includeFiles bool) DetailResult {
	exists, err := process.PidExistsWithContext(ctx, pid)
	if err != nil || !exists {
		return DetailResult{Success: false, PID: pid, Message: fmt.Sprintf("No such process: %d", pid), Error: fmt.Sprintf("process with PID %d does not exist or permission denied", pid)}
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return DetailResult{Success: false, PID: pid, Message: "Error while retrieving process information", Error: err.Error()}
	}

	d := &Detail{PID: pid}
	d.Name, _ = p.NameWithContext(ctx)
	d.User, _ = p.UsernameWithContext(ctx)
	d.Command, _ = p.CmdlineWithContext(ctx)
	d.CPUPercent, _ = p.CPUPercentWithContext(ctx)
	if memPct, err := p.MemoryPercentWithContext(ctx); err == nil {
		d.MemoryPercent = float64(memPct)
	}
	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		d.StartTime = time.UnixMilli(created).Format(time.RFC3339)
	}
	if ppid, err := p.PpidWithContext(ctx); err == nil && ppid > 0 {
		d.PPID = ppid
		if parent, err := process.NewProcessWithContext(ctx, ppid); err == nil {
			d.ParentName, _ = parent.NameWithContext(ctx)
		}
	}

	if includeMemory {
		details := &MemoryDetails{}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			details.RSSKB = mi.RSS / 1024
			details.RSSMB = mi.RSS / (1024 * 1024)
			details.VSZKB = mi.VMS / 1024
			details.VSZMB = mi.VMS / (1024 * 1024)
		}
		if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
			details.SystemTotalMB = vm.Total / (1024 * 1024)
			details.SystemFreeMB = vm.Free / (1024 * 1024)
			details.SystemActiveMB = vm.Active / (1024 * 1024)
			details.SystemWiredMB = vm.Wired / (1024 * 1024)
		}
		d.MemoryDetails = details
	}

	if includeFiles {
		if files, err := p.OpenFilesWithContext(ctx); err == nil {
			d.OpenFiles = make([]OpenFile, 0, len(files))
			for _, f := range files {
				d.OpenFiles = append(d.OpenFiles, OpenFile{FD: f.Fd, Path: f.Path})
			}
			d.OpenFileCount = len(d.OpenFiles)
		}
	}

	return DetailResult{
		Success: true,
		PID:     pid,
		Process: d,
		Message: fmt.Sprintf("Successfully retrieved information for process %d", pid),
	}
}

// Terminate sends sig to a process. With force set, it follows up with
// SIGKILL if the process is still alive half a second later.
func Terminate(ctx context.Context, pid int32, sig int, force bool) TerminateResult {
	exists, err := process.PidExistsWithContext(ctx, pid)
	if err != nil || !exists {
		return TerminateResult{Success: false, PID: pid, Signal: sig, Message: fmt.Sprintf("No such process: %d", pid), Error: fmt.Sprintf("process with PID %d does not exist or permission denied", pid)}
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return TerminateResult{Success: false, PID: pid, Signal: sig, Message: "Error while terminating process", Error: err.Error()}
	}
	name, _ := p.NameWithContext(ctx)
	label := fmt.Sprintf("PID %d", pid)
	if name != "" {
		label += fmt.Sprintf(" (%s)", name)
	}

	if err := p.SendSignalWithContext(ctx, syscall.Signal(sig)); err != nil {
		return TerminateResult{Success: false, PID: pid, Signal: sig, Message: "Error while terminating process", Error: fmt.Sprintf("failed to signal %s: %v", label, err)}
	}

	if !force {
		return TerminateResult{Success: true, PID: pid, Signal: sig, Message: fmt.Sprintf("Successfully sent signal %d to %s", sig, label)}
	}

	time.Sleep(500 * time.Millisecond)
	alive, _ := process.PidExistsWithContext(ctx, pid)
	if !alive {
		return TerminateResult{Success: true, PID: pid, Signal: sig, Message: fmt.Sprintf("Successfully terminated %s with signal %d", label, sig)}
	}

	if err := p.KillWithContext(ctx); err != nil {
		return TerminateResult{Success: false, PID: pid, Signal: sig, ForcedKill: true, Message: "Process could not be terminated", Error: fmt.Sprintf("failed to kill %s: %v", label, err)}
	}
	time.Sleep(100 * time.Millisecond)
	if alive, _ := process.PidExistsWithContext(ctx, pid); alive {
		return TerminateResult{Success: false, PID: pid, Signal: sig, ForcedKill: true, Message: "Process could not be terminated", Error: fmt.Sprintf("failed to terminate %s even with SIGKILL", label)}
	}
	return TerminateResult{Success: true, PID: pid, Signal: sig, ForcedKill: true, Message: fmt.Sprintf("Successfully terminated %s with SIGKILL after signal %d", label, sig)}
}
