package process

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Sample is one monitoring reading.
type Sample struct {
	Timestamp      int64   `json:"timestamp"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	CPUPercent     float64 `json:"cpu_percent,omitempty"`
	MemoryPercent  float64 `json:"memory_percent,omitempty"`
	RSSKB          uint64  `json:"rss_kb,omitempty"`
	VSZKB          uint64  `json:"vsz_kb,omitempty"`
	OpenFiles      int     `json:"open_files_count,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// MetricSummary aggregates one numeric metric over a monitoring run.
type MetricSummary struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Avg           float64 `json:"avg"`
	Median        float64 `json:"median"`
	StdDev        float64 `json:"std_dev,omitempty"`
	First         float64 `json:"first"`
	Last          float64 `json:"last"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// MonitorSummary describes a completed monitoring run.
type MonitorSummary struct {
	PID              int32                     `json:"pid"`
	ProcessName      string                    `json:"process_name"`
	SamplesCollected int                       `json:"samples_collected"`
	DurationSeconds  float64                   `json:"monitoring_duration_seconds"`
	Metrics          map[string]*MetricSummary `json:"metrics,omitempty"`
}

// MonitorResult is the response shape of process_monitor.
type MonitorResult struct {
	Success     bool            `json:"success"`
	PID         int32           `json:"pid"`
	ProcessName string          `json:"process_name,omitempty"`
	Samples     []Sample        `json:"metrics"`
	Summary     *MonitorSummary `json:"summary,omitempty"`
	Message     string          `json:"message"`
	Error       string          `json:"error,omitempty"`
}

// MonitorOptions selects which metrics to sample.
type MonitorOptions struct {
	Interval      time.Duration
	Duration      time.Duration
	IncludeCPU    bool
	IncludeMemory bool
	IncludeIO     bool
}

// Monitor samples a process at a fixed interval for a fixed duration and
// returns the raw samples plus per-metric summary statistics. Sampling
// stops early if the process exits or ctx is cancelled.
func Monitor(ctx context.Context, pid int32, opts MonitorOptions) MonitorResult {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Duration <= 0 {
		opts.Duration = 10 * time.Second
	}

	exists, err := process.PidExistsWithContext(ctx, pid)
	if err != nil || !exists {
		return MonitorResult{Success: false, PID: pid, Samples: []Sample{}, Message: fmt.Sprintf("No such process: %d", pid), Error: fmt.Sprintf("process with PID %d does not exist or permission denied", pid)}
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return MonitorResult{Success: false, PID: pid, Samples: []Sample{}, Message: "Error while monitoring process", Error: err.Error()}
	}
	name, _ := p.NameWithContext(ctx)

	start := time.Now()
	deadline := start.Add(opts.Duration)
	var samples []Sample

	for time.Now().Before(deadline) {
		now := time.Now()
		sample := Sample{Timestamp: now.Unix(), ElapsedSeconds: now.Sub(start).Seconds()}

		if alive, _ := process.PidExistsWithContext(ctx, pid); !alive {
			sample.Error = "process terminated during monitoring"
			samples = append(samples, sample)
			break
		}
		if opts.IncludeCPU {
			sample.CPUPercent, _ = p.CPUPercentWithContext(ctx)
		}
		if opts.IncludeMemory {
			if memPct, err := p.MemoryPercentWithContext(ctx); err == nil {
				sample.MemoryPercent = float64(memPct)
			}
			if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
				sample.RSSKB = mi.RSS / 1024
				sample.VSZKB = mi.VMS / 1024
			}
		}
		if opts.IncludeIO {
			if files, err := p.OpenFilesWithContext(ctx); err == nil {
				sample.OpenFiles = len(files)
			}
		}
		samples = append(samples, sample)

		select {
		case <-ctx.Done():
			samples = append(samples, Sample{
				Timestamp:      time.Now().Unix(),
				ElapsedSeconds: time.Since(start).Seconds(),
				Error:          "monitoring cancelled",
			})
			return monitorResult(pid, name, start, samples, opts)
		case <-time.After(opts.Interval):
		}
	}

	return monitorResult(pid, name, start, samples, opts)
}

func monitorResult(pid int32, name string, start time.Time, samples []Sample, opts MonitorOptions) MonitorResult {
	if samples == nil {
		samples = []Sample{}
	}
	elapsed := time.Since(start).Seconds()
	summary := &MonitorSummary{
		PID:              pid,
		ProcessName:      name,
		SamplesCollected: len(samples),
		DurationSeconds:  elapsed,
		Metrics:          summarizeSamples(samples, opts),
	}
	return MonitorResult{
		Success:     true,
		PID:         pid,
		ProcessName: name,
		Samples:     samples,
		Summary:     summary,
		Message:     fmt.Sprintf("Successfully monitored process %d (%s) for %.2f seconds", pid, name, elapsed),
	}
}

func summarizeSamples(samples []Sample, opts MonitorOptions) map[string]*MetricSummary {
	series := map[string][]float64{}
	for _, s := range samples {
		if s.Error != "" {
			continue
		}
		if opts.IncludeCPU {
			series["cpu_percent"] = append(series["cpu_percent"], s.CPUPercent)
		}
		if opts.IncludeMemory {
			series["memory_percent"] = append(series["memory_percent"], s.MemoryPercent)
			series["rss_kb"] = append(series["rss_kb"], float64(s.RSSKB))
			series["vsz_kb"] = append(series["vsz_kb"], float64(s.VSZKB))
		}
		if opts.IncludeIO {
			series["open_files_count"] = append(series["open_files_count"], float64(s.OpenFiles))
		}
	}
	if len(series) == 0 {
		return nil
	}
	out := make(map[string]*MetricSummary, len(series))
	for key, values := range series {
		out[key] = summarize(values)
	}
	return out
}

func summarize(values []float64) *MetricSummary {
	if len(values) == 0 {
		return nil
	}
	s := &MetricSummary{Min: values[0], Max: values[0], First: values[0], Last: values[len(values)-1]}
	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = sum / float64(len(values))
	s.Median = median(values)
	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - s.Avg
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(len(values)-1))
	}
	s.Change = s.Last - s.First
	if s.First != 0 {
		s.ChangePercent = s.Change / s.First * 100
	}
	return s
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
