package applescript

import "strings"

// ReturnFormat selects how raw script output is presented in the envelope.
type ReturnFormat string

const (
	FormatJSON ReturnFormat = "json"
	FormatText ReturnFormat = "text"
	FormatRaw  ReturnFormat = "raw"
)

// Response is the uniform envelope every tool module hands back to its
// caller.
type Response struct {
	Success        bool    `json:"success"`
	Status         int     `json:"status"`
	RuntimeSeconds float64 `json:"runtime_seconds"`
	Result         any     `json:"result,omitempty"`
	RawOutput      string  `json:"raw_output,omitempty"`
	Error          string  `json:"error,omitempty"`
	Warning        string  `json:"warning,omitempty"`
}

// BuildResponse folds an ExecResult into the envelope contract. For
// FormatJSON the output is JSON-parsed when possible and returned raw with a
// warning otherwise; FormatText returns the trimmed text; FormatRaw carries
// the untouched output in a separate field.
func BuildResponse(res *ExecResult, format ReturnFormat) Response {
	resp := Response{
		Success:        res.Success,
		RuntimeSeconds: float64(res.Elapsed.Milliseconds()) / 1000,
	}
	if res.Success {
		resp.Status = 1
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	if !res.Success {
		return resp
	}

	output := strings.TrimSpace(res.Stdout)
	switch format {
	case FormatRaw:
		resp.RawOutput = res.Stdout
	case FormatText:
		resp.Result = output
	default: // FormatJSON
		if parsed, ok := DecodeJSON(output); ok {
			resp.Result = parsed
		} else {
			resp.Result = output
			resp.Warning = "output could not be parsed as JSON"
		}
	}
	return resp
}

// ErrorResponse builds a failure envelope for errors raised before any
// process was spawned (injection, validation, blocked patterns).
func ErrorResponse(err error) Response {
	return Response{Success: false, Status: 0, Error: err.Error()}
}
