// internal/sandbox/report.go
package sandbox

import "encoding/json"

// Response is the JSON form of a single Result.
type Response struct {
	Status       string `json:"status"`       // Execution status (e.g., "Accepted", "Runtime Error")
	ExitCode     int    `json:"exitCode"`     // Process exit code
	Stdout       string `json:"stdout"`       // Standard output content
	Stderr       string `json:"stderr"`       // Standard error content
	Error        string `json:"error"`        // Error message if any
	TimeUsed     int64  `json:"timeUsed"`     // Execution time in milliseconds
	MemoryUsed   int64  `json:"memoryUsed"`   // Peak memory in KB
	CompileError string `json:"compileError"` // Compilation output if any
}

// NewResponse converts a Result for JSON output.
func NewResponse(result Result) Response {
	return Response{
		Status:       string(result.Status),
		ExitCode:     result.ExitCode,
		Stdout:       result.Stdout,
		Stderr:       result.Stderr,
		Error:        result.Error,
		TimeUsed:     result.TimeUsedMillis,
		MemoryUsed:   result.MemoryUsedKB,
		CompileError: result.CompileOutput,
	}
}

// CaseResult is the outcome of one judged case.
type CaseResult struct {
	Name   string
	Result Result
}

// Report collects the results of judging one submission.
type Report struct {
	RunID         string
	Language      string
	CompileOutput string
	Cases         []CaseResult
	Summary       map[Status]int
}

func (r *Report) add(name string, res Result) {
	if r.Summary == nil {
		r.Summary = make(map[Status]int)
	}
	r.Cases = append(r.Cases, CaseResult{Name: name, Result: res})
	r.Summary[res.Status]++
}

// Passed reports whether every case was Accepted. A report with no cases
// has not passed.
func (r *Report) Passed() bool {
	if len(r.Cases) == 0 {
		return false
	}
	for i := range r.Cases {
		if !r.Cases[i].Result.IsOK() {
			return false
		}
	}
	return true
}

type caseJSON struct {
	Name string `json:"name"`
	Response
}

type reportJSON struct {
	RunID         string         `json:"runId"`
	Language      string         `json:"language"`
	Passed        bool           `json:"passed"`
	CompileOutput string         `json:"compileOutput,omitempty"`
	Summary       map[Status]int `json:"summary"`
	Cases         []caseJSON     `json:"cases"`
}

// MarshalJSON renders the report with per-case Responses.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		RunID:         r.RunID,
		Language:      r.Language,
		Passed:        r.Passed(),
		CompileOutput: r.CompileOutput,
		Summary:       r.Summary,
		Cases:         make([]caseJSON, 0, len(r.Cases)),
	}
	for _, c := range r.Cases {
		out.Cases = append(out.Cases, caseJSON{Name: c.Name, Response: NewResponse(c.Result)})
	}
	return json.Marshal(out)
}
