package deps

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement defines an external dependency castprep relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements builds the dependency list for the resolved tools.
func Requirements(tools Tools) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: tools.FFmpeg, Description: "External media encoder"},
		{Name: "FFprobe", Command: tools.FFprobe, Description: "Media metadata prober"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Absolute commands are checked directly; bare names go through PATH lookup.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if filepath.IsAbs(cmd) {
			if _, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not executable", cmd)
				results = append(results, status)
				continue
			}
		} else if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found on PATH", cmd)
			results = append(results, status)
			continue
		} else {
			status.Command = resolved
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
