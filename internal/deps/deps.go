package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool keygrip can make use of.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults returns the requirement set for this host's configuration. The
// media toolchain itself is not in the list: its resolution chain is richer
// than a search-path lookup and is checked through the toolchain package.
func Defaults(companionBinary string) []Requirement {
	requirements := []Requirement{
		{
			Name:        "NVIDIA SMI",
			Command:     "nvidia-smi",
			Description: "Fallback GPU enumeration when OS inventory is empty",
			Optional:    true,
		},
	}
	if strings.TrimSpace(companionBinary) != "" {
		requirements = append(requirements, Requirement{
			Name:        "Companion encoder",
			Command:     companionBinary,
			Description: "Encode tool whose bundled toolchain takes precedence",
			Optional:    true,
		})
	}
	return requirements
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
