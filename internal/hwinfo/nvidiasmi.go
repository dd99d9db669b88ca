package hwinfo

import (
	"context"
	"strings"

	"keygrip/internal/services"
)

// acceleratorNamesFromSMI lists GPU names via nvidia-smi. It is the fallback
// when the OS inventory yields nothing; absence of the binary is an ordinary
// degradation, not a fatal error.
func (p *Prober) acceleratorNamesFromSMI(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.runner.Run(ctx, "nvidia-smi", "-L")
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "hwinfo", "nvidia-smi", "list GPUs", err)
	}
	names := parseSMIList(string(output))
	if len(names) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "hwinfo", "nvidia-smi", "no GPUs in listing", nil)
	}
	return names, nil
}

// parseSMIList extracts adapter names from `nvidia-smi -L` output lines of
// the form "GPU 0: NVIDIA GeForce RTX 3080 (UUID: GPU-...)".
func parseSMIList(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "GPU ") {
			continue
		}
		_, rest, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		name := rest
		if idx := strings.Index(name, " (UUID"); idx >= 0 {
			name = name[:idx]
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
