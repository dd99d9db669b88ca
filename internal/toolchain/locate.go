package toolchain

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"keygrip/internal/logging"
	"keygrip/internal/services"
)

// ErrNotFound reports that no runnable toolchain binary could be located.
var ErrNotFound = errors.New("toolchain binary not found")

// Locate resolves a runnable toolchain binary. Candidates are tried in
// order: a copy sitting next to the companion encode tool, the configured
// binary itself, the process search path, and finally a fixed set of common
// install directories plus any configured extras. The first candidate that
// survives a version invocation wins.
func (p *Probe) Locate(ctx context.Context) (string, error) {
	for _, candidate := range p.candidates() {
		if candidate == "" {
			continue
		}
		if p.runnable(ctx, candidate) {
			p.logger.Debug("toolchain located", logging.String("binary", candidate))
			return candidate, nil
		}
	}
	return "", services.Wrap(ErrNotFound, "toolchain", "locate",
		"no runnable "+p.opts.Binary+" binary on this host", nil)
}

func (p *Probe) candidates() []string {
	var candidates []string

	if sidecar, ok := p.companionSidecar(); ok {
		candidates = append(candidates, sidecar)
	}

	binary := strings.TrimSpace(p.opts.Binary)
	if strings.ContainsAny(binary, `/\`) {
		if info, err := os.Stat(binary); err == nil && isExecutable(info) {
			candidates = append(candidates, binary)
		}
	} else if resolved, err := exec.LookPath(binary); err == nil {
		candidates = append(candidates, resolved)
	}

	name := executableName(filepath.Base(binary))
	dirs := append(defaultSearchDirs(), p.opts.ExtraSearchDirs...)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// companionSidecar returns the toolchain copy shipped alongside the companion
// encode tool. Companion tools bundle their own toolchain build, and that
// copy is the one their encodes will actually exercise, so it outranks every
// other install.
func (p *Probe) companionSidecar() (string, bool) {
	companion := strings.TrimSpace(p.opts.CompanionBinary)
	if companion == "" {
		return "", false
	}
	resolved, err := exec.LookPath(companion)
	if err != nil {
		return "", false
	}
	candidate := filepath.Join(filepath.Dir(resolved), executableName(filepath.Base(p.opts.Binary)))
	info, err := os.Stat(candidate)
	if err != nil || !isExecutable(info) {
		return "", false
	}
	return candidate, true
}

func (p *Probe) runnable(ctx context.Context, binary string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	_, err := p.runner.Run(ctx, binary, "-version")
	return err == nil
}

func defaultSearchDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{`C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`}
	}
	return []string{"/usr/local/bin", "/opt/homebrew/bin", "/usr/bin"}
}

func executableName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
