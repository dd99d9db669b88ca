package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keygrip/internal/testsupport"
)

type cliTestEnv struct {
	binaryPath string
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a scripted toolchain binary plus a config file that
// points straight at it, so command tests never depend on what the host has
// installed.
func setupCLITestEnv(t *testing.T, listing string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	binaryPath := testsupport.WriteToolchain(t, filepath.Join(base, "bin"), listing)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, binaryPath)

	return &cliTestEnv{
		binaryPath: binaryPath,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path, binaryPath string) {
	t.Helper()
	content := fmt.Sprintf(`[ffmpeg]
binary = %q
companion_binary = "keygrip-test-no-such-tool"

[probe]
timeout_seconds = 5
verify_timeout_seconds = 5

[logging]
level = "error"
format = "json"
`, binaryPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := make([]string, 0, 2)
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
