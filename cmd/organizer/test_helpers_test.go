package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	sourceDir  string
	taxDir     string
	mediaDir   string
	stateDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		sourceDir:  filepath.Join(base, "downloads"),
		taxDir:     filepath.Join(base, "tax"),
		mediaDir:   filepath.Join(base, "media"),
		stateDir:   filepath.Join(base, "state"),
	}
	for _, dir := range []string{env.sourceDir, env.taxDir, env.mediaDir, env.stateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	binDir := filepath.Join(base, "bin")
	pdftotext := writeStubBinary(t, binDir, "pdftotext", "#!/bin/sh\nexit 0\n")
	exiftool := writeStubBinary(t, binDir, "exiftool", "#!/bin/sh\nexit 0\n")

	content := fmt.Sprintf(`[paths]
source_dirs = [%q]
tax_dir = %q
media_dir = %q
log_dir = %q
state_dir = %q

[tools]
pdftotext_binary = %q
exiftool_binary = %q
`,
		env.sourceDir, env.taxDir, env.mediaDir,
		filepath.Join(base, "logs"), env.stateDir,
		pdftotext, exiftool,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return env
}

func writeStubBinary(t *testing.T, dir, name, script string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
