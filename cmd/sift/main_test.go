package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sift/internal/config"
	"sift/internal/journal"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T) (configPath, watchDir string) {
	t.Helper()
	base := t.TempDir()
	watchDir = filepath.Join(base, "inbox")
	if err := os.MkdirAll(watchDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	configPath = filepath.Join(base, "config.toml")
	contents := fmt.Sprintf("[paths]\nwatch_dir = %q\nlog_dir = %q\n", watchDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, watchDir
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "sift "+version)
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Second init without --overwrite refuses to clobber.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}
}

func TestConfigPathCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, configPath)
}

func TestConfigShowCommand(t *testing.T) {
	configPath, watchDir := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, watchDir)
	requireContains(t, out, "classifier:")
}

func TestLogCommandEmptyJournal(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "log")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	requireContains(t, out, "Journal is empty")
}

func TestLogCommandListsRecords(t *testing.T) {
	configPath, watchDir := writeTestConfig(t)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	rec := journal.Record{
		Kind:   journal.KindOrganized,
		Path:   filepath.Join(watchDir, "Data", "budget.csv"),
		Folder: "Data",
	}
	if err := store.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	store.Close()

	out, err := runCLI(t, "--config", configPath, "log")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	requireContains(t, out, "organized")
	requireContains(t, out, "budget.csv")
}

func TestStatusCommand(t *testing.T) {
	configPath, watchDir := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, watchDir)
	requireContains(t, out, "Watch directory:")
	requireContains(t, out, "[OK]")
}

func TestStatusCommandFailsForMissingWatchDir(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf("[paths]\nwatch_dir = %q\nlog_dir = %q\n",
		filepath.Join(base, "missing-inbox"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "status")
	if err == nil {
		t.Fatalf("expected status to fail, output:\n%s", out)
	}
	requireContains(t, out, "[FAIL]")
}
