package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guise/internal/panel"
)

func writeTestConfig(t *testing.T, role string) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "guise.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[player]
id = "tester"
name = "Tester"
role = %q

[logging]
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), role)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func createdItemID(t *testing.T, output string) string {
	t.Helper()
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) < 3 || fields[0] != "Created" {
		t.Fatalf("unexpected create output %q", output)
	}
	return fields[2]
}

func TestVariantWorkflow(t *testing.T) {
	configPath := writeTestConfig(t, "master")

	out, err := runCommand(t, configPath, "items", "add",
		"--name", "Goblin",
		"--url", "https://img.test/goblin.png",
		"--width", "300", "--height", "300")
	if err != nil {
		t.Fatalf("items add: %v\n%s", err, out)
	}
	itemID := createdItemID(t, out)

	if out, err = runCommand(t, configPath, "select", itemID); err != nil {
		t.Fatalf("select: %v\n%s", err, out)
	}

	// First view seeds the live image as the only variant.
	out, err = runCommand(t, configPath, "variants", "--json")
	if err != nil {
		t.Fatalf("variants: %v\n%s", err, out)
	}
	var entries []panel.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode variants output: %v\n%s", err, out)
	}
	if len(entries) != 1 || !entries[0].Live {
		t.Fatalf("entries = %+v, want one live seed", entries)
	}

	out, err = runCommand(t, configPath, "add", "https://img.test/goblin-rage.png",
		"--width", "600", "--height", "600", "--name", "Rage")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}

	out, err = runCommand(t, configPath, "variants", "--json")
	if err != nil {
		t.Fatalf("variants after add: %v\n%s", err, out)
	}
	entries = nil
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode variants output: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2", entries)
	}
	var rageID string
	for _, entry := range entries {
		if entry.Record.Name == "Rage" {
			rageID = entry.Record.ID
		}
	}
	if rageID == "" {
		t.Fatalf("added record missing: %+v", entries)
	}

	if out, err = runCommand(t, configPath, "switch", rageID); err != nil {
		t.Fatalf("switch: %v\n%s", err, out)
	}

	out, err = runCommand(t, configPath, "variants", "--json")
	if err != nil {
		t.Fatalf("variants after switch: %v\n%s", err, out)
	}
	entries = nil
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode variants output: %v", err)
	}
	for _, entry := range entries {
		if entry.Record.ID == rageID && !entry.Live {
			t.Fatal("switched record is not live")
		}
	}

	// The now-live record cannot be removed.
	if out, err = runCommand(t, configPath, "remove", rageID); err == nil {
		t.Fatalf("remove live variant succeeded:\n%s", out)
	}
}

func TestItemsRemoveUnknown(t *testing.T) {
	configPath := writeTestConfig(t, "master")

	out, err := runCommand(t, configPath, "items", "remove", "no-such-item")
	if err == nil {
		t.Fatalf("expected error, got:\n%s", out)
	}
}

func TestSelectRejectsUnknownIDs(t *testing.T) {
	configPath := writeTestConfig(t, "master")

	if _, err := runCommand(t, configPath, "select", "ghost"); err == nil {
		t.Fatal("selecting an unknown id succeeded")
	}
}

func TestAddDeniedForUnprivilegedPlayer(t *testing.T) {
	configPath := writeTestConfig(t, "player")

	out, err := runCommand(t, configPath, "items", "add",
		"--name", "Token",
		"--url", "https://img.test/token.png",
		"--width", "100", "--height", "100")
	if err != nil {
		t.Fatalf("items add: %v\n%s", err, out)
	}
	itemID := createdItemID(t, out)
	if _, err := runCommand(t, configPath, "select", itemID); err != nil {
		t.Fatalf("select: %v", err)
	}

	_, err = runCommand(t, configPath, "add", "https://img.test/alt.png",
		"--width", "50", "--height", "50")
	if err == nil {
		t.Fatal("unprivileged add succeeded")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v\n%s", err, buf.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[player]") {
		t.Fatalf("sample config missing player section:\n%s", data)
	}

	// Second init without --overwrite refuses.
	cmd = newRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("overwriting init succeeded without --overwrite")
	}
}
