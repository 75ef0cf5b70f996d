package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "run.log")))
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd == nil {
		t.Fatal("newRootCmd returned nil")
	}
	if cmd.Use != "firewall-rule-generator" {
		t.Errorf("Expected use 'firewall-rule-generator', got '%s'", cmd.Use)
	}
	for _, name := range []string{"description", "role", "protocol", "source-type", "source", "input", "preset", "format", "out", "color"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s to be registered", name)
		}
	}
}

func TestRunPresetScript(t *testing.T) {
	out, err := execute(t, "--preset", "bastion", "--format", "script")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(out, "#!/bin/sh\n# ruleset ") {
		t.Fatalf("expected script header, got %q", out)
	}
	if !strings.Contains(out, "iptables -A INPUT -p tcp --dport 22 -s 203.0.113.0/24 -m state --state NEW -j ACCEPT\n") {
		t.Fatalf("expected restricted SSH rule, got:\n%s", out)
	}
}

func TestRunFlagsOverridePreset(t *testing.T) {
	// This test checks that an explicit flag wins over the preset's field.
	out, err := execute(t, "--preset", "bastion", "--source-type", "any", "--format", "json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var res struct {
		Score    int `json:"score"`
		Warnings []struct {
			Severity string `json:"severity"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("expected JSON output, got %v\n%s", err, out)
	}
	if res.Score != 55 {
		t.Fatalf("expected score 55 for open SSH, got %d", res.Score)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Severity != "critical" {
		t.Fatalf("expected a single critical warning, got %#v", res.Warnings)
	}
}

func TestRunInputFileToOutFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "request.yaml")
	output := filepath.Join(dir, "rules.txt")
	doc := "role: custom\ndescription: database with mysql and redis\n"
	if err := os.WriteFile(input, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write request: %v", err)
	}

	if _, err := execute(t, "--input", input, "--format", "text", "--color", "never", "--out", output); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	text := string(data)
	mysql := strings.Index(text, "--dport 3306 ")
	redis := strings.Index(text, "--dport 6379 ")
	if mysql < 0 || redis < 0 || mysql > redis {
		t.Fatalf("expected MySQL then Redis rules, got:\n%s", text)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	cases := [][]string{
		{"--role", "mailserver"},
		{"--source-type", "single", "--source", "office"},
		{"--format", "xml"},
		{"--preset", "nope"},
		{"--color", "sometimes"},
		{"--input", "/nonexistent/request.yaml"},
		{"--preset", "web", "--input", "request.yaml"},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("expected %v to fail", args)
		}
	}
}

func TestRunMissingSourceValueDegrades(t *testing.T) {
	out, err := execute(t, "-p", "SSH", "--source-type", "cidr", "--format", "json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "SSH is open to the entire internet") {
		t.Fatalf("expected missing source value to be treated as unrestricted, got:\n%s", out)
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	if on, _ := useColor("auto", &buf); on {
		t.Error("Expected auto to disable color for a non-terminal writer")
	}
	if on, _ := useColor("always", &buf); !on {
		t.Error("Expected always to enable color")
	}
	if on, _ := useColor("never", &buf); on {
		t.Error("Expected never to disable color")
	}
	if _, err := useColor("rainbow", &buf); err == nil {
		t.Error("Expected unknown color mode to fail")
	}
}

func TestSetupLogger(t *testing.T) {
	levels := []string{"DEBUG", "INFO", "WARN", "ERROR", "UNKNOWN"}
	for _, lvl := range levels {
		l := setupLogger(lvl, "")
		if l == nil {
			t.Errorf("setupLogger returned nil for level %s", lvl)
		}
	}

	logFile := filepath.Join(t.TempDir(), "test.log")
	l1 := setupLogger("INFO", logFile)
	if l1 == nil {
		t.Error("setupLogger with file returned nil")
	}

	// Test invalid log file path
	l2 := setupLogger("INFO", "/nonexistent/path/to/log.log")
	if l2 == nil {
		t.Error("setupLogger should return a logger even if file fails")
	}
}
