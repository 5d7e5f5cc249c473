package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"cpusim/internal/core"
	"cpusim/internal/responses"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSimulateCSV(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "log:\n  level: error\n")
	procs := writeFile(t, dir, "procs.csv", "1,0,4\n2,1,3\n3,2,1\n4,3,5\n5,4,2\n")

	out, err := execute(t, "--config", cfg, "simulate", procs, "--algorithm", "fcfs", "--about")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, want := range []string{"First-come, first-serve", "convoy effect", "Gantt schedule", "Schedule table"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSimulateJSONWithFileSettings(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "log:\n  level: error\n")
	procs := writeFile(t, dir, "procs.yaml", `
algorithm: rr
time_quantum: 2
processes:
  - {pid: 1, arrival_time: 0, burst_time: 5}
`)

	out, err := execute(t, "--config", cfg, "simulate", procs, "--json")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	var got responses.ScheduleResponse
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := core.Timeline{{1, 0, 2}, {1, 2, 4}, {1, 4, 5}}
	if diff := cmp.Diff(want, got.Timeline); diff != "" {
		t.Errorf("timeline (-want +got):\n%s", diff)
	}

	out, err = execute(t, "--config", cfg, "simulate", procs, "--json", "--quantum", "5")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Timeline) != 1 {
		t.Errorf("--quantum 5 should override the file: %v", got.Timeline)
	}
}

func TestSimulateAnimate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "log:\n  level: error\n")
	procs := writeFile(t, dir, "procs.csv", "1,0,2\n2,1,1\n")

	out, err := execute(t, "--config", cfg, "simulate", procs, "--animate", "--interval", "1ms")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if got := strings.Count(out, clearScreen); got != 4 {
		t.Errorf("frames = %d, want 4 (cursor 0..3)", got)
	}
}

func TestSimulateRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "log:\n  level: error\n")
	procs := writeFile(t, dir, "procs.csv", "1,0,4\n1,2,3\n")

	if _, err := execute(t, "--config", cfg, "simulate", procs); err == nil || !strings.Contains(err.Error(), "duplicated") {
		t.Errorf("expected duplicate pid error, got %v", err)
	}
	if _, err := execute(t, "--config", cfg, "simulate", procs, "-a", "lottery"); err == nil {
		t.Error("expected unknown algorithm error")
	}
}

func TestSimulateWithoutConfigFlag(t *testing.T) {
	procs := writeFile(t, t.TempDir(), "procs.csv", "1,0,5\n")

	out, err := execute(t, "simulate", procs, "-a", "rr", "--json")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	var got responses.ScheduleResponse
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := core.Timeline{{1, 0, 2}, {1, 2, 4}, {1, 4, 5}}
	if diff := cmp.Diff(want, got.Timeline); diff != "" {
		t.Errorf("default quantum timeline (-want +got):\n%s", diff)
	}

	if _, err := execute(t, "simulate", procs, "-a", "rr", "--quantum", "0"); err == nil || !strings.Contains(err.Error(), "time_quantum") {
		t.Errorf("expected time_quantum error for --quantum 0, got %v", err)
	}
}

func TestSaveAndShowRuns(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	cfg := writeFile(t, dir, "config.yaml", "log:\n  level: error\ndb_path: "+db+"\n")
	procs := writeFile(t, dir, "procs.csv", "1,0,8\n2,1,4\n")

	out, err := execute(t, "--config", cfg, "simulate", procs, "-a", "sjf", "-p", "--save")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	id := regexp.MustCompile(`saved as (run_[0-9a-f]{8})`).FindStringSubmatch(out)
	if id == nil {
		t.Fatalf("no run id in output:\n%s", out)
	}

	out, err = execute(t, "--config", cfg, "runs", "list")
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	if !strings.Contains(out, id[1]) || !strings.Contains(out, "Shortest-remaining-time-first") {
		t.Errorf("list output missing run:\n%s", out)
	}

	out, err = execute(t, "--config", cfg, "runs", "show", id[1])
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	if !strings.Contains(out, "Shortest-remaining-time-first") || !strings.Contains(out, "Gantt schedule") {
		t.Errorf("show output:\n%s", out)
	}

	if _, err := execute(t, "--config", cfg, "runs", "show", "run_missing"); err == nil {
		t.Error("expected not found error")
	}
}

func TestRunsRequireHistory(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "config.yaml", "log:\n  level: error\n")
	if _, err := execute(t, "--config", cfg, "runs", "list"); err == nil {
		t.Error("expected error when db_path is unset")
	}
}
