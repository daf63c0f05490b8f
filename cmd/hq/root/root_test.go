package root

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"habitquest/internal/coach"
	"habitquest/internal/config"
	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

func useTempConfig(t *testing.T) {
	t.Helper()
	c := config.Default()
	c.DBPath = filepath.Join(t.TempDir(), "hq.db")
	c.Timezone = "UTC"
	cfg = c
}

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s %v: %v\n%s", cmd.Name(), args, err, out.String())
	}
	return out.String()
}

func TestAddLogStatusFlow(t *testing.T) {
	useTempConfig(t)

	out := run(t, newAddCmd(), "Read", "--category", "Mind")
	if !strings.Contains(out, "Added") {
		t.Fatalf("add output: %q", out)
	}
	run(t, newAddCmd(), "Pushups", "--metric")

	out = run(t, newLogCmd(), "read")
	if !strings.Contains(out, "+50 XP") {
		t.Fatalf("log output: %q", out)
	}

	// Below the metric threshold: recorded but not counted.
	out = run(t, newLogCmd(), "Pushups", "3")
	if !strings.Contains(out, "not counted") {
		t.Fatalf("metric log output: %q", out)
	}

	out = run(t, newListCmd())
	if !strings.Contains(out, "Read") || !strings.Contains(out, "Pushups") {
		t.Fatalf("list output: %q", out)
	}

	out = run(t, newStatusCmd())
	if !strings.Contains(out, "50 (next at 500") {
		t.Fatalf("status output: %q", out)
	}

	out = run(t, newExportCmd())
	var snap storage.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("export json: %v\n%s", err, out)
	}
	if len(snap.Habits) != 2 || snap.User == nil || snap.User.XP != 50 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestLogUnknownHabit(t *testing.T) {
	useTempConfig(t)
	cmd := newLogCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ghost"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown habit")
	}
}

func TestCoachWithoutKeyIsNotFatal(t *testing.T) {
	useTempConfig(t)
	cfg.Coach.APIKey = ""

	var stderr bytes.Buffer
	cmd := newCoachCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"mentor"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("coach mentor should not fail: %v", err)
	}
	if !strings.Contains(stderr.String(), "coach unavailable") {
		t.Fatalf("stderr: %q", stderr.String())
	}
}

func TestSuggestionInputFallsBackOnBadColor(t *testing.T) {
	in := suggestionInput(&coach.Suggestion{Name: "Running", Category: "Fitness", Color: "neon green"})
	if in.Color != engine.DefaultColor {
		t.Fatalf("color=%q, want default", in.Color)
	}
	in = suggestionInput(&coach.Suggestion{Name: "Running", Color: "#39FF14"})
	if in.Color != "#39ff14" {
		t.Fatalf("color=%q", in.Color)
	}
}

func TestNormalizePercent(t *testing.T) {
	if got := normalizePercent(0.85); got != 85 {
		t.Fatalf("normalizePercent(0.85)=%v", got)
	}
	if got := normalizePercent(72); got != 72 {
		t.Fatalf("normalizePercent(72)=%v", got)
	}
}

func TestWriteExportFileKeepsPreviousOnEncodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"habitquest_habits":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	bad := math.Inf(1)
	snap := storage.Snapshot{Habits: []storage.Habit{{
		ID:   "h1",
		Name: "Water",
		Logs: []storage.LogEntry{{Date: "2024-01-01", Completed: true, Value: &bad}},
	}}}
	if err := writeExportFile(path, snap); err == nil {
		t.Fatalf("expected encode error for +Inf value")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"habitquest_habits":[]}` {
		t.Fatalf("previous export was modified: %q", got)
	}

	snap.Habits[0].Logs[0].Value = nil
	if err := writeExportFile(path, snap); err != nil {
		t.Fatalf("writeExportFile: %v", err)
	}
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"Water"`) {
		t.Fatalf("export not replaced: %s", got)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}
