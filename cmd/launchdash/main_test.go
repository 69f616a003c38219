package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/launchdash/launchdash/internal/dashboard"
)

var testdata = filepath.Join("..", "..", "internal", "launches", "testdata", "launches.csv")

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeSpec(t *testing.T, s string) dashboard.ChartSpec {
	t.Helper()
	var spec dashboard.ChartSpec
	if err := json.Unmarshal([]byte(s), &spec); err != nil {
		t.Fatalf("unmarshal spec: %v\n%s", err, s)
	}
	return spec
}

func TestChart_PieAllSites(t *testing.T) {
	out, err := run(t, "chart", "pie", "--dataset", testdata)
	if err != nil {
		t.Fatalf("chart pie: %v", err)
	}
	spec := decodeSpec(t, out)

	got := map[string]float64{}
	for _, s := range spec.Slices {
		got[s.Label] = s.Value
	}
	want := map[string]float64{
		"CCAFS LC-40":  0,
		"VAFB SLC-4E":  1,
		"KSC LC-39A":   2,
		"CCAFS SLC-40": 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
}

func TestChart_ScatterRange(t *testing.T) {
	out, err := run(t, "chart", "scatter", "--dataset", testdata,
		"--site", "KSC LC-39A", "--low", "2000", "--high", "5500")
	if err != nil {
		t.Fatalf("chart scatter: %v", err)
	}
	spec := decodeSpec(t, out)
	if got := spec.PointCount(); got != 2 {
		t.Errorf("points: got %d, want 2", got)
	}
}

func TestChart_PNGToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pie.png")
	if _, err := run(t, "chart", "pie", "--dataset", testdata,
		"--format", "png", "--width", "300", "--height", "200", "-o", path); err != nil {
		t.Fatalf("chart pie png: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Errorf("size: got %dx%d, want 300x200", cfg.Width, cfg.Height)
	}
}

func TestChart_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown kind", []string{"chart", "bar", "--dataset", testdata}, "invalid argument"},
		{"bad format", []string{"chart", "pie", "--dataset", testdata, "--format", "svg"}, "--format"},
		{"unknown site", []string{"chart", "pie", "--dataset", testdata, "--site", "Atlantis"}, "unknown launch site"},
		{"inverted range", []string{"chart", "scatter", "--dataset", testdata, "--low", "5000", "--high", "1000"}, "invalid payload range"},
		{"missing dataset", []string{"chart", "pie", "--dataset", filepath.Join(t.TempDir(), "nope.csv")}, "nope.csv"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error: got %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "launchdash "+version {
		t.Errorf("version: got %q", out)
	}
}

func TestServe_ExplicitConfigMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	for _, args := range [][]string{
		{"serve", "--config", missing},
		{"--config", missing},
	} {
		_, err := run(t, args...)
		if err == nil || !strings.Contains(err.Error(), "config:") {
			t.Errorf("%v: got %v, want config read error", args, err)
		}
	}
}

func TestServe_MissingDataset(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	body := "dataset:\n  path: " + filepath.Join(t.TempDir(), "nope.csv") + "\nlog:\n  level: error\n"
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := run(t, "serve", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "load dataset") {
		t.Errorf("got %v, want dataset load error", err)
	}
}
