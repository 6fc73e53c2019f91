package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestELDCommand(t *testing.T) {
	out, err := run(t, "eld", "--miles", "1000", "--cycle", "48", "--pickup", "chicago", "--dropoff", "denver")
	require.NoError(t, err)

	assert.Contains(t, out, "2 panel(s)")
	assert.Contains(t, out, "From: Chicago  To: Denver  Total miles: 1000  Cycle: 48 hours")
	assert.Contains(t, out, "Totals: Off-Duty=12, Sleeper Berth=0, Driving=10, On-Duty (not driving)=2")
}

func TestELDCommandZeroCycle(t *testing.T) {
	out, err := run(t, "eld", "--miles", "1000", "--cycle", "0")
	require.NoError(t, err)
	assert.Equal(t, "0 panel(s)\n", out)
}

func TestCycleFlagIsBounded(t *testing.T) {
	for _, args := range [][]string{
		{"eld", "--miles", "100", "--cycle", "1e300"},
		{"eld", "--cycle", "-1"},
		{"chart", "--cycle", "10001", "-o", filepath.Join(t.TempDir(), "x.png")},
	} {
		_, err := run(t, args...)
		assert.ErrorContains(t, err, "--cycle must be between 0 and 10000", "%v", args)
	}
}

func TestChartCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day1.png")

	_, err := run(t, "chart", "--miles", "500", "--cycle", "24", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Height)

	_, err = run(t, "chart", "--cycle", "24", "--day", "2", "-o", path)
	assert.ErrorContains(t, err, "out of range")
}

func TestSchemaInitSQLite(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[{"address":"Depot","lon":1,"lat":2}]`), 0o600))

	out, err := run(t, "schema", "init", "--driver", "sqlite", "--db-path", filepath.Join(dir, "cache.db"), "--seed", seed)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema ready (sqlite).")
	assert.Contains(t, out, "Seeded 1 addresses.")
}
