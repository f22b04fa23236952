package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidate_BundledLevels(t *testing.T) {
	out, _, err := execute(t, "validate", "--bundled")
	require.NoError(t, err)

	assert.Contains(t, out, `OK   crossroads.yaml: "crossroads"`)
	assert.Contains(t, out, `OK   spiral.yaml: "spiral"`)
	assert.Contains(t, out, "junction P0K1: P0K1 P1K0")
	assert.Contains(t, out, "path 0: 9 knots closed")
}

func TestValidate_DefaultLevel(t *testing.T) {
	out, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "crossroads.yaml")
}

func TestValidate_ReportsInvalidFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: broken\npaths: []\n"), 0o644))

	_, stderr, err := execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, stderr, "FAIL "+bad)
	assert.Contains(t, err.Error(), "1 of 1 levels invalid")
}

func TestSimulate_PlaysRequestedTurns(t *testing.T) {
	out, _, err := execute(t, "simulate", "--turns", "3", "--seed", "7")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "EventRollResult"))
	assert.Contains(t, out, "EventKnotLand")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "turns=3 "), lines[len(lines)-1])
}

func TestSimulate_SameSeedSameLog(t *testing.T) {
	first, _, err := execute(t, "simulate", "--turns", "4", "--seed", "42", "--choose", "random")
	require.NoError(t, err)
	second, _, err := execute(t, "simulate", "--turns", "4", "--seed", "42", "--choose", "random")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulate_JSONLines(t *testing.T) {
	out, _, err := execute(t, "simulate", "--turns", "2", "--json", "--events", "RollResult,KnotLand")
	require.NoError(t, err)

	types := map[string]int{}
	var summary bool
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), scanner.Text())
		if _, ok := line["summary"]; ok {
			summary = true
			continue
		}
		types[line["type"].(string)]++
	}

	assert.True(t, summary)
	assert.Equal(t, 2, types["EventRollResult"])
	assert.Equal(t, 2, types["EventKnotLand"])
	assert.Len(t, types, 2)
}

func TestSimulate_DeadEndLevelStaysOnBoard(t *testing.T) {
	// spiral is a single open path of 6 knots; every turn past the end lands on P0K5
	out, _, err := execute(t, "simulate", "--level", "spiral.yaml", "--turns", "8", "--seed", "3", "--events", "KnotEnter,KnotLand")
	require.NoError(t, err)

	assert.NotContains(t, out, "P0K6")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[len(lines)-1], "knot=P0K5")
}

func TestSimulate_RejectsBadOptions(t *testing.T) {
	_, _, err := execute(t, "simulate", "--choose", "widest")
	assert.ErrorContains(t, err, "unknown junction strategy")

	_, _, err = execute(t, "simulate", "--events", "Teleport")
	assert.ErrorContains(t, err, "unknown event type")
}

func TestLoadLevel_BundledByName(t *testing.T) {
	lvl, err := loadLevel("spiral.yaml")
	require.NoError(t, err)
	assert.Equal(t, "spiral", lvl.Name)

	_, err = loadLevel("missing.yaml")
	assert.Error(t, err)
}

func TestDiceSeed(t *testing.T) {
	assert.Equal(t, uint64(9), diceSeed(9))
	assert.NotZero(t, diceSeed(0))
}
