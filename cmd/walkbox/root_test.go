package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walkbox/observability"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	// Keep the working directory free of stray walkbox.toml files
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScenesCommand(t *testing.T) {
	out, err := execute(t, "scenes", "--scene", "pillars", "--log-level", "error")
	require.NoError(t, err)
	for _, name := range []string{"notched-room", "l-room", "pillars", "courtyard"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "* pillars")
}

func TestRouteCommand(t *testing.T) {
	out, err := execute(t, "route", "--scene", "l-room", "--log-level", "error",
		"--from", "150,150", "--to", "450,150")
	require.NoError(t, err)

	var got routeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Reachable)
	assert.Equal(t, []routePoint{{150, 150}, {300, 240}, {360, 240}, {450, 150}}, got.Points)
}

func TestRouteCommandClamps(t *testing.T) {
	out, err := execute(t, "route", "--scene", "l-room", "--log-level", "error", "--to", "150,10")
	require.NoError(t, err)

	var got routeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, routePoint{150, 60}, got.Destination)
	assert.Equal(t, routePoint{150, 150}, got.From)
}

func TestRouteCommandMaze(t *testing.T) {
	out, err := execute(t, "route", "--maze", "--seed", "3", "--log-level", "error")
	require.NoError(t, err)

	var got routeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Reachable)
	assert.Equal(t, got.From, got.Points[0])
	assert.Equal(t, got.To, got.Points[len(got.Points)-1])
}

func TestRouteCommandErrors(t *testing.T) {
	_, err := execute(t, "route", "--scene", "l-room", "--log-level", "error")
	assert.ErrorContains(t, err, "--to is required")

	_, err = execute(t, "route", "--scene", "l-room", "--log-level", "error", "--to", "1,2,3")
	assert.ErrorContains(t, err, "--to takes x,y")

	_, err = execute(t, "route", "--scene", "atlantis", "--to", "1,2")
	assert.ErrorContains(t, err, "unknown scene")
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[scene]\nname = \"courtyard\"\n[logger]\nlevel = \"error\"\n"), 0o644))

	out, err := execute(t, "scenes", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "* courtyard")

	t.Setenv("WALKBOX_SCENE_NAME", "l-room")
	out, err = execute(t, "scenes", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "* l-room")
}

func TestInvalidConfigRejected(t *testing.T) {
	t.Setenv("WALKBOX_NAVIGATION_TICK_RATE", "0")
	_, err := execute(t, "scenes")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "tick_rate"))
}
