package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func practice(t *testing.T) *levels.Level {
	t.Helper()
	lvl, err := levels.LoadFS(levels.LevelsFS, "practice.tmx")
	require.NoError(t, err)
	return lvl
}

func TestHoldingJumpLongerJumpsHigher(t *testing.T) {
	spec := prefabs.DefaultControllerSpec()
	lvl := practice(t)

	tap, err := measureApex(spec, lvl, 0, zerolog.Nop())
	require.NoError(t, err)
	mid, err := measureApex(spec, lvl, 0.12, zerolog.Nop())
	require.NoError(t, err)
	full, err := measureApex(spec, lvl, spec.Jump.MaxHoldTime, zerolog.Nop())
	require.NoError(t, err)
	over, err := measureApex(spec, lvl, 2*spec.Jump.MaxHoldTime, zerolog.Nop())
	require.NoError(t, err)

	assert.Greater(t, tap.Apex, 40.0)
	assert.Greater(t, mid.Apex, tap.Apex)
	assert.Greater(t, full.Apex, mid.Apex+10)
	// Holding past the ceiling adds nothing.
	assert.InDelta(t, full.Apex, over.Apex, 5.0)
	assert.Greater(t, full.AirTime, tap.AirTime)
}

func TestProbesAgreeOnApex(t *testing.T) {
	lvl := practice(t)
	var apexes []float64
	for _, probe := range []string{prefabs.ProbeSensor, prefabs.ProbeBox, prefabs.ProbeResolv} {
		spec := prefabs.DefaultControllerSpec()
		spec.GroundCheck.Probe = probe
		r, err := measureApex(spec, lvl, 0.1, zerolog.Nop())
		require.NoError(t, err, probe)
		apexes = append(apexes, r.Apex)
	}
	assert.InDelta(t, apexes[0], apexes[1], 1.0)
	assert.InDelta(t, apexes[0], apexes[2], 1.0)
}

func TestApexCommandYAML(t *testing.T) {
	var buf bytes.Buffer
	err := apexCommand(&buf, prefabs.DefaultControllerSpec(), practice(t), 0.2, 3, "yaml")
	require.NoError(t, err)

	var results []ApexResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 3)
	assert.InDelta(t, 0.0167, results[0].Hold, 1e-3)
	assert.InDelta(t, 0.2, results[2].Hold, 1e-3)
}

func TestRunCommandTable(t *testing.T) {
	var buf bytes.Buffer
	err := runCommand(&buf, prefabs.DefaultControllerSpec(), practice(t), "hop", 1.0, 10, "table")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[0], "coyote")
	assert.Len(t, lines, 1+6)
}
