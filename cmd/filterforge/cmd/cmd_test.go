package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := NewRootCmd(&stderr)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestDesign_Notation(t *testing.T) {
	out, _, err := run(t, "design", "passive", "lpf", "butterworth", "n=3", "fc=1k", "--points", "32")
	require.NoError(t, err)

	var r design.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Len(t, r.FrequencyResponse.Frequencies, 32)
	assert.Len(t, r.Components, 3)
	assert.Equal(t, "ladder-t", string(r.CircuitTopology))
}

func TestDesign_Flags(t *testing.T) {
	out, _, err := run(t, "design",
		"--type", "active", "--family", "hpf", "--approx", "chebyshev1",
		"-n", "4", "--fc", "500", "--rp", "0.5", "--format", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Topology: sallen-key")
	assert.Contains(t, out, "S1_U")
	assert.Contains(t, out, "S2_U")
}

func TestDesign_Impulse(t *testing.T) {
	out, _, err := run(t, "design", "apf", "n=1", "f0=1k", "--impulse", "100", "--sample-rate", "48000")
	require.NoError(t, err)

	var r design.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.NotNil(t, r.ImpulseResponse)
	assert.Len(t, r.ImpulseResponse.Step, 128)
}

func TestDesign_ErrorVariant(t *testing.T) {
	out, _, err := run(t, "design", "active", "lpf", "butterworth", "n=3", "fc=1k")
	require.Error(t, err)
	assert.True(t, design.IsInvalidParams(err))

	assert.JSONEq(t,
		`{"error":{"code":"INVALID_PARAMS","message":"Sallen-Key requires an even order (2, 4, 6, 8, 10)."}}`,
		out)
}

func TestDesign_Usage(t *testing.T) {
	_, _, err := run(t, "design")
	require.Error(t, err)

	_, _, err = run(t, "design", "lpf", "n=3", "fc=1k", "--format", "csv")
	require.Error(t, err)

	_, _, err = run(t, "design", "lpf", "bogus=1")
	require.Error(t, err)
}

func TestFactor(t *testing.T) {
	out, _, err := run(t, "factor", "--num", "1", "--den", "1,2,2")
	require.NoError(t, err)

	assert.Contains(t, out, "Stable  true")
	assert.Equal(t, 2, strings.Count(out, "pole"))
	assert.Contains(t, out, "Section")

	_, _, err = run(t, "factor", "--den", "1,x")
	require.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "paths")

	out, _, err = run(t, "schema", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi:")
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list")
	require.NoError(t, err)

	for _, want := range []string{"passive", "active", "bef", "elliptic", "ladder-pi"} {
		assert.Contains(t, out, want)
	}
}

func TestRoot_LogLevel(t *testing.T) {
	_, stderr, err := run(t, "-v", "design", "lpf", "butterworth", "n=2", "fc=1k")
	require.NoError(t, err)
	assert.Contains(t, stderr, "designing")

	_, _, err = run(t, "--log-level", "shout", "list")
	require.Error(t, err)
}
