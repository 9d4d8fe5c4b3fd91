package crseg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameters(t *testing.T) {
	params, err := ParseParameters([]byte(`
c0 = 3.0
c2 = 6.5
max_cycle_elements = 5
`))
	require.NoError(t, err)
	assert.Equal(t, Parameters{C0: 3, C1: defaultC1, C2: 6.5, MaxCycleElements: 5}, params)

	params, err = ParseParameters([]byte(``))
	require.NoError(t, err)
	assert.Equal(t, DefaultParameters(), params)
}

func TestParseParametersErrors(t *testing.T) {
	_, err := ParseParameters([]byte(`c0 = "wide"`))
	assert.Error(t, err)
	_, err = ParseParameters([]byte(`c1 = -1.0`))
	assert.Error(t, err)
	_, err = ParseParameters([]byte(`max_cycle_elements = 2`))
	assert.Error(t, err)
}

func TestValidateParameters(t *testing.T) {
	assert.NoError(t, DefaultParameters().Validate())
	params := DefaultParameters()
	params.C2 = 0
	assert.Error(t, params.Validate())
}

func TestLoadParameters(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "crseg.toml")
	require.NoError(t, os.WriteFile(filename, []byte("c1 = 1.5\n"), 0o644))
	params, err := LoadParameters(filename)
	require.NoError(t, err)
	assert.Equal(t, 1.5, params.C1)
	assert.Equal(t, defaultC0, params.C0)

	_, err = LoadParameters(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
