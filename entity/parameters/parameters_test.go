package parameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/shgcavity/entity/cut"
)

func TestSaveLoad(t *testing.T) {
	p := Default()
	p.Brewster = true
	p.S = 0.065

	for _, name := range []string{"cavity.json", "cavity.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, p))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, p, got)
			assert.Equal(t, cut.Brewster, got.Cut())
		})
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"f": 0.075, "Brewster": true}`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.F = 0.075
	want.Brewster = true
	assert.Equal(t, want, got)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read parameter file")

	_, err = Load(filepath.Join(dir, "cavity.txt"))
	assert.ErrorContains(t, err, "failed to detect parameter file format")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"f": "wide"}`), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to decode parameter file")

	assert.Error(t, Save(filepath.Join(dir, "cavity.png"), Default()))
}

func TestWithS(t *testing.T) {
	p := Default()
	q := p.WithS(0.08)
	assert.Equal(t, 0.08, q.S)
	assert.Equal(t, 0.07, p.S)
}
