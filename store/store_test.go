package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/shgcavity/cavity"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(memory)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPresets(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	p := parameters.Default()
	require.NoError(t, s.SavePreset(ctx, "default", p))

	brewster := p
	brewster.Brewster = true
	require.NoError(t, s.SavePreset(ctx, "brewster", brewster))

	got, err := s.Preset(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "default", got.Name)
	assert.Equal(t, p, got.Params)
	assert.False(t, got.CreatedAt.IsZero())

	list, err := s.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "brewster", list[0].Name)
	assert.True(t, list[0].Params.Brewster)
	assert.Equal(t, "default", list[1].Name)

	t.Run("overwrite", func(t *testing.T) {
		later := time.Now().Add(time.Hour)
		s.now = func() time.Time { return later }
		defer func() { s.now = time.Now }()

		require.NoError(t, s.SavePreset(ctx, "default", p.WithS(0.06)))
		got, err := s.Preset(ctx, "default")
		require.NoError(t, err)
		assert.Equal(t, 0.06, got.Params.S)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeletePreset(ctx, "brewster"))
		_, err := s.Preset(ctx, "brewster")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.DeletePreset(ctx, "brewster"), ErrNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		assert.ErrorIs(t, s.SavePreset(ctx, "  ", p), ErrInvalidName)
		assert.ErrorIs(t, s.SavePreset(ctx, "a/b", p), ErrInvalidName)
	})
}

func TestSolutions(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	p := parameters.Default()
	r, err := cavity.Solve(p)
	require.NoError(t, err)

	first, err := s.RecordSolution(ctx, "default", p, r)
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)

	q := p.WithS(0.06)
	r2, err := cavity.Solve(q)
	require.NoError(t, err)
	second, err := s.RecordSolution(ctx, "", q, r2)
	require.NoError(t, err)

	all, err := s.Solutions(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, r, all[1].Result)
	assert.Equal(t, p, all[1].Params)

	byPreset, err := s.Solutions(ctx, "default", 0)
	require.NoError(t, err)
	require.Len(t, byPreset, 1)
	assert.Equal(t, first.ID, byPreset[0].ID)

	limited, err := s.Solutions(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := s.Solutions(ctx, "missing", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cavity.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SavePreset(ctx, "default", parameters.Default()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Preset(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, parameters.Default(), got.Params)
}
