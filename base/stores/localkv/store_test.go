package localkv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("theme", "dark"))

	v, err := s.Get("theme")
	require.NoError(t, err)
	require.Equal(t, "dark", v)

	s2, err := Open(path)
	require.NoError(t, err)
	v, err = s2.Get("theme")
	require.NoError(t, err)
	require.Equal(t, "dark", v)
}

func TestGetUnsetReturnsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "studio.json"))
	require.NoError(t, err)
	v, err := s.Get("missing")
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestDel(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "studio.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Del("k"))
	v, err := s.Get("k")
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err := Open(path)
	require.Error(t, err)
}
