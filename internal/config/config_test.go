package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutConfigFile(t *testing.T) {
	r, err := New("/some/dir", "")
	require.NoError(t, err)
	d := r.Defaults()
	assert.Equal(t, "depth", d.OutType)
	assert.Equal(t, 11.0, d.DamLength)
}

func TestResolvePathJoinsBareNames(t *testing.T) {
	r, err := New("/work/dir", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/work/dir", "dem.tif"), r.ResolvePath("dem.tif"))
}

func TestResolvePathLeavesQualifiedPaths(t *testing.T) {
	r, err := New("/work/dir", "")
	require.NoError(t, err)
	assert.Equal(t, "/abs/dem.tif", r.ResolvePath("/abs/dem.tif"))
	assert.Equal(t, "rel/dem.tif", r.ResolvePath("rel/dem.tif"))
}

func TestResolvePathEmpty(t *testing.T) {
	r, err := New("/work/dir", "")
	require.NoError(t, err)
	assert.Equal(t, "", r.ResolvePath(""))
}
