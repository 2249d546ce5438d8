package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "zillow.csv", c.CacheFile)
	require.Equal(t, "zillow", c.DBName)
	require.Equal(t, "Single Family Residential", c.Category)
	require.EqualValues(t, 123, c.SplitSeed)
	require.Equal(t, 1000, c.PlotSampleRows)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_file: data/zillow.csv\ndb_host: db.internal\nsplit_seed: 7\n"), 0o644))
	t.Setenv("ZILLOW_DB_HOST", "db.override")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "data/zillow.csv", c.CacheFile)
	require.Equal(t, "db.override", c.DBHost)
	require.EqualValues(t, 7, c.SplitSeed)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "zillow.csv", c.CacheFile)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_file: [unterminated\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Global{CacheFile: "z.csv", DBName: "zillow", DBUser: "analyst", DBHost: "h", SplitSeed: 99, PlotsDir: "out"}
	require.NoError(t, Save(in, path))

	out, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "z.csv", out.CacheFile)
	require.Equal(t, "analyst", out.DBUser)
	require.EqualValues(t, 99, out.SplitSeed)
}

func TestURLFunc(t *testing.T) {
	c := &Global{DBHost: "db.example.com", DBUser: "u", DBPassword: "p"}
	u, err := c.URLFunc()("zillow")
	require.NoError(t, err)
	require.Equal(t, "mysql://u:p@db.example.com/zillow", u)

	c.DBURL = "sqlite:///tmp/z.db"
	u, err = c.URLFunc()("zillow")
	require.NoError(t, err)
	require.Equal(t, "sqlite:///tmp/z.db", u)
}
