package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gazdb/internal/iocsv"
	"github.com/gnames/gazdb/internal/iotesting"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringFlagOpt(t *testing.T) {
	cmd := getTransformCmd()
	assert.Empty(t, stringFlagOpt(cmd, "output", config.OptPathsCSV))

	require.NoError(t, cmd.Flags().Set("output", "/tmp/other.csv"))
	opts := stringFlagOpt(cmd, "output", config.OptPathsCSV)
	require.Len(t, opts, 1)

	c := config.New()
	c.Update(opts)
	assert.Equal(t, "/tmp/other.csv", c.Paths.CSV)
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   string
		flag  string
		short string
	}{
		{"transform", "output", "o"},
		{"load", "input", "i"},
		{"load", "db", "d"},
		{"load", "schema", ""},
		{"verify", "db", "d"},
		{"run", "skip-dump", ""},
	}

	root := getRootCmd()
	for _, v := range tests {
		sub, _, err := root.Find([]string{v.cmd})
		require.NoError(t, err, v.cmd)
		f := sub.Flags().Lookup(v.flag)
		require.NotNil(t, f, v.cmd+" --"+v.flag)
		assert.Equal(t, v.short, f.Shorthand, v.cmd+" --"+v.flag)
	}
}

func TestPipelineSteps(t *testing.T) {
	steps := pipelineSteps("")
	require.Len(t, steps, 2)
	assert.Equal(t, "transform", steps[0].Name)
	assert.Equal(t, []string{"transform"}, steps[0].Args)
	assert.Equal(t, []string{"load"}, steps[1].Args)

	steps = pipelineSteps("/etc/gazdb.yaml")
	assert.Equal(t,
		[]string{"--config", "/etc/gazdb.yaml", "transform"}, steps[0].Args)
	assert.Equal(t,
		[]string{"--config", "/etc/gazdb.yaml", "load"}, steps[1].Args)
}

func TestLoadAndVerify(t *testing.T) {
	cfg = iotesting.TempConfig(t)
	require.NoError(t, iocsv.Write(cfg.Paths.CSV, iotesting.SamplePlaces()))

	dbPath := filepath.Join(t.TempDir(), "custom.db")
	loadCmd := getLoadCmd()
	require.NoError(t, loadCmd.Flags().Set("db", dbPath))
	require.NoError(t, runLoad(loadCmd))

	_, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.Paths.DB)

	verifyCmd := getVerifyCmd()
	require.NoError(t, verifyCmd.Flags().Set("db", dbPath))
	assert.NoError(t, runVerify(verifyCmd))

	verifyCmd = getVerifyCmd()
	missing := filepath.Join(t.TempDir(), "none.db")
	require.NoError(t, verifyCmd.Flags().Set("db", missing))
	assert.Error(t, runVerify(verifyCmd))
}

func TestLoadMissingCSV(t *testing.T) {
	cfg = iotesting.TempConfig(t)
	assert.Error(t, runLoad(getLoadCmd()))
}

// TestVerifyThroughRoot runs the full bootstrap with a temporary home.
func TestVerifyThroughRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GAZDB_LOG_DESTINATION", "")

	cfg = iotesting.TempConfig(t)
	require.NoError(t, iocsv.Write(cfg.Paths.CSV, iotesting.SamplePlaces()))
	require.NoError(t, runLoad(getLoadCmd()))
	dbPath := cfg.Paths.DB

	root := getRootCmd()
	root.SetArgs([]string{"verify", "-d", dbPath})
	require.NoError(t, root.Execute())

	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, dbPath, cfg.Paths.DB)
	assert.FileExists(t, config.ConfigFilePath(home))
	assert.FileExists(t, config.HeuristicsFilePath(home))
	assert.FileExists(t, filepath.Join(config.LogDir(home), "gazdb.log"))
}
