package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gazdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gazdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gazdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gazdb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gazdb", "config.yaml"),
		},
		{
			msg: "heuristics file",
			fn:  config.HeuristicsFilePath,
			res: filepath.Join(tempHome, ".config", "gazdb", "heuristics.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "stedsnavn_staging", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		// Source defaults
		assert.Equal(t, "stedsnavn_%", cfg.Source.SchemaPattern)
		assert.Equal(t, 30, cfg.Source.ReadyAttempts)
		assert.Equal(t, 2, cfg.Source.ReadyIntervalSec)
		assert.Equal(t,
			[]string{"by", "tettsted", "bygdelagBygd", "bydel",
				"tettbebyggelse", "gard"},
			cfg.Source.PlaceTypes)

		// Paths, build and verify defaults
		assert.Equal(t, "/data/places_staging.csv", cfg.Paths.CSV)
		assert.Equal(t, "/data/places.db", cfg.Paths.DB)
		assert.Empty(t, cfg.Build.SchemaPath)
		assert.Equal(t, "EPSG:25833", cfg.Build.ProjectionSource)
		assert.Equal(t, "EPSG:4326", cfg.Build.ProjectionTarget)
		assert.Equal(t, 100, cfg.Verify.MaxSizeMB)
		assert.Equal(t, "oslo", cfg.Verify.ExactName)
		assert.Equal(t, "%ø%", cfg.Verify.DiacriticPattern)
		assert.Equal(t, "berg*", cfg.Verify.FTSQuery)
		assert.False(t, cfg.Verify.RequireSmoke)
		assert.Equal(t, 300, cfg.Pipeline.StepTimeoutSec)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})

	t.Run("default place types are a fresh copy", func(t *testing.T) {
		other := config.New()
		other.Source.PlaceTypes[0] = "changed"
		assert.Equal(t, "by", cfg.Source.PlaceTypes[0])
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionPositiveInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(int) config.Option
		get   func(*config.Config) int
		input int
		want  int
	}{
		{
			name:  "port accepts positive",
			opt:   config.OptDatabasePort,
			get:   func(c *config.Config) int { return c.Database.Port },
			input: 6543,
			want:  6543,
		},
		{
			name:  "port rejects zero",
			opt:   config.OptDatabasePort,
			get:   func(c *config.Config) int { return c.Database.Port },
			input: 0,
			want:  5432,
		},
		{
			name:  "ready attempts rejects negative",
			opt:   config.OptSourceReadyAttempts,
			get:   func(c *config.Config) int { return c.Source.ReadyAttempts },
			input: -3,
			want:  30,
		},
		{
			name:  "max size accepts positive",
			opt:   config.OptVerifyMaxSizeMB,
			get:   func(c *config.Config) int { return c.Verify.MaxSizeMB },
			input: 250,
			want:  250,
		},
		{
			name:  "step timeout accepts positive",
			opt:   config.OptPipelineStepTimeoutSec,
			get:   func(c *config.Config) int { return c.Pipeline.StepTimeoutSec },
			input: 60,
			want:  60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.want, tt.get(cfg))
		})
	}
}

func TestOptionSourcePlaceTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "sets list",
			input:    []string{"by", "tettsted"},
			expected: []string{"by", "tettsted"},
		},
		{
			name:     "drops blank entries",
			input:    []string{" by ", "", "  "},
			expected: []string{"by"},
		},
		{
			name:     "ignores empty list",
			input:    nil,
			expected: config.DefaultPlaceTypes(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourcePlaceTypes(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.PlaceTypes)
		})
	}
}

func TestOptionEnums(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		get   func(*config.Config) string
		want  string
	}{
		{
			name: "ssl mode normalised to lower case",
			opt:  config.OptDatabaseSSLMode("REQUIRE"),
			get:  func(c *config.Config) string { return c.Database.SSLMode },
			want: "require",
		},
		{
			name: "unknown ssl mode ignored",
			opt:  config.OptDatabaseSSLMode("sometimes"),
			get:  func(c *config.Config) string { return c.Database.SSLMode },
			want: "disable",
		},
		{
			name: "log destination stderr",
			opt:  config.OptLogDestination("stderr"),
			get:  func(c *config.Config) string { return c.Log.Destination },
			want: "stderr",
		},
		{
			name: "tint format is not supported",
			opt:  config.OptLogFormat("tint"),
			get:  func(c *config.Config) string { return c.Log.Format },
			want: "json",
		},
		{
			name: "debug level",
			opt:  config.OptLogLevel(" Debug "),
			get:  func(c *config.Config) string { return c.Log.Level },
			want: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.want, tt.get(cfg))
		})
	}
}

func TestOptionVerifyRequireSmoke(t *testing.T) {
	trueVal := true
	falseVal := false

	cfg := config.New()
	cfg.Update([]config.Option{config.OptVerifyRequireSmoke(&trueVal)})
	assert.True(t, cfg.Verify.RequireSmoke)

	cfg.Update([]config.Option{config.OptVerifyRequireSmoke(nil)})
	assert.True(t, cfg.Verify.RequireSmoke, "nil keeps the current value")

	cfg.Update([]config.Option{config.OptVerifyRequireSmoke(&falseVal)})
	assert.False(t, cfg.Verify.RequireSmoke)
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("custom.host.com"),
			config.OptDatabasePort(6543),
			config.OptDatabaseUser("myuser"),
			config.OptPathsDB("/tmp/places.db"),
			config.OptLogLevel("debug"),
		}

		cfg.Update(opts)

		assert.Equal(t, "custom.host.com", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, "myuser", cfg.Database.User)
		assert.Equal(t, "/tmp/places.db", cfg.Paths.DB)
		assert.Equal(t, "debug", cfg.Log.Level)

		// Unchanged fields keep defaults
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptPathsCSV("/first.csv"),
			config.OptPathsCSV("/second.csv"),
		}

		cfg.Update(opts)

		assert.Equal(t, "/second.csv", cfg.Paths.CSV)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		requireSmoke := true
		original := config.New()
		opts := []config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(6543),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptSourceSchemaPattern("stedsnavn_2025%"),
			config.OptSourceDumpPath("/tmp/dump.sql"),
			config.OptSourceReadyAttempts(5),
			config.OptSourceReadyIntervalSec(1),
			config.OptSourcePlaceTypes([]string{"by"}),
			config.OptPathsCSV("/tmp/places.csv"),
			config.OptPathsDB("/tmp/places.db"),
			config.OptBuildSchemaPath("/tmp/schema.sql"),
			config.OptBuildProjectionSource("EPSG:25832"),
			config.OptBuildProjectionTarget("EPSG:4258"),
			config.OptVerifyMaxSizeMB(42),
			config.OptVerifyExactName("bergen"),
			config.OptVerifyDiacriticPattern("%å%"),
			config.OptVerifyFTSQuery("fjord*"),
			config.OptVerifyRequireSmoke(&requireSmoke),
			config.OptPipelineStepTimeoutSec(60),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
		}
		original.Update(opts)

		// Convert to options and apply to new config
		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Source, newCfg.Source)
		assert.Equal(t, original.Paths, newCfg.Paths)
		assert.Equal(t, original.Build, newCfg.Build)
		assert.Equal(t, original.Verify, newCfg.Verify)
		assert.Equal(t, original.Pipeline, newCfg.Pipeline)
		assert.Equal(t, original.Log, newCfg.Log)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
		})

		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		assert.Equal(t, "", newCfg.HomeDir)
	})
}
