// Package config provides configuration management for gazdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Source: schema_pattern, dump_path, ready_attempts, ready_interval_sec,
//     place_types
//   - Paths: csv, db
//   - Build: schema_path, projection_source, projection_target
//   - Verify: max_size_mb, exact_name, diacritic_pattern, fts_query,
//     require_smoke
//   - Pipeline: step_timeout_sec
//   - Log: level, format, destination
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GAZDB_ prefix with underscores for nesting:
//
//	GAZDB_DATABASE_HOST=localhost
//	GAZDB_PATHS_DB=/data/places.db
//	GAZDB_LOG_LEVEL=info
//
// The database block also honours the libpq variables PGHOST, PGPORT,
// PGUSER, PGPASSWORD and PGDATABASE.
package config

// Config represents the complete gazdb configuration.
type Config struct {
	// Database contains connection settings of the source PostGIS database.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Source describes where the gazetteer lives inside the source database.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Paths are the locations of the interchange file and the output database.
	Paths PathsConfig `mapstructure:"paths" yaml:"paths"`

	// Build contains settings of the SQLite database builder.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Verify contains thresholds and checks of the post-build verification.
	Verify VerifyConfig `mapstructure:"verify" yaml:"verify"`

	// Pipeline contains settings of the `run` orchestration.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// SourceConfig describes the gazetteer inside the staging database.
type SourceConfig struct {
	// SchemaPattern is a LIKE pattern used to find the schema created by
	// the Stedsnavn dump (the schema name carries a release suffix).
	SchemaPattern string `mapstructure:"schema_pattern" yaml:"schema_pattern"`

	// DumpPath is the PostGIS SQL dump loaded by `gazdb run` when the
	// staging database is still empty.
	DumpPath string `mapstructure:"dump_path" yaml:"dump_path"`

	// ReadyAttempts is how many times `gazdb run` tries the database
	// before giving up.
	ReadyAttempts int `mapstructure:"ready_attempts" yaml:"ready_attempts"`

	// ReadyIntervalSec is the pause between readiness attempts in seconds.
	ReadyIntervalSec int `mapstructure:"ready_interval_sec" yaml:"ready_interval_sec"`

	// PlaceTypes is the allow-list of source type codes (navneobjekttype)
	// that are extracted. Everything else is ignored at the query.
	PlaceTypes []string `mapstructure:"place_types" yaml:"place_types"`
}

// PathsConfig holds file locations shared by the transform and load stages.
type PathsConfig struct {
	// CSV is the interchange file written by transform and read by load.
	CSV string `mapstructure:"csv" yaml:"csv"`

	// DB is the SQLite database created by load.
	DB string `mapstructure:"db" yaml:"db"`
}

// BuildConfig contains settings for the database builder.
type BuildConfig struct {
	// SchemaPath points to a schema definition file. Empty means the
	// schema embedded into the binary.
	SchemaPath string `mapstructure:"schema_path" yaml:"schema_path"`

	// ProjectionSource identifies the coordinate reference system of the
	// source geometries. Recorded in the metadata table.
	ProjectionSource string `mapstructure:"projection_source" yaml:"projection_source"`

	// ProjectionTarget identifies the coordinate reference system of the
	// output coordinates. Recorded in the metadata table.
	ProjectionTarget string `mapstructure:"projection_target" yaml:"projection_target"`
}

// VerifyConfig contains verification checks and limits.
type VerifyConfig struct {
	// MaxSizeMB is the sanity ceiling for the database file size.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`

	// ExactName is a place known to be present, matched case-insensitively.
	ExactName string `mapstructure:"exact_name" yaml:"exact_name"`

	// DiacriticPattern is a LIKE pattern containing a non-ASCII letter.
	DiacriticPattern string `mapstructure:"diacritic_pattern" yaml:"diacritic_pattern"`

	// FTSQuery is a prefix query for the full-text index.
	FTSQuery string `mapstructure:"fts_query" yaml:"fts_query"`

	// RequireSmoke makes empty smoke-query results fail the verification.
	// By default only row counts and file size decide the outcome.
	RequireSmoke bool `mapstructure:"require_smoke" yaml:"require_smoke"`
}

// PipelineConfig contains settings of the full pipeline run.
type PipelineConfig struct {
	// StepTimeoutSec bounds every external step (dump load, transform,
	// load) in seconds. A step that runs out of time fails.
	StepTimeoutSec int `mapstructure:"step_timeout_sec" yaml:"step_timeout_sec"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "stedsnavn_staging",
			SSLMode:  "disable",
		},
		Source: SourceConfig{
			SchemaPattern:    "stedsnavn_%",
			DumpPath:         "/postgis/Basisdata_0000_Norge_25833_Stedsnavn_PostGIS.sql",
			ReadyAttempts:    30,
			ReadyIntervalSec: 2,
			PlaceTypes:       DefaultPlaceTypes(),
		},
		Paths: PathsConfig{
			CSV: "/data/places_staging.csv",
			DB:  "/data/places.db",
		},
		Build: BuildConfig{
			ProjectionSource: "EPSG:25833",
			ProjectionTarget: "EPSG:4326",
		},
		Verify: VerifyConfig{
			MaxSizeMB:        100,
			ExactName:        "oslo",
			DiacriticPattern: "%ø%",
			FTSQuery:         "berg*",
		},
		Pipeline: PipelineConfig{
			StepTimeoutSec: 300,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// DefaultPlaceTypes returns the populated-place type codes extracted by
// default: cities, towns, villages, districts, settlements and farms.
func DefaultPlaceTypes() []string {
	return []string{
		"by",
		"tettsted",
		"bygdelagBygd",
		"bydel",
		"tettbebyggelse",
		"gard",
	}
}
