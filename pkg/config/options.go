package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptSourceSchemaPattern sets the LIKE pattern of the gazetteer schema.
func OptSourceSchemaPattern(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Schema Pattern", s) {
			c.Source.SchemaPattern = s
		}
	}
}

// OptSourceDumpPath sets the path of the PostGIS dump file.
func OptSourceDumpPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Dump Path", s) {
			c.Source.DumpPath = s
		}
	}
}

// OptSourceReadyAttempts sets how many readiness attempts are made.
func OptSourceReadyAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Ready Attempts", i) {
			c.Source.ReadyAttempts = i
		}
	}
}

// OptSourceReadyIntervalSec sets the pause between readiness attempts.
func OptSourceReadyIntervalSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Ready Interval", i) {
			c.Source.ReadyIntervalSec = i
		}
	}
}

// OptSourcePlaceTypes sets the allow-list of extracted type codes.
// Blank entries are dropped, an empty result is rejected.
func OptSourcePlaceTypes(ss []string) Option {
	var types []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" {
			types = append(types, v)
		}
	}
	return func(c *Config) {
		if isValidList("Source Place Types", types) {
			c.Source.PlaceTypes = types
		}
	}
}

// OptPathsCSV sets the location of the interchange CSV file.
func OptPathsCSV(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Paths CSV", s) {
			c.Paths.CSV = s
		}
	}
}

// OptPathsDB sets the location of the output SQLite database.
func OptPathsDB(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Paths DB", s) {
			c.Paths.DB = s
		}
	}
}

// OptBuildSchemaPath sets a schema definition file that replaces the
// embedded schema.
func OptBuildSchemaPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Build Schema Path", s) {
			c.Build.SchemaPath = s
		}
	}
}

// OptBuildProjectionSource sets the source CRS identifier.
func OptBuildProjectionSource(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Build Projection Source", s) {
			c.Build.ProjectionSource = s
		}
	}
}

// OptBuildProjectionTarget sets the target CRS identifier.
func OptBuildProjectionTarget(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Build Projection Target", s) {
			c.Build.ProjectionTarget = s
		}
	}
}

// OptVerifyMaxSizeMB sets the database size ceiling in megabytes.
func OptVerifyMaxSizeMB(i int) Option {
	return func(c *Config) {
		if isValidInt("Verify Max Size", i) {
			c.Verify.MaxSizeMB = i
		}
	}
}

// OptVerifyExactName sets the name used by the exact-match check.
func OptVerifyExactName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Verify Exact Name", s) {
			c.Verify.ExactName = s
		}
	}
}

// OptVerifyDiacriticPattern sets the LIKE pattern of the diacritic check.
func OptVerifyDiacriticPattern(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Verify Diacritic Pattern", s) {
			c.Verify.DiacriticPattern = s
		}
	}
}

// OptVerifyFTSQuery sets the MATCH expression of the full-text check.
func OptVerifyFTSQuery(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Verify FTS Query", s) {
			c.Verify.FTSQuery = s
		}
	}
}

// OptVerifyRequireSmoke makes smoke-query failures fatal.
// Uses pointer to distinguish between unset (nil) and false.
func OptVerifyRequireSmoke(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Verify.RequireSmoke = *b
		}
	}
}

// OptPipelineStepTimeoutSec sets the wall-clock limit of each pipeline step.
func OptPipelineStepTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Pipeline Step Timeout", i) {
			c.Pipeline.StepTimeoutSec = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
