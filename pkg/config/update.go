package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	s = c.Source.SchemaPattern
	if s != "" {
		res = append(res, OptSourceSchemaPattern(s))
	}
	s = c.Source.DumpPath
	if s != "" {
		res = append(res, OptSourceDumpPath(s))
	}
	i = c.Source.ReadyAttempts
	if i > 0 {
		res = append(res, OptSourceReadyAttempts(i))
	}
	i = c.Source.ReadyIntervalSec
	if i > 0 {
		res = append(res, OptSourceReadyIntervalSec(i))
	}
	if len(c.Source.PlaceTypes) > 0 {
		res = append(res, OptSourcePlaceTypes(c.Source.PlaceTypes))
	}

	s = c.Paths.CSV
	if s != "" {
		res = append(res, OptPathsCSV(s))
	}
	s = c.Paths.DB
	if s != "" {
		res = append(res, OptPathsDB(s))
	}

	s = c.Build.SchemaPath
	if s != "" {
		res = append(res, OptBuildSchemaPath(s))
	}
	s = c.Build.ProjectionSource
	if s != "" {
		res = append(res, OptBuildProjectionSource(s))
	}
	s = c.Build.ProjectionTarget
	if s != "" {
		res = append(res, OptBuildProjectionTarget(s))
	}

	i = c.Verify.MaxSizeMB
	if i > 0 {
		res = append(res, OptVerifyMaxSizeMB(i))
	}
	s = c.Verify.ExactName
	if s != "" {
		res = append(res, OptVerifyExactName(s))
	}
	s = c.Verify.DiacriticPattern
	if s != "" {
		res = append(res, OptVerifyDiacriticPattern(s))
	}
	s = c.Verify.FTSQuery
	if s != "" {
		res = append(res, OptVerifyFTSQuery(s))
	}
	requireSmoke := c.Verify.RequireSmoke
	res = append(res, OptVerifyRequireSmoke(&requireSmoke))

	i = c.Pipeline.StepTimeoutSec
	if i > 0 {
		res = append(res, OptPipelineStepTimeoutSec(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidList(name string, ss []string) bool {
	res := len(ss) > 0
	if !res {
		gn.Warn("<em>%s</em> cannot be an empty list, ignoring", name)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
