// Package iotesting provides shared fixtures for tests: sample places,
// interchange files, temporary configurations and access to a live
// PostGIS instance.
package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/gazdb/internal/iocsv"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/place"
)

// LiveEnv enables tests that need a running PostGIS with the gazetteer
// loaded. Connection settings come from the usual PG* variables.
const LiveEnv = "GAZDB_TEST_PG"

func ptr(s string) *string { return &s }

// SamplePlaces returns a small canonical dataset with Norwegian
// letters, a place without municipality and names for the verifier
// checks.
func SamplePlaces() []place.Place {
	return []place.Place{
		{
			SSRID: "ssr-1", Name: "Oslo", Lat: 59.913868, Lon: 10.752245,
			Class: place.City, MunicipalityCode: ptr("0301"),
			MunicipalityName: ptr("Oslo"), CountyName: ptr("Oslo"),
			IsCountySeat: true, IsMunicipalitySeat: true, Importance: 10,
		},
		{
			SSRID: "ssr-2", Name: "Bergen", Lat: 60.391263, Lon: 5.322054,
			Class: place.City, MunicipalityCode: ptr("4601"),
			MunicipalityName: ptr("Bergen"), CountyName: ptr("Vestland"),
			IsCountySeat: true, IsMunicipalitySeat: true, Importance: 10,
		},
		{
			SSRID: "ssr-3", Name: "Tromsø", Lat: 69.649205, Lon: 18.955324,
			Class: place.City, MunicipalityCode: ptr("5501"),
			MunicipalityName: ptr("Tromsø"), CountyName: ptr("Troms"),
			IsCountySeat: true, IsMunicipalitySeat: true, Importance: 10,
		},
		{
			SSRID: "ssr-4", Name: "Sandvika", Lat: 59.889968, Lon: 10.524320,
			Class: place.Town, MunicipalityCode: ptr("3024"),
			MunicipalityName: ptr("Bærum"), CountyName: ptr("Akershus"),
			Importance: 8,
		},
		{
			SSRID: "ssr-5", Name: "Bergsletta", Lat: 61.123456, Lon: 9.654321,
			Class: place.Farm, MunicipalityCode: ptr("3436"),
			MunicipalityName: ptr("Nord-Fron"), CountyName: ptr("Innlandet"),
			Importance: 2,
		},
		{
			SSRID: "ssr-6", Name: "Ødegården", Lat: 62.0, Lon: 10.0,
			Class: place.Farm, Importance: 2,
		},
	}
}

// WriteCSV writes places to an interchange file in dir and returns its
// path.
func WriteCSV(t *testing.T, dir string, places []place.Place) string {
	t.Helper()
	path := filepath.Join(dir, "places.csv")
	if err := iocsv.Write(path, places); err != nil {
		t.Fatalf("cannot write interchange file: %v", err)
	}
	return path
}

// AppendCSVLine adds a raw line to an interchange file.
func AppendCSVLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("cannot open %s: %v", path, err)
	}
	defer f.Close()
	if _, err = f.WriteString(line + "\n"); err != nil {
		t.Fatalf("cannot append to %s: %v", path, err)
	}
}

// TempConfig returns a default configuration with home, interchange
// and database paths inside a temporary directory.
func TempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptPathsCSV(filepath.Join(dir, "data", "places.csv")),
		config.OptPathsDB(filepath.Join(dir, "data", "places.db")),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// LiveConfig returns a configuration for the PostGIS instance named by
// the PG* environment variables.
func LiveConfig() *config.Config {
	cfg := config.New()
	var opts []config.Option
	if s := os.Getenv("PGHOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("PGPORT"); s != "" {
		if port, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("PGUSER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("PGPASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := os.Getenv("PGDATABASE"); s != "" {
		opts = append(opts, config.OptDatabaseDatabase(s))
	}
	cfg.Update(opts)
	return cfg
}
