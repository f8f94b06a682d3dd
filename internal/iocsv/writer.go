package iocsv

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gazdb/pkg/place"
	"github.com/jszwec/csvutil"
)

// Write stores places at path. Data goes to a temporary file in the
// same directory that replaces path only after everything was written,
// so a failed run never leaves a truncated file behind.
func Write(path string, places []place.Place) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return WriteError(path, err)
	}

	f, err := os.CreateTemp(dir, ".places-*.csv")
	if err != nil {
		return WriteError(path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if err = enc.EncodeHeader(Row{}); err != nil {
		return WriteError(path, err)
	}
	for i := range places {
		if err = enc.Encode(FromPlace(places[i])); err != nil {
			return WriteError(path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	if err = f.Sync(); err != nil {
		return WriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteError(path, err)
	}
	if err = os.Chmod(tmp, 0644); err != nil {
		return WriteError(path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return WriteError(path, err)
	}

	slog.Info("Wrote interchange file", "path", path, "rows", len(places))
	return nil
}
