package iocsv

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/gnames/gazdb/pkg/place"
	"github.com/jszwec/csvutil"
)

// Reader streams places from an interchange file.
type Reader struct {
	path string
	f    *os.File
	cr   *csv.Reader
	dec  *csvutil.Decoder
}

// Open opens the interchange file and checks its header. A missing
// file or an unexpected header is an error.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NotFoundError(path, err)
	}

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		f.Close()
		return nil, HeaderError(path, nil, err)
	}
	if got := dec.Header(); !slices.Equal(got, Header()) {
		f.Close()
		return nil, HeaderError(path, got, nil)
	}

	return &Reader{path: path, f: f, cr: cr, dec: dec}, nil
}

// Next returns the next place. It returns io.EOF after the last row.
// A row that cannot be converted yields a row error, and the following
// call continues with the next row.
func (r *Reader) Next() (place.Place, error) {
	var row Row
	err := r.dec.Decode(&row)
	if err == io.EOF {
		return place.Place{}, io.EOF
	}
	if err != nil {
		line, id := r.position(err)
		return place.Place{}, RowError(line, id, err)
	}

	res, err := row.Place()
	if err != nil {
		line, _ := r.cr.FieldPos(0)
		return place.Place{}, RowError(line, row.SSRID, err)
	}
	return res, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// ReadAll reads every valid place. Row errors are passed to onErr, and
// reading continues.
func ReadAll(path string, onErr func(error)) ([]place.Place, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var res []place.Place
	for {
		p, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

// position returns the file line where the failed record starts and
// its ssr_id, if the record could be read at all.
func (r *Reader) position(err error) (int, string) {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.StartLine, ""
	}
	line, _ := r.cr.FieldPos(0)
	rec := r.dec.Record()
	if len(rec) == 0 {
		return line, ""
	}
	return line, rec[0]
}
