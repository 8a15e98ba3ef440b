// Package feed loads historical bar datasets from local CSV files and
// returns validated market series. Plain .csv, xz-compressed .csv.xz, and
// .zip archives holding a single CSV are all accepted.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/quantmill/backsim/market"
)

// Expected columns: date,open,high,low,close,volume. A header row is
// tolerated; volume may be empty. Dates are YYYY-MM-DD or RFC3339.
func Load(path string) (*market.Series, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		return loadZip(path)
	case strings.HasSuffix(path, ".xz"):
		return loadXZ(path)
	default:
		return loadPlain(path)
	}
}

func loadPlain(path string) (*market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parse(f)
}

func loadXZ(path string) (*market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open xz stream %s: %w", path, err)
	}
	return parse(r)
}

// loadZip extracts the archive to a temporary directory and loads the single
// CSV file it contains.
func loadZip(path string) (*market.Series, error) {
	dir, err := os.MkdirTemp("", "backsim-zip-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, fmt.Errorf("archive %s: expected exactly one CSV, found %d", path, len(matches))
	}
	return loadPlain(matches[0])
}

func parse(r io.Reader) (*market.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	bars := make([]market.Bar, 0, 256)
	sawFirst := false

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		if len(row) < 5 {
			return nil, fmt.Errorf("row %d: expected at least 5 columns, got %d", len(bars)+1, len(row))
		}

		b, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(bars)+1, err)
		}
		bars = append(bars, b)
	}

	return market.NewSeries(bars)
}

func parseRow(row []string) (market.Bar, error) {
	ts, err := parseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return market.Bar{}, err
	}

	var px [4]float64
	for i, name := range [...]string{"open", "high", "low", "close"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("bad %s %q", name, row[i+1])
		}
		px[i] = v
	}

	vol := 0.0
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		vol, err = strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("bad volume %q", row[5])
		}
	}

	return market.Bar{
		Time:   ts,
		Open:   px[0],
		High:   px[1],
		Low:    px[2],
		Close:  px[3],
		Volume: vol,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}
