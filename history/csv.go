package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// csvHeader is the column layout for bar files. An empty close field
// marks a missing observation.
var csvHeader = []string{"time", "open", "high", "low", "close", "volume"}

// WriteCSV writes bars as CSV with RFC 3339 timestamps.
func WriteCSV(w io.Writer, bars []market.Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, b := range bars {
		closeField := ""
		if !math.IsNaN(b.Close) {
			closeField = strconv.FormatFloat(b.Close, 'f', -1, 64)
		}
		rec := []string{
			b.Time.Format(time.RFC3339),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			closeField,
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write bar at %s: %w", b.Time, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses bars from a CSV stream in the WriteCSV layout.
func ReadCSV(r io.Reader) ([]market.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(header[i], want) {
			return nil, fmt.Errorf("unexpected header %q: column %d is %q, want %q", header, i, header[i], want)
		}
	}

	var bars []market.Bar
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		t, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad time: %w", line, err)
		}

		var b market.Bar
		b.Time = t.UTC()
		if b.Open, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad open: %w", line, err)
		}
		if b.High, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad high: %w", line, err)
		}
		if b.Low, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad low: %w", line, err)
		}
		if rec[4] == "" {
			b.Close = math.NaN()
		} else if b.Close, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad close: %w", line, err)
		}
		if b.Volume, err = strconv.ParseFloat(rec[5], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad volume: %w", line, err)
		}

		bars = append(bars, b)
	}

	if len(bars) == 0 {
		return nil, market.ErrEmptyInput
	}
	return bars, nil
}

// ReadFile loads bars from a CSV file. ".xz" files are decompressed on
// the fly; ".zip" archives are extracted and every contained ".csv"
// file is read, with the combined result sorted by timestamp.
func ReadFile(path string) ([]market.Bar, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		return readZip(path)
	case strings.HasSuffix(path, ".xz"):
		return readXZ(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	}
}

func readXZ(path string) ([]market.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open xz stream: %w", err)
	}
	return ReadCSV(xr)
}

func readZip(path string) ([]market.Bar, error) {
	dir, err := os.MkdirTemp("", "history-zip-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var bars []market.Bar
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".csv") {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		part, err := ReadCSV(f)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		bars = append(bars, part...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, market.ErrEmptyInput
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})
	return bars, nil
}
