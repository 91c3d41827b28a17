// Package pointio reads point sets of lat/lon rows from CSV and XLSX files.
package pointio

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var ErrBadRow = errors.New("bad point row")

// parseCoord accepts both decimal points and decimal commas
func parseCoord(val string) (float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, errors.New("empty")
	}
	return strconv.ParseFloat(val, 64)
}

// parseRows turns lat, lon rows into locations. The first non-blank row is
// skipped as a header when its coordinates do not parse. Blank rows are ignored.
func parseRows(rows [][]string) ([]models.Location, error) {
	var points []models.Location
	first := true
	for i, row := range rows {
		if blank(row) {
			continue
		}
		header := first
		first = false
		if len(row) < 2 {
			return nil, errors.Wrapf(ErrBadRow, "row %d: need lat and lon, got %d columns", i+1, len(row))
		}

		lat, err1 := parseCoord(row[0])
		lon, err2 := parseCoord(row[1])
		if err1 != nil || err2 != nil {
			if header {
				continue
			}
			return nil, errors.Wrapf(ErrBadRow, "row %d: %q, %q", i+1, row[0], row[1])
		}

		loc := models.Location{Lat: lat, Lon: lon}
		if err := loc.Validate(); err != nil {
			return nil, errors.Wrapf(ErrBadRow, "row %d: %v", i+1, err)
		}
		points = append(points, loc)
	}
	return points, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadCSV reads lat,lon rows from r. Semicolon separated files are accepted
// so decimal commas can be used.
func ReadCSV(r io.Reader) ([]models.Location, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if strings.Contains(firstLine(string(data)), ";") {
		cr.Comma = ';'
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	return parseRows(rows)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// ReadXLSX reads lat, lon rows from the first two columns of a sheet. An
// empty sheet name selects the first sheet.
func ReadXLSX(path, sheet string) ([]models.Location, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return parseRows(rows)
}

// ReadFile reads a point set choosing the format by file extension
func ReadFile(path, sheet string) ([]models.Location, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, sheet)
	case ".csv", ".txt", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		defer f.Close()
		return ReadCSV(f)
	}
	return nil, errors.Errorf("unsupported point file %s", path)
}
