package pointio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []models.Location
	}{
		{
			name:  "header",
			input: "lat,lon\n40.7128,-74.0060\n51.5074,-0.1278\n",
			want:  []models.Location{{Lat: 40.7128, Lon: -74.0060}, {Lat: 51.5074, Lon: -0.1278}},
		},
		{
			name:  "no header",
			input: "48.8566, 2.3522\n\n35.6762,139.6503",
			want:  []models.Location{{Lat: 48.8566, Lon: 2.3522}, {Lat: 35.6762, Lon: 139.6503}},
		},
		{
			name:  "semicolons and decimal commas",
			input: "enlem;boylam\n41,0082;28,9784\n",
			want:  []models.Location{{Lat: 41.0082, Lon: 28.9784}},
		},
		{
			name:  "blank lines before header",
			input: ",\n , \nlat,lon\n1,2\n",
			want:  []models.Location{{Lat: 1, Lon: 2}},
		},
		{
			name:  "extra columns",
			input: "1,2,name\n3,4,other\n",
			want:  []models.Location{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadCSVBadRows(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("lat,lon\n1,2\nx,3\n"))
	assert.True(t, errors.Is(err, ErrBadRow))
	assert.Contains(t, err.Error(), "row 3")

	_, err = ReadCSV(strings.NewReader("1,2\n5\n"))
	assert.True(t, errors.Is(err, ErrBadRow))

	_, err = ReadCSV(strings.NewReader("95,2\n"))
	assert.True(t, errors.Is(err, ErrBadRow))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"lat", "lon"},
		{40.7128, -74.006},
		{"51,5074", "-0,1278"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := ReadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, []models.Location{{Lat: 40.7128, Lon: -74.006}, {Lat: 51.5074, Lon: -0.1278}}, got)

	_, err = ReadXLSX(path, "missing")
	assert.Error(t, err)

	got, err = ReadFile(path, sheet)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4\n"), 0o644))

	got, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ReadFile(filepath.Join(dir, "points.json"), "")
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"), "")
	assert.Error(t, err)
}

func TestParseRowsHeaderAfterBlankRows(t *testing.T) {
	rows := [][]string{{}, {"", " "}, {"Enlem", "Boylam"}, {"41.0082", "28.9784"}}
	got, err := parseRows(rows)
	require.NoError(t, err)
	assert.Equal(t, []models.Location{{Lat: 41.0082, Lon: 28.9784}}, got)

	// only one header row is tolerated
	_, err = parseRows([][]string{{}, {"lat", "lon"}, {"lat", "lon"}, {"1", "2"}})
	assert.True(t, errors.Is(err, ErrBadRow))
	assert.Contains(t, err.Error(), "row 3")
}
