package writefiles

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/flatplate/utils"
)

func testFields(nr, nc int) []Field {
	p, rho := utils.NewMatrix(nr, nc), utils.NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			p.DataP[i*nc+j] = float64(i*100 + j)
			rho.DataP[i*nc+j] = 1
		}
	}
	return []Field{{Name: "Pressure", Values: p}, {Name: "Density", Values: rho}}
}

func TestOutputFormat(t *testing.T) {
	for label, of := range map[string]OutputFormat{"table": TABLE, " NetCDF": NETCDF, "png": PNG, "nc": NETCDF} {
		got, err := NewOutputFormat(label)
		assert.NoError(t, err)
		assert.Equal(t, of, got)
	}
	_, err := NewOutputFormat("vtk")
	assert.Error(t, err)
	assert.Equal(t, "NetCDF", NETCDF.Print())
	_, err = NewWriter(OutputFormat(9))
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	var (
		dir    = t.TempDir()
		nr, nc = 4, 3
		m      = Meta{Dx: 0.5, Dy: 0.25, Title: "test", Status: "MaxIterReached", Iterations: 7}
	)
	files, err := Table{}.Write(dir, m, testFields(nr, nc))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "Pressure.dat"), files[0])

	file, err := os.Open(files[0])
	require.NoError(t, err)
	defer file.Close()
	var (
		rows   [][]float64
		header []string
	)
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			header = append(header, line)
			continue
		}
		if len(line) == 0 {
			continue
		}
		var row []float64
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			require.NoError(t, err)
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	require.NoError(t, sc.Err())
	require.Len(t, rows, nr*nc)
	assert.Equal(t, []string{"# Pressure", "# test: MaxIterReached after 7 iterations, unconverged"}, header)
	// Node (2,1)
	row := rows[2*nc+1]
	assert.InDelta(t, 1.0, row[0], 1.e-12)
	assert.InDelta(t, 0.25, row[1], 1.e-12)
	assert.InDelta(t, 201., row[2], 1.e-12)
}

func TestNetCDF(t *testing.T) {
	var (
		dir    = t.TempDir()
		nr, nc = 5, 4
		m      = Meta{Dx: 0.1, Dy: 0.2, Title: "test", Status: "Converged", Converged: true, Iterations: 12}
	)
	files, err := NetCDF{FileName: "out.nc"}.Write(dir, m, testFields(nr, nc))
	require.NoError(t, err)
	require.Len(t, files, 1)

	ff, err := os.Open(files[0])
	require.NoError(t, err)
	defer ff.Close()
	f, err := cdf.Open(ff)
	require.NoError(t, err)
	assert.Equal(t, []int{nr, nc}, f.Header.Lengths("Pressure"))
	assert.Equal(t, "Converged", f.Header.GetAttribute("", "status"))
	assert.Equal(t, []int32{1}, f.Header.GetAttribute("", "converged"))

	r := f.Reader("Pressure", nil, nil)
	buf := r.Zero(nr * nc)
	_, err = r.Read(buf)
	require.NoError(t, err)
	data := buf.([]float64)
	assert.Equal(t, 302., data[3*nc+2])

	r = f.Reader("y", nil, nil)
	buf = r.Zero(nc)
	_, err = r.Read(buf)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, buf.([]float64)[3], 1.e-12)
}

func TestHeatMap(t *testing.T) {
	dir := t.TempDir()
	files, err := HeatMap{}.Write(dir, Meta{Dx: 1, Dy: 1}, testFields(6, 5))
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, fn := range files {
		fi, err := os.Stat(fn)
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}
	gf := gridField{Field: testFields(6, 5)[0], Meta: Meta{Dx: 2, Dy: 3}}
	c, r := gf.Dims()
	assert.Equal(t, 6, c)
	assert.Equal(t, 5, r)
	assert.Equal(t, 403., gf.Z(4, 3))
	assert.Equal(t, 8., gf.X(4))
	assert.Equal(t, 9., gf.Y(3))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	files, err := WriteAll(dir, []OutputFormat{TABLE, NETCDF}, Meta{Dx: 1, Dy: 1}, testFields(3, 3))
	require.NoError(t, err)
	assert.Len(t, files, 3)

	bad := testFields(3, 3)
	bad[1].Values = utils.NewMatrix(2, 3)
	_, err = WriteAll(dir, []OutputFormat{TABLE}, Meta{Dx: 1, Dy: 1}, bad)
	assert.Error(t, err)
	_, err = WriteAll(dir, []OutputFormat{TABLE}, Meta{Dx: 1, Dy: 1}, nil)
	assert.Error(t, err)
}
