package writefiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
)

// NetCDF writes all fields into a single file with x and y coordinate variables
type NetCDF struct {
	FileName string
}

func (nf NetCDF) Write(dir string, m Meta, fields []Field) (files []string, err error) {
	var (
		nr, nc   = fields[0].Values.Dims()
		fileName = filepath.Join(dir, nf.FileName)
		ff       *os.File
		f        *cdf.File
	)
	h := cdf.NewHeader([]string{"x", "y"}, []int{nr, nc})
	for name, txt := range map[string]string{"title": m.Title, "status": m.Status} {
		if len(txt) != 0 {
			h.AddAttribute("", name, txt)
		}
	}
	h.AddAttribute("", "converged", []int32{boolToInt32(m.Converged)})
	h.AddAttribute("", "iterations", []int32{int32(m.Iterations)})
	h.AddAttribute("", "dx", []float64{m.Dx})
	h.AddAttribute("", "dy", []float64{m.Dy})
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddAttribute("x", "description", "Distance along the plate from the leading edge")
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddAttribute("y", "description", "Distance normal to the plate")
	for _, fld := range fields {
		h.AddVariable(fld.Name, []string{"x", "y"}, []float64{0})
		h.AddAttribute(fld.Name, "description", fmt.Sprintf("%s, non-dimensional", fld.Name))
	}
	h.Define()
	for _, herr := range h.Check() {
		return nil, fmt.Errorf("netcdf header: %w", herr)
	}

	if ff, err = os.Create(fileName); err != nil {
		return
	}
	defer func() {
		if cerr := ff.Close(); err == nil {
			err = cerr
		}
	}()
	if f, err = cdf.Create(ff, h); err != nil {
		return
	}
	x, y := make([]float64, nr), make([]float64, nc)
	for i := range x {
		x[i] = float64(i) * m.Dx
	}
	for j := range y {
		y[j] = float64(j) * m.Dy
	}
	if err = writeVar(f, "x", x); err != nil {
		return
	}
	if err = writeVar(f, "y", y); err != nil {
		return
	}
	for _, fld := range fields {
		if err = writeVar(f, fld.Name, fld.Values.DataP); err != nil {
			return
		}
	}
	if err = cdf.UpdateNumRecs(ff); err != nil {
		return
	}
	files = []string{fileName}
	return
}

// writeVar fills the whole of a fixed size variable
func writeVar(f *cdf.File, name string, data []float64) (err error) {
	w := f.Writer(name, nil, nil)
	if _, err = w.Write(data); err != nil {
		err = fmt.Errorf("writing variable %s: %w", name, err)
	}
	return
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
