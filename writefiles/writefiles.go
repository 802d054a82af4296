package writefiles

import (
	"fmt"
	"os"
	"strings"

	"github.com/notargets/flatplate/utils"
)

type OutputFormat uint8

const (
	TABLE OutputFormat = iota
	NETCDF
	PNG
)

var (
	OutputFormatNames = map[string]OutputFormat{
		"table":  TABLE,
		"text":   TABLE,
		"netcdf": NETCDF,
		"nc":     NETCDF,
		"png":    PNG,
	}
	OutputFormatPrintNames = []string{"Text Table", "NetCDF", "PNG Heat Map"}
)

func (of OutputFormat) Print() (txt string) {
	if int(of) < len(OutputFormatPrintNames) {
		return OutputFormatPrintNames[of]
	}
	return fmt.Sprintf("OutputFormat(%d)", of)
}

func NewOutputFormat(label string) (of OutputFormat, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if of, ok = OutputFormatNames[label]; !ok {
		err = fmt.Errorf("unable to use output format named %q", label)
	}
	return
}

// Field is one named nodal field on the Imax x Jmax grid, node (i,j) at Values.At(i,j)
type Field struct {
	Name   string
	Values utils.Matrix
}

// Meta describes the run that produced the fields. Node (i,j) is placed at (i*Dx, j*Dy).
type Meta struct {
	Dx, Dy     float64
	Title      string
	Status     string // Terminal state of the run
	Converged  bool
	Iterations int
}

func (m Meta) Describe() string {
	txt := fmt.Sprintf("%s: %s after %d iterations", m.Title, m.Status, m.Iterations)
	if !m.Converged {
		txt += ", unconverged"
	}
	return txt
}

type Writer interface {
	// Write persists the fields below dir and returns the paths written
	Write(dir string, m Meta, fields []Field) (files []string, err error)
}

func NewWriter(of OutputFormat) (w Writer, err error) {
	switch of {
	case TABLE:
		w = Table{}
	case NETCDF:
		w = NetCDF{FileName: "flatplate.nc"}
	case PNG:
		w = HeatMap{}
	default:
		err = fmt.Errorf("no writer for output format %d", of)
	}
	return
}

// WriteAll writes the fields once per format, creating dir if needed
func WriteAll(dir string, formats []OutputFormat, m Meta, fields []Field) (files []string, err error) {
	if err = checkFields(fields); err != nil {
		return
	}
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	for _, of := range formats {
		var (
			w  Writer
			ff []string
		)
		if w, err = NewWriter(of); err != nil {
			return
		}
		if ff, err = w.Write(dir, m, fields); err != nil {
			err = fmt.Errorf("writing %s output: %w", of.Print(), err)
			return
		}
		files = append(files, ff...)
	}
	return
}

func checkFields(fields []Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to write")
	}
	nr, nc := fields[0].Values.Dims()
	for _, f := range fields {
		if len(f.Name) == 0 {
			return fmt.Errorf("unnamed field")
		}
		if r, c := f.Values.Dims(); r != nr || c != nc {
			return fmt.Errorf("field %s is %dx%d, expected %dx%d", f.Name, r, c, nr, nc)
		}
	}
	return nil
}
