package writefiles

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Table writes one text file per field named <Name>.dat, one "x y value" row per node with a blank line after each
// column of constant x. The header lines start with #.
type Table struct{}

func (Table) Write(dir string, m Meta, fields []Field) (files []string, err error) {
	for _, f := range fields {
		fileName := filepath.Join(dir, f.Name+".dat")
		if err = writeTable(fileName, m, f); err != nil {
			return
		}
		files = append(files, fileName)
	}
	return
}

func writeTable(fileName string, m Meta, f Field) (err error) {
	var (
		file   *os.File
		nr, nc = f.Values.Dims()
	)
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# %s\n# %s\n", f.Name, m.Describe())
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			fmt.Fprintf(w, "%15.8e %15.8e %15.8e\n", float64(i)*m.Dx, float64(j)*m.Dy, f.Values.DataP[i*nc+j])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
