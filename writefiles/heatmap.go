package writefiles

import (
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HeatMap renders each field to <Name>.png
type HeatMap struct {
	Width, Height vg.Length // Zero values use 8 x 4 inches
	Colors        int       // Palette size, zero uses 64
}

func (hm HeatMap) Write(dir string, m Meta, fields []Field) (files []string, err error) {
	var (
		width, height = hm.Width, hm.Height
		nColors       = hm.Colors
	)
	if width == 0 || height == 0 {
		width, height = 8*vg.Inch, 4*vg.Inch
	}
	if nColors == 0 {
		nColors = 64
	}
	for _, f := range fields {
		p := plot.New()
		p.Title.Text = f.Name
		if !m.Converged {
			p.Title.Text += " (unconverged)"
		}
		p.X.Label.Text = "x"
		p.Y.Label.Text = "y"
		h := plotter.NewHeatMap(gridField{Field: f, Meta: m}, palette.Heat(nColors, 1))
		if h.Max <= h.Min {
			h.Max = h.Min + 1
		}
		p.Add(h)
		fileName := filepath.Join(dir, f.Name+".png")
		if err = p.Save(width, height, fileName); err != nil {
			return
		}
		files = append(files, fileName)
	}
	return
}

// gridField adapts a Field to plotter.GridXYZ with columns along x (i) and rows along y (j)
type gridField struct {
	Field
	Meta
}

func (gf gridField) Dims() (c, r int) { return gf.Values.Dims() }
func (gf gridField) Z(c, r int) float64 { return gf.Values.At(c, r) }
func (gf gridField) X(c int) float64 { return float64(c) * gf.Dx }
func (gf gridField) Y(r int) float64 { return float64(r) * gf.Dy }
