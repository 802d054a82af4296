package FlatPlate

import (
	"fmt"
	"io"
)

// Progress is a snapshot of the run handed to a Reporter
type Progress struct {
	Iteration     int
	Time, DT      float64 // Accumulated and last time step, non-dimensional
	DensityChange float64
	State         RunState
}

type Reporter interface {
	Report(p Progress, fs *FieldState)
}

type ReporterFunc func(p Progress, fs *FieldState)

func (rf ReporterFunc) Report(p Progress, fs *FieldState) { rf(p, fs) }

// ConsoleReporter prints one table row per report, with a header before the first
type ConsoleReporter struct {
	W       io.Writer
	printed bool
}

func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{W: w}
}

func (cr *ConsoleReporter) Report(p Progress, fs *FieldState) {
	if !cr.printed {
		fmt.Fprintf(cr.W, "    iter        time          dt    max_drho     min_rho     max_T    max_Mach\n")
		cr.printed = true
	}
	fmt.Fprintf(cr.W, "%8d%12.4e%12.4e%12.4e%12.5f%10.5f%12.5f",
		p.Iteration, p.Time, p.DT, p.DensityChange, fs.Rho.Min(), fs.T.Max(), fs.Mach.Max())
	if p.State.Terminal() {
		fmt.Fprintf(cr.W, "  %s", p.State)
	}
	fmt.Fprintf(cr.W, "\n")
}
