package InputParameters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/flatplate/model_problems/FlatPlate"
	"github.com/notargets/flatplate/writefiles"
)

// Parameters obtained from the YAML input file, keys missing from the file keep their defaults
type InputParametersPlate struct {
	Title         string   `yaml:"Title"`
	Minf          float64  `yaml:"Minf"`
	SoundSpeed    float64  `yaml:"SoundSpeed"` // Zero derives the sound speed from Gamma, R and Tinf
	PlateLength   float64  `yaml:"PlateLength"`
	Pinf          float64  `yaml:"Pinf"`
	Tinf          float64  `yaml:"Tinf"`
	Twall         float64  `yaml:"Twall"`
	GasConstant   float64  `yaml:"GasConstant"`
	Gamma         float64  `yaml:"Gamma"`
	Prandtl       float64  `yaml:"Prandtl"`
	MuRef         float64  `yaml:"MuRef"`
	TRef          float64  `yaml:"TRef"`
	Sutherland    float64  `yaml:"Sutherland"`
	Imax          int      `yaml:"Imax"`
	Jmax          int      `yaml:"Jmax"`
	CFL           float64  `yaml:"CFL"`
	Tolerance     float64  `yaml:"Tolerance"`
	MaxIterations int      `yaml:"MaxIterations"`
	ReportEvery   int      `yaml:"ReportEvery"`
	OutputDir     string   `yaml:"OutputDir"`
	OutputFormats []string `yaml:"OutputFormats"`
	OutputFields  []string `yaml:"OutputFields"`
}

func NewInputParametersPlate() (ip *InputParametersPlate) {
	var (
		rc = FlatPlate.DefaultReferenceConditions()
		s  = FlatPlate.DefaultSettings()
	)
	ip = &InputParametersPlate{
		Title:         "Supersonic Flat Plate",
		Minf:          rc.Minf,
		SoundSpeed:    rc.SoundSpeed,
		PlateLength:   rc.PlateLength,
		Pinf:          rc.Pinf,
		Tinf:          rc.Tinf,
		Twall:         rc.Twall,
		GasConstant:   rc.GasConstant,
		Gamma:         rc.Gamma,
		Prandtl:       rc.Prandtl,
		MuRef:         rc.MuRef,
		TRef:          rc.TRef,
		Sutherland:    rc.Sutherland,
		Imax:          s.Imax,
		Jmax:          s.Jmax,
		CFL:           s.CFL,
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
		ReportEvery:   s.ReportEvery,
		OutputDir:     ".",
		OutputFormats: []string{"table"},
	}
	for _, ff := range FlatPlate.OriginalOutput {
		ip.OutputFields = append(ip.OutputFields, ff.String())
	}
	return
}

func (ip *InputParametersPlate) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersPlate) Reference() FlatPlate.ReferenceConditions {
	return FlatPlate.ReferenceConditions{
		Minf:        ip.Minf,
		SoundSpeed:  ip.SoundSpeed,
		PlateLength: ip.PlateLength,
		Pinf:        ip.Pinf,
		Tinf:        ip.Tinf,
		Twall:       ip.Twall,
		GasConstant: ip.GasConstant,
		Gamma:       ip.Gamma,
		Prandtl:     ip.Prandtl,
		MuRef:       ip.MuRef,
		TRef:        ip.TRef,
		Sutherland:  ip.Sutherland,
	}
}

func (ip *InputParametersPlate) Settings() FlatPlate.Settings {
	return FlatPlate.Settings{
		Imax:          ip.Imax,
		Jmax:          ip.Jmax,
		CFL:           ip.CFL,
		Tolerance:     ip.Tolerance,
		MaxIterations: ip.MaxIterations,
		ReportEvery:   ip.ReportEvery,
	}
}

func (ip *InputParametersPlate) Formats() (ofs []writefiles.OutputFormat, err error) {
	for _, label := range ip.OutputFormats {
		var of writefiles.OutputFormat
		if of, err = writefiles.NewOutputFormat(label); err != nil {
			return nil, fmt.Errorf("%w: %v", FlatPlate.ErrConfiguration, err)
		}
		ofs = append(ofs, of)
	}
	return
}

func (ip *InputParametersPlate) Fields() (ffs []FlatPlate.FlowFunction, err error) {
	for _, label := range ip.OutputFields {
		var ff FlatPlate.FlowFunction
		if ff, err = FlatPlate.NewFlowFunction(label); err != nil {
			return nil, fmt.Errorf("%w: %v", FlatPlate.ErrConfiguration, err)
		}
		ffs = append(ffs, ff)
	}
	return
}

// Validate checks everything a run needs before any work is done
func (ip *InputParametersPlate) Validate() (err error) {
	if _, err = FlatPlate.NewFlowParameters(ip.Reference()); err != nil {
		return
	}
	if err = ip.Settings().Validate(); err != nil {
		return
	}
	if _, err = ip.Formats(); err != nil {
		return
	}
	if _, err = ip.Fields(); err != nil {
		return
	}
	if len(ip.OutputFormats) != 0 && len(ip.OutputFields) == 0 {
		err = fmt.Errorf("%w: output formats given with no OutputFields", FlatPlate.ErrConfiguration)
	}
	return
}

func (ip *InputParametersPlate) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "%8.5f\t\t= Minf\n", ip.Minf)
	fmt.Fprintf(w, "%8.3e\t\t= Plate Length (m)\n", ip.PlateLength)
	fmt.Fprintf(w, "%8.2f, %8.3f\t= Pinf (Pa), Tinf (K)\n", ip.Pinf, ip.Tinf)
	fmt.Fprintf(w, "%8.3f\t\t= Twall (K)\n", ip.Twall)
	fmt.Fprintf(w, "[%d x %d]\t\t= Grid\n", ip.Imax, ip.Jmax)
	fmt.Fprintf(w, "%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Fprintf(w, "%8.2e\t\t= Tolerance\n", ip.Tolerance)
	fmt.Fprintf(w, "[%d]\t\t\t= Max Iterations\n", ip.MaxIterations)
	fmt.Fprintf(w, "[%s]\t\t= Output Formats\n", strings.Join(ip.OutputFormats, ", "))
	fmt.Fprintf(w, "[%s]\t= Output Fields\n", strings.Join(ip.OutputFields, ", "))
}
