package FlatPlate

import (
	"fmt"
	"io"
	"math"
	"strings"
)

type FlowFunction uint8

const (
	Density FlowFunction = iota
	XVelocity
	YVelocity
	StaticPressure
	Temperature
	Energy // Internal energy per unit mass
	Mach   // 6
)

var (
	flowFunctionNames = []string{
		"Density",
		"VelocityX",
		"VelocityY",
		"Pressure",
		"Temperature",
		"Energy",
		"Mach",
	}
	// OriginalOutput is the field set written at the end of a run unless configured otherwise
	OriginalOutput = []FlowFunction{StaticPressure, Density, Temperature, XVelocity, YVelocity}
)

func (pm FlowFunction) String() string {
	if int(pm) < len(flowFunctionNames) {
		return flowFunctionNames[pm]
	}
	return fmt.Sprintf("FlowFunction(%d)", pm)
}

func NewFlowFunction(label string) (pm FlowFunction, err error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for i, name := range flowFunctionNames {
		if strings.ToLower(name) == l {
			return FlowFunction(i), nil
		}
	}
	switch l {
	case "rho":
		return Density, nil
	case "u", "xvelocity":
		return XVelocity, nil
	case "v", "yvelocity":
		return YVelocity, nil
	case "p", "staticpressure":
		return StaticPressure, nil
	case "t":
		return Temperature, nil
	case "e":
		return Energy, nil
	}
	err = fmt.Errorf("unknown flow field %q, must be one of %v", label, flowFunctionNames)
	return
}

// ReferenceConditions holds the dimensional (SI) reference values a run is built from.
type ReferenceConditions struct {
	Minf        float64 // Free stream Mach number
	SoundSpeed  float64 // m/s, zero means sqrt(Gamma*R*Tinf)
	PlateLength float64 // m
	Pinf        float64 // Pa
	Tinf        float64 // K
	Twall       float64 // K
	GasConstant float64 // J/(kg K)
	Gamma       float64
	Prandtl     float64
	MuRef       float64 // kg/(m s), Sutherland reference viscosity
	TRef        float64 // K, Sutherland reference temperature
	Sutherland  float64 // K, Sutherland constant
}

func DefaultReferenceConditions() ReferenceConditions {
	return ReferenceConditions{
		Minf:        4,
		SoundSpeed:  340.28,
		PlateLength: 1.e-5,
		Pinf:        101325,
		Tinf:        288.16,
		Twall:       288.16,
		GasConstant: 287,
		Gamma:       1.4,
		Prandtl:     0.71,
		MuRef:       1.7894e-5,
		TRef:        288.16,
		Sutherland:  110.4,
	}
}

/*
	FlowParameters are the non-dimensional constants of a run. Velocity is scaled by Uinf = Minf*ainf, pressure by
	Pinf, temperature by Tinf, length by L = sqrt(muinf*plate/(rhoinf*Uinf)) and viscosity by Pinf*L/Uinf, so the free
	stream pressure, temperature and velocity are all unity.

	The values are fixed at construction and are not modified afterward.
*/
type FlowParameters struct {
	Minf, Gamma, Pr float64
	Ainf, Uinf      float64
	Pinf, Tinf      float64
	Rhoinf, Twall   float64
	R, Cv, Cp       float64
	MuRef, TRef, S  float64 // Sutherland law in non-dimensional units
	Muinf           float64
	PlateLength     float64
	Reynolds        float64 // Based on plate length
	LRef, URef      float64 // Dimensional scales, m and m/s
}

func NewFlowParameters(rc ReferenceConditions) (fp *FlowParameters, err error) {
	if err = rc.validate(); err != nil {
		return
	}
	var (
		ainf   = rc.SoundSpeed
		rhoinf float64
		muinf  = sutherland(rc.MuRef, rc.TRef, rc.Sutherland, rc.Tinf)
	)
	if ainf == 0 {
		ainf = math.Sqrt(rc.Gamma * rc.GasConstant * rc.Tinf)
	}
	uinf := rc.Minf * ainf
	rhoinf = rc.Pinf / (rc.GasConstant * rc.Tinf)
	L := math.Sqrt(muinf * rc.PlateLength / (rhoinf * uinf))
	muScale := rc.Pinf * L / uinf
	fp = &FlowParameters{
		Minf:        rc.Minf,
		Gamma:       rc.Gamma,
		Pr:          rc.Prandtl,
		Ainf:        ainf / uinf,
		Uinf:        uinf / uinf,
		Pinf:        rc.Pinf / rc.Pinf,
		Tinf:        rc.Tinf / rc.Tinf,
		Twall:       rc.Twall / rc.Tinf,
		R:           rc.GasConstant * rc.Tinf / (uinf * uinf),
		MuRef:       rc.MuRef / muScale,
		TRef:        rc.TRef / rc.Tinf,
		S:           rc.Sutherland / rc.Tinf,
		PlateLength: rc.PlateLength / L,
		LRef:        L,
		URef:        uinf,
	}
	fp.Cv = fp.R / (fp.Gamma - 1.)
	fp.Cp = fp.Gamma * fp.Cv
	fp.Rhoinf = fp.Pinf / (fp.R * fp.Tinf)
	fp.Muinf = fp.Viscosity(fp.Tinf)
	fp.Reynolds = fp.Rhoinf * fp.Uinf * fp.PlateLength / fp.Muinf
	if math.IsNaN(fp.Reynolds) || math.IsInf(fp.Reynolds, 0) || fp.Reynolds <= 0 {
		err = configError("reference conditions give a Reynolds number of %g", fp.Reynolds)
		fp = nil
	}
	return
}

func (rc ReferenceConditions) validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"Minf", rc.Minf},
		{"PlateLength", rc.PlateLength},
		{"Pinf", rc.Pinf},
		{"Tinf", rc.Tinf},
		{"Twall", rc.Twall},
		{"GasConstant", rc.GasConstant},
		{"Prandtl", rc.Prandtl},
		{"MuRef", rc.MuRef},
		{"TRef", rc.TRef},
	}
	for _, p := range positive {
		if !(p.val > 0) || math.IsInf(p.val, 0) {
			return configError("%s must be positive and finite, have %g", p.name, p.val)
		}
	}
	if !(rc.Gamma > 1) {
		return configError("Gamma must be greater than 1, have %g", rc.Gamma)
	}
	if rc.SoundSpeed < 0 || math.IsNaN(rc.SoundSpeed) {
		return configError("SoundSpeed must be positive or zero (derived), have %g", rc.SoundSpeed)
	}
	if rc.Sutherland < 0 || math.IsNaN(rc.Sutherland) {
		return configError("Sutherland constant must not be negative, have %g", rc.Sutherland)
	}
	return nil
}

func sutherland(mu0, T0, S, T float64) float64 {
	return mu0 * (T / T0) * math.Sqrt(T/T0) * (T0 + S) / (T + S)
}

// Viscosity is Sutherland's law at non-dimensional temperature T
func (fp *FlowParameters) Viscosity(T float64) float64 {
	return sutherland(fp.MuRef, fp.TRef, fp.S, T)
}

// Conductivity from a constant Prandtl number
func (fp *FlowParameters) Conductivity(mu float64) float64 {
	return mu * fp.Cp / fp.Pr
}

func (fp *FlowParameters) SoundSpeed(p, rho float64) float64 {
	return math.Sqrt(fp.Gamma * p / rho)
}

func (fp *FlowParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "%8.5f\t\t= Mach Infinity\n", fp.Minf)
	fmt.Fprintf(w, "%8.5f\t\t= Reynolds Number (plate length)\n", fp.Reynolds)
	fmt.Fprintf(w, "%8.5f\t\t= Plate Length (L = %8.4e m)\n", fp.PlateLength, fp.LRef)
	fmt.Fprintf(w, "%8.5f\t\t= Density Infinity\n", fp.Rhoinf)
	fmt.Fprintf(w, "%8.5f\t\t= Wall Temperature\n", fp.Twall)
	fmt.Fprintf(w, "%8.5f\t\t= Viscosity Infinity\n", fp.Muinf)
	fmt.Fprintf(w, "%8.5f, %8.5f, %8.5f\t= R, Cv, Cp\n", fp.R, fp.Cv, fp.Cp)
}
