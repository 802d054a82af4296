/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/flatplate/InputParameters"
	"github.com/notargets/flatplate/model_problems/FlatPlate"
	"github.com/notargets/flatplate/writefiles"
)

const exampleFile = `
########################################
Title: "Mach 4 flat plate"
Minf: 4
PlateLength: 0.00001 # meters
Twall: 288.16        # Kelvin, equal to Tinf is a cold wall case
Imax: 70
Jmax: 70
CFL: 0.6
Tolerance: 1.e-8
MaxIterations: 100000
OutputFormats: [table, netcdf, png]
OutputFields: [Pressure, Density, Temperature, VelocityX, VelocityY]
########################################
`

// PlateCmd represents the plate command
var PlateCmd = &cobra.Command{
	Use:   "plate",
	Short: "Supersonic viscous flow over a flat plate, marched to steady state",
	Long: `Supersonic viscous flow over a flat plate, marched to steady state.
Parameters come from an optional YAML input file, overridden by flags, FLATPLATE_ environment variables and the
config file. Example input file:` + exampleFile,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParametersPlate
		)
		if viper.GetBool("profile") {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		if ip, err = processInput(icFile, viper.GetViper()); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		res, _, err := RunPlate(ip, os.Stdout)
		if err != nil || res.State == FlatPlate.Aborted {
			fmt.Printf("error: %v\n", err)
			os.Exit(2)
		}
	},
}

func processInput(icFile string, v *viper.Viper) (ip *InputParameters.InputParametersPlate, err error) {
	ip = InputParameters.NewInputParametersPlate()
	if len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("%w: parsing %s: %v", FlatPlate.ErrConfiguration, icFile, err)
			return
		}
	}
	applyOverrides(ip, v)
	err = ip.Validate()
	return
}

// applyOverrides replaces input file values with any set by flag, environment or config file
func applyOverrides(ip *InputParameters.InputParametersPlate, v *viper.Viper) {
	for key, dst := range map[string]*float64{
		"minf":        &ip.Minf,
		"platelength": &ip.PlateLength,
		"twall":       &ip.Twall,
		"cfl":         &ip.CFL,
		"tolerance":   &ip.Tolerance,
	} {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}
	for key, dst := range map[string]*int{
		"imax":          &ip.Imax,
		"jmax":          &ip.Jmax,
		"maxiterations": &ip.MaxIterations,
		"reportevery":   &ip.ReportEvery,
	} {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	if v.IsSet("outputdir") {
		ip.OutputDir = v.GetString("outputdir")
	}
	if v.IsSet("outputformats") {
		ip.OutputFormats = v.GetStringSlice("outputformats")
	}
}

// RunPlate solves the configured case, printing progress to w, and writes the requested fields on completion
func RunPlate(ip *InputParameters.InputParametersPlate, w io.Writer) (res *FlatPlate.Result, files []string, err error) {
	var (
		p   *FlatPlate.Plate
		ofs []writefiles.OutputFormat
		ffs []FlatPlate.FlowFunction
	)
	if ofs, err = ip.Formats(); err != nil {
		return
	}
	if ffs, err = ip.Fields(); err != nil {
		return
	}
	ip.Print(w)
	if p, err = FlatPlate.NewPlate(ip.Reference(), ip.Settings()); err != nil {
		return
	}
	p.Print(w)
	if res, err = p.Solve(FlatPlate.NewConsoleReporter(w)); err != nil {
		return
	}
	p.PrintFinal(w, res)
	if len(ofs) == 0 {
		return
	}
	fields := make([]writefiles.Field, len(ffs))
	for n, ff := range ffs {
		fields[n] = writefiles.Field{Name: ff.String(), Values: p.FS.Get(ff)}
	}
	meta := writefiles.Meta{
		Dx:         p.Geom.Dx,
		Dy:         p.Geom.Dy,
		Title:      ip.Title,
		Status:     res.State.String(),
		Converged:  res.State == FlatPlate.Converged,
		Iterations: res.Iterations,
	}
	if files, err = writefiles.WriteAll(ip.OutputDir, ofs, meta, fields); err != nil {
		return
	}
	logrus.WithFields(logrus.Fields{"dir": ip.OutputDir, "files": len(files)}).Info("wrote solution")
	return
}

func init() {
	rootCmd.AddCommand(PlateCmd)
	PlateCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Minf\n\t- Imax, Jmax\n\t- Tolerance")
	PlateCmd.Flags().Float64("minf", 0, "free stream Mach number")
	PlateCmd.Flags().Float64("plateLength", 0, "plate length in meters")
	PlateCmd.Flags().Float64("twall", 0, "wall temperature in Kelvin")
	PlateCmd.Flags().Float64("cfl", 0, "safety factor applied to the stable time step")
	PlateCmd.Flags().Float64("tolerance", 0, "converged when the max density change falls below this")
	PlateCmd.Flags().Int("imax", 0, "grid points along the plate")
	PlateCmd.Flags().Int("jmax", 0, "grid points normal to the plate")
	PlateCmd.Flags().Int("maxIterations", 0, "iteration limit")
	PlateCmd.Flags().Int("reportEvery", 0, "iterations between progress lines")
	PlateCmd.Flags().StringP("outputDir", "o", "", "directory for solution files")
	PlateCmd.Flags().StringSlice("outputFormats", nil, "any of table, netcdf, png")
	for _, name := range []string{"minf", "plateLength", "twall", "cfl", "tolerance", "imax", "jmax",
		"maxIterations", "reportEvery", "outputDir", "outputFormats"} {
		_ = viper.BindPFlag(name, PlateCmd.Flags().Lookup(name))
	}
}
