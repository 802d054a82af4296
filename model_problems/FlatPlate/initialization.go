package FlatPlate

// InitializeFreeStream fills the grid with the undisturbed free stream and then applies the boundary conditions,
// which brings the wall row to rest at the wall temperature.
func InitializeFreeStream(fs *FieldState, fp *FlowParameters, be *BoundaryEnforcer) {
	p := fp.Rhoinf * fp.R * fp.Tinf
	fs.Rho.Fill(fp.Rhoinf)
	fs.U.Fill(fp.Uinf)
	fs.V.Fill(0)
	fs.P.Fill(p)
	fs.T.Fill(fp.Tinf)
	fs.E.Fill(fp.Cv * fp.Tinf)
	fs.Mach.Fill(localMach(fp, fp.Uinf, 0, p, fp.Rhoinf))
	be.Apply(fs, fp)
}
