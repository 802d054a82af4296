package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
	Matrix is a dense nr x nc array of float64 stored row-major by gonum.
	The raw storage is exposed through DataP so inner loops can sweep a field
	without bounds-checked At calls: element (i,j) lives at DataP[i*nc+j].
*/
type Matrix struct {
	M     *mat.Dense
	DataP []float64
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
	}
	return
}

func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.DataP)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) CopyFrom(A Matrix) Matrix { // Changes receiver
	m.checkDims(A)
	copy(m.DataP, A.DataP)
	return m
}

func (m Matrix) Fill(val float64) Matrix { // Changes receiver
	for i := range m.DataP {
		m.DataP[i] = val
	}
	return m
}

func (m Matrix) Min() (min float64) {
	min = m.DataP[0]
	for _, val := range m.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	max = m.DataP[0]
	for _, val := range m.DataP {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) checkDims(A Matrix) {
	nr, nc := m.Dims()
	nrA, ncA := A.Dims()
	if nr != nrA || nc != ncA {
		err := fmt.Errorf("dimension mismatch: %dx%d vs %dx%d", nr, nc, nrA, ncA)
		panic(err)
	}
}
