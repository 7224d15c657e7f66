/*
 * xyz.go, part of gridFit.
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * gridFit is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

/*Package xyz implements a Matrix type representing a row-major collection of points
in 3D space (i.e. a Nx3 matrix). It is used to represent the cartesian coordinates of
sets of atoms in gridFit. It is based on gonum's Dense type, with additional
restrictions because of the fixed number of columns, and with some functions that
were found useful when manipulating atomic coordinates.*/
package xyz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. Within the package it is understood
//that a "vector" is a row of the matrix, i.e. the cartesian coordinates of a
//point in 3D space. The names of several functions in the package reflect this.
type Matrix struct {
	*mat.Dense
}

//Dense2Matrix returns a Matrix from a gonum Dense. It panics if the Dense
//does not have exactly 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//Matrix2Dense returns the gonum Dense underlying a Matrix.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//New generates and returns a Matrix with 3 columns from data.
func New(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"New"}, true}
	}
	if rows == 0 {
		return nil, Error{"Input slice is empty", []string{"New"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
//It panics if vecs is not positive, as gonum Dense matrices cannot be empty.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs <= 0 {
		panic(ErrNotEnoughElements)
	}
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the view
//are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Vec returns a view, as a slice, of the ith vector of the matrix.
//Changes to the slice are reflected in F.
func (F *Matrix) Vec(i int) []float64 {
	return F.Dense.RawRowView(i)
}

//SetVec replaces the ith vector of the receiver with the first 3 elements of v.
func (F *Matrix) SetVec(i int, v []float64) {
	if len(v) < 3 {
		panic(ErrNotEnoughElements)
	}
	F.Dense.SetRow(i, v[0:3])
}

//SomeVecs fills the receiver with the vectors of A whose indexes are given,
//in the given order. The receiver must have been allocated with as many
//vectors as indexes given.
func (F *Matrix) SomeVecs(A *Matrix, idx []int) {
	if len(idx) != F.NVecs() {
		panic(ErrShape)
	}
	ar := A.NVecs()
	for k, j := range idx {
		if j >= ar {
			panic(ErrIndexOutOfRange)
		}
		F.SetVec(k, A.Vec(j))
	}
}

//Copy returns a new Matrix with a copy of the data in the receiver.
func (F *Matrix) Copy() *Matrix {
	r := F.NVecs()
	ret := Zeros(r)
	ret.Dense.Copy(F.Dense)
	return ret
}

//AppendVec returns a new Matrix with the vectors of the receiver followed by v.
//The receiver may be nil, in which case a 1-vector Matrix is returned.
func (F *Matrix) AppendVec(v []float64) *Matrix {
	if len(v) < 3 {
		panic(ErrNotEnoughElements)
	}
	if F == nil {
		ret := Zeros(1)
		ret.SetVec(0, v)
		return ret
	}
	r := F.NVecs()
	ret := Zeros(r + 1)
	for i := 0; i < r; i++ {
		ret.SetVec(i, F.Vec(i))
	}
	ret.SetVec(r, v)
	return ret
}

//DelVec returns a new Matrix with the vectors of the receiver except the ith one.
//If the receiver has only one vector, it returns nil (an empty set of points).
func (F *Matrix) DelVec(i int) *Matrix {
	r := F.NVecs()
	if i >= r || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	if r == 1 {
		return nil
	}
	ret := Zeros(r - 1)
	for j, k := 0, 0; j < r; j++ {
		if j == i {
			continue
		}
		ret.SetVec(k, F.Vec(j))
		k++
	}
	return ret
}

//Dist returns the euclidean distance between the ith vector of F
//and the jth vector of A.
func (F *Matrix) Dist(i int, A *Matrix, j int) float64 {
	return dist(F.Vec(i), A.Vec(j))
}

func dist(a, b []float64) float64 {
	var d2 float64
	for k := 0; k < 3; k++ {
		d := a[k] - b[k]
		d2 += d * d
	}
	return math.Sqrt(d2)
}
