/*
 * struct.go, part of gridFit.
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

package gridfit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit/xyz"
)

//Keys in the AtomStruct info side-table that gridfit itself writes or reads.
//Any other key is free for the caller.
const (
	//InfoLoss holds the L2 reconstruction loss of a scored structure.
	InfoLoss = "L2_loss"
	//InfoSrc holds a reference to the source the structure was fit from.
	InfoSrc = "src"
)

//AtomStruct is an ordered collection of atoms, each with a cartesian
//coordinate and a type vector over the full channel set, plus a free-form
//info side-table for provenance metadata (source reference, loss value).
//An AtomStruct is not mutated once scored: the With/Without methods and the
//fitting search build new structures instead.
type AtomStruct struct {
	coords *xyz.Matrix
	types  *mat.Dense
	typer  Typer
	info   map[string]interface{}
}

//NewAtomStruct assembles a structure from coordinates and type vectors.
//Both matrices may be nil together, signifying an empty structure (a valid
//result for degenerate grids). It panics if only one of them is nil, if
//their row counts differ, or if the type-vector width does not match the
//typer's channel count: these are programming errors.
func NewAtomStruct(coords *xyz.Matrix, types *mat.Dense, typer Typer) *AtomStruct {
	if (coords == nil) != (types == nil) {
		panic(ErrShape)
	}
	if coords != nil {
		tr, tc := types.Dims()
		if tr != coords.NVecs() {
			panic(ErrShape)
		}
		if typer != nil && tc != NChannels(typer) {
			panic(ErrShape)
		}
	}
	ret := new(AtomStruct)
	ret.coords = coords
	ret.types = types
	ret.typer = typer
	ret.info = make(map[string]interface{})
	return ret
}

//Len returns the number of atoms in the structure.
func (S *AtomStruct) Len() int {
	if S == nil || S.coords == nil {
		return 0
	}
	return S.coords.NVecs()
}

//Coords returns the coordinate matrix of the structure, or nil if empty.
//The returned matrix must not be modified.
func (S *AtomStruct) Coords() *xyz.Matrix { return S.coords }

//Types returns the type-vector matrix of the structure, or nil if empty.
//The returned matrix must not be modified.
func (S *AtomStruct) Types() *mat.Dense { return S.types }

//Typer returns the typing scheme of the structure.
func (S *AtomStruct) Typer() Typer { return S.typer }

//Info returns the value stored in the side-table under key, and whether
//it was present.
func (S *AtomStruct) Info(key string) (interface{}, bool) {
	v, ok := S.info[key]
	return v, ok
}

//SetInfo stores a value in the side-table under key.
func (S *AtomStruct) SetInfo(key string, v interface{}) {
	S.info[key] = v
}

//Loss returns the L2 reconstruction loss stored in the structure, or NaN if
//the structure has not been scored.
func (S *AtomStruct) Loss() float64 {
	v, ok := S.info[InfoLoss]
	if !ok {
		return math.NaN()
	}
	l, ok := v.(float64)
	if !ok {
		return math.NaN()
	}
	return l
}

//Copy returns a structure with copies of the coordinates and type vectors
//of the receiver. The info side-table is copied shallowly.
func (S *AtomStruct) Copy() *AtomStruct {
	var c *xyz.Matrix
	var t *mat.Dense
	if S.coords != nil {
		c = S.coords.Copy()
		t = mat.DenseCopyOf(S.types)
	}
	ret := NewAtomStruct(c, t, S.typer)
	for k, v := range S.info {
		ret.info[k] = v
	}
	return ret
}

//WithAtom returns a new structure with the atoms of the receiver plus one
//more, with the given coordinate and type vector. The receiver's info
//side-table is not carried over: the new hypothesis has not been scored.
func (S *AtomStruct) WithAtom(coord, typevec []float64) *AtomStruct {
	nch := len(typevec)
	if S.typer != nil && nch != NChannels(S.typer) {
		panic(ErrShape)
	}
	coords := S.coords.AppendVec(coord)
	var types *mat.Dense
	if S.types == nil {
		types = mat.NewDense(1, nch, typevec)
	} else {
		r, c := S.types.Dims()
		if c != nch {
			panic(ErrShape)
		}
		types = mat.NewDense(r+1, c, nil)
		for i := 0; i < r; i++ {
			types.SetRow(i, S.types.RawRowView(i))
		}
		types.SetRow(r, typevec)
	}
	return NewAtomStruct(coords, types, S.typer)
}

//WithoutAtom returns a new structure with the atoms of the receiver except
//the ith one. Removing the only atom yields an empty structure.
func (S *AtomStruct) WithoutAtom(i int) *AtomStruct {
	n := S.Len()
	if i < 0 || i >= n {
		panic(ErrIndexOutOfRange)
	}
	coords := S.coords.DelVec(i)
	var types *mat.Dense
	if coords != nil {
		_, c := S.types.Dims()
		types = mat.NewDense(n-1, c, nil)
		for j, k := 0, 0; j < n; j++ {
			if j == i {
				continue
			}
			types.SetRow(k, S.types.RawRowView(j))
			k++
		}
	}
	return NewAtomStruct(coords, types, S.typer)
}

//ElemIdx returns the element channel of the ith atom: the index of the
//largest value in the element part of its type vector.
func (S *AtomStruct) ElemIdx(i int) int {
	if S.typer == nil {
		panic(ErrNilStruct)
	}
	row := S.types.RawRowView(i)
	nelem := S.typer.NElemTypes()
	best := 0
	for j := 1; j < nelem; j++ {
		if row[j] > row[best] {
			best = j
		}
	}
	return best
}

//Radii returns the atomic radius of each atom in the structure, looked up
//from the typer through the atom's element channel.
func (S *AtomStruct) Radii() []float64 {
	n := S.Len()
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		ret[i] = S.typer.Radius(S.ElemIdx(i))
	}
	return ret
}
