/*
 * detect.go, part of gridFit.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
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
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit/xyz"
)

//candidates runs the peak-detection pipeline (optional convolution, peak
//cap, sort, threshold, suppression) on the element channels of the grid and
//returns the surviving candidates, ranked by response. All three returns are
//nil when nothing survives.
func (F *Fitter) candidates(g *Grid) (*xyz.Matrix, [][3]int, []int, error) {
	work := g.ElemGrid()
	if F.opts.ApplyConv() {
		var err error
		work, err = F.Convolve(g)
		if err != nil {
			return nil, nil, nil, errDecorate(err, "candidates")
		}
	}
	work = F.ApplyPeakValue(work)
	values, idxXYZ, idxC := F.SortGridPoints(work)
	values, idxXYZ, idxC = F.ApplyThreshold(values, idxXYZ, idxC)
	if len(values) == 0 {
		return nil, nil, nil, nil
	}
	coords := GetCoords(work, idxXYZ)
	coords, idxXYZ, idxC = F.SuppressNonMax(values, coords, idxXYZ, idxC, false)
	return coords, idxXYZ, idxC, nil
}

//DetectAtoms extracts discrete atom candidates from a density grid. It runs
//the peak-detection pipeline, optionally keeps only the NAtomsDetect
//highest-scoring candidates, and expands each accepted (voxel, channel) pair
//into a coordinate and a full type vector. The returned matrices have one
//row per atom; both are nil when no candidate survives, which is a valid
//outcome for degenerate (e.g. all-zero) grids, not an error.
func (F *Fitter) DetectAtoms(g *Grid) (*xyz.Matrix, *mat.Dense, error) {
	if g == nil {
		panic(ErrNilGrid)
	}
	typer := g.Typer()
	if typer == nil {
		return nil, nil, Error{"Grid carries no typer", []string{"DetectAtoms"}, true}
	}
	coords, _, idxC, err := F.candidates(g)
	if err != nil {
		return nil, nil, errDecorate(err, "DetectAtoms")
	}
	if coords == nil {
		return nil, nil, nil
	}
	n := coords.NVecs()
	if max := F.opts.NAtomsDetect(); max > 0 && n > max {
		n = max
		trimmed := xyz.Zeros(n)
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		trimmed.SomeVecs(coords, idx)
		coords = trimmed
		idxC = idxC[:n]
	}
	types := mat.NewDense(n, NChannels(typer), nil)
	for i := 0; i < n; i++ {
		types.SetRow(i, TypeVec(typer, idxC[i]))
	}
	return coords, types, nil
}
