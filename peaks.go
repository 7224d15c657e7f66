/*
 * peaks.go, part of gridFit.
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
	"sort"
	"sync"

	"github.com/rmera/gridfit/xyz"
)

//Convolve cross-correlates the element channels of the grid with the
//per-channel detection kernel (same-size output, zero padding), building the
//kernel first if needed. Negative grid values are treated as zero: densities
//are non-negative, and the energy invariant below relies on it. Since every
//kernel channel has unit center value and non-negative entries, the response
//at each voxel is at least the (clamped) input value, so no channel's norm
//can decrease; Convolve enforces this as an assertion. Channels are
//processed in parallel across the configured number of goroutines, which
//does not change the result.
func (F *Fitter) Convolve(g *Grid) (*Grid, error) {
	if g == nil {
		panic(ErrNilGrid)
	}
	typer := g.Typer()
	if typer == nil {
		return nil, Error{"Grid carries no typer", []string{"Convolve"}, true}
	}
	k, err := F.InitKernel(g.Resolution(), typer)
	if err != nil {
		return nil, errDecorate(err, "Convolve")
	}
	nelem := typer.NElemTypes()
	if nelem > g.Channels() || k.Channels() != nelem {
		panic(ErrShape)
	}
	side := g.Side()
	vol := side * side * side
	in := make([]float64, nelem*vol)
	for i := range in {
		v := g.data[i] //element channels come first
		if v > 0 {
			in[i] = v
		}
	}
	out := make([]float64, nelem*vol)
	half := k.Side() / 2
	cpus := F.opts.Cpus()
	if cpus > nelem {
		cpus = nelem
	}
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for c := w; c < nelem; c += cpus {
				convolveChannel(in[c*vol:(c+1)*vol], out[c*vol:(c+1)*vol], k, c, side, half)
			}
		}(w)
	}
	wg.Wait()
	ret, err := NewGrid(out, nelem, side, g.Resolution(), g.Center(), typer)
	if err != nil {
		return nil, errDecorate(err, "Convolve")
	}
	for c := 0; c < nelem; c++ {
		var inNorm float64
		for _, v := range in[c*vol : (c+1)*vol] {
			inNorm += v * v
		}
		if ret.ChannelNorm(c)*ret.ChannelNorm(c) < inNorm {
			panic(ErrEnergyDecrease)
		}
	}
	return ret, nil
}

//convolveChannel cross-correlates one channel, zero-padded.
func convolveChannel(in, out []float64, k *Kernel, c, side, half int) {
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			for z := 0; z < side; z++ {
				var acc float64
				for i := -half; i <= half; i++ {
					gx := x + i
					if gx < 0 || gx >= side {
						continue
					}
					for j := -half; j <= half; j++ {
						gy := y + j
						if gy < 0 || gy >= side {
							continue
						}
						for l := -half; l <= half; l++ {
							gz := z + l
							if gz < 0 || gz >= side {
								continue
							}
							kv := k.At(c, i+half, j+half, l+half)
							if kv == 0 {
								continue
							}
							acc += kv * in[(gx*side+gy)*side+gz]
						}
					}
				}
				out[(x*side+y)*side+z] = acc
			}
		}
	}
}

//ApplyPeakValue returns a grid with the values of g clamped to the
//configured peak value.
func (F *Fitter) ApplyPeakValue(g *Grid) *Grid {
	if g == nil {
		panic(ErrNilGrid)
	}
	peak := F.opts.PeakValue()
	d := g.Data()
	for i, v := range d {
		if v > peak {
			d[i] = peak
		}
	}
	ret, err := NewGrid(d, g.Channels(), g.Side(), g.Resolution(), g.Center(), g.Typer())
	if err != nil {
		panic(PanicMsg(err.Error())) //can't happen, g was already validated
	}
	return ret
}

//SortGridPoints returns every (value, voxel index, channel) triple of the
//grid, ordered by value, largest first. Ties keep the scan order (channel,
//then x, y, z), so the output is deterministic. Indexing the grid back with
//the returned indexes reproduces the returned values exactly.
func (F *Fitter) SortGridPoints(g *Grid) (values []float64, idxXYZ [][3]int, idxC []int) {
	if g == nil {
		panic(ErrNilGrid)
	}
	side := g.Side()
	n := g.Channels() * side * side * side
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.data[order[i]] > g.data[order[j]]
	})
	values = make([]float64, n)
	idxXYZ = make([][3]int, n)
	idxC = make([]int, n)
	vol := side * side * side
	for i, o := range order {
		values[i] = g.data[o]
		idxC[i] = o / vol
		rem := o % vol
		idxXYZ[i] = [3]int{rem / (side * side), (rem / side) % side, rem % side}
	}
	return values, idxXYZ, idxC
}

//ApplyThreshold drops every triple whose value is not strictly greater than
//the configured threshold. The inputs must have equal lengths and come
//sorted; only a leading run of the slices survives.
func (F *Fitter) ApplyThreshold(values []float64, idxXYZ [][3]int, idxC []int) ([]float64, [][3]int, []int) {
	if len(values) != len(idxXYZ) || len(values) != len(idxC) {
		panic(ErrRaggedTriples)
	}
	th := F.opts.Threshold()
	cut := len(values)
	for i, v := range values {
		if v <= th {
			cut = i
			break
		}
	}
	return values[:cut], idxXYZ[:cut], idxC[:cut]
}

//GetCoords returns the cartesian coordinates of the voxel centers given by
//idxXYZ, as a Nx3 matrix, or nil if idxXYZ is empty.
func GetCoords(g *Grid, idxXYZ [][3]int) *xyz.Matrix {
	if len(idxXYZ) == 0 {
		return nil
	}
	ret := xyz.Zeros(len(idxXYZ))
	for i, v := range idxXYZ {
		p := g.VoxelCenter(v[0], v[1], v[2])
		ret.SetVec(i, p[:])
	}
	return ret
}

//SuppressNonMax scans the candidates in their given (descending-value) order
//and accepts each one only if its distance to every already accepted
//candidate exceeds the configured minimum. With the PerChannel option only
//candidates in the same channel compete; otherwise all do. The matrix
//argument selects between two internal evaluation strategies (a precomputed
//pairwise distance matrix, or incremental distances); both are guaranteed to
//produce the same accepted set in the same order. It returns the accepted
//coordinates, voxel indexes and channels.
func (F *Fitter) SuppressNonMax(values []float64, coords *xyz.Matrix, idxXYZ [][3]int, idxC []int, matrix bool) (*xyz.Matrix, [][3]int, []int) {
	n := len(values)
	if n != len(idxXYZ) || n != len(idxC) {
		panic(ErrRaggedTriples)
	}
	if n == 0 {
		return nil, nil, nil
	}
	if coords == nil || coords.NVecs() != n {
		panic(ErrShape)
	}
	min2 := F.opts.MinDist() * F.opts.MinDist()
	perChannel := F.opts.PerChannel()
	var accepted []int
	if matrix {
		d2 := make([][]float64, n)
		for i := 0; i < n; i++ {
			d2[i] = make([]float64, n)
			for j := 0; j < i; j++ {
				d2[i][j] = dist2(coords.Vec(i), coords.Vec(j))
				d2[j][i] = d2[i][j]
			}
		}
		for i := 0; i < n; i++ {
			ok := true
			for _, j := range accepted {
				if perChannel && idxC[j] != idxC[i] {
					continue
				}
				if d2[i][j] <= min2 {
					ok = false
					break
				}
			}
			if ok {
				accepted = append(accepted, i)
			}
		}
	} else {
		for i := 0; i < n; i++ {
			ok := true
			for _, j := range accepted {
				if perChannel && idxC[j] != idxC[i] {
					continue
				}
				if dist2(coords.Vec(i), coords.Vec(j)) <= min2 {
					ok = false
					break
				}
			}
			if ok {
				accepted = append(accepted, i)
			}
		}
	}
	retC := xyz.Zeros(len(accepted))
	retC.SomeVecs(coords, accepted)
	retXYZ := make([][3]int, len(accepted))
	retIdxC := make([]int, len(accepted))
	for k, i := range accepted {
		retXYZ[k] = idxXYZ[i]
		retIdxC[k] = idxC[i]
	}
	return retC, retXYZ, retIdxC
}

//squared euclidean distance between two 3D points. Both suppression
//strategies share it, so their arithmetic is identical.
func dist2(a, b []float64) float64 {
	var acc float64
	for k := 0; k < 3; k++ {
		d := a[k] - b[k]
		acc += d * d
	}
	return acc
}
