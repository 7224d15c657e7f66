/*
 * kernel.go, part of gridFit.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit/xyz"
)

//Kernel is the matched filter for peak detection: one small cube per element
//channel, holding the grid footprint of a single atom of that channel's
//radius, centered on the cube. The side is odd, the cube is symmetric under
//reflection through its center along each axis, and the center voxel of
//every channel is exactly 1.0, so a perfectly centered atom has unit peak
//response.
type Kernel struct {
	data       []float64
	channels   int
	side       int
	resolution float64
}

//Channels returns the number of element channels in the kernel.
func (K *Kernel) Channels() int { return K.channels }

//Side returns the (odd) number of voxels along each kernel dimension.
func (K *Kernel) Side() int { return K.side }

//Resolution returns the voxel edge length the kernel was built for.
func (K *Kernel) Resolution() float64 { return K.resolution }

//At returns the kernel value for channel c at the (i,j,k) voxel.
func (K *Kernel) At(c, i, j, k int) float64 {
	if c < 0 || c >= K.channels || i < 0 || i >= K.side || j < 0 || j >= K.side || k < 0 || k >= K.side {
		panic(ErrIndexOutOfRange)
	}
	s := K.side
	return K.data[((c*s+i)*s+j)*s+k]
}

//ChannelNorm returns the euclidean norm of the cth channel of the kernel.
func (K *Kernel) ChannelNorm(c int) float64 {
	if c < 0 || c >= K.channels {
		panic(ErrIndexOutOfRange)
	}
	vol := K.side * K.side * K.side
	var acc float64
	for _, v := range K.data[c*vol : (c+1)*vol] {
		acc += v * v
	}
	return math.Sqrt(acc)
}

//Norm returns the euclidean norm of the whole kernel.
func (K *Kernel) Norm() float64 {
	var acc float64
	for _, v := range K.data {
		acc += v * v
	}
	return math.Sqrt(acc)
}

//kernelSide returns the implied kernel side for one channel: the smallest
//odd number of voxels spanning twice the radius.
func kernelSide(radius, resolution float64) int {
	side := int(math.Ceil(2 * radius / resolution))
	if side%2 == 0 {
		side++
	}
	return side
}

//InitKernel builds the per-channel detection kernel for the given resolution
//and typing scheme, by rendering a single centered atom of each element
//channel and normalizing each channel so its center voxel equals 1.0. The
//kernel is cached in the fitter and reused; repeated calls return the cached
//kernel, so a fitter serves one (resolution, typer) combination. It fails if
//the resolution is not positive, if any channel has a non-positive radius or
//an invalid implied size, or if any rendered channel is empty at its center.
func (F *Fitter) InitKernel(resolution float64, typer Typer) (*Kernel, error) {
	if F.kernel != nil {
		return F.kernel, nil
	}
	if typer == nil {
		return nil, Error{"Given a nil typer", []string{"InitKernel"}, true}
	}
	if resolution <= 0 {
		return nil, Error{fmt.Sprintf("Resolution must be positive, got %f", resolution), []string{"InitKernel"}, true}
	}
	nelem := typer.NElemTypes()
	if nelem <= 0 {
		return nil, Error{"Typer declares no element channels", []string{"InitKernel"}, true}
	}
	side := 0
	for c := 0; c < nelem; c++ {
		r := typer.Radius(c)
		if r <= 0 {
			return nil, Error{fmt.Sprintf("Channel %d has non-positive radius %f", c, r), []string{"InitKernel"}, true}
		}
		s := kernelSide(r, resolution)
		if s <= 0 || s%2 == 0 {
			return nil, Error{fmt.Sprintf("Channel %d implies an invalid kernel side %d", c, s), []string{"InitKernel"}, true}
		}
		if s > side {
			side = s
		}
	}
	//One atom per element channel, all at the cube center: with one-hot
	//types each element channel receives exactly its own atom.
	coords := xyz.Zeros(nelem)
	types := mat.NewDense(nelem, NChannels(typer), nil)
	radii := make([]float64, nelem)
	for c := 0; c < nelem; c++ {
		types.SetRow(c, TypeVec(typer, c))
		radii[c] = typer.Radius(c)
	}
	spec := GridSpec{Side: side, Resolution: resolution, Center: [3]float64{0, 0, 0}, Typer: typer}
	g, err := F.rend.Render(coords, types, radii, spec)
	if err != nil {
		return nil, errDecorate(err, "InitKernel")
	}
	vol := side * side * side
	data := make([]float64, nelem*vol)
	m := side / 2
	for c := 0; c < nelem; c++ {
		peak := g.At(c, m, m, m)
		if peak <= 0 {
			return nil, Error{fmt.Sprintf("Channel %d renders an empty kernel", c), []string{"InitKernel"}, true}
		}
		for i := 0; i < side; i++ {
			for j := 0; j < side; j++ {
				for k := 0; k < side; k++ {
					data[((c*side+i)*side+j)*side+k] = g.At(c, i, j, k) / peak
				}
			}
		}
	}
	F.kernel = &Kernel{data: data, channels: nelem, side: side, resolution: resolution}
	return F.kernel, nil
}
