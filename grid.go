/*
 * grid.go, part of gridFit.
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
)

//Grid is a dense voxel tensor of shape (channels, side, side, side) plus its
//geometric metadata: the voxel edge length (resolution), the cartesian
//coordinates of the grid center, and the Typer giving the channel semantics.
//Grids are cubic with an odd side, so voxel indexes have a well defined
//center. A Grid is immutable once built: all the transformations in this
//package produce a new Grid.
type Grid struct {
	data       []float64
	channels   int
	side       int
	resolution float64
	center     [3]float64
	typer      Typer
}

//NewGrid builds a Grid from the given data, laid out as (channel, x, y, z)
//with z the fastest index. The data slice is copied. It returns an error if
//the side is not an odd positive number, the resolution is not positive, or
//the data length does not match channels*side^3. The typer may be nil for
//grids whose channel semantics are not needed (e.g. kernel scratch grids),
//but detection requires it.
func NewGrid(data []float64, channels, side int, resolution float64, center [3]float64, typer Typer) (*Grid, error) {
	if channels <= 0 {
		return nil, Error{fmt.Sprintf("Grid must have at least one channel, got %d", channels), []string{"NewGrid"}, true}
	}
	if side <= 0 || side%2 == 0 {
		return nil, Error{fmt.Sprintf("Grid side must be an odd positive number, got %d", side), []string{"NewGrid"}, true}
	}
	if resolution <= 0 {
		return nil, Error{fmt.Sprintf("Grid resolution must be positive, got %f", resolution), []string{"NewGrid"}, true}
	}
	if len(data) != channels*side*side*side {
		return nil, Error{fmt.Sprintf("Grid data length %d does not match %d channels of side %d", len(data), channels, side), []string{"NewGrid"}, true}
	}
	d := make([]float64, len(data))
	copy(d, data)
	return &Grid{data: d, channels: channels, side: side, resolution: resolution, center: center, typer: typer}, nil
}

//Channels returns the number of channels in the grid.
func (G *Grid) Channels() int { return G.channels }

//Side returns the number of voxels along each spatial dimension.
func (G *Grid) Side() int { return G.side }

//Resolution returns the voxel edge length.
func (G *Grid) Resolution() float64 { return G.resolution }

//Center returns the cartesian coordinates of the grid center.
func (G *Grid) Center() [3]float64 { return G.center }

//Typer returns the typing scheme associated to the grid, or nil.
func (G *Grid) Typer() Typer { return G.typer }

//Data returns a copy of the raw grid values.
func (G *Grid) Data() []float64 {
	d := make([]float64, len(G.data))
	copy(d, G.data)
	return d
}

//index of the (c,x,y,z) voxel in the data slice. No bounds check:
//the callers within the package are trusted.
func (G *Grid) index(c, x, y, z int) int {
	s := G.side
	return ((c*s+x)*s+y)*s + z
}

//At returns the value at the (c,x,y,z) voxel. Panics if out of range.
func (G *Grid) At(c, x, y, z int) float64 {
	if c < 0 || c >= G.channels || x < 0 || x >= G.side || y < 0 || y >= G.side || z < 0 || z >= G.side {
		panic(ErrIndexOutOfRange)
	}
	return G.data[G.index(c, x, y, z)]
}

//Origin returns the cartesian coordinates of the (0,0,0) voxel center.
func (G *Grid) Origin() [3]float64 {
	h := G.resolution * float64(G.side-1) / 2.0
	return [3]float64{G.center[0] - h, G.center[1] - h, G.center[2] - h}
}

//VoxelCenter returns the cartesian coordinates of the center of the
//(x,y,z) voxel.
func (G *Grid) VoxelCenter(x, y, z int) [3]float64 {
	o := G.Origin()
	r := G.resolution
	return [3]float64{o[0] + float64(x)*r, o[1] + float64(y)*r, o[2] + float64(z)*r}
}

//NearestVoxel returns the voxel indexes closest to the cartesian point p,
//and whether the point falls within the grid bounds.
func (G *Grid) NearestVoxel(p []float64) (x, y, z int, in bool) {
	o := G.Origin()
	r := G.resolution
	x = int(math.Round((p[0] - o[0]) / r))
	y = int(math.Round((p[1] - o[1]) / r))
	z = int(math.Round((p[2] - o[2]) / r))
	in = x >= 0 && x < G.side && y >= 0 && y < G.side && z >= 0 && z < G.side
	return x, y, z, in
}

//ChannelNorm returns the euclidean norm of the cth channel of the grid.
func (G *Grid) ChannelNorm(c int) float64 {
	if c < 0 || c >= G.channels {
		panic(ErrIndexOutOfRange)
	}
	vol := G.side * G.side * G.side
	var acc float64
	for _, v := range G.data[c*vol : (c+1)*vol] {
		acc += v * v
	}
	return math.Sqrt(acc)
}

//Norm returns the euclidean norm of the whole grid.
func (G *Grid) Norm() float64 {
	var acc float64
	for _, v := range G.data {
		acc += v * v
	}
	return math.Sqrt(acc)
}

//Spec returns the geometric metadata of the grid, to render other grids
//with the same geometry.
func (G *Grid) Spec() GridSpec {
	return GridSpec{Side: G.side, Resolution: G.resolution, Center: G.center, Typer: G.typer}
}

//ElemGrid returns a new Grid containing only the element channels of the
//receiver, as given by its typer. Panics if the grid has no typer or fewer
//channels than the typer declares.
func (G *Grid) ElemGrid() *Grid {
	if G.typer == nil {
		panic(ErrShape)
	}
	nelem := G.typer.NElemTypes()
	if nelem > G.channels {
		panic(ErrShape)
	}
	vol := G.side * G.side * G.side
	g, err := NewGrid(G.data[:nelem*vol], nelem, G.side, G.resolution, G.center, G.typer)
	if err != nil {
		panic(PanicMsg(err.Error())) //can't happen, the receiver was already validated
	}
	return g
}

//L2Diff returns the sum of squared differences between two grids of the
//same shape. It panics if the shapes differ, as comparing grids of
//different geometry is a programming error.
func L2Diff(a, b *Grid) float64 {
	if a == nil || b == nil {
		panic(ErrNilGrid)
	}
	if a.channels != b.channels || a.side != b.side {
		panic(ErrShape)
	}
	var acc float64
	for i, v := range a.data {
		d := v - b.data[i]
		acc += d * d
	}
	return acc
}
