/*
 * renderer.go, part of gridFit.
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
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit/xyz"
)

//GridSpec is the geometric recipe for rendering a grid: voxel count per
//dimension, voxel edge length, cartesian center and channel semantics.
type GridSpec struct {
	Side       int
	Resolution float64
	Center     [3]float64
	Typer      Typer
}

//Renderer renders a set of atoms (coordinates, type vectors and radii) into
//a density grid, and computes the gradient of the L2 reconstruction loss
//with respect to the coordinates. The rendering must be differentiable in
//the coordinates; the render subpackage provides a Gaussian implementation
//with analytic gradients. gridfit treats the Renderer as a black box.
type Renderer interface {

	//Render produces the density grid of the given atoms with the given
	//geometry. A nil coords matrix renders an empty (all-zero) grid.
	Render(coords *xyz.Matrix, types *mat.Dense, radii []float64, spec GridSpec) (*Grid, error)

	//LossGrad returns the L2 loss between the rendered atoms and the
	//target grid, and the gradient of that loss with respect to each
	//atom coordinate, as a matrix of the same shape as coords.
	LossGrad(coords *xyz.Matrix, types *mat.Dense, radii []float64, target *Grid) (float64, *xyz.Matrix, error)
}
