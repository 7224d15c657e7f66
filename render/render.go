/*
 * render.go, part of gridFit.
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

/*Package render renders sets of atoms into density grids with Gaussian
footprints, and provides the analytic gradient of the L2 reconstruction loss
with respect to the atom coordinates. It implements the gridfit.Renderer
interface, so no autodiff framework is involved: the gradient of the one
operation that needs one is written out by hand.*/
package render

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit"
	"github.com/rmera/gridfit/xyz"
)

//Options holds the configuration for a Gaussian renderer. Each accessor
//returns the current value of its option and, if given a valid argument,
//sets the option to it.
type Options struct {
	cutoff float64
	cpus   int
}

//DefaultOptions returns an Options with the default rendering options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cutoff = 1.5
	ret.cpus = 1
	return ret
}

//Cutoff returns the truncation distance of the atomic footprint, in
//multiples of the atomic radius, and sets it, if a positive value is given.
func (o *Options) Cutoff(v ...float64) float64 {
	ret := o.cutoff
	if len(v) > 0 && v[0] > 0 {
		o.cutoff = v[0]
	}
	return ret
}

//Cpus returns the number of goroutines used to render channels, and sets
//it, if a positive value is given. It does not change results.
func (o *Options) Cpus(v ...int) int {
	ret := o.cpus
	if len(v) > 0 && v[0] > 0 {
		o.cpus = v[0]
	}
	return ret
}

//Gaussian renders each atom as exp(-2*d^2/r^2), with d the distance from
//the atom and r its radius, truncated at Cutoff*r, scaled per channel by
//the atom's type vector.
type Gaussian struct {
	o *Options
}

//NewGaussian returns a Gaussian renderer with the given options, or the
//defaults if none are given.
func NewGaussian(opts ...*Options) *Gaussian {
	R := new(Gaussian)
	if len(opts) > 0 && opts[0] != nil {
		R.o = opts[0]
	} else {
		R.o = DefaultOptions()
	}
	return R
}

//Options returns the options of the renderer.
func (R *Gaussian) Options() *Options { return R.o }

//density and its derivative factor at squared distance d2 for radius r.
//The derivative of the density with respect to the atom coordinate x is
//density * (-4*(x-v)/r^2) for a voxel at v.
func density(d2, r float64) float64 {
	return math.Exp(-2 * d2 / (r * r))
}

//checkAtoms panics on shape mismatches between coordinates, types and
//radii: those are programming errors, not recoverable conditions.
func checkAtoms(coords *xyz.Matrix, types *mat.Dense, radii []float64, nch int) int {
	if coords == nil {
		if types != nil || len(radii) != 0 {
			panic(gridfit.ErrShape)
		}
		return 0
	}
	n := coords.NVecs()
	tr, tc := types.Dims()
	if tr != n || len(radii) != n || tc != nch {
		panic(gridfit.ErrShape)
	}
	return n
}

//Render produces the density grid of the given atoms with the geometry and
//channel semantics given by spec. A nil coords matrix yields an all-zero
//grid. Channels are rendered in parallel across the configured number of
//goroutines; within each channel atoms accumulate in their given order, so
//the result does not depend on the parallelism.
func (R *Gaussian) Render(coords *xyz.Matrix, types *mat.Dense, radii []float64, spec gridfit.GridSpec) (*gridfit.Grid, error) {
	if spec.Typer == nil {
		return nil, Error{"Spec carries no typer", []string{"Render"}, true}
	}
	nch := gridfit.NChannels(spec.Typer)
	n := checkAtoms(coords, types, radii, nch)
	side := spec.Side
	vol := side * side * side
	data := make([]float64, nch*vol)
	if n > 0 {
		cpus := R.o.Cpus()
		if cpus > nch {
			cpus = nch
		}
		var wg sync.WaitGroup
		for w := 0; w < cpus; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for c := w; c < nch; c += cpus {
					R.renderChannel(data[c*vol:(c+1)*vol], coords, types, radii, spec, c)
				}
			}(w)
		}
		wg.Wait()
	}
	g, err := gridfit.NewGrid(data, nch, side, spec.Resolution, spec.Center, spec.Typer)
	if err != nil {
		return nil, errDecorate(err, "Render")
	}
	return g, nil
}

//renderChannel accumulates every atom's footprint into one channel.
func (R *Gaussian) renderChannel(out []float64, coords *xyz.Matrix, types *mat.Dense, radii []float64, spec gridfit.GridSpec, c int) {
	side := spec.Side
	res := spec.Resolution
	h := res * float64(side-1) / 2.0
	ox := spec.Center[0] - h
	oy := spec.Center[1] - h
	oz := spec.Center[2] - h
	for i := 0; i < coords.NVecs(); i++ {
		t := types.At(i, c)
		if t == 0 {
			continue
		}
		p := coords.Vec(i)
		r := radii[i]
		cut := R.o.Cutoff() * r
		cut2 := cut * cut
		x0, x1 := voxelRange(p[0], ox, res, cut, side)
		y0, y1 := voxelRange(p[1], oy, res, cut, side)
		z0, z1 := voxelRange(p[2], oz, res, cut, side)
		for x := x0; x <= x1; x++ {
			dx := p[0] - (ox + float64(x)*res)
			for y := y0; y <= y1; y++ {
				dy := p[1] - (oy + float64(y)*res)
				for z := z0; z <= z1; z++ {
					dz := p[2] - (oz + float64(z)*res)
					d2 := dx*dx + dy*dy + dz*dz
					if d2 > cut2 {
						continue
					}
					out[(x*side+y)*side+z] += t * density(d2, r)
				}
			}
		}
	}
}

//voxelRange returns the inclusive voxel index range within cut of p along
//one axis, clamped to the grid.
func voxelRange(p, origin, res, cut float64, side int) (int, int) {
	lo := int(math.Ceil((p - cut - origin) / res))
	hi := int(math.Floor((p + cut - origin) / res))
	if lo < 0 {
		lo = 0
	}
	if hi > side-1 {
		hi = side - 1
	}
	return lo, hi
}

//LossGrad returns the L2 loss between the rendered atoms and the target
//grid, and its gradient with respect to each atom coordinate. The gradient
//is analytic: for each voxel v within the cutoff of atom i, the rendered
//value depends on the coordinate through the Gaussian footprint, so
//dL/dx_i accumulates 2*(rendered-target)_v * t_ic * density * (-4*(x_i-v_x)/r_i^2),
//and likewise for y and z. Atoms are processed in parallel; each one owns
//its gradient row and only reads shared data, so the result is
//deterministic.
func (R *Gaussian) LossGrad(coords *xyz.Matrix, types *mat.Dense, radii []float64, target *gridfit.Grid) (float64, *xyz.Matrix, error) {
	if target == nil {
		panic(gridfit.ErrNilGrid)
	}
	rendered, err := R.Render(coords, types, radii, target.Spec())
	if err != nil {
		return 0, nil, errDecorate(err, "LossGrad")
	}
	loss := gridfit.L2Diff(rendered, target)
	n := checkAtoms(coords, types, radii, rendered.Channels())
	if n == 0 {
		return loss, nil, nil
	}
	diff := rendered.Data()
	tdata := target.Data()
	for i := range diff {
		diff[i] -= tdata[i]
	}
	grad := xyz.Zeros(n)
	cpus := R.o.Cpus()
	if cpus > n {
		cpus = n
	}
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < n; i += cpus {
				R.atomGrad(grad.Vec(i), diff, coords, types, radii, target, i)
			}
		}(w)
	}
	wg.Wait()
	return loss, grad, nil
}

//atomGrad accumulates the loss gradient for one atom into g.
func (R *Gaussian) atomGrad(g []float64, diff []float64, coords *xyz.Matrix, types *mat.Dense, radii []float64, target *gridfit.Grid, i int) {
	side := target.Side()
	res := target.Resolution()
	vol := side * side * side
	h := res * float64(side-1) / 2.0
	center := target.Center()
	ox := center[0] - h
	oy := center[1] - h
	oz := center[2] - h
	p := coords.Vec(i)
	r := radii[i]
	cut := R.o.Cutoff() * r
	cut2 := cut * cut
	x0, x1 := voxelRange(p[0], ox, res, cut, side)
	y0, y1 := voxelRange(p[1], oy, res, cut, side)
	z0, z1 := voxelRange(p[2], oz, res, cut, side)
	_, nch := types.Dims()
	for c := 0; c < nch; c++ {
		t := types.At(i, c)
		if t == 0 {
			continue
		}
		for x := x0; x <= x1; x++ {
			dx := p[0] - (ox + float64(x)*res)
			for y := y0; y <= y1; y++ {
				dy := p[1] - (oy + float64(y)*res)
				for z := z0; z <= z1; z++ {
					dz := p[2] - (oz + float64(z)*res)
					d2 := dx*dx + dy*dy + dz*dz
					if d2 > cut2 {
						continue
					}
					common := 2 * diff[c*vol+(x*side+y)*side+z] * t * density(d2, r) * (-4 / (r * r))
					g[0] += common * dx
					g[1] += common * dy
					g[2] += common * dz
				}
			}
		}
	}
}
