/*
 * render_test.go, part of gridFit.
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

package render

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit"
	"github.com/rmera/gridfit/typer"
	"github.com/rmera/gridfit/xyz"
)

func testSetup(Te *testing.T) (gridfit.GridSpec, *typer.Elemental) {
	t, err := typer.NewCovalent("C", "O")
	if err != nil {
		Te.Fatal(err)
	}
	return gridfit.GridSpec{Side: 21, Resolution: 0.5, Center: [3]float64{0, 0, 0}, Typer: t}, t
}

func TestRenderCenterValue(Te *testing.T) {
	spec, t := testSetup(Te)
	coords, _ := xyz.New([]float64{0, 0, 0})
	types := mat.NewDense(1, 2, []float64{1, 0})
	g, err := NewGaussian().Render(coords, types, []float64{t.Radius(0)}, spec)
	if err != nil {
		Te.Fatal(err)
	}
	h := spec.Side / 2
	if v := g.At(0, h, h, h); v != 1.0 {
		Te.Errorf("Density at the atom position is %f, not 1", v)
	}
	if v := g.At(1, h, h, h); v != 0 {
		Te.Errorf("Carbon atom leaked %f into the oxygen channel", v)
	}
	//symmetry around the atom
	if g.At(0, h+1, h, h) != g.At(0, h-1, h, h) || g.At(0, h, h+1, h) != g.At(0, h, h, h+1) {
		Te.Error("Footprint not symmetric around the atom")
	}
}

func TestRenderNilAtoms(Te *testing.T) {
	spec, _ := testSetup(Te)
	g, err := NewGaussian().Render(nil, nil, nil, spec)
	if err != nil {
		Te.Fatal(err)
	}
	if g.Norm() != 0 {
		Te.Errorf("Rendering no atoms gave a norm of %f", g.Norm())
	}
}

func TestRenderCutoff(Te *testing.T) {
	spec, t := testSetup(Te)
	coords, _ := xyz.New([]float64{0, 0, 0})
	types := mat.NewDense(1, 2, []float64{1, 0})
	r := t.Radius(0)
	g, err := NewGaussian().Render(coords, types, []float64{r}, spec)
	if err != nil {
		Te.Fatal(err)
	}
	cut := 1.5 * r
	side := spec.Side
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			for z := 0; z < side; z++ {
				c := g.VoxelCenter(x, y, z)
				d := math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
				if d > cut && g.At(0, x, y, z) != 0 {
					Te.Fatalf("Voxel at distance %f carries density %f past the %f cutoff", d, g.At(0, x, y, z), cut)
				}
			}
		}
	}
}

func TestRenderParallelDeterministic(Te *testing.T) {
	spec, t := testSetup(Te)
	coords, _ := xyz.New([]float64{0.3, -0.2, 0.7, -1.1, 0.4, 0.2, 0.9, 1.3, -0.5})
	types := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 0})
	radii := []float64{t.Radius(0), t.Radius(1), t.Radius(0)}
	serial := NewGaussian()
	parallel := NewGaussian()
	parallel.Options().Cpus(4)
	a, err := serial.Render(coords, types, radii, spec)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := parallel.Render(coords, types, radii, spec)
	if err != nil {
		Te.Fatal(err)
	}
	da, db := a.Data(), b.Data()
	for i := range da {
		if da[i] != db[i] {
			Te.Fatal("Parallel rendering changed the result")
		}
	}
}

//TestLossGrad checks the analytic gradient against central finite
//differences. The truncated footprint is not perfectly smooth at the cutoff
//surface, so the comparison uses a small mixed tolerance.
func TestLossGrad(Te *testing.T) {
	spec, t := testSetup(Te)
	R := NewGaussian()
	tcoords, _ := xyz.New([]float64{0.2, -0.3, 0.1, 1.4, 0.8, -0.6})
	ttypes := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	radii := []float64{t.Radius(0), t.Radius(1)}
	target, err := R.Render(tcoords, ttypes, radii, spec)
	if err != nil {
		Te.Fatal(err)
	}
	coords, _ := xyz.New([]float64{0, 0, 0, 1.0, 1.0, -0.4})
	loss, grad, err := R.LossGrad(coords, ttypes, radii, target)
	if err != nil {
		Te.Fatal(err)
	}
	if loss <= 0 {
		Te.Fatalf("Mismatched atoms give a loss of %f", loss)
	}
	const h = 1e-5
	for i := 0; i < coords.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			orig := coords.At(i, j)
			coords.Set(i, j, orig+h)
			lp, _, err := R.LossGrad(coords, ttypes, radii, target)
			if err != nil {
				Te.Fatal(err)
			}
			coords.Set(i, j, orig-h)
			lm, _, err := R.LossGrad(coords, ttypes, radii, target)
			if err != nil {
				Te.Fatal(err)
			}
			coords.Set(i, j, orig)
			num := (lp - lm) / (2 * h)
			ana := grad.At(i, j)
			if diff := math.Abs(num - ana); diff > 1e-2+0.05*math.Abs(num) {
				Te.Errorf("Gradient (%d,%d): analytic %f, numeric %f", i, j, ana, num)
			}
		}
	}
	fmt.Println("loss at the start point", loss)
}

func TestLossGradAtOptimum(Te *testing.T) {
	spec, t := testSetup(Te)
	R := NewGaussian()
	coords, _ := xyz.New([]float64{0.5, 0, -0.5})
	types := mat.NewDense(1, 2, []float64{0, 1})
	radii := []float64{t.Radius(1)}
	target, err := R.Render(coords, types, radii, spec)
	if err != nil {
		Te.Fatal(err)
	}
	loss, grad, err := R.LossGrad(coords, types, radii, target)
	if err != nil {
		Te.Fatal(err)
	}
	if loss != 0 {
		Te.Errorf("Loss against an identical rendering is %f", loss)
	}
	for j := 0; j < 3; j++ {
		if grad.At(0, j) != 0 {
			Te.Errorf("Gradient component %d is %f at the optimum", j, grad.At(0, j))
		}
	}
}

func TestRenderShapePanics(Te *testing.T) {
	spec, t := testSetup(Te)
	coords, _ := xyz.New([]float64{0, 0, 0})
	types := mat.NewDense(2, 2, nil) //wrong row count
	defer func() {
		if recover() == nil {
			Te.Error("Mismatched types matrix did not panic")
		}
	}()
	NewGaussian().Render(coords, types, []float64{t.Radius(0)}, spec)
}
