/*
 * fitter.go, part of gridFit.
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

import "math"

//Fitter converts density grids into discrete atom structures. It holds the
//renderer used to evaluate hypotheses, the fitting options, and the cached
//detection kernel. A Fitter is not safe for concurrent use; the fitting
//algorithm itself is sequential, with data parallelism only inside the
//convolution and rendering stages.
type Fitter struct {
	rend   Renderer
	opts   *Options
	kernel *Kernel
}

//NewFitter returns a Fitter using the given renderer and, optionally, the
//given options. If no options are given, DefaultOptions are used.
func NewFitter(rend Renderer, opts ...*Options) *Fitter {
	F := new(Fitter)
	F.rend = rend
	if len(opts) > 0 && opts[0] != nil {
		F.opts = opts[0]
	} else {
		F.opts = DefaultOptions()
	}
	return F
}

//Options returns the options of the fitter.
func (F *Fitter) Options() *Options { return F.opts }

//Kernel returns the cached detection kernel, or nil if InitKernel has not
//run yet.
func (F *Fitter) Kernel() *Kernel { return F.kernel }

//Refine optimizes the atom coordinates of s against the target grid for the
//given number of gradient steps, with the atom count and type assignment
//fixed. It uses Adam-style first-order updates with the configured learning
//rate, tracks the best point seen, and returns a new, scored structure at
//that point together with its rendered grid, so the result never scores
//worse than the input. It is deterministic given the same inputs and
//budgets. Convergence is not required: the step budget is the only stopping
//rule. An empty structure is scored as-is (its loss is the target's total
//energy).
func (F *Fitter) Refine(s *AtomStruct, target *Grid, steps int) (*AtomStruct, *Grid, error) {
	if s == nil {
		panic(ErrNilStruct)
	}
	if target == nil {
		panic(ErrNilGrid)
	}
	if s.Len() == 0 {
		rendered, err := F.rend.Render(nil, nil, nil, target.Spec())
		if err != nil {
			return nil, nil, errDecorate(err, "Refine")
		}
		ret := NewAtomStruct(nil, nil, s.Typer())
		for k, v := range s.info {
			ret.info[k] = v
		}
		ret.SetInfo(InfoLoss, L2Diff(rendered, target))
		return ret, rendered, nil
	}
	coords := s.Coords().Copy()
	types := s.Types()
	radii := s.Radii()
	n := coords.NVecs()

	best := coords.Copy()
	bestLoss := math.Inf(1)
	//Adam state. The moment estimates make the step size depend on the
	//learning rate and not on the raw magnitude of the loss gradient,
	//which scales with the voxel count.
	const beta1, beta2, eps = 0.9, 0.999, 1e-8
	m := make([]float64, 3*n)
	v := make([]float64, 3*n)
	for step := 1; step <= steps; step++ {
		loss, grad, err := F.rend.LossGrad(coords, types, radii, target)
		if err != nil {
			return nil, nil, errDecorate(err, "Refine")
		}
		if loss < bestLoss {
			bestLoss = loss
			best.Dense.Copy(coords.Dense)
		}
		rate := F.opts.Rate()
		for i := 0; i < n; i++ {
			row := coords.Vec(i)
			g := grad.Vec(i)
			for k := 0; k < 3; k++ {
				j := 3*i + k
				m[j] = beta1*m[j] + (1-beta1)*g[k]
				v[j] = beta2*v[j] + (1-beta2)*g[k]*g[k]
				mhat := m[j] / (1 - math.Pow(beta1, float64(step)))
				vhat := v[j] / (1 - math.Pow(beta2, float64(step)))
				row[k] -= rate * mhat / (math.Sqrt(vhat) + eps)
			}
		}
	}
	//the position after the last step has not been scored yet
	loss, _, err := F.rend.LossGrad(coords, types, radii, target)
	if err != nil {
		return nil, nil, errDecorate(err, "Refine")
	}
	if loss < bestLoss {
		bestLoss = loss
		best.Dense.Copy(coords.Dense)
	}
	rendered, err := F.rend.Render(best, types, radii, target.Spec())
	if err != nil {
		return nil, nil, errDecorate(err, "Refine")
	}
	ret := NewAtomStruct(best, types, s.Typer())
	for k, val := range s.info {
		ret.info[k] = val
	}
	ret.SetInfo(InfoLoss, bestLoss)
	return ret, rendered, nil
}

//residualGrid returns the element channels of target minus fit, clamped at
//zero: the density not yet explained by the current hypothesis.
func residualGrid(target, fit *Grid) *Grid {
	te := target.ElemGrid()
	fe := fit.ElemGrid()
	if te.side != fe.side || te.channels != fe.channels {
		panic(ErrShape)
	}
	d := te.Data()
	for i := range d {
		d[i] -= fe.data[i]
		if d[i] < 0 {
			d[i] = 0
		}
	}
	ret, err := NewGrid(d, te.channels, te.side, te.resolution, te.center, te.typer)
	if err != nil {
		panic(PanicMsg(err.Error())) //can't happen, te was already validated
	}
	return ret
}

//addNeighbor builds the hypothesis "cur plus one atom", placing the new atom
//at the highest-response location of the unexplained density that has not
//been tried before. It returns nil when every surviving location was
//already tried.
func (F *Fitter) addNeighbor(cur *AtomStruct, curGrid, target *Grid, tried map[[4]int]bool) (*AtomStruct, error) {
	res := residualGrid(target, curGrid)
	coords, idxXYZ, idxC, err := F.candidates(res)
	if err != nil {
		return nil, errDecorate(err, "addNeighbor")
	}
	if coords == nil {
		return nil, nil
	}
	for i := 0; i < coords.NVecs(); i++ {
		key := [4]int{idxC[i], idxXYZ[i][0], idxXYZ[i][1], idxXYZ[i][2]}
		if tried[key] {
			continue
		}
		tried[key] = true
		return cur.WithAtom(coords.Vec(i), TypeVec(target.Typer(), idxC[i])), nil
	}
	return nil, nil
}

//removeNeighbor builds the hypothesis "cur minus its weakest atom": the atom
//whose position has the lowest target-grid response in its own element
//channel. Atoms that drifted outside the grid score zero and go first. Ties
//keep the lowest index.
func (F *Fitter) removeNeighbor(cur *AtomStruct, target *Grid) *AtomStruct {
	n := cur.Len()
	weakest := 0
	weakScore := math.Inf(1)
	for i := 0; i < n; i++ {
		var score float64
		if x, y, z, in := target.NearestVoxel(cur.Coords().Vec(i)); in {
			score = target.At(cur.ElemIdx(i), x, y, z)
		}
		if score < weakScore {
			weakScore = score
			weakest = i
		}
	}
	return cur.WithoutAtom(weakest)
}

//FitStruct fits a discrete atom structure to the target grid. It starts
//from the best single-shot detection, refines it, and then greedily tries
//adding an atom at the best untried location and/or removing the weakest
//atom (in the configured move order), refining each hypothesis with the
//intermediate step budget and accepting the best one only if it strictly
//improves the current loss. When no move improves, or the iteration cap is
//reached, the accepted structure is re-refined with the final step budget
//and returned together with its rendered grid and the history of every
//hypothesis evaluated, in evaluation order. The returned structure is the
//last element of the history and its loss is not above any loss in it.
func (F *Fitter) FitStruct(target *Grid) (*AtomStruct, *Grid, []*AtomStruct, error) {
	if target == nil {
		panic(ErrNilGrid)
	}
	coords, types, err := F.DetectAtoms(target)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "FitStruct")
	}
	init := NewAtomStruct(coords, types, target.Typer())
	cur, curGrid, err := F.Refine(init, target, F.opts.InterIters())
	if err != nil {
		return nil, nil, nil, errDecorate(err, "FitStruct")
	}
	visited := []*AtomStruct{cur}
	tried := make(map[[4]int]bool)
	for iter := 0; iter < F.opts.MaxIter(); iter++ {
		var best *AtomStruct
		var bestGrid *Grid
		for _, mv := range F.opts.MoveOrder() {
			var neigh *AtomStruct
			switch mv {
			case MoveAdd:
				if !F.opts.MultiAtom() || cur.Len() >= F.opts.MaxAtoms() {
					continue
				}
				neigh, err = F.addNeighbor(cur, curGrid, target, tried)
				if err != nil {
					return nil, nil, nil, errDecorate(err, "FitStruct")
				}
			case MoveRemove:
				if !F.opts.AllowRemoval() || cur.Len() == 0 {
					continue
				}
				neigh = F.removeNeighbor(cur, target)
			}
			if neigh == nil {
				continue
			}
			rs, rg, err := F.Refine(neigh, target, F.opts.InterIters())
			if err != nil {
				return nil, nil, nil, errDecorate(err, "FitStruct")
			}
			visited = append(visited, rs)
			if best == nil || rs.Loss() < best.Loss() {
				best = rs
				bestGrid = rg
			}
		}
		if best == nil || best.Loss() >= cur.Loss() {
			break //no improving move: the normal terminal condition
		}
		cur = best
		curGrid = bestGrid
	}
	final, finalGrid, err := F.Refine(cur, target, F.opts.FinalIters())
	if err != nil {
		return nil, nil, nil, errDecorate(err, "FitStruct")
	}
	visited = append(visited, final)
	return final, finalGrid, visited, nil
}
