/*
 * options.go, part of gridFit.
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

import "runtime"

//Move is one of the neighbor-generation moves of the fitting search.
type Move int

const (
	//MoveAdd adds one atom at the highest-response untried location.
	MoveAdd Move = iota
	//MoveRemove removes the weakest-contributing atom.
	MoveRemove
)

//Options holds the configuration for a Fitter. Each accessor returns the
//current value of its option and, if given an argument, sets the option to
//it (invalid values are ignored). The zero value is not useful; build one
//with DefaultOptions.
type Options struct {
	applyConv    bool
	threshold    float64
	peakValue    float64
	minDist      float64
	perChannel   bool
	multiAtom    bool
	allowRemoval bool
	moveOrder    []Move
	nAtomsDetect int
	interIters   int
	finalIters   int
	rate         float64
	maxIter      int
	maxAtoms     int
	cpus         int
}

//DefaultOptions returns an Options with the default fitting options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.applyConv = true
	ret.threshold = 0.1
	ret.peakValue = 1.5
	ret.minDist = 0
	ret.perChannel = true
	ret.multiAtom = true
	ret.allowRemoval = true
	ret.moveOrder = []Move{MoveAdd, MoveRemove}
	ret.nAtomsDetect = 0 //unset: keep everything that survives suppression
	ret.interIters = 10
	ret.finalIters = 100
	ret.rate = 0.1
	ret.maxIter = 50
	ret.maxAtoms = 50
	ret.cpus = runtime.NumCPU()
	return ret
}

//ApplyConv returns whether detection convolves the grid with the atomic
//kernels before peak search, and sets it, if given.
func (o *Options) ApplyConv(v ...bool) bool {
	ret := o.applyConv
	if len(v) > 0 {
		o.applyConv = v[0]
	}
	return ret
}

//Threshold returns the detection threshold (candidates must score strictly
//above it to survive) and sets it, if given.
func (o *Options) Threshold(v ...float64) float64 {
	ret := o.threshold
	if len(v) > 0 {
		o.threshold = v[0]
	}
	return ret
}

//PeakValue returns the cap applied to response values before ranking, so one
//dominant atom does not mask weaker neighbors, and sets it, if a positive
//value is given.
func (o *Options) PeakValue(v ...float64) float64 {
	ret := o.peakValue
	if len(v) > 0 && v[0] > 0 {
		o.peakValue = v[0]
	}
	return ret
}

//MinDist returns the minimum distance between accepted candidates in
//non-maximum suppression, and sets it, if a non-negative value is given.
func (o *Options) MinDist(v ...float64) float64 {
	ret := o.minDist
	if len(v) > 0 && v[0] >= 0 {
		o.minDist = v[0]
	}
	return ret
}

//PerChannel returns whether non-maximum suppression only compares candidates
//within the same channel (as opposed to across all channels), and sets it,
//if given. This is independent from the search move order.
func (o *Options) PerChannel(v ...bool) bool {
	ret := o.perChannel
	if len(v) > 0 {
		o.perChannel = v[0]
	}
	return ret
}

//MultiAtom returns whether the fitting search may grow the structure by
//adding atoms at untried high-response locations, and sets it, if given.
func (o *Options) MultiAtom(v ...bool) bool {
	ret := o.multiAtom
	if len(v) > 0 {
		o.multiAtom = v[0]
	}
	return ret
}

//AllowRemoval returns whether the fitting search may shrink the structure by
//removing its weakest-contributing atom, and sets it, if given.
func (o *Options) AllowRemoval(v ...bool) bool {
	ret := o.allowRemoval
	if len(v) > 0 {
		o.allowRemoval = v[0]
	}
	return ret
}

//MoveOrder returns the order in which the fitting search generates and
//evaluates neighbor hypotheses on each iteration, and sets it, if a
//non-empty order is given. This is independent from the suppression scope.
func (o *Options) MoveOrder(v ...[]Move) []Move {
	ret := o.moveOrder
	if len(v) > 0 && len(v[0]) > 0 {
		o.moveOrder = v[0]
	}
	return ret
}

//NAtomsDetect returns the maximum number of atoms detection may return
//(0 means no limit), and sets it, if a non-negative value is given.
func (o *Options) NAtomsDetect(v ...int) int {
	ret := o.nAtomsDetect
	if len(v) > 0 && v[0] >= 0 {
		o.nAtomsDetect = v[0]
	}
	return ret
}

//InterIters returns the gradient-descent step budget used on each hypothesis
//during the search, and sets it, if a non-negative value is given.
func (o *Options) InterIters(v ...int) int {
	ret := o.interIters
	if len(v) > 0 && v[0] >= 0 {
		o.interIters = v[0]
	}
	return ret
}

//FinalIters returns the larger gradient-descent step budget used once on the
//accepted structure, and sets it, if a non-negative value is given.
func (o *Options) FinalIters(v ...int) int {
	ret := o.finalIters
	if len(v) > 0 && v[0] >= 0 {
		o.finalIters = v[0]
	}
	return ret
}

//Rate returns the learning rate of the geometric refiner, and sets it, if a
//positive value is given.
func (o *Options) Rate(v ...float64) float64 {
	ret := o.rate
	if len(v) > 0 && v[0] > 0 {
		o.rate = v[0]
	}
	return ret
}

//MaxIter returns the safety cap on fitting-search iterations, and sets it,
//if a positive value is given.
func (o *Options) MaxIter(v ...int) int {
	ret := o.maxIter
	if len(v) > 0 && v[0] > 0 {
		o.maxIter = v[0]
	}
	return ret
}

//MaxAtoms returns the safety cap on the number of atoms in a hypothesis, and
//sets it, if a positive value is given.
func (o *Options) MaxAtoms(v ...int) int {
	ret := o.maxAtoms
	if len(v) > 0 && v[0] > 0 {
		o.maxAtoms = v[0]
	}
	return ret
}

//Cpus returns the number of goroutines used in the data-parallel stages
//(convolution and rendering), and sets it, if a positive value is given.
//Parallelism is a pure performance choice: results do not depend on it.
func (o *Options) Cpus(v ...int) int {
	ret := o.cpus
	if len(v) > 0 && v[0] > 0 {
		o.cpus = v[0]
	}
	return ret
}
