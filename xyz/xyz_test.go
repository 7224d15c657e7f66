/*
 * xyz_test.go, part of gridFit.
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

package xyz

import (
	"math"
	"testing"
)

func TestNew(Te *testing.T) {
	m, err := New([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if m.NVecs() != 2 {
		Te.Errorf("Got %d vectors, expected 2", m.NVecs())
	}
	if v := m.Vec(1); v[0] != 4 || v[1] != 5 || v[2] != 6 {
		Te.Error("Second vector mangled", v)
	}
	if _, err := New([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("Accepted a slice that is not a multiple of 3")
	}
	if _, err := New(nil); err == nil {
		Te.Error("Accepted an empty slice")
	}
}

func TestSetAndView(Te *testing.T) {
	m := Zeros(3)
	m.SetVec(1, []float64{1, -1, 2})
	v := m.VecView(1)
	if v.At(0, 0) != 1 || v.At(0, 2) != 2 {
		Te.Error("VecView does not see the set values")
	}
	if m.At(0, 0) != 0 || m.At(2, 2) != 0 {
		Te.Error("SetVec touched other rows")
	}
}

func TestSomeVecs(Te *testing.T) {
	m, _ := New([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3})
	dest := Zeros(2)
	dest.SomeVecs(m, []int{3, 1})
	if dest.At(0, 0) != 3 || dest.At(1, 0) != 1 {
		Te.Error("SomeVecs picked the wrong rows")
	}
}

func TestAppendAndDel(Te *testing.T) {
	var m *Matrix
	m = m.AppendVec([]float64{1, 0, 0})
	m = m.AppendVec([]float64{0, 2, 0})
	m = m.AppendVec([]float64{0, 0, 3})
	if m.NVecs() != 3 {
		Te.Fatalf("Got %d vectors after appending 3", m.NVecs())
	}
	m = m.DelVec(1)
	if m.NVecs() != 2 {
		Te.Fatalf("Got %d vectors after one removal", m.NVecs())
	}
	if m.At(0, 0) != 1 || m.At(1, 2) != 3 {
		Te.Error("Removal kept the wrong rows")
	}
	m = m.DelVec(0)
	m = m.DelVec(0)
	if m != nil {
		Te.Error("Removing the last vector did not give a nil matrix")
	}
}

func TestDist(Te *testing.T) {
	m, _ := New([]float64{0, 0, 0, 3, 4, 0})
	if d := m.Dist(0, m, 1); math.Abs(d-5) > 1e-12 {
		Te.Errorf("Distance is %f, expected 5", d)
	}
}

func TestCopyIndependence(Te *testing.T) {
	m, _ := New([]float64{1, 2, 3})
	c := m.Copy()
	c.SetVec(0, []float64{9, 9, 9})
	if m.At(0, 0) != 1 {
		Te.Error("Copy shares memory with the original")
	}
}
