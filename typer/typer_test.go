/*
 * typer_test.go, part of gridFit.
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

package typer

import (
	"testing"

	"github.com/rmera/gridfit"
)

func TestElemental(Te *testing.T) {
	t, err := NewCovalent("C", "N", "O", "S")
	if err != nil {
		Te.Fatal(err)
	}
	if t.NElemTypes() != 4 {
		Te.Errorf("Got %d element channels, expected 4", t.NElemTypes())
	}
	if t.NPropChannels() != 0 {
		Te.Error("An Elemental should have no property channels")
	}
	if gridfit.NChannels(t) != 4 {
		Te.Error("Total channel count disagrees with the element count")
	}
	if t.Radius(0) != 0.76 || t.Radius(3) != 1.05 {
		Te.Error("Covalent radii are off", t.Radius(0), t.Radius(3))
	}
	if t.Symbol(1) != "N" {
		Te.Error("Channel 1 is not nitrogen")
	}
	if i, ok := t.Index("O"); !ok || i != 2 {
		Te.Error("Oxygen not at channel 2")
	}
	if _, ok := t.Index("Fe"); ok {
		Te.Error("Found a channel for an element that was never given")
	}
}

func TestVdwRadii(Te *testing.T) {
	t, err := NewVdw("C", "H")
	if err != nil {
		Te.Fatal(err)
	}
	if t.Radius(0) != 1.70 || t.Radius(1) != 1.10 {
		Te.Error("van der Waals radii are off", t.Radius(0), t.Radius(1))
	}
}

func TestBadSymbols(Te *testing.T) {
	if _, err := NewCovalent(); err == nil {
		Te.Error("Accepted an empty symbol list")
	}
	if _, err := NewCovalent("C", "C"); err == nil {
		Te.Error("Accepted a repeated symbol")
	}
	if _, err := NewCovalent("Xx"); err == nil {
		Te.Error("Accepted an unknown symbol")
	}
}

func TestTypeVec(Te *testing.T) {
	t, err := NewCovalent("C", "N")
	if err != nil {
		Te.Fatal(err)
	}
	v := gridfit.TypeVec(t, 1)
	if len(v) != 2 || v[0] != 0 || v[1] != 1 {
		Te.Error("Type vector for nitrogen is wrong", v)
	}
}
