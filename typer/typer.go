/*
 * typer.go, part of gridFit.
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

/*Package typer implements the gridfit.Typer interface over a fixed list of
chemical element symbols, with one element channel per symbol and radii taken
from built-in covalent or van der Waals tables.*/
package typer

import "fmt"

//Covalent radii, in Angstroms.
var symbolCovrad = map[string]float64{
	"H":  0.4,
	"C":  0.76,
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Br": 1.2,
	"I":  1.39,
}

//van der Waals radii, in Angstroms.
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"Br": 1.85,
	"I":  1.98,
}

//Elemental maps element channels to chemical element symbols, one channel
//per symbol, with no property channels. The channel order is the order in
//which the symbols were given.
type Elemental struct {
	symbols []string
	radii   []float64
	index   map[string]int
}

//newElemental builds an Elemental over the given symbols with radii from
//the given table.
func newElemental(symbols []string, table map[string]float64) (*Elemental, error) {
	if len(symbols) == 0 {
		return nil, Error{"No element symbols given", []string{"newElemental"}, true}
	}
	T := new(Elemental)
	T.symbols = make([]string, len(symbols))
	T.radii = make([]float64, len(symbols))
	T.index = make(map[string]int, len(symbols))
	for i, s := range symbols {
		r, ok := table[s]
		if !ok {
			return nil, Error{fmt.Sprintf("No radius known for element symbol %s", s), []string{"newElemental"}, true}
		}
		if _, dup := T.index[s]; dup {
			return nil, Error{fmt.Sprintf("Element symbol %s given twice", s), []string{"newElemental"}, true}
		}
		T.symbols[i] = s
		T.radii[i] = r
		T.index[s] = i
	}
	return T, nil
}

//NewCovalent returns an Elemental over the given element symbols with
//covalent radii. It fails if a symbol is repeated or not in the table.
func NewCovalent(symbols ...string) (*Elemental, error) {
	T, err := newElemental(symbols, symbolCovrad)
	if err != nil {
		return nil, errDecorate(err, "NewCovalent")
	}
	return T, nil
}

//NewVdw returns an Elemental over the given element symbols with van der
//Waals radii. It fails if a symbol is repeated or not in the table.
func NewVdw(symbols ...string) (*Elemental, error) {
	T, err := newElemental(symbols, symbolVdwrad)
	if err != nil {
		return nil, errDecorate(err, "NewVdw")
	}
	return T, nil
}

//NElemTypes returns the number of element channels.
func (T *Elemental) NElemTypes() int { return len(T.symbols) }

//NPropChannels returns 0: an Elemental defines no property channels.
func (T *Elemental) NPropChannels() int { return 0 }

//Radius returns the atomic radius of the ith element channel, in Angstroms.
func (T *Elemental) Radius(i int) float64 {
	if i < 0 || i >= len(T.radii) {
		panic(PanicElemOutOfRange)
	}
	return T.radii[i]
}

//PropVec returns an empty slice, as an Elemental has no property channels.
func (T *Elemental) PropVec(i int) []float64 {
	if i < 0 || i >= len(T.symbols) {
		panic(PanicElemOutOfRange)
	}
	return []float64{}
}

//Symbol returns the element symbol of the ith element channel.
func (T *Elemental) Symbol(i int) string {
	if i < 0 || i >= len(T.symbols) {
		panic(PanicElemOutOfRange)
	}
	return T.symbols[i]
}

//Index returns the element channel for the given symbol, and whether the
//symbol is covered by the typer at all.
func (T *Elemental) Index(symbol string) (int, bool) {
	i, ok := T.index[symbol]
	return i, ok
}
