/*
 * fitplot_test.go, part of gridFit.
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

package fitplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gridfit"
)

func fakeHistory(losses []float64) []*gridfit.AtomStruct {
	hist := make([]*gridfit.AtomStruct, len(losses))
	for i, l := range losses {
		s := gridfit.NewAtomStruct(nil, nil, nil)
		s.SetInfo(gridfit.InfoLoss, l)
		hist[i] = s
	}
	return hist
}

func TestLossCurve(Te *testing.T) {
	hist := fakeHistory([]float64{12.5, 8.1, 9.3, 5.0, 4.9})
	name := filepath.Join(Te.TempDir(), "losses")
	if err := LossCurve(hist, "Fitting run", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Error("The plot file was not written:", err)
	}
}

func TestLossCurveNoLosses(Te *testing.T) {
	hist := []*gridfit.AtomStruct{gridfit.NewAtomStruct(nil, nil, nil)}
	name := filepath.Join(Te.TempDir(), "empty")
	if err := LossCurve(hist, "Nothing", name); err == nil {
		Te.Error("Plotted a history with no recorded losses")
	}
}

func TestSizeCurve(Te *testing.T) {
	hist := fakeHistory([]float64{3.0, 2.0})
	name := filepath.Join(Te.TempDir(), "sizes")
	if err := SizeCurve(hist, "Atom count", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Error("The plot file was not written:", err)
	}
}
