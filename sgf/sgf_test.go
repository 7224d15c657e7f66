/*
 * sgf_test.go, part of gridFit.
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

package sgf

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gridfit"
	"github.com/rmera/gridfit/render"
	"github.com/rmera/gridfit/typer"
	"github.com/rmera/gridfit/xyz"
)

func matFromRow(row []float64) *mat.Dense {
	return mat.NewDense(1, len(row), row)
}

func testGrids(Te *testing.T) (*typer.Elemental, []*gridfit.Grid) {
	t, err := typer.NewCovalent("C", "O")
	require.NoError(Te, err)
	spec := gridfit.GridSpec{Side: 11, Resolution: 0.5, Center: [3]float64{1, -1, 0.5}, Typer: t}
	R := render.NewGaussian()
	grids := make([]*gridfit.Grid, 0, 3)
	for i, pos := range [][]float64{{1, -1, 0.5}, {1.3, -0.8, 0.2}, {0.6, -1.4, 1.0}} {
		coords, err := xyz.New(pos)
		require.NoError(Te, err)
		types := gridfit.TypeVec(t, i%2)
		g, err := R.Render(coords, matFromRow(types), []float64{t.Radius(i % 2)}, spec)
		require.NoError(Te, err)
		grids = append(grids, g)
	}
	return t, grids
}

func TestRoundTrip(Te *testing.T) {
	t, grids := testGrids(Te)
	name := filepath.Join(Te.TempDir(), "snapshots.sgf")
	first := grids[0]
	w, err := NewWriter(name, first.Channels(), first.Side(), first.Resolution(), first.Center(),
		map[string]string{"src": "test"})
	require.NoError(Te, err)
	for _, g := range grids {
		require.NoError(Te, w.WNext(g))
	}
	w.Close()

	r, meta, err := New(name)
	require.NoError(Te, err)
	require.Equal(Te, "test", meta["src"])
	require.Equal(Te, first.Channels(), r.Channels())
	require.Equal(Te, first.Side(), r.Side())
	require.Equal(Te, first.Resolution(), r.Resolution())
	require.Equal(Te, first.Center(), r.Center())
	for _, g := range grids {
		got, err := r.Next(t)
		require.NoError(Te, err)
		require.Equal(Te, g.Data(), got.Data())
	}
	_, err = r.Next(t)
	require.Error(Te, err)
	_, ok := err.(gridfit.LastSnapshotError)
	require.True(Te, ok, "the end of the file should not be a real error")
}

func TestWriterRejectsMismatch(Te *testing.T) {
	_, grids := testGrids(Te)
	name := filepath.Join(Te.TempDir(), "bad.sgf")
	w, err := NewWriter(name, grids[0].Channels(), grids[0].Side()+2, grids[0].Resolution(),
		grids[0].Center(), nil)
	require.NoError(Te, err)
	defer w.Close()
	require.Error(Te, w.WNext(grids[0]))
	require.Error(Te, w.WNext(nil))
}

func TestClosedHandles(Te *testing.T) {
	_, grids := testGrids(Te)
	name := filepath.Join(Te.TempDir(), "closed.sgf")
	w, err := NewWriter(name, grids[0].Channels(), grids[0].Side(), grids[0].Resolution(),
		grids[0].Center(), nil)
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(grids[0]))
	w.Close()
	require.Error(Te, w.WNext(grids[0]))
	r, _, err := New(name)
	require.NoError(Te, err)
	g, err := r.Next(nil)
	require.NoError(Te, err)
	require.False(Te, math.IsNaN(g.Norm()))
	r.Close()
	_, err = r.Next(nil)
	require.Error(Te, err)
}
