/*
 * fitplot.go, part of gridFit.
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

/*Package fitplot plots the history of a fitting run: the loss of each
candidate structure the search visited, in visiting order, plus the atom
count along the way. Handy to eyeball whether a fit converged or the search
wandered off.*/
package fitplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/gridfit"
)

func basicLossPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Candidate"
	p.Y.Label.Text = "L2 loss"
	p.Add(plotter.NewGrid())
	return p
}

//LossCurve plots the losses of the given structures, in order, and saves
//the plot to plotname.png. Structures with no recorded loss are skipped.
func LossCurve(visited []*gridfit.AtomStruct, title, plotname string) error {
	if visited == nil {
		panic("Given nil history")
	}
	pts := make(plotter.XYs, 0, len(visited))
	for i, s := range visited {
		l := s.Loss()
		if math.IsNaN(l) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: l})
	}
	if len(pts) == 0 {
		return Error{"No structure in the history carries a loss", []string{"LossCurve"}, true}
	}
	p := basicLossPlot(title)
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	points.Shape = nil
	p.Add(line, points)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return err
	}
	return nil
}

//SizeCurve plots the atom count of the given structures, in order, and
//saves the plot to plotname.png.
func SizeCurve(visited []*gridfit.AtomStruct, title, plotname string) error {
	if visited == nil {
		panic("Given nil history")
	}
	pts := make(plotter.XYs, len(visited))
	for i, s := range visited {
		pts[i] = plotter.XY{X: float64(i), Y: float64(s.Len())}
	}
	p := basicLossPlot(title)
	p.Y.Label.Text = "Atoms"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 255, A: 255}
	p.Add(line)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return err
	}
	return nil
}
