/*
 * doc.go, part of gridFit.
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

/*Package gridfit fits discrete molecular structures to voxelized atomic
density grids. Given a dense, per-channel density grid (as produced by a
generative model, or by rendering a known molecule), it recovers a set of
atom coordinates and per-atom type vectors that best reproduce the grid.


	**gridFit Capabilities**

    Detects atom candidates in a density grid by matched-filter peak search:
	convolution with per-channel atomic kernels, peak capping, ranking,
	thresholding and greedy non-maximum suppression.

    Refines atom coordinates against the grid with gradient-based local
	optimization, using a differentiable grid renderer.

    Runs a greedy add/remove search over atom-count hypotheses, keeping the
	history of every hypothesis visited, and returns the structure with the
	lowest reconstruction loss.

    Renders structures back into grids through the render subpackage, which
	provides Gaussian atom footprints with analytic coordinate gradients.

    Saves and recovers grids with the sgf subpackage (a simple, compressed
	grid snapshot format) and plots fitting diagnostics with fitplot.

gridFit represents atomic coordinates with the xyz.Matrix type, a Nx3 matrix
based on gonum's Dense. Per-atom type vectors (element one-hot plus property
channels) are plain gonum Dense matrices. The meaning of the channels is
given by a Typer, which gridfit treats as an opaque capability; the typer
subpackage provides a simple element-based implementation.

Fundamental functions in this package panic instead of returning errors when
given malformed inputs (wrong shapes, out-of-range indexes). If something
goes wrong there, the calling program is most likely wrong and should crash.
Recoverable conditions (bad configuration, degenerate grids) use the Error
type instead.*/
package gridfit
