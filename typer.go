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

package gridfit

//Typer defines the channel semantics of a grid: how many element channels
//and property channels it has, the atomic radius associated to each element
//channel, and the property-channel values implied by each element. gridfit
//never inspects a Typer beyond this interface; the typer subpackage provides
//a simple element-symbol implementation.
type Typer interface {

	//NElemTypes returns the number of element channels.
	NElemTypes() int

	//NPropChannels returns the number of property channels, which
	//follow the element channels in grids and type vectors.
	NPropChannels() int

	//Radius returns the atomic radius for the ith element channel,
	//in the same length units as grid resolutions and coordinates.
	Radius(i int) float64

	//PropVec returns the property-channel values for an atom of the
	//ith element channel. The returned slice has NPropChannels elements.
	PropVec(i int) []float64
}

//NChannels returns the total number of channels (element plus property)
//defined by a Typer.
func NChannels(t Typer) int {
	return t.NElemTypes() + t.NPropChannels()
}

//TypeVec builds the full type vector for an atom of the given element
//channel: a one-hot element part followed by the typer's property values.
func TypeVec(t Typer, elem int) []float64 {
	if elem < 0 || elem >= t.NElemTypes() {
		panic(ErrIndexOutOfRange)
	}
	ret := make([]float64, NChannels(t))
	ret[elem] = 1.0
	props := t.PropVec(elem)
	for i, v := range props {
		ret[t.NElemTypes()+i] = v
	}
	return ret
}
