/*
 * errors.go, part of gridFit.
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

//Error implements the gridfit.Errorer interface for errors in plotting.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the given string to the error's decoration and returns the
//full decoration.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns whether the error is critical.
func (err Error) Critical() bool { return err.critical }
