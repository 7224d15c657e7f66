/*
 * errors.go, part of gridFit.
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

//PanicElemOutOfRange is the message for the panic raised when an element
//channel index is out of range, a programming error.
const PanicElemOutOfRange = "typer: element channel index out of range"

//Error implements the gridfit.Errorer interface for errors in typing.
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

func errDecorate(err error, caller string) error {
	err2, ok := err.(interface {
		Decorate(string) []string
	})
	if ok {
		err2.Decorate(caller)
		return err
	}
	return Error{err.Error(), []string{caller}, true}
}
