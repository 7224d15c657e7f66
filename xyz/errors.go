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

package xyz

import "fmt"

//Error is the concrete error type for the xyz package. It allows
//adding information as the error is passed up the calling stack,
//without changing its type.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("%s", err.message)
}

//Decorate adds the dec string to the decoration slice of strings of the error,
//and returns the resulting slice. If dec is empty, it only returns the current
//decoration.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. Even though it does satisfy the error
//interface, for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("gridfit/xyz: A Matrix should have 3 columns")
	ErrNotEnoughElements = PanicMsg("gridfit/xyz: not enough elements in Matrix")
	ErrShape             = PanicMsg("gridfit/xyz: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("gridfit/xyz: index out of range")
)
