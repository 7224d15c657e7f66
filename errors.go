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

package gridfit

import "fmt"

//Errorer is the interface for errors that all packages in this library
//implement. The Decorate method allows adding and retrieving info from the
//error, without changing its type or wrapping it around something else.
type Errorer interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

//Error is the concrete error type for the gridfit package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("%s", err.message)
}

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice. The decoration slice should contain
//a list of the functions in the calling stack, plus, for each function, any
//relevant information, or nothing. If dec is empty, the current decoration
//is returned unchanged.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//errDecorate asserts that err implements Errorer and decorates it with the
//caller's name before returning it. Used with a non-Errorer error it panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Errorer)
	err2.Decorate(caller)
	return err2
}

//LastSnapshotError is returned by snapshot readers when a file ends
//normally: it is not an actual error, just a signal that there is nothing
//left to read.
type LastSnapshotError interface {
	NormalLastSnapshotTermination()
	FileName() string
	Error() string
	Critical() bool
	Decorate(string) []string
}

//PanicMsg is a message used for panics, even though it does satisfy the
//error interface. For recoverable errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape          = PanicMsg("gridfit: dimension mismatch")
	ErrNilGrid        = PanicMsg("gridfit: given a nil grid")
	ErrNilStruct      = PanicMsg("gridfit: given a nil structure")
	ErrIndexOutOfRange = PanicMsg("gridfit: index out of range")
	ErrEnergyDecrease = PanicMsg("gridfit: channel norm decreased during convolution")
	ErrRaggedTriples  = PanicMsg("gridfit: value/index/channel slices differ in length")
)
