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

package sgf

import (
	"fmt"

	"github.com/rmera/gridfit"
)

//Common error messages.
const (
	SnapUnIniWrite = "File not ready to be written"
	SnapUnIniRead  = "File not ready to be read"
	NilGrid        = "Nil grid given"
)

//Error implements the gridfit.Errorer interface for errors reading and
//writing sgf files. It carries the name of the offending file.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("sgf file %s error: %s", err.filename, err.message)
}

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

//FileName returns the name of the file on which the error happened.
func (err Error) FileName() string { return err.filename }

func errDecorate(err error, caller string) error {
	err2, ok := err.(gridfit.Errorer)
	if ok {
		err2.Decorate(caller)
		return err2
	}
	return Error{err.Error(), "", []string{caller}, true}
}

//lastSnapshotError implements gridfit.LastSnapshotError
type lastSnapshotError struct {
	deco     []string
	fileName string
}

//lastSnapshotError does nothing
func (E lastSnapshotError) NormalLastSnapshotTermination() {}

func (E lastSnapshotError) FileName() string { return E.fileName }

func (E lastSnapshotError) Error() string { return "EOF" }

func (E lastSnapshotError) Critical() bool { return false }

func (E lastSnapshotError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastSnapshotError(filename string, caller string) *lastSnapshotError {
	e := new(lastSnapshotError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
